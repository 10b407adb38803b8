package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fittrack/internal/common"
	"fittrack/internal/domain/model"
)

type WorkoutRepository interface {
	Create(ctx context.Context, entry *model.WorkoutEntry) error
	ListByUser(ctx context.Context, userID int64) ([]model.WorkoutEntry, error)
	Delete(ctx context.Context, userID, entryID int64) error
	DeleteAllByUser(ctx context.Context, userID int64) error
	StatsByUser(ctx context.Context, userID int64) (*model.WorkoutStats, error)
}

type pgWorkoutRepository struct {
	db *sql.DB
}

func NewPgWorkoutRepository(db *sql.DB) WorkoutRepository {
	return &pgWorkoutRepository{db: db}
}

func (r *pgWorkoutRepository) Create(ctx context.Context, entry *model.WorkoutEntry) error {
	exercises, err := json.Marshal(entry.Exercises)
	if err != nil {
		return fmt.Errorf("pgWorkoutRepository.Create: encode exercises: %w", err)
	}
	query := `INSERT INTO workout_history (user_id, workout_id, workout_name, slug,
	              workout_date, workout_time, exercises)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.WorkoutID, entry.WorkoutName, entry.Slug,
		entry.Date, entry.Time, exercises,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgWorkoutRepository.Create: %w", err)
	}
	return nil
}

func (r *pgWorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]model.WorkoutEntry, error) {
	query := `SELECT id, user_id, workout_id, workout_name, slug, workout_date,
	              workout_time, exercises, created_at
	          FROM workout_history WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgWorkoutRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	entries := []model.WorkoutEntry{}
	for rows.Next() {
		var entry model.WorkoutEntry
		var date time.Time
		var exercises []byte
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.WorkoutID, &entry.WorkoutName, &entry.Slug,
			&date, &entry.Time, &exercises, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgWorkoutRepository.ListByUser: %w", err)
		}
		entry.Date = date.Format("2006-01-02")
		if err := json.Unmarshal(exercises, &entry.Exercises); err != nil {
			return nil, fmt.Errorf("pgWorkoutRepository.ListByUser: decode exercises: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgWorkoutRepository.ListByUser: %w", err)
	}
	return entries, nil
}

// Delete removes a single entry, scoped to its owner. A missing row and a
// row owned by someone else are indistinguishable to the caller.
func (r *pgWorkoutRepository) Delete(ctx context.Context, userID, entryID int64) error {
	query := `DELETE FROM workout_history WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("pgWorkoutRepository.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgWorkoutRepository.Delete: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgWorkoutRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM workout_history WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("pgWorkoutRepository.DeleteAllByUser: %w", err)
	}
	return nil
}

func (r *pgWorkoutRepository) StatsByUser(ctx context.Context, userID int64) (*model.WorkoutStats, error) {
	stats := &model.WorkoutStats{ByWorkout: []model.WorkoutCount{}}

	var lastDate sql.NullTime
	query := `SELECT COUNT(*), MAX(workout_date) FROM workout_history WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&stats.TotalWorkouts, &lastDate)
	if err != nil {
		return nil, fmt.Errorf("pgWorkoutRepository.StatsByUser: %w", err)
	}
	if lastDate.Valid {
		stats.LastWorkoutDate = lastDate.Time.Format("2006-01-02")
	}

	query = `SELECT slug, MIN(workout_name), COUNT(*)
	         FROM workout_history WHERE user_id = $1
	         GROUP BY slug ORDER BY COUNT(*) DESC, slug`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgWorkoutRepository.StatsByUser: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var count model.WorkoutCount
		if err := rows.Scan(&count.Slug, &count.WorkoutName, &count.Count); err != nil {
			return nil, fmt.Errorf("pgWorkoutRepository.StatsByUser: %w", err)
		}
		stats.ByWorkout = append(stats.ByWorkout, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgWorkoutRepository.StatsByUser: %w", err)
	}
	return stats, nil
}
