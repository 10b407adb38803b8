package repository

import (
	"context"
	"testing"
	"time"

	"fittrack/internal/common"
	"fittrack/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO workout_history`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	repo := NewPgWorkoutRepository(db)
	entry := &model.WorkoutEntry{
		UserID:      7,
		WorkoutID:   "A",
		WorkoutName: "Upper Body",
		Slug:        "upper-body",
		Date:        "2026-08-30",
		Time:        "18:30",
		Exercises:   []model.Exercise{{Name: "Bench Press", Sets: 3, Reps: "8-12", WeightKg: 60}},
	}
	err = repo.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{
		"id", "user_id", "workout_id", "workout_name", "slug",
		"workout_date", "workout_time", "exercises", "created_at",
	}
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cols).
		AddRow(int64(2), int64(7), "B", "Legs", "legs", date, "19:00",
			[]byte(`[{"name":"Squat","sets":5}]`), time.Now()).
		AddRow(int64(1), int64(7), "A", "Upper Body", "upper-body", date, "18:30",
			[]byte(`[{"name":"Bench Press","sets":3,"reps":"8-12"}]`), time.Now())
	mock.ExpectQuery(`FROM workout_history WHERE user_id`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := NewPgWorkoutRepository(db)
	entries, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-08-30", entries[0].Date)
	require.Len(t, entries[0].Exercises, 1)
	assert.Equal(t, "Squat", entries[0].Exercises[0].Name)
	assert.Equal(t, 5, entries[0].Exercises[0].Sets)
	assert.Equal(t, "8-12", entries[1].Exercises[0].Reps)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM workout_history WHERE id`).
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPgWorkoutRepository(db)
	require.NoError(t, repo.Delete(context.Background(), 7, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepository_Delete_NotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM workout_history WHERE id`).
		WithArgs(int64(3), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPgWorkoutRepository(db)
	err = repo.Delete(context.Background(), 8, 3)
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepository_DeleteAllByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM workout_history WHERE user_id`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	repo := NewPgWorkoutRepository(db)
	require.NoError(t, repo.DeleteAllByUser(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepository_StatsByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).
			AddRow(3, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(`SELECT slug`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "min", "count"}).
			AddRow("upper-body", "Upper Body", 2).
			AddRow("legs", "Legs", 1))

	repo := NewPgWorkoutRepository(db)
	stats, err := repo.StatsByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalWorkouts)
	assert.Equal(t, "2026-08-30", stats.LastWorkoutDate)
	require.Len(t, stats.ByWorkout, 2)
	assert.Equal(t, "upper-body", stats.ByWorkout[0].Slug)
	assert.Equal(t, 2, stats.ByWorkout[0].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepository_StatsByUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(0, nil))
	mock.ExpectQuery(`SELECT slug`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "min", "count"}))

	repo := NewPgWorkoutRepository(db)
	stats, err := repo.StatsByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalWorkouts)
	assert.Empty(t, stats.LastWorkoutDate)
	assert.Empty(t, stats.ByWorkout)
	require.NoError(t, mock.ExpectationsWereMet())
}
