package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fittrack/internal/common"
	"fittrack/internal/domain/model"
	"fittrack/internal/domain/repository"
	"fittrack/internal/platform/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

type WorkoutService struct {
	workoutRepo repository.WorkoutRepository
	rdb         *redis.Client // nil disables the stats cache
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, rdb *redis.Client) *WorkoutService {
	return &WorkoutService{workoutRepo: workoutRepo, rdb: rdb}
}

type SaveWorkoutRequest struct {
	WorkoutID   string           `json:"workout_id"`
	WorkoutName string           `json:"workout_name"`
	Date        string           `json:"date"`
	Time        string           `json:"time"`
	Exercises   []model.Exercise `json:"exercises"`
}

func (s *WorkoutService) History(ctx context.Context, userID int64) ([]model.WorkoutEntry, error) {
	return s.workoutRepo.ListByUser(ctx, userID)
}

func (s *WorkoutService) Save(ctx context.Context, userID int64, req SaveWorkoutRequest) (*model.WorkoutEntry, error) {
	if req.WorkoutID == "" || req.WorkoutName == "" || len(req.Exercises) == 0 {
		return nil, fmt.Errorf("workout_id, workout_name and exercises are required: %w", common.ErrBadRequest)
	}

	now := time.Now()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("date must be formatted as YYYY-MM-DD: %w", common.ErrBadRequest)
	}
	timeOfDay := req.Time
	if timeOfDay == "" {
		timeOfDay = now.Format("15:04")
	}

	entry := &model.WorkoutEntry{
		UserID:      userID,
		WorkoutID:   req.WorkoutID,
		WorkoutName: req.WorkoutName,
		Slug:        slug.Make(req.WorkoutName),
		Date:        date,
		Time:        timeOfDay,
		Exercises:   req.Exercises,
	}

	if err := s.workoutRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save workout: %w", err)
	}
	s.invalidateStats(ctx, userID)
	return entry, nil
}

func (s *WorkoutService) Delete(ctx context.Context, userID, entryID int64) error {
	if err := s.workoutRepo.Delete(ctx, userID, entryID); err != nil {
		return err
	}
	s.invalidateStats(ctx, userID)
	return nil
}

func (s *WorkoutService) Clear(ctx context.Context, userID int64) error {
	if err := s.workoutRepo.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	s.invalidateStats(ctx, userID)
	return nil
}

// Stats serves the per-user aggregate, preferring the Redis cache. On a
// miss the rebuild runs under a short SetNX lock, so only the lock
// holder queries SQL and writes the entry back; losers serve a direct
// query without touching the cache. A Redis failure at any step
// degrades to a direct query, never to a request failure.
func (s *WorkoutService) Stats(ctx context.Context, userID int64) (*model.WorkoutStats, error) {
	if s.rdb == nil {
		return s.queryStats(ctx, userID)
	}

	if stats, ok := s.cachedStats(ctx, userID); ok {
		return stats, nil
	}

	lockValue := uuid.NewString()
	acquired, err := s.rdb.SetNX(ctx, s.lockKey(userID), lockValue, config.AppConfig.StatsLockTTL).Result()
	if err != nil {
		log.Printf("WARN: stats cache lock for user %d unavailable: %v", userID, err)
		return s.queryStats(ctx, userID)
	}
	if !acquired {
		// Another request is already rebuilding this entry; leave the
		// cache to the lock holder.
		return s.queryStats(ctx, userID)
	}
	defer s.releaseStatsLock(ctx, userID, lockValue)

	stats, err := s.queryStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		log.Printf("WARN: failed to encode stats for user %d: %v", userID, err)
		return stats, nil
	}
	if err := s.rdb.Set(ctx, s.statsKey(userID), payload, config.AppConfig.StatsCacheTTL).Err(); err != nil {
		log.Printf("WARN: failed to cache stats for user %d: %v", userID, err)
	}
	return stats, nil
}

func (s *WorkoutService) queryStats(ctx context.Context, userID int64) (*model.WorkoutStats, error) {
	stats, err := s.workoutRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute workout stats: %w", err)
	}
	return stats, nil
}

func (s *WorkoutService) cachedStats(ctx context.Context, userID int64) (*model.WorkoutStats, bool) {
	payload, err := s.rdb.Get(ctx, s.statsKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	stats := &model.WorkoutStats{}
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, false
	}
	return stats, true
}

func (s *WorkoutService) statsKey(userID int64) string {
	return fmt.Sprintf("%s:%d", config.AppConfig.StatsCachePrefix, userID)
}

func (s *WorkoutService) lockKey(userID int64) string {
	return fmt.Sprintf("%s:%d", config.AppConfig.StatsLockPrefix, userID)
}

// Release only happens while we still hold the lock (CAS on the
// fencing value), so a lock that expired mid-rebuild is left alone.
var releaseStatsLockScript = redis.NewScript(`
    if redis.call("get", KEYS[1]) == ARGV[1] then
        return redis.call("del", KEYS[1])
    else
        return 0
    end
`)

func (s *WorkoutService) releaseStatsLock(ctx context.Context, userID int64, lockValue string) {
	if _, err := releaseStatsLockScript.Run(ctx, s.rdb, []string{s.lockKey(userID)}, lockValue).Result(); err != nil {
		log.Printf("WARN: failed to release stats cache lock for user %d: %v", userID, err)
	}
}

func (s *WorkoutService) invalidateStats(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, s.statsKey(userID)).Err(); err != nil {
		log.Printf("WARN: failed to invalidate stats cache for user %d: %v", userID, err)
	}
}
