package model

import (
	"time"
)

// WorkoutEntry is one completed workout in a user's history. Date and
// Time are kept as the client-facing "2006-01-02" / "15:04" strings.
type WorkoutEntry struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	WorkoutID   string     `json:"workout_id"` // client-side workout label, e.g. "A"
	WorkoutName string     `json:"workout_name"`
	Slug        string     `json:"-"` // normalized workout name, groups stats
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Exercises   []Exercise `json:"exercises"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Exercise is a single performed exercise within a workout. Stored as a
// structured JSONB list, not an opaque text blob.
type Exercise struct {
	Name     string  `json:"name"`
	Sets     int     `json:"sets,omitempty"`
	Reps     string  `json:"reps,omitempty"`
	WeightKg float64 `json:"weight,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// WorkoutStats is the per-user aggregate served from the Redis cache.
type WorkoutStats struct {
	TotalWorkouts   int            `json:"total_workouts"`
	ByWorkout       []WorkoutCount `json:"by_workout"`
	LastWorkoutDate string         `json:"last_workout_date,omitempty"`
}

type WorkoutCount struct {
	Slug        string `json:"slug"`
	WorkoutName string `json:"workout_name"`
	Count       int    `json:"count"`
}
