package model

import (
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Name           string    `json:"name"`
	Age            *int      `json:"age"`
	Gender         string    `json:"gender"`
	HeightCm       *float64  `json:"height"`
	WeightKg       *float64  `json:"weight"`
	Experience     string    `json:"experience"`
	Frequency      string    `json:"frequency"`
	Duration       string    `json:"duration"`
	Goal           string    `json:"goal"`
	CreatedAt      time.Time `json:"created_at"`
}
