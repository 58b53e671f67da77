package models

import "time"

type Day struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayDetail is a day together with its associated exercises.
type DayDetail struct {
	Day
	Exercises []Exercise `json:"exercises"`
}
