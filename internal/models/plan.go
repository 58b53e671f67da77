package models

import "time"

type Plan struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanDetail is a plan together with its days (each carrying its
// exercises) and the clients currently enrolled in it.
type PlanDetail struct {
	Plan
	Days    []DayDetail `json:"days"`
	Clients []Client    `json:"clients"`
}
