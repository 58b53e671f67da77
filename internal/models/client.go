package models

import "time"

type Client struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Age       int       `json:"age"`
	Weight    int       `json:"weight"`
	Height    int       `json:"height"`
	OwnerID   int64     `json:"owner_id"`
	PlanID    *int64    `json:"plan_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
