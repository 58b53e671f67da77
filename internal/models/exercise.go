package models

import "time"

type Exercise struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Activity  *string   `json:"activity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
