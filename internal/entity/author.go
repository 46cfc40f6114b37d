package entity

import "time"

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Born *int   `json:"born,omitempty"`
	// BookCount is computed at read time, never stored.
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
