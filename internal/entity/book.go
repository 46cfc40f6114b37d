package entity

import "time"

type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Published int       `json:"published"`
	Genres    []string  `json:"genres"`
	AuthorID  string    `json:"-"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasGenre reports whether the book carries the given genre.
func (b Book) HasGenre(genre string) bool {
	for _, g := range b.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
