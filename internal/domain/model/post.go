package model

import (
	"time"
)

// Post is a content record. AuthorID is set once at creation from the
// authenticated caller and never mutates; AuthorName is a snapshot of the
// author's display name at creation time and is not re-synced.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
