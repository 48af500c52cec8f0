package models

import (
	"time"
)

// Podcast represents a podcast episode
type Podcast struct {
	ID            string     `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	CategoryTitle string     `json:"category_title" db:"category_title"`
	Alias         string     `json:"alias" db:"alias"`
	Description   string     `json:"description" db:"description"`
	Content       string     `json:"content,omitempty" db:"content"`
	PublishedDate *time.Time `json:"published_date,omitempty" db:"published_date"`
	Image         JSONMap    `json:"image,omitempty" db:"image"`
	Podcast       JSONMap    `json:"podcast,omitempty" db:"podcast"` // duration, audio url, etc.
	AuthorIDs     []string   `json:"author_ids" db:"author_ids"`
}
