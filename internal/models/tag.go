package models

// Tag is a free-form article label
type Tag struct {
	ID          string `json:"id" db:"id"`
	Slug        string `json:"slug" db:"slug"`
	Title       string `json:"title" db:"title"`
	SeoTitle    string `json:"seo_title,omitempty" db:"seo_title"`
	TagName     string `json:"tag_name,omitempty" db:"tag_name"`
	Description string `json:"description,omitempty" db:"description"`
}
