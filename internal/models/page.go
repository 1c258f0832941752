package models

import "time"

// Page is a dynamic site page assembled from ordered components.
type Page struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	Layout          string    `json:"layout"` // default | fullwidth | sidebar
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	IsPublished     bool      `json:"is_published"`
	Order           int       `json:"order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PageComponent is one building block of a page; ComponentData holds the
// type-specific configuration as a JSON string.
type PageComponent struct {
	ID            int       `json:"id"`
	PageID        int       `json:"page_id"`
	ComponentType string    `json:"component_type"` // hero | text | image | gallery | form | button | video
	ComponentData string    `json:"component_data"`
	Order         int       `json:"order"`
	IsVisible     bool      `json:"is_visible"`
	CreatedAt     time.Time `json:"created_at"`
}

// MenuItem is one entry of the site navigation tree.
type MenuItem struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	ParentID   *int      `json:"parent_id,omitempty"` // nil for top-level items
	Order      int       `json:"order"`
	IsExternal bool      `json:"is_external"`
	IsVisible  bool      `json:"is_visible"`
	CreatedAt  time.Time `json:"created_at"`
}
