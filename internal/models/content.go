package models

import "time"

// Post is an article authored from the admin panel.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Images    []string  `json:"images,omitempty"` // image URLs
	Category  string    `json:"category"`         // sports | cultural | labs | general
	AuthorID  int       `json:"author_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// News is a short announcement shown on the home page ticker.
type News struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is a calendar entry.
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // display string, not parsed
	Icon        string `json:"icon"`
	Active      bool   `json:"active"`
}

type Testimonial struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Message string `json:"message"`
	Image   string `json:"image,omitempty"`
	Active  bool   `json:"active"`
}

// Contact is a stored contact-form submission.
type Contact struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
