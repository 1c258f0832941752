package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"school_cms/internal/models"
)

// ContentRepository serves the read-mostly marketing tables (news, events,
// testimonials) and stores contact-form submissions.
type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

var _ Content = (*ContentRepository)(nil)

const (
	selectActiveNewsSQL = `
		SELECT id, title, content, active, created_at
		FROM news WHERE active = 1 ORDER BY created_at DESC
	`
	selectActiveEventsSQL = `
		SELECT id, title, description, date, icon, active
		FROM events WHERE active = 1 ORDER BY id
	`
	selectActiveTestimonialsSQL = `
		SELECT id, name, role, message, image, active
		FROM testimonials WHERE active = 1 ORDER BY id
	`
	insertContactSQL = `
		INSERT INTO contacts (first_name, last_name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
)

func (r *ContentRepository) ActiveNews(ctx context.Context) ([]models.News, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveNewsSQL)
	if err != nil {
		return nil, fmt.Errorf("select news: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []models.News
	for rows.Next() {
		var n models.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Active, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan news row: %w", err)
		}
		n.CreatedAt = n.CreatedAt.UTC()
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news rows: %w", err)
	}
	return items, nil
}

func (r *ContentRepository) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveEventsSQL)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Icon, &e.Active); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return items, nil
}

func (r *ContentRepository) ActiveTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveTestimonialsSQL)
	if err != nil {
		return nil, fmt.Errorf("select testimonials: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		var image sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Role, &t.Message, &image, &t.Active); err != nil {
			return nil, fmt.Errorf("scan testimonial row: %w", err)
		}
		t.Image = image.String
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate testimonial rows: %w", err)
	}
	return items, nil
}

// CreateContact stores a contact-form submission and returns its ID.
func (r *ContentRepository) CreateContact(ctx context.Context, c models.Contact) (int, error) {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertContactSQL,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Subject, c.Message, createdAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact from %q: %w", c.Email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for contact: %w", err)
	}
	return int(lastID), nil
}
