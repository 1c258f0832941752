package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"school_cms/internal/models"
)

type FormRepository struct {
	db *sql.DB
}

func NewFormRepository(db *sql.DB) *FormRepository {
	return &FormRepository{db: db}
}

var _ Forms = (*FormRepository)(nil)

const (
	selectFormsSQL = `
		SELECT id, name, title, description, fields, is_active, created_at
		FROM forms ORDER BY created_at
	`
	selectActiveFormByNameSQL = `
		SELECT id, name, title, description, fields, is_active, created_at
		FROM forms WHERE name = ? AND is_active = 1
	`
	insertFormSQL = `
		INSERT INTO forms (name, title, description, fields, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	updateFormSQL = `
		UPDATE forms SET name=?, title=?, description=?, fields=?, is_active=? WHERE id=?
	`
	deleteFormSQL = `DELETE FROM forms WHERE id = ?`

	selectFormSubmissionsSQL = `
		SELECT id, form_id, data, ip_address, user_agent, created_at
		FROM form_submissions WHERE form_id = ? ORDER BY created_at
	`
	insertFormSubmissionSQL = `
		INSERT INTO form_submissions (form_id, data, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
)

func (r *FormRepository) List(ctx context.Context) ([]models.Form, error) {
	rows, err := r.db.QueryContext(ctx, selectFormsSQL)
	if err != nil {
		return nil, fmt.Errorf("select forms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var forms []models.Form
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan form row: %w", err)
		}
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate form rows: %w", err)
	}
	return forms, nil
}

// GetActiveByName fetches an active form by name. Returns (nil, nil) if not found.
func (r *FormRepository) GetActiveByName(ctx context.Context, name string) (*models.Form, error) {
	row := r.db.QueryRowContext(ctx, selectActiveFormByNameSQL, name)
	f, err := scanForm(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select form %q: %w", name, err)
	}
	return &f, nil
}

func (r *FormRepository) Create(ctx context.Context, f models.Form) (int, error) {
	res, err := r.db.ExecContext(ctx, insertFormSQL,
		f.Name, f.Title, nullIfEmpty(f.Description), f.Fields, f.IsActive, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert form %q: %w", f.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for form %q: %w", f.Name, err)
	}
	return int(lastID), nil
}

func (r *FormRepository) Update(ctx context.Context, f models.Form) error {
	_, err := r.db.ExecContext(ctx, updateFormSQL,
		f.Name, f.Title, nullIfEmpty(f.Description), f.Fields, f.IsActive, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update form id=%d: %w", f.ID, err)
	}
	return nil
}

func (r *FormRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteFormSQL, id); err != nil {
		return fmt.Errorf("delete form id=%d: %w", id, err)
	}
	return nil
}

func (r *FormRepository) ListSubmissions(ctx context.Context, formID int) ([]models.FormSubmission, error) {
	rows, err := r.db.QueryContext(ctx, selectFormSubmissionsSQL, formID)
	if err != nil {
		return nil, fmt.Errorf("select submissions for form %d: %w", formID, err)
	}
	defer func() { _ = rows.Close() }()

	var subs []models.FormSubmission
	for rows.Next() {
		var s models.FormSubmission
		var ip, ua sql.NullString
		if err := rows.Scan(&s.ID, &s.FormID, &s.Data, &ip, &ua, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission row: %w", err)
		}
		s.IPAddress = ip.String
		s.UserAgent = ua.String
		s.CreatedAt = s.CreatedAt.UTC()
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission rows: %w", err)
	}
	return subs, nil
}

func (r *FormRepository) CreateSubmission(ctx context.Context, s models.FormSubmission) (int, error) {
	res, err := r.db.ExecContext(ctx, insertFormSubmissionSQL,
		s.FormID, s.Data, nullIfEmpty(s.IPAddress), nullIfEmpty(s.UserAgent), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert submission for form %d: %w", s.FormID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for submission: %w", err)
	}
	return int(lastID), nil
}

func scanForm(row rowScanner) (models.Form, error) {
	var f models.Form
	var description sql.NullString
	err := row.Scan(&f.ID, &f.Name, &f.Title, &description, &f.Fields, &f.IsActive, &f.CreatedAt)
	if err != nil {
		return models.Form{}, err
	}
	f.Description = description.String
	f.CreatedAt = f.CreatedAt.UTC()
	return f, nil
}
