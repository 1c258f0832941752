package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"school_cms/internal/models"
)

type PageRepository struct {
	db *sql.DB
}

func NewPageRepository(db *sql.DB) *PageRepository {
	return &PageRepository{db: db}
}

var _ Pages = (*PageRepository)(nil)

const (
	selectPagesSQL = `
		SELECT id, title, slug, content, layout, meta_title, meta_description, is_published, sort_order, created_at, updated_at
		FROM pages ORDER BY sort_order, created_at
	`
	selectPublishedPagesSQL = `
		SELECT id, title, slug, content, layout, meta_title, meta_description, is_published, sort_order, created_at, updated_at
		FROM pages WHERE is_published = 1 ORDER BY sort_order, created_at
	`
	selectPageBySlugSQL = `
		SELECT id, title, slug, content, layout, meta_title, meta_description, is_published, sort_order, created_at, updated_at
		FROM pages WHERE slug = ?
	`
	insertPageSQL = `
		INSERT INTO pages (title, slug, content, layout, meta_title, meta_description, is_published, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	updatePageSQL = `
		UPDATE pages SET title=?, slug=?, content=?, layout=?, meta_title=?, meta_description=?, is_published=?, sort_order=?, updated_at=?
		WHERE id=?
	`
	deletePageSQL = `DELETE FROM pages WHERE id = ?`

	selectPageComponentsSQL = `
		SELECT id, page_id, component_type, component_data, sort_order, is_visible, created_at
		FROM page_components WHERE page_id = ? ORDER BY sort_order
	`
	insertPageComponentSQL = `
		INSERT INTO page_components (page_id, component_type, component_data, sort_order, is_visible, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	updatePageComponentSQL = `
		UPDATE page_components SET component_type=?, component_data=?, sort_order=?, is_visible=? WHERE id=?
	`
	deletePageComponentSQL = `DELETE FROM page_components WHERE id = ?`
)

func (r *PageRepository) List(ctx context.Context) ([]models.Page, error) {
	return r.queryPages(ctx, selectPagesSQL)
}

func (r *PageRepository) ListPublished(ctx context.Context) ([]models.Page, error) {
	return r.queryPages(ctx, selectPublishedPagesSQL)
}

// GetBySlug fetches a page by slug. Returns (nil, nil) if not found.
func (r *PageRepository) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	row := r.db.QueryRowContext(ctx, selectPageBySlugSQL, slug)
	p, err := scanPage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select page %q: %w", slug, err)
	}
	return &p, nil
}

// Create inserts a page and returns its ID.
func (r *PageRepository) Create(ctx context.Context, p models.Page) (int, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertPageSQL,
		p.Title, p.Slug, p.Content, p.Layout,
		nullIfEmpty(p.MetaTitle), nullIfEmpty(p.MetaDescription),
		p.IsPublished, p.Order, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert page %q: %w", p.Slug, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for page %q: %w", p.Slug, err)
	}
	return int(lastID), nil
}

// Update rewrites the page row; updated_at is stamped here.
func (r *PageRepository) Update(ctx context.Context, p models.Page) error {
	_, err := r.db.ExecContext(ctx, updatePageSQL,
		p.Title, p.Slug, p.Content, p.Layout,
		nullIfEmpty(p.MetaTitle), nullIfEmpty(p.MetaDescription),
		p.IsPublished, p.Order, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update page id=%d: %w", p.ID, err)
	}
	return nil
}

func (r *PageRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deletePageSQL, id); err != nil {
		return fmt.Errorf("delete page id=%d: %w", id, err)
	}
	return nil
}

func (r *PageRepository) ListComponents(ctx context.Context, pageID int) ([]models.PageComponent, error) {
	rows, err := r.db.QueryContext(ctx, selectPageComponentsSQL, pageID)
	if err != nil {
		return nil, fmt.Errorf("select components for page %d: %w", pageID, err)
	}
	defer func() { _ = rows.Close() }()

	var comps []models.PageComponent
	for rows.Next() {
		var c models.PageComponent
		if err := rows.Scan(&c.ID, &c.PageID, &c.ComponentType, &c.ComponentData, &c.Order, &c.IsVisible, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan component row: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		comps = append(comps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate component rows: %w", err)
	}
	return comps, nil
}

func (r *PageRepository) CreateComponent(ctx context.Context, c models.PageComponent) (int, error) {
	res, err := r.db.ExecContext(ctx, insertPageComponentSQL,
		c.PageID, c.ComponentType, c.ComponentData, c.Order, c.IsVisible, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert component for page %d: %w", c.PageID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for component: %w", err)
	}
	return int(lastID), nil
}

func (r *PageRepository) UpdateComponent(ctx context.Context, c models.PageComponent) error {
	_, err := r.db.ExecContext(ctx, updatePageComponentSQL,
		c.ComponentType, c.ComponentData, c.Order, c.IsVisible, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update component id=%d: %w", c.ID, err)
	}
	return nil
}

func (r *PageRepository) DeleteComponent(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deletePageComponentSQL, id); err != nil {
		return fmt.Errorf("delete component id=%d: %w", id, err)
	}
	return nil
}

func (r *PageRepository) queryPages(ctx context.Context, query string) ([]models.Page, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pages []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page row: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate page rows: %w", err)
	}
	return pages, nil
}

// rowScanner lets scanPage work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (models.Page, error) {
	var p models.Page
	var metaTitle, metaDescription sql.NullString
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Layout,
		&metaTitle, &metaDescription,
		&p.IsPublished, &p.Order, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Page{}, err
	}
	p.MetaTitle = metaTitle.String
	p.MetaDescription = metaDescription.String
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// nullIfEmpty maps "" to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
