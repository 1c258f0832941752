package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"school_cms/internal/models"
)

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

var _ Menu = (*MenuRepository)(nil)

const (
	selectMenuItemsSQL = `
		SELECT id, title, url, parent_id, sort_order, is_external, is_visible, created_at
		FROM menu_items ORDER BY sort_order
	`
	selectVisibleMenuItemsSQL = `
		SELECT id, title, url, parent_id, sort_order, is_external, is_visible, created_at
		FROM menu_items WHERE is_visible = 1 ORDER BY sort_order
	`
	insertMenuItemSQL = `
		INSERT INTO menu_items (title, url, parent_id, sort_order, is_external, is_visible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	updateMenuItemSQL = `
		UPDATE menu_items SET title=?, url=?, parent_id=?, sort_order=?, is_external=?, is_visible=? WHERE id=?
	`
	deleteMenuItemSQL = `DELETE FROM menu_items WHERE id = ?`
)

func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	return r.queryItems(ctx, selectMenuItemsSQL)
}

func (r *MenuRepository) ListVisible(ctx context.Context) ([]models.MenuItem, error) {
	return r.queryItems(ctx, selectVisibleMenuItemsSQL)
}

func (r *MenuRepository) Create(ctx context.Context, m models.MenuItem) (int, error) {
	res, err := r.db.ExecContext(ctx, insertMenuItemSQL,
		m.Title, m.URL, m.ParentID, m.Order, m.IsExternal, m.IsVisible, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert menu item %q: %w", m.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for menu item %q: %w", m.Title, err)
	}
	return int(lastID), nil
}

func (r *MenuRepository) Update(ctx context.Context, m models.MenuItem) error {
	_, err := r.db.ExecContext(ctx, updateMenuItemSQL,
		m.Title, m.URL, m.ParentID, m.Order, m.IsExternal, m.IsVisible, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update menu item id=%d: %w", m.ID, err)
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteMenuItemSQL, id); err != nil {
		return fmt.Errorf("delete menu item id=%d: %w", id, err)
	}
	return nil
}

func (r *MenuRepository) queryItems(ctx context.Context, query string) ([]models.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select menu items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		var parentID sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Title, &m.URL, &parentID, &m.Order, &m.IsExternal, &m.IsVisible, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item row: %w", err)
		}
		if parentID.Valid {
			v := int(parentID.Int64)
			m.ParentID = &v
		}
		m.CreatedAt = m.CreatedAt.UTC()
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu item rows: %w", err)
	}
	return items, nil
}
