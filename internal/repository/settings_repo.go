package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"school_cms/internal/models"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

var _ Settings = (*SettingsRepository)(nil)

const (
	selectSettingsSQL = `
		SELECT id, key, value, category, updated_at FROM site_settings ORDER BY key
	`
	selectSettingsByCategorySQL = `
		SELECT id, key, value, category, updated_at FROM site_settings WHERE category = ? ORDER BY key
	`
	upsertSettingSQL = `
		INSERT INTO site_settings (key, value, category, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			category=excluded.category,
			updated_at=excluded.updated_at
	`
)

func (r *SettingsRepository) List(ctx context.Context) ([]models.SiteSetting, error) {
	return r.querySettings(ctx, selectSettingsSQL)
}

func (r *SettingsRepository) ListByCategory(ctx context.Context, category string) ([]models.SiteSetting, error) {
	return r.querySettings(ctx, selectSettingsByCategorySQL, category)
}

// Upsert inserts the setting or overwrites the existing value for its key.
func (r *SettingsRepository) Upsert(ctx context.Context, s models.SiteSetting) error {
	_, err := r.db.ExecContext(ctx, upsertSettingSQL, s.Key, s.Value, s.Category, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert setting %q: %w", s.Key, err)
	}
	return nil
}

func (r *SettingsRepository) querySettings(ctx context.Context, query string, args ...any) ([]models.SiteSetting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var settings []models.SiteSetting
	for rows.Next() {
		var s models.SiteSetting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Category, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		s.UpdatedAt = s.UpdatedAt.UTC()
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate setting rows: %w", err)
	}
	return settings, nil
}
