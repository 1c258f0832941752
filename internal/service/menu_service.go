package service

import (
	"context"
	"errors"
	"strings"

	"school_cms/internal/models"
	"school_cms/internal/repository"
)

var errEmptyMenuItem = errors.New("menu item title and url are required")

type MenuService struct {
	menu repository.Menu
}

func NewMenuService(menu repository.Menu) *MenuService {
	return &MenuService{menu: menu}
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.List(ctx)
}

func (s *MenuService) ListVisible(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.ListVisible(ctx)
}

func (s *MenuService) Create(ctx context.Context, m models.MenuItem) (int, error) {
	if err := normalizeMenuItem(&m); err != nil {
		return 0, err
	}
	return s.menu.Create(ctx, m)
}

func (s *MenuService) Update(ctx context.Context, m models.MenuItem) error {
	if err := normalizeMenuItem(&m); err != nil {
		return err
	}
	return s.menu.Update(ctx, m)
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	return s.menu.Delete(ctx, id)
}

func normalizeMenuItem(m *models.MenuItem) error {
	m.Title = strings.TrimSpace(m.Title)
	m.URL = strings.TrimSpace(m.URL)
	if m.Title == "" || m.URL == "" {
		return errEmptyMenuItem
	}
	return nil
}
