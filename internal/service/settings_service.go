package service

import (
	"context"
	"errors"
	"regexp"

	"school_cms/internal/models"
	"school_cms/internal/repository"
)

var settingKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

var (
	errInvalidSettingKey      = errors.New("setting key contains invalid characters")
	errInvalidSettingCategory = errors.New("invalid setting category")
	errEmptySettingValue      = errors.New("setting value is required")
)

// Defaults seeded on first start so the site renders before any admin edits.
var defaultSiteSettings = []models.SiteSetting{
	{Key: "theme.primary_color", Value: "#FF9933", Category: models.SettingTheme},
	{Key: "theme.secondary_color", Value: "#8B1538", Category: models.SettingTheme},
	{Key: "theme.accent_color", Value: "#FF6B35", Category: models.SettingTheme},
	{Key: "theme.font_family", Value: "Inter", Category: models.SettingTheme},

	{Key: "contact.school_name", Value: "DAV Public School, Asansol", Category: models.SettingContact},
	{Key: "contact.address", Value: "Sector 12, Asansol - 713301, West Bengal", Category: models.SettingContact},
	{Key: "contact.phone", Value: "+91 341 234 5678", Category: models.SettingContact},
	{Key: "contact.email", Value: "info@davpublicschoolasansol.edu.in", Category: models.SettingContact},

	{Key: "content.hero_title", Value: "Excellence in Education", Category: models.SettingContent},
	{Key: "content.hero_subtitle", Value: "Nurturing young minds for a brighter tomorrow", Category: models.SettingContent},
	{Key: "content.principal_name", Value: "Dr. Priya Sharma", Category: models.SettingContent},

	{Key: "social.facebook", Value: "https://facebook.com/davpublicschoolasansol", Category: models.SettingSocial},
	{Key: "social.twitter", Value: "https://twitter.com/davschoolasansol", Category: models.SettingSocial},
	{Key: "social.instagram", Value: "https://instagram.com/davschoolasansol", Category: models.SettingSocial},
	{Key: "social.youtube", Value: "https://youtube.com/davschoolasansol", Category: models.SettingSocial},
}

type SettingsService struct {
	settings repository.Settings
}

func NewSettingsService(settings repository.Settings) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) All(ctx context.Context) ([]models.SiteSetting, error) {
	return s.settings.List(ctx)
}

func (s *SettingsService) ByCategory(ctx context.Context, category string) ([]models.SiteSetting, error) {
	if !models.ValidSettingCategory(category) {
		return nil, errInvalidSettingCategory
	}
	return s.settings.ListByCategory(ctx, category)
}

// Update validates and upserts the batch; keys not in the batch are untouched.
func (s *SettingsService) Update(ctx context.Context, settings []models.SiteSetting) error {
	for _, st := range settings {
		if err := validateSetting(st); err != nil {
			return err
		}
	}
	for _, st := range settings {
		if err := s.settings.Upsert(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDefaults seeds any default keys missing from the store without
// overwriting admin edits.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	existing, err := s.settings.List(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, st := range existing {
		present[st.Key] = true
	}
	for _, def := range defaultSiteSettings {
		if present[def.Key] {
			continue
		}
		if err := s.settings.Upsert(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func validateSetting(s models.SiteSetting) error {
	if !settingKeyPattern.MatchString(s.Key) {
		return errInvalidSettingKey
	}
	if !models.ValidSettingCategory(s.Category) {
		return errInvalidSettingCategory
	}
	if s.Value == "" {
		return errEmptySettingValue
	}
	return nil
}
