package models

import "time"

// Setting categories.
const (
	SettingTheme   = "theme"
	SettingContact = "contact"
	SettingContent = "content"
	SettingSocial  = "social"
)

// SiteSetting is one key/value pair of site-wide configuration
// (theme colors, contact details, hero copy, social links).
type SiteSetting struct {
	ID        int       `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidSettingCategory reports whether c is a known settings category.
func ValidSettingCategory(c string) bool {
	switch c {
	case SettingTheme, SettingContact, SettingContent, SettingSocial:
		return true
	}
	return false
}
