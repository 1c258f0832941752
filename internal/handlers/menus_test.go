package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"school_cms/internal/models"
	"school_cms/internal/service"
)

func TestGetMenu_ReturnsVisibleItems(t *testing.T) {
	menu := &mockMenu{items: []models.MenuItem{
		{ID: 1, Title: "Home", URL: "/", Order: 0, IsVisible: true},
		{ID: 2, Title: "Admissions", URL: "/admissions", Order: 1, IsVisible: true},
	}}
	s := &service.Service{Menu: menu}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var items []models.MenuItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[1].Title != "Admissions" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestAdminCreateMenuItem_DefaultsVisible(t *testing.T) {
	auth := &mockAuth{authIdentity: models.Identity{ID: 1, Username: "root", Role: models.RoleAdmin}}
	menu := &mockMenu{createID: 7}
	s := &service.Service{Authorization: auth, Menu: menu}
	r := newTestRouter(s)

	body := `{"title":"Gallery","url":"/gallery","order":3}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewBufferString(body))
	req.Header = authHeader("admin-token")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		ID      int  `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.ID != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !menu.lastItem.IsVisible {
		t.Fatal("item should default to visible")
	}
	if menu.lastItem.Order != 3 {
		t.Fatalf("order: got %d, want 3", menu.lastItem.Order)
	}
}

func TestAdminCreateMenuItem_RequiresTitleAndURL(t *testing.T) {
	auth := &mockAuth{authIdentity: models.Identity{ID: 1, Username: "root", Role: models.RoleAdmin}}
	s := &service.Service{Authorization: auth, Menu: &mockMenu{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewBufferString(`{"order":1}`))
	req.Header = authHeader("admin-token")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400 (body=%s)", w.Code, w.Body.String())
	}
}

func TestAdminDeleteMenuItem(t *testing.T) {
	auth := &mockAuth{authIdentity: models.Identity{ID: 1, Username: "root", Role: models.RoleAdmin}}
	menu := &mockMenu{}
	s := &service.Service{Authorization: auth, Menu: menu}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/menu/12", nil)
	req.Header = authHeader("admin-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if menu.lastDeleteID != 12 {
		t.Fatalf("delete id: got %d, want 12", menu.lastDeleteID)
	}
}
