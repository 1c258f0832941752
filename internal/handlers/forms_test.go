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

func TestGetForm(t *testing.T) {
	form := &models.Form{ID: 1, Name: "admission", Title: "Admission Enquiry", Fields: `[]`, IsActive: true}

	t.Run("found", func(t *testing.T) {
		s := &service.Service{Forms: &mockForms{form: form}}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/forms/admission", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var out models.Form
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out.Name != "admission" {
			t.Fatalf("unexpected form: %+v", out)
		}
	})

	t.Run("missing or inactive", func(t *testing.T) {
		s := &service.Service{Forms: &mockForms{form: nil}}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/forms/ghost", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status: got %d, want 404", w.Code)
		}
	})
}

func TestSubmitForm(t *testing.T) {
	t.Run("passes raw body and client metadata", func(t *testing.T) {
		forms := &mockForms{submitID: 7}
		s := &service.Service{Forms: forms}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/forms/admission/submissions", bytes.NewBufferString(`{"student":"Ravi"}`))
		req.Header.Set("User-Agent", "test-agent")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if forms.lastSubmitName != "admission" {
			t.Fatalf("name: got %q", forms.lastSubmitName)
		}
		if forms.lastSubmitData != `{"student":"Ravi"}` {
			t.Fatalf("data: got %q", forms.lastSubmitData)
		}
		if forms.lastSubmitUA != "test-agent" {
			t.Fatalf("user agent: got %q", forms.lastSubmitUA)
		}
		if forms.lastSubmitIP == "" {
			t.Fatal("client IP not recorded")
		}
	})

	t.Run("unknown form", func(t *testing.T) {
		s := &service.Service{Forms: &mockForms{submitErr: service.ErrFormNotFound}}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/forms/ghost/submissions", bytes.NewBufferString(`{}`))
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status: got %d, want 404 (body=%s)", w.Code, w.Body.String())
		}
	})
}

func TestAdminListFormSubmissions(t *testing.T) {
	auth := &mockAuth{authIdentity: models.Identity{ID: 1, Username: "root", Role: models.RoleAdmin}}
	forms := &mockForms{submissions: []models.FormSubmission{{ID: 1, FormID: 2, Data: `{"q":"a"}`}}}
	s := &service.Service{Authorization: auth, Forms: forms}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/forms/2/submissions", nil)
	req.Header = authHeader("admin-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out []models.FormSubmission
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if len(out) != 1 || out[0].FormID != 2 {
		t.Fatalf("unexpected submissions: %+v", out)
	}
}
