package service

import (
	"context"
	"errors"
	"testing"

	"school_cms/internal/models"
)

// mockFormsRepo is a func-field mock for repository.Forms.
type mockFormsRepo struct {
	GetActiveByNameFn  func(name string) (*models.Form, error)
	CreateFn           func(f models.Form) (int, error)
	CreateSubmissionFn func(s models.FormSubmission) (int, error)

	submissions []models.FormSubmission
}

func (m *mockFormsRepo) List(ctx context.Context) ([]models.Form, error) { return nil, nil }
func (m *mockFormsRepo) GetActiveByName(ctx context.Context, name string) (*models.Form, error) {
	return m.GetActiveByNameFn(name)
}
func (m *mockFormsRepo) Create(ctx context.Context, f models.Form) (int, error) {
	return m.CreateFn(f)
}
func (m *mockFormsRepo) Update(ctx context.Context, f models.Form) error { return nil }
func (m *mockFormsRepo) Delete(ctx context.Context, id int) error        { return nil }
func (m *mockFormsRepo) ListSubmissions(ctx context.Context, formID int) ([]models.FormSubmission, error) {
	return nil, nil
}
func (m *mockFormsRepo) CreateSubmission(ctx context.Context, s models.FormSubmission) (int, error) {
	m.submissions = append(m.submissions, s)
	return m.CreateSubmissionFn(s)
}

func TestFormsService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the submission against the form", func(t *testing.T) {
		repo := &mockFormsRepo{
			GetActiveByNameFn: func(name string) (*models.Form, error) {
				return &models.Form{ID: 4, Name: name, IsActive: true}, nil
			},
			CreateSubmissionFn: func(s models.FormSubmission) (int, error) { return 10, nil },
		}
		svc := NewFormsService(repo)

		id, err := svc.Submit(ctx, "admission", `{"student":"Ravi"}`, "1.2.3.4", "ua")
		if err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
		if id != 10 {
			t.Fatalf("expected id 10, got %d", id)
		}
		if len(repo.submissions) != 1 {
			t.Fatalf("expected 1 submission, got %d", len(repo.submissions))
		}
		sub := repo.submissions[0]
		if sub.FormID != 4 || sub.IPAddress != "1.2.3.4" || sub.UserAgent != "ua" {
			t.Fatalf("unexpected submission: %+v", sub)
		}
	})

	t.Run("rejects payloads that are not JSON objects", func(t *testing.T) {
		repo := &mockFormsRepo{
			GetActiveByNameFn: func(name string) (*models.Form, error) {
				t.Fatal("form lookup should not happen for bad payloads")
				return nil, nil
			},
		}
		svc := NewFormsService(repo)

		for _, data := range []string{`not json`, `[1,2]`, `"str"`} {
			if _, err := svc.Submit(ctx, "admission", data, "", ""); err == nil {
				t.Fatalf("expected error for payload %q", data)
			}
		}
	})

	t.Run("unknown or inactive form", func(t *testing.T) {
		repo := &mockFormsRepo{
			GetActiveByNameFn: func(name string) (*models.Form, error) { return nil, nil },
		}
		svc := NewFormsService(repo)

		_, err := svc.Submit(ctx, "ghost", `{}`, "", "")
		if !errors.Is(err, ErrFormNotFound) {
			t.Fatalf("expected ErrFormNotFound, got: %v", err)
		}
	})
}

func TestFormsService_Create_ValidatesFields(t *testing.T) {
	ctx := context.Background()
	repo := &mockFormsRepo{
		CreateFn: func(f models.Form) (int, error) { return 1, nil },
	}
	svc := NewFormsService(repo)

	if _, err := svc.Create(ctx, models.Form{Name: "n", Title: "t", Fields: `{"a":1}`}); err == nil {
		t.Fatal("expected error for non-array fields")
	}
	if _, err := svc.Create(ctx, models.Form{Name: "  ", Title: "t", Fields: `[]`}); err == nil {
		t.Fatal("expected error for blank name")
	}
	if _, err := svc.Create(ctx, models.Form{Name: "n", Title: "t", Fields: `[{"type":"text"}]`}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
}
