package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"school_cms/internal/models"
	"school_cms/internal/repository"
)

var (
	ErrFormNotFound   = errors.New("form not found")
	errInvalidFields  = errors.New("fields must be a JSON array")
	errInvalidPayload = errors.New("submission data must be a JSON object")
	errEmptyFormName  = errors.New("form name is required")
)

type FormsService struct {
	forms repository.Forms
}

func NewFormsService(forms repository.Forms) *FormsService {
	return &FormsService{forms: forms}
}

func (s *FormsService) List(ctx context.Context) ([]models.Form, error) {
	return s.forms.List(ctx)
}

func (s *FormsService) GetActiveByName(ctx context.Context, name string) (*models.Form, error) {
	return s.forms.GetActiveByName(ctx, name)
}

func (s *FormsService) Create(ctx context.Context, f models.Form) (int, error) {
	if err := normalizeForm(&f); err != nil {
		return 0, err
	}
	return s.forms.Create(ctx, f)
}

func (s *FormsService) Update(ctx context.Context, f models.Form) error {
	if err := normalizeForm(&f); err != nil {
		return err
	}
	return s.forms.Update(ctx, f)
}

func (s *FormsService) Delete(ctx context.Context, id int) error {
	return s.forms.Delete(ctx, id)
}

func (s *FormsService) Submissions(ctx context.Context, formID int) ([]models.FormSubmission, error) {
	return s.forms.ListSubmissions(ctx, formID)
}

// Submit records a response against the named active form, keeping the
// submitter's address and user agent for the admin view.
func (s *FormsService) Submit(ctx context.Context, name, data, ip, userAgent string) (int, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return 0, errInvalidPayload
	}

	form, err := s.forms.GetActiveByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if form == nil {
		return 0, ErrFormNotFound
	}

	return s.forms.CreateSubmission(ctx, models.FormSubmission{
		FormID:    form.ID,
		Data:      data,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

func normalizeForm(f *models.Form) error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return errEmptyFormName
	}
	var fields []any
	if err := json.Unmarshal([]byte(f.Fields), &fields); err != nil {
		return errInvalidFields
	}
	return nil
}
