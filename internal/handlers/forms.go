package handlers

import (
	"errors"
	"io"
	"net/http"

	"school_cms/internal/models"
	"school_cms/internal/service"

	"github.com/gin-gonic/gin"
)

// Submitted form payloads are small; anything bigger is rejected.
const maxSubmissionBytes = 64 << 10 // 64 KB

type formRequest struct {
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Fields      string `json:"fields" binding:"required"`
	IsActive    *bool  `json:"is_active"`
}

func (r formRequest) toModel(id int) models.Form {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return models.Form{
		ID:          id,
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		Fields:      r.Fields,
		IsActive:    active,
	}
}

// @Summary      Active form by name
// @Tags         forms
// @Produce      json
// @Param        name  path  string  true  "Form name"
// @Success      200   {object}  models.Form
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/forms/{name} [get]
func (h *Handler) getForm(c *gin.Context) {
	form, err := h.services.Forms.GetActiveByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch form", "form_get_failed", err, "name", c.Param("name"))
		return
	}
	if form == nil {
		fail(c, http.StatusNotFound, "form not found")
		return
	}
	c.JSON(http.StatusOK, form)
}

// @Summary      Submit a form response
// @Description  Body is the raw submitted field data as a JSON object.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Form name"
// @Success      200   {object}  map[string]interface{}  "success, id"
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/forms/{name}/submissions [post]
func (h *Handler) submitForm(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSubmissionBytes))
	if err != nil {
		fail(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	id, err := h.services.Forms.Submit(c.Request.Context(), c.Param("name"), string(raw), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			fail(c, http.StatusNotFound, "form not found")
			return
		}
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// @Summary      All forms
// @Tags         admin
// @Produce      json
// @Success      200  {array}  models.Form
// @Router       /api/admin/forms [get]
// @Security     BearerAuth
func (h *Handler) listForms(c *gin.Context) {
	forms, err := h.services.Forms.List(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch forms", "forms_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// @Summary      Create form
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  formRequest  true  "Form payload"
// @Success      200   {object}  map[string]interface{}  "success, id"
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/forms [post]
// @Security     BearerAuth
func (h *Handler) createForm(c *gin.Context) {
	var input formRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	id, err := h.services.Forms.Create(c.Request.Context(), input.toModel(0))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// @Summary      Update form
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Form id"
// @Param        body  body  formRequest  true  "Form payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/forms/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input formRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.services.Forms.Update(c.Request.Context(), input.toModel(id)); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Delete form
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Form id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/forms/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.services.Forms.Delete(c.Request.Context(), id); err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to delete form", "form_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Form submissions
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Form id"
// @Success      200  {array}  models.FormSubmission
// @Router       /api/admin/forms/{id}/submissions [get]
// @Security     BearerAuth
func (h *Handler) listFormSubmissions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	subs, err := h.services.Forms.Submissions(c.Request.Context(), id)
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch submissions", "submissions_list_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, subs)
}
