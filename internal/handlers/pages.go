package handlers

import (
	"net/http"
	"strconv"

	"school_cms/internal/models"

	"github.com/gin-gonic/gin"
)

type pageRequest struct {
	Title           string `json:"title" binding:"required"`
	Slug            string `json:"slug" binding:"required"`
	Content         string `json:"content"`
	Layout          string `json:"layout"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	IsPublished     *bool  `json:"is_published"`
	Order           int    `json:"order"`
}

type componentRequest struct {
	PageID        int    `json:"page_id"`
	ComponentType string `json:"component_type" binding:"required"`
	ComponentData string `json:"component_data" binding:"required"`
	Order         int    `json:"order"`
	IsVisible     *bool  `json:"is_visible"`
}

// parseIDParam reads a positive integer path parameter or writes a 400.
func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

func (p pageRequest) toModel(id int) models.Page {
	published := true
	if p.IsPublished != nil {
		published = *p.IsPublished
	}
	return models.Page{
		ID:              id,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Layout:          p.Layout,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		IsPublished:     published,
		Order:           p.Order,
	}
}

func (r componentRequest) toModel(id int) models.PageComponent {
	visible := true
	if r.IsVisible != nil {
		visible = *r.IsVisible
	}
	return models.PageComponent{
		ID:            id,
		PageID:        r.PageID,
		ComponentType: r.ComponentType,
		ComponentData: r.ComponentData,
		Order:         r.Order,
		IsVisible:     visible,
	}
}

// @Summary      Published pages
// @Tags         pages
// @Produce      json
// @Success      200  {array}  models.Page
// @Router       /api/pages [get]
func (h *Handler) getPublishedPages(c *gin.Context) {
	pages, err := h.services.Pages.ListPublished(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch pages", "pages_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, pages)
}

// @Summary      Page by slug
// @Tags         pages
// @Produce      json
// @Param        slug  path  string  true  "Page slug"
// @Success      200   {object}  models.Page
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/pages/{slug} [get]
func (h *Handler) getPageBySlug(c *gin.Context) {
	page, err := h.services.Pages.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch page", "page_get_failed", err, "slug", c.Param("slug"))
		return
	}
	if page == nil || !page.IsPublished {
		// Unpublished pages are indistinguishable from absent ones here.
		fail(c, http.StatusNotFound, "page not found")
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Components of a published page
// @Tags         pages
// @Produce      json
// @Param        slug  path  string  true  "Page slug"
// @Success      200   {array}  models.PageComponent
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/pages/{slug}/components [get]
func (h *Handler) getPageComponentsBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	page, err := h.services.Pages.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch page", "page_get_failed", err, "slug", c.Param("slug"))
		return
	}
	if page == nil || !page.IsPublished {
		fail(c, http.StatusNotFound, "page not found")
		return
	}
	comps, err := h.services.Pages.ListComponents(ctx, page.ID)
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch components", "components_list_failed", err, "slug", c.Param("slug"))
		return
	}
	c.JSON(http.StatusOK, comps)
}

// @Summary      All pages (drafts included)
// @Tags         admin
// @Produce      json
// @Success      200  {array}  models.Page
// @Router       /api/admin/pages [get]
// @Security     BearerAuth
func (h *Handler) listPages(c *gin.Context) {
	pages, err := h.services.Pages.List(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch pages", "pages_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, pages)
}

// @Summary      Create page
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  pageRequest  true  "Page payload"
// @Success      200   {object}  map[string]interface{}  "success, id"
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/pages [post]
// @Security     BearerAuth
func (h *Handler) createPage(c *gin.Context) {
	var input pageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	id, err := h.services.Pages.Create(c.Request.Context(), input.toModel(0))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// @Summary      Update page
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Page id"
// @Param        body  body  pageRequest  true  "Page payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/pages/{id} [put]
// @Security     BearerAuth
func (h *Handler) updatePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input pageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.services.Pages.Update(c.Request.Context(), input.toModel(id)); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Delete page
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Page id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/pages/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.services.Pages.Delete(c.Request.Context(), id); err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to delete page", "page_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Components of a page
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Page id"
// @Success      200  {array}  models.PageComponent
// @Router       /api/admin/pages/{id}/components [get]
// @Security     BearerAuth
func (h *Handler) listPageComponents(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	comps, err := h.services.Pages.ListComponents(c.Request.Context(), id)
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch components", "components_list_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, comps)
}

// @Summary      Create page component
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  componentRequest  true  "Component payload"
// @Success      200   {object}  map[string]interface{}  "success, id"
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/components [post]
// @Security     BearerAuth
func (h *Handler) createComponent(c *gin.Context) {
	var input componentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if input.PageID <= 0 {
		fail(c, http.StatusBadRequest, "page_id is required")
		return
	}
	id, err := h.services.Pages.CreateComponent(c.Request.Context(), input.toModel(0))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// @Summary      Update page component
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "Component id"
// @Param        body  body  componentRequest  true  "Component payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/components/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateComponent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input componentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.services.Pages.UpdateComponent(c.Request.Context(), input.toModel(id)); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Delete page component
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Component id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/components/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteComponent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.services.Pages.DeleteComponent(c.Request.Context(), id); err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to delete component", "component_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
