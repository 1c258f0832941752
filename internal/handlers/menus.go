package handlers

import (
	"net/http"

	"school_cms/internal/models"

	"github.com/gin-gonic/gin"
)

type menuItemRequest struct {
	Title      string `json:"title" binding:"required"`
	URL        string `json:"url" binding:"required"`
	ParentID   *int   `json:"parent_id"`
	Order      int    `json:"order"`
	IsExternal bool   `json:"is_external"`
	IsVisible  *bool  `json:"is_visible"`
}

func (r menuItemRequest) toModel(id int) models.MenuItem {
	visible := true
	if r.IsVisible != nil {
		visible = *r.IsVisible
	}
	return models.MenuItem{
		ID:         id,
		Title:      r.Title,
		URL:        r.URL,
		ParentID:   r.ParentID,
		Order:      r.Order,
		IsExternal: r.IsExternal,
		IsVisible:  visible,
	}
}

// @Summary      Visible navigation items
// @Tags         menu
// @Produce      json
// @Success      200  {array}  models.MenuItem
// @Router       /api/menu [get]
func (h *Handler) getMenu(c *gin.Context) {
	items, err := h.services.Menu.ListVisible(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch menu", "menu_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      All navigation items
// @Tags         admin
// @Produce      json
// @Success      200  {array}  models.MenuItem
// @Router       /api/admin/menu [get]
// @Security     BearerAuth
func (h *Handler) listMenuItems(c *gin.Context) {
	items, err := h.services.Menu.List(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch menu", "menu_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Create navigation item
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  menuItemRequest  true  "Menu item payload"
// @Success      200   {object}  map[string]interface{}  "success, id"
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/menu [post]
// @Security     BearerAuth
func (h *Handler) createMenuItem(c *gin.Context) {
	var input menuItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	id, err := h.services.Menu.Create(c.Request.Context(), input.toModel(0))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// @Summary      Update navigation item
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "Menu item id"
// @Param        body  body  menuItemRequest  true  "Menu item payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/menu/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input menuItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.services.Menu.Update(c.Request.Context(), input.toModel(id)); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Delete navigation item
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Menu item id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/menu/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.services.Menu.Delete(c.Request.Context(), id); err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to delete menu item", "menu_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
