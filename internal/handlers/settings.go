package handlers

import (
	"net/http"

	"school_cms/internal/models"

	"github.com/gin-gonic/gin"
)

type settingRequest struct {
	Key      string `json:"key" binding:"required"`
	Value    string `json:"value"`
	Category string `json:"category" binding:"required"`
}

// @Summary      Site settings
// @Tags         settings
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Success      200  {array}  models.SiteSetting
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		settings, err := h.services.Settings.ByCategory(ctx, category)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, settings)
		return
	}

	settings, err := h.services.Settings.All(ctx)
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch settings", "settings_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary      Update site settings
// @Description  Upserts a batch of settings; the whole batch is validated first.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  []settingRequest  true  "Settings to upsert"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/admin/settings [put]
// @Security     BearerAuth
func (h *Handler) updateSettings(c *gin.Context) {
	var input []settingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if len(input) == 0 {
		fail(c, http.StatusBadRequest, "no settings provided")
		return
	}

	settings := make([]models.SiteSetting, 0, len(input))
	for _, s := range input {
		settings = append(settings, models.SiteSetting{
			Key:      s.Key,
			Value:    s.Value,
			Category: s.Category,
		})
	}

	if err := h.services.Settings.Update(c.Request.Context(), settings); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
