package handlers

import (
	"net/http"

	"school_cms/internal/models"

	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type postRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Images   []string `json:"images"`
	Category string   `json:"category" binding:"required"`
	Active   *bool    `json:"active"`
}

// @Summary      Active news
// @Tags         content
// @Produce      json
// @Success      200  {array}  models.News
// @Router       /api/news [get]
func (h *Handler) getNews(c *gin.Context) {
	items, err := h.services.ActiveNews(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch news", "news_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Active events
// @Tags         content
// @Produce      json
// @Success      200  {array}  models.Event
// @Router       /api/events [get]
func (h *Handler) getEvents(c *gin.Context) {
	items, err := h.services.ActiveEvents(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch events", "events_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Active testimonials
// @Tags         content
// @Produce      json
// @Success      200  {array}  models.Testimonial
// @Router       /api/testimonials [get]
func (h *Handler) getTestimonials(c *gin.Context) {
	items, err := h.services.ActiveTestimonials(c.Request.Context())
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch testimonials", "testimonials_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Submit contact form
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        body  body  contactRequest  true  "Contact details"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/contact [post]
func (h *Handler) submitContact(c *gin.Context) {
	var input contactRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid form data")
		return
	}

	_, err := h.services.SubmitContact(c.Request.Context(), models.Contact{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
	})
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "internal server error", "contact_submit_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "contact form submitted successfully"})
}

// @Summary      Published posts
// @Tags         content
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Success      200  {array}  models.Post
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/posts [get]
func (h *Handler) getPosts(c *gin.Context) {
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		posts, err := h.services.PostsByCategory(ctx, category)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	posts, err := h.services.ActivePosts(ctx)
	if err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "failed to fetch posts", "posts_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      Create post
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  postRequest  true  "Post payload"
// @Success      200   {object}  map[string]interface{}  "success, id"
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]interface{}
// @Router       /api/admin/posts [post]
// @Security     BearerAuth
func (h *Handler) createPost(c *gin.Context) {
	var input postRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	ident, _ := identityFrom(c)

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	id, err := h.services.CreatePost(c.Request.Context(), models.Post{
		Title:    input.Title,
		Content:  input.Content,
		Images:   input.Images,
		Category: input.Category,
		Active:   active,
	}, ident.ID)
	if err != nil {
		// Validation failures dominate here; store errors are logged either way.
		if h.log != nil {
			h.log.Errorw("post_create_failed", "err", err, "title", input.Title)
		}
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
