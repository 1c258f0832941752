package handlers

import (
	"errors"
	"net/http"

	"school_cms/internal/models"
	"school_cms/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// fail writes the uniform error body used across the API.
func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "message": msg})
}

// logAndFail logs the underlying error (never exposed) and writes a
// sanitized response.
func (h *Handler) logAndFail(c *gin.Context, code int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "requestId", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	fail(c, code, userMsg)
}

// @Summary      Log in
// @Description  Issues an opaque bearer token valid for 24 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "success, token, user"
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "username and password are required")
		return
	}

	token, user, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Unknown user and wrong password answer identically.
			if h.log != nil {
				h.log.Infow("login_rejected", "username", input.Username)
			}
			fail(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.logAndFail(c, http.StatusInternalServerError, "internal server error", "login_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// @Summary      Log out
// @Description  Revokes the caller's session. Idempotent.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	token := c.GetString(tokenKey)
	if err := h.services.Logout(c.Request.Context(), token); err != nil {
		h.logAndFail(c, http.StatusInternalServerError, "internal server error", "logout_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, user"
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid or expired session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": ident})
}

// @Summary      Create user
// @Description  Provisions a new account. Role defaults to "user".
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  createUserRequest  true  "New account"
// @Success      200   {object}  map[string]interface{}  "success, user"
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /api/admin/users [post]
// @Security     BearerAuth
func (h *Handler) createUser(c *gin.Context) {
	var input createUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "username and password are required")
		return
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}

	id, err := h.services.CreateUser(input.Username, input.Password, input.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			fail(c, http.StatusConflict, "username already exists")
		case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrPasswordEmpty):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			h.logAndFail(c, http.StatusInternalServerError, "internal server error", "create_user_failed", err, "username", input.Username)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": models.Identity{
			ID:       id,
			Username: input.Username,
			Role:     input.Role,
		},
	})
}
