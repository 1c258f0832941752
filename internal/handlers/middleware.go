package handlers

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"school_cms/internal/models"
	"school_cms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Gin context keys set by the middleware chain.
const (
	identityKey  = "identity"
	tokenKey     = "token"
	requestIDKey = "requestId"
)

// Login attempts allowed per client IP: a burst of 5, refilling one
// attempt every 3 minutes (5 per 15-minute window).
const (
	loginBurst  = 5
	loginRefill = 5.0 / (15 * 60) // tokens per second
)

// requestID tags every request with an id that is echoed in the response
// and attached to log lines.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Writer.Header().Set("X-Request-ID", id)
	c.Next()
}

// authenticate gates a route behind a valid, unexpired session.
// On success the identity and the raw token are attached to the context.
// It never mutates the session; expiry does not slide.
func (h *Handler) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "message": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "message": "invalid Authorization header format",
		})
		return
	}

	ident, err := h.services.Authenticate(c.Request.Context(), parts[1])
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "invalid or expired session",
			})
			return
		}
		if h.log != nil {
			h.log.Errorw("authenticate_failed", "err", err, "requestId", c.GetString(requestIDKey))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false, "message": "internal server error",
		})
		return
	}

	c.Set(identityKey, ident)
	c.Set(tokenKey, parts[1])
	c.Next()
}

// requireAdmin restricts a route to admin identities. It must run after
// authenticate; it has no way to establish identity on its own.
func (h *Handler) requireAdmin(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok || ident.Role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false, "message": "admin access required",
		})
		return
	}
	c.Next()
}

// identityFrom returns the identity attached by authenticate.
func identityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	ident, ok := v.(models.Identity)
	return ident, ok
}

// loginLimiters tracks one token bucket per client IP.
type loginLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

var loginAttempts = &loginLimiters{limiters: make(map[string]*rate.Limiter)}

func (l *loginLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(loginRefill), loginBurst)
		l.limiters[ip] = lim
	}
	return lim.Allow()
}

// loginRateLimit slows brute-force attempts against the login endpoint.
func (h *Handler) loginRateLimit(c *gin.Context) {
	if !loginAttempts.allow(c.ClientIP()) {
		if h.log != nil {
			h.log.Infow("login_rate_limited", "ip", c.ClientIP())
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false, "message": "too many login attempts, please try again later",
		})
		return
	}
	c.Next()
}
