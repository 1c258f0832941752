package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"school_cms/internal/models"
	"school_cms/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL = 24 * time.Hour
	bcryptCost = 10

	// 32 random bytes -> 64 hex chars; tokens must survive brute-force
	// guessing for the whole session lifetime.
	sessionIDBytes = 32
)

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so responses cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("invalid or expired session")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidRole        = errors.New("role must be \"admin\" or \"user\"")
	ErrPasswordEmpty      = errors.New("password is empty")
)

// AuthService handles credentials and opaque bearer sessions.
type AuthService struct {
	users    repository.Users
	sessions repository.Sessions
}

func NewAuthService(users repository.Users, sessions repository.Sessions) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login validates credentials and issues a new 24h session.
// The returned token is the session id itself; it carries no structure.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.Identity, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		return "", models.Identity{}, err
	}
	if u == nil {
		return "", models.Identity{}, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", models.Identity{}, ErrInvalidCredentials
	}

	id, err := newSessionID()
	if err != nil {
		return "", models.Identity{}, fmt.Errorf("generate session id: %w", err)
	}

	sess := models.Session{
		ID:        id,
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", models.Identity{}, err
	}

	return id, identityOf(u), nil
}

// Logout revokes the session. Deleting an absent token is not an error;
// the end state (token invalid) is the same either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to an identity.
// Expired sessions are indistinguishable from absent ones, and a session
// whose user no longer exists is treated as absent too. Expiry is never
// extended here; sessions do not slide.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return models.Identity{}, err
	}
	if sess == nil || sess.Expired(time.Now().UTC()) {
		return models.Identity{}, ErrUnauthenticated
	}

	u, err := s.users.GetByID(sess.UserID)
	if err != nil {
		return models.Identity{}, err
	}
	if u == nil {
		return models.Identity{}, ErrUnauthenticated
	}

	return identityOf(u), nil
}

// CreateUser hashes the password and provisions a new user.
func (s *AuthService) CreateUser(username, password, role string) (int, error) {
	if !models.ValidRole(role) {
		return 0, ErrInvalidRole
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	return s.users.Create(username, hash, role)
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *AuthService) EnsureAdmin(username, password string) error {
	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.CreateUser(username, password, models.RoleAdmin)
	return err
}

func identityOf(u *models.User) models.Identity {
	return models.Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrPasswordEmpty
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash. A malformed stored hash verifies
// as a mismatch rather than an internal failure.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: generate an unguessable session id from the CSPRNG.
func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
