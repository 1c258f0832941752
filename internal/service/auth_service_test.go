package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"school_cms/internal/models"
)

// mockUsersRepo is a lightweight in-test mock for repository.Users.
type mockUsersRepo struct {
	CreateFn        func(username, passwordHash, role string) (int, error)
	GetByIDFn       func(id int) (*models.User, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
		role     string
	}
}

func (m *mockUsersRepo) Create(username, passwordHash, role string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
		role     string
	}{username, passwordHash, role})
	return m.CreateFn(username, passwordHash, role)
}

func (m *mockUsersRepo) GetByID(id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func (m *mockUsersRepo) GetByUsername(username string) (*models.User, error) {
	return m.GetByUsernameFn(username)
}

// mockSessionsRepo is an in-memory repository.Sessions.
type mockSessionsRepo struct {
	store map[string]models.Session

	createErr error
	getErr    error
	deleteErr error
}

func newMockSessionsRepo() *mockSessionsRepo {
	return &mockSessionsRepo{store: make(map[string]models.Session)}
}

func (m *mockSessionsRepo) Create(ctx context.Context, s models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.store[s.ID] = s
	return nil
}

func (m *mockSessionsRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSessionsRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.store, id)
	return nil
}

func (m *mockSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.store {
		if s.Expired(now) {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

func userWithPassword(t *testing.T, id int, username, password, role string) *models.User {
	t.Helper()
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	return &models.User{ID: id, Username: username, PasswordHash: hash, Role: role}
}

// --- CreateUser tests ---

func TestAuthService_CreateUser_HashesPasswordAndCallsRepo(t *testing.T) {
	users := &mockUsersRepo{
		CreateFn:        func(username, hash, role string) (int, error) { return 42, nil },
		GetByUsernameFn: func(username string) (*models.User, error) { return nil, nil },
	}
	svc := NewAuthService(users, newMockSessionsRepo())

	id, err := svc.CreateUser("alice", "s3cr3t", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(users.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(users.createCalls))
	}
	call := users.createCalls[0]
	if call.username != "alice" || call.role != models.RoleUser {
		t.Errorf("unexpected Create args: %+v", call)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_CreateUser_EmptyPassword(t *testing.T) {
	users := &mockUsersRepo{
		CreateFn: func(username, hash, role string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
		GetByUsernameFn: func(username string) (*models.User, error) { return nil, nil },
	}
	svc := NewAuthService(users, newMockSessionsRepo())

	_, err := svc.CreateUser("bob", "   ", models.RoleUser)
	if !errors.Is(err, ErrPasswordEmpty) {
		t.Fatalf("expected ErrPasswordEmpty, got: %v", err)
	}
}

func TestAuthService_CreateUser_InvalidRole(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, newMockSessionsRepo())

	_, err := svc.CreateUser("bob", "pw", "superuser")
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got: %v", err)
	}
}

func TestAuthService_CreateUser_DuplicateUsername(t *testing.T) {
	users := &mockUsersRepo{
		CreateFn: func(username, hash, role string) (int, error) {
			t.Fatal("Create should not be called for a taken username")
			return 0, nil
		},
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
	}
	svc := NewAuthService(users, newMockSessionsRepo())

	_, err := svc.CreateUser("alice", "pw", models.RoleUser)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got: %v", err)
	}
}

// --- Login tests ---

func TestAuthService_Login_IssuesOpaqueSession(t *testing.T) {
	u := userWithPassword(t, 7, "diana", "letmein", models.RoleAdmin)
	users := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) { return u, nil },
	}
	sessions := newMockSessionsRepo()
	svc := NewAuthService(users, sessions)

	before := time.Now().UTC()
	token, ident, err := svc.Login(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if ident.ID != 7 || ident.Username != "diana" || ident.Role != models.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", ident)
	}

	// Token is the session id: 32 random bytes hex encoded, no structure.
	if len(token) != sessionIDBytes*2 {
		t.Fatalf("token length: got %d, want %d", len(token), sessionIDBytes*2)
	}

	sess, ok := sessions.store[token]
	if !ok {
		t.Fatal("session row not stored under the token")
	}
	if sess.UserID != 7 {
		t.Fatalf("session user: got %d, want 7", sess.UserID)
	}
	ttl := sess.ExpiresAt.Sub(before)
	if ttl < sessionTTL-time.Minute || ttl > sessionTTL+time.Minute {
		t.Fatalf("session TTL %v not close to %v", ttl, sessionTTL)
	}
}

func TestAuthService_Login_TokensAreUnique(t *testing.T) {
	u := userWithPassword(t, 1, "eve", "pw", models.RoleUser)
	users := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) { return u, nil },
	}
	sessions := newMockSessionsRepo()
	svc := NewAuthService(users, sessions)

	t1, _, err := svc.Login(context.Background(), "eve", "pw")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	t2, _, err := svc.Login(context.Background(), "eve", "pw")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if t1 == t2 {
		t.Fatal("two logins produced the same token")
	}
	// Both sessions stay valid; logins do not revoke each other.
	if len(sessions.store) != 2 {
		t.Fatalf("expected 2 live sessions, got %d", len(sessions.store))
	}
}

func TestAuthService_Login_UnknownUserAndWrongPasswordCollapse(t *testing.T) {
	u := userWithPassword(t, 1, "eve", "correct", models.RoleUser)
	users := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username == "eve" {
				return u, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(users, newMockSessionsRepo())

	_, _, errUnknown := svc.Login(context.Background(), "ghost", "whatever")
	_, _, errWrong := svc.Login(context.Background(), "eve", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	// The two failures must be indistinguishable to the caller.
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("errors differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	users := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := NewAuthService(users, newMockSessionsRepo())

	_, _, err := svc.Login(context.Background(), "john", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected plain repo error, got: %v", err)
	}
}

// --- Authenticate tests ---

func TestAuthService_Authenticate_ValidSession(t *testing.T) {
	u := userWithPassword(t, 3, "carol", "pw", models.RoleAdmin)
	users := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			if id != 3 {
				t.Fatalf("expected lookup of user 3, got %d", id)
			}
			return u, nil
		},
	}
	sessions := newMockSessionsRepo()
	sessions.store["tok"] = models.Session{ID: "tok", UserID: 3, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	svc := NewAuthService(users, sessions)

	ident, err := svc.Authenticate(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if ident.ID != 3 || ident.Role != models.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestAuthService_Authenticate_UnknownToken(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, newMockSessionsRepo())

	_, err := svc.Authenticate(context.Background(), "no-such-token")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestAuthService_Authenticate_ExpiredRowStillPresent(t *testing.T) {
	// The row exists in the store; expiry is enforced at lookup, not by
	// the background reaper.
	users := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			t.Fatal("user lookup should not happen for an expired session")
			return nil, nil
		},
	}
	sessions := newMockSessionsRepo()
	sessions.store["old"] = models.Session{ID: "old", UserID: 3, ExpiresAt: time.Now().UTC().Add(-time.Second)}
	svc := NewAuthService(users, sessions)

	_, err := svc.Authenticate(context.Background(), "old")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestAuthService_Authenticate_ExpiryBoundary(t *testing.T) {
	sessions := newMockSessionsRepo()
	sessions.store["edge"] = models.Session{ID: "edge", UserID: 1, ExpiresAt: time.Now().UTC().Add(-time.Millisecond)}
	svc := NewAuthService(&mockUsersRepo{}, sessions)

	if _, err := svc.Authenticate(context.Background(), "edge"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated at expiry boundary, got: %v", err)
	}
}

func TestAuthService_Authenticate_OrphanedSession(t *testing.T) {
	users := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) { return nil, nil },
	}
	sessions := newMockSessionsRepo()
	sessions.store["orphan"] = models.Session{ID: "orphan", UserID: 99, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	svc := NewAuthService(users, sessions)

	_, err := svc.Authenticate(context.Background(), "orphan")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for orphaned session, got: %v", err)
	}
}

// --- Logout tests ---

func TestAuthService_Logout_Idempotent(t *testing.T) {
	sessions := newMockSessionsRepo()
	sessions.store["tok"] = models.Session{ID: "tok", UserID: 1, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	svc := NewAuthService(&mockUsersRepo{}, sessions)

	if err := svc.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := svc.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("second logout should be a no-op, got: %v", err)
	}
	if len(sessions.store) != 0 {
		t.Fatalf("session not removed, %d left", len(sessions.store))
	}
}

// --- EnsureAdmin tests ---

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("creates the account when missing", func(t *testing.T) {
		users := &mockUsersRepo{
			CreateFn:        func(username, hash, role string) (int, error) { return 1, nil },
			GetByUsernameFn: func(username string) (*models.User, error) { return nil, nil },
		}
		svc := NewAuthService(users, newMockSessionsRepo())

		if err := svc.EnsureAdmin("admin", "admin123"); err != nil {
			t.Fatalf("EnsureAdmin returned error: %v", err)
		}
		if len(users.createCalls) != 1 || users.createCalls[0].role != models.RoleAdmin {
			t.Fatalf("unexpected Create calls: %+v", users.createCalls)
		}
	})

	t.Run("keeps the existing account", func(t *testing.T) {
		users := &mockUsersRepo{
			CreateFn: func(username, hash, role string) (int, error) {
				t.Fatal("Create should not be called when the admin exists")
				return 0, nil
			},
			GetByUsernameFn: func(username string) (*models.User, error) {
				return &models.User{ID: 1, Username: username, Role: models.RoleAdmin}, nil
			},
		}
		svc := NewAuthService(users, newMockSessionsRepo())

		if err := svc.EnsureAdmin("admin", "admin123"); err != nil {
			t.Fatalf("EnsureAdmin returned error: %v", err)
		}
	})
}

// --- Full session lifecycle ---

func TestAuthService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	u := userWithPassword(t, 5, "admin", "admin123", models.RoleAdmin)
	users := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) { return u, nil },
		GetByIDFn:       func(id int) (*models.User, error) { return u, nil },
	}
	sessions := newMockSessionsRepo()
	svc := NewAuthService(users, sessions)

	token, _, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	ident, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate after login: %v", err)
	}
	if ident.ID != 5 {
		t.Fatalf("unexpected identity: %+v", ident)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got: %v", err)
	}

	// Logging out again stays a no-op.
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
}
