package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commhendrix/academic-portfolio/internal/models"
	"github.com/commhendrix/academic-portfolio/internal/store"
)

// ── fakes ────────────────────────────────────────────────────────────

type fakeUsers struct {
	nextID int
	users  []*models.User
}

func (f *fakeUsers) CreateUser(_ context.Context, username, email, hashedPw, role string) (*models.User, error) {
	// mirror the table's unique constraints
	for _, u := range f.users {
		if u.Username == username {
			return nil, store.ErrUsernameTaken
		}
		if u.Email == email {
			return nil, store.ErrEmailTaken
		}
	}
	f.nextID++
	u := &models.User{
		ID:        f.nextID,
		Username:  username,
		Email:     email,
		Password:  hashedPw,
		Role:      role,
		CreatedAt: time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetUserByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakeSessions struct {
	next      int
	data      map[string]int
	deleteErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: map[string]int{}}
}

func (f *fakeSessions) Create(_ context.Context, userID int) (string, error) {
	f.next++
	sid := fmt.Sprintf("sid-%d", f.next)
	f.data[sid] = userID
	return sid, nil
}

func (f *fakeSessions) Get(_ context.Context, sessionID string) (int, error) {
	return f.data[sessionID], nil
}

func (f *fakeSessions) Delete(_ context.Context, sessionID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.data, sessionID)
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────

func newTestHandler() (*Handler, *fakeUsers, *fakeSessions) {
	users := &fakeUsers{}
	sessions := newFakeSessions()
	return NewHandler(users, sessions, NewCookieCodec("test-secret", false)), users, sessions
}

func postJSON(h http.HandlerFunc, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func register(t *testing.T, h *Handler, username, email string) models.RegisterResponse {
	t.Helper()
	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: username, Email: email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.RegisterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ── register ─────────────────────────────────────────────────────────

func TestRegister(t *testing.T) {
	h, _, sessions := newTestHandler()

	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "alice", Email: "alice@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.RegisterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.Len(t, resp.TemporaryPassword, 6)

	// registration logs the caller in
	c := sessionCookie(t, rec)
	assert.NotEmpty(t, sessions.data)
	assert.Contains(t, c.Value, ".")
}

func TestRegisterTemporaryPasswordWorks(t *testing.T) {
	h, _, _ := newTestHandler()
	resp := register(t, h, "alice", "alice@x.com")

	rec := postJSON(h.Login, "/api/login", models.LoginRequest{Identifier: "alice", Password: resp.TemporaryPassword})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRegisterDuplicate(t *testing.T) {
	h, _, _ := newTestHandler()
	register(t, h, "alice", "alice@x.com")

	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "alice", Email: "other@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists")

	rec = postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "other", Email: "alice@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
}

// blindUsers hides existing rows from lookups, so registration's
// pre-checks pass and the collision is only caught at insert time —
// the window two concurrent registrations race through.
type blindUsers struct {
	*fakeUsers
}

func (b *blindUsers) GetUserByIdentifier(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}

func TestRegisterDuplicateRace(t *testing.T) {
	users := &fakeUsers{}
	sessions := newFakeSessions()
	h := NewHandler(&blindUsers{users}, sessions, NewCookieCodec("test-secret", false))

	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "alice", Email: "alice@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "alice", Email: "other@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists")

	rec = postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "other", Email: "alice@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
}

func TestRegisterValidation(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "", Email: "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "a", Email: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── login / logout ───────────────────────────────────────────────────

func TestLoginByUsernameAndEmail(t *testing.T) {
	h, _, _ := newTestHandler()
	resp := register(t, h, "alice", "alice@x.com")

	for _, identifier := range []string{"alice", "alice@x.com"} {
		rec := postJSON(h.Login, "/api/login", models.LoginRequest{Identifier: identifier, Password: resp.TemporaryPassword})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var user models.User
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
		assert.Equal(t, "alice", user.Username)
		sessionCookie(t, rec)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	h, _, _ := newTestHandler()
	register(t, h, "alice", "alice@x.com")

	rec := postJSON(h.Login, "/api/login", models.LoginRequest{Identifier: "alice", Password: "000000"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")

	rec = postJSON(h.Login, "/api/login", models.LoginRequest{Identifier: "nobody", Password: "000000"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLogout(t *testing.T) {
	h, _, sessions := newTestHandler()
	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "alice", Email: "alice@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	c := sessionCookie(t, rec)

	rec = postJSON(h.Logout, "/api/logout", nil, c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sessions.data, "session must be destroyed")

	// cookie cleared
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestLogoutWithoutSession(t *testing.T) {
	h, _, _ := newTestHandler()
	rec := postJSON(h.Logout, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutTeardownError(t *testing.T) {
	h, _, sessions := newTestHandler()
	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "alice", Email: "alice@x.com"})
	c := sessionCookie(t, rec)

	sessions.deleteErr = errors.New("redis down")
	rec = postJSON(h.Logout, "/api/logout", nil, c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// the client must not be left holding the cookie
	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Equal(t, -1, cleared[0].MaxAge)
	assert.Empty(t, cleared[0].Value)
}

// ── current user ─────────────────────────────────────────────────────

func TestMe(t *testing.T) {
	h, _, _ := newTestHandler()
	rec := postJSON(h.Register, "/api/register", models.RegisterRequest{Username: "alice", Email: "alice@x.com"})
	c := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)
}

func TestMeUnauthenticated(t *testing.T) {
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a tampered cookie is unauthenticated, not an error
	req = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-1.bogus-signature"})
	rec = httptest.NewRecorder()
	h.Me(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ── admin bootstrap ──────────────────────────────────────────────────

func TestEnsureAdminExists(t *testing.T) {
	users := &fakeUsers{}
	ctx := context.Background()

	require.NoError(t, EnsureAdminExists(ctx, users))
	require.NoError(t, EnsureAdminExists(ctx, users), "bootstrap must be idempotent")

	require.Len(t, users.users, 1)
	admin := users.users[0]
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, CheckPassword("040313", admin.Password), "seed password must verify")
}
