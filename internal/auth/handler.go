package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/commhendrix/academic-portfolio/internal/models"
	"github.com/commhendrix/academic-portfolio/internal/store"
)

// UserStore defines the interface for user persistence. Lookups return
// (nil, nil) when no row matches.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, hashedPw, role string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users    UserStore
	sessions SessionStore
	cookies  *CookieCodec
}

func NewHandler(users UserStore, sessions SessionStore, cookies *CookieCodec) *Handler {
	return &Handler{users: users, sessions: sessions, cookies: cookies}
}

// Register creates a new user with a generated temporary password and
// logs the caller in. The password is echoed in the response until email
// delivery exists.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" {
		http.Error(w, `{"error":"username and email are required"}`, http.StatusBadRequest)
		return
	}

	// Username first, then email, so the error names the colliding field.
	if existing, err := h.users.GetUserByIdentifier(r.Context(), req.Username); err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	} else if existing != nil {
		http.Error(w, `{"error":"Username already exists"}`, http.StatusBadRequest)
		return
	}
	if existing, err := h.users.GetUserByIdentifier(r.Context(), req.Email); err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	} else if existing != nil {
		http.Error(w, `{"error":"Email already exists"}`, http.StatusBadRequest)
		return
	}

	tempPassword := GenerateTemporaryPassword()
	hashed, err := HashPassword(tempPassword)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	// The pre-checks above race with concurrent registrations; the
	// table's unique constraints report the same collisions here.
	user, err := h.users.CreateUser(r.Context(), req.Username, req.Email, hashed, models.RoleUser)
	if errors.Is(err, store.ErrUsernameTaken) {
		http.Error(w, `{"error":"Username already exists"}`, http.StatusBadRequest)
		return
	}
	if errors.Is(err, store.ErrEmailTaken) {
		http.Error(w, `{"error":"Email already exists"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	sid, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		http.Error(w, `{"error":"session creation failed"}`, http.StatusInternalServerError)
		return
	}
	h.cookies.Set(w, sid)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.RegisterResponse{
		User:              *user,
		TemporaryPassword: tempPassword,
	})
}

// Login authenticates by username or email and creates a session. The
// failure response never says which of identifier/password was wrong.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByIdentifier(r.Context(), req.Identifier)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if user == nil || !CheckPassword(req.Password, user.Password) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}

	sid, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		http.Error(w, `{"error":"session creation failed"}`, http.StatusInternalServerError)
		return
	}
	h.cookies.Set(w, sid)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Logout destroys the current session. The cookie is cleared even when
// server-side teardown fails; that failure is still surfaced so the
// client knows the session may linger. A missing or invalid cookie is a
// no-op.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sid := h.cookies.Decode(r)
	h.cookies.Clear(w)

	if sid != "" {
		if err := h.sessions.Delete(r.Context(), sid); err != nil {
			log.Printf("session teardown: %v", err)
			http.Error(w, `{"error":"logout failed"}`, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"logged out"}`))
}

// Me returns the currently authenticated user resolved by the auth
// middleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// currentUser resolves the request's session to a user without ever
// creating one. Nil with nil error means unauthenticated.
func (h *Handler) currentUser(r *http.Request) (*models.User, error) {
	sid := h.cookies.Decode(r)
	if sid == "" {
		return nil, nil
	}
	userID, err := h.sessions.Get(r.Context(), sid)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, nil
	}
	return h.users.GetUserByID(r.Context(), userID)
}
