package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/commhendrix/academic-portfolio/internal/middleware"
	"github.com/commhendrix/academic-portfolio/internal/models"
	"github.com/commhendrix/academic-portfolio/internal/store"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// MeetingStore defines the interface for meeting persistence.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, m *models.Meeting) error
	GetBookedTimeSlots(ctx context.Context, date string) ([]string, error)
	ListMeetingsByUser(ctx context.Context, userID int) ([]models.MeetingWithUser, error)
	ListAllMeetings(ctx context.Context) ([]models.MeetingWithUser, error)
}

// Handler holds meeting-booking HTTP handlers.
type Handler struct {
	meetings MeetingStore
}

func NewHandler(meetings MeetingStore) *Handler {
	return &Handler{meetings: meetings}
}

// List returns the caller's meetings, or every user's meetings when the
// caller is the administrator.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var (
		list []models.MeetingWithUser
		err  error
	)
	if user.Role == models.RoleAdmin {
		list, err = h.meetings.ListAllMeetings(r.Context())
	} else {
		list, err = h.meetings.ListMeetingsByUser(r.Context(), user.ID)
	}
	if err != nil {
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.MeetingWithUser{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Create books a slot for the caller. Validation failures and slot
// conflicts are both client errors; nothing is written on either.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req models.BookMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if msg := validate(&req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	m := &models.Meeting{
		UserID:   user.ID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Topic:    req.Topic,
		Notes:    req.Notes,
	}
	if err := h.meetings.CreateMeeting(r.Context(), m); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			http.Error(w, `{"error":"This time slot is already booked"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// BookedSlots returns the confirmed slots for a date. Public: it reveals
// availability only, never who booked or why.
func (h *Handler) BookedSlots(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	slots, err := h.meetings.GetBookedTimeSlots(r.Context(), date)
	if err != nil {
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, models.BookedSlotsResponse{BookedSlots: slots})
}

func validate(req *models.BookMeetingRequest) string {
	if req.Date == "" {
		return "date is required"
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	if !models.ValidTimeSlot(req.TimeSlot) {
		return "invalid time slot"
	}
	if req.Topic == "" {
		return "topic is required"
	}
	return ""
}
