package models

import "time"

// Meeting statuses. Nothing in the exposed API transitions a meeting
// to cancelled yet; the conflict queries already filter on confirmed
// so a future cancellation flow frees the slot automatically.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// TimeSlots is the fixed set of daily times eligible for booking.
var TimeSlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

// ValidTimeSlot reports whether slot is one of the bookable times.
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Meeting represents a row in the PostgreSQL meetings table.
type Meeting struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Date      string    `json:"date"`     // YYYY-MM-DD
	TimeSlot  string    `json:"timeSlot"` // HH:MM, from TimeSlots
	Topic     string    `json:"topic"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeetingWithUser joins a meeting with its owner's public fields.
type MeetingWithUser struct {
	Meeting
	User User `json:"user"`
}

// BookMeetingRequest is the JSON body for POST /api/meetings.
type BookMeetingRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Topic    string `json:"topic"`
	Notes    string `json:"notes"`
}

// BookedSlotsResponse is the JSON body for GET /api/meetings/date/{date}.
type BookedSlotsResponse struct {
	BookedSlots []string `json:"bookedSlots"`
}
