package booking

import (
	"context"
	"time"

	"github.com/Happyesss/careerlive---alpha/models"
)

// CreateInput carries the mentee-supplied fields of a new session request.
type CreateInput struct {
	MentorID          string    `json:"mentorId" binding:"required"`
	ScheduledDateTime time.Time `json:"scheduledDateTime" binding:"required"`
	Duration          int       `json:"duration"`
	Description       string    `json:"description"`
}

// ScheduleInput carries the mentor-supplied scheduling fields. With a
// BookingID it targets an existing request; without one a new booking is
// created directly in confirmed for the given mentee.
type ScheduleInput struct {
	BookingID         string    `json:"bookingId"`
	MenteeID          string    `json:"menteeId"`
	ScheduledDateTime time.Time `json:"scheduledDateTime"`
	Duration          int       `json:"duration"`
}

// BookingService drives the booking lifecycle: request, confirm or decline,
// meeting provisioning and completion.
type BookingService interface {
	// CreateRequest validates and stores a pending booking, then emails the
	// mentor confirm and decline action links.
	CreateRequest(ctx context.Context, menteeID string, in CreateInput) (*models.Booking, error)

	// ConfirmWithToken redeems a confirm action link for the booking: it
	// provisions the meeting, flips the booking to confirmed and notifies
	// both parties. The token must be scoped to the booking id.
	ConfirmWithToken(ctx context.Context, id, token string) (*models.Booking, error)

	// DeclineWithToken redeems a decline action link and notifies the mentee.
	DeclineWithToken(ctx context.Context, id, token string) (*models.Booking, error)

	// UpdateStatus performs an authenticated lifecycle transition on behalf
	// of the booking's mentor.
	UpdateStatus(ctx context.Context, id, actorID, toStatus string) (*models.Booking, error)

	// ScheduleMeeting is the mentor-driven scheduling entry point. It
	// confirms a pending booking (overwriting time and duration when
	// supplied), replaces the meeting on an already-confirmed one, or
	// creates a new confirmed booking when no id is given.
	ScheduleMeeting(ctx context.Context, actorID string, in ScheduleInput) (*models.Booking, error)

	// Get returns the booking if the actor is one of its parties.
	Get(ctx context.Context, id, actorID string) (*models.Booking, error)

	// ListFor returns the user's bookings scoped by their role.
	ListFor(ctx context.Context, userID, role string) ([]models.Booking, error)

	// GetByMeetingLink returns (nil, nil) when no booking carries the link.
	GetByMeetingLink(ctx context.Context, meetingLink string) (*models.Booking, error)
}
