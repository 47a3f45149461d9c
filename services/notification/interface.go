package notification

import (
	"context"
	"time"

	"github.com/Happyesss/careerlive---alpha/models"
)

// Dispatcher sends booking lifecycle notifications. Emails are rendered at
// dispatch time and handed to the delivery queue, so transient SMTP failures
// retry without touching the booking store.
type Dispatcher interface {
	// BookingRequested notifies the mentor of a new pending request, with
	// single-use confirm and decline action links.
	BookingRequested(ctx context.Context, booking *models.Booking, mentor, mentee *models.User, confirmURL, declineURL string) error

	// MeetingScheduled notifies both parties that the session is confirmed
	// and where to join it.
	MeetingScheduled(ctx context.Context, booking *models.Booking, mentor, mentee *models.User) error

	// BookingDeclined notifies the mentee that the mentor declined.
	BookingDeclined(ctx context.Context, booking *models.Booking, mentor, mentee *models.User) error

	// ScheduleReminder enqueues a session reminder to fire at the given time.
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}
