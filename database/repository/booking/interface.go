package bookingRepo

import (
	"context"

	"github.com/Happyesss/careerlive---alpha/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository is the single source of truth for booking records.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// GetByMeetingLink returns (nil, nil) when no booking carries the link.
	GetByMeetingLink(ctx context.Context, meetingLink string) (*models.Booking, error)
	ListByMeetingLinks(ctx context.Context, meetingLinks []string) ([]models.Booking, error)

	// Role-scoped listings, newest created first.
	ListByMentor(ctx context.Context, mentorID string) ([]models.Booking, error)
	ListByMentee(ctx context.Context, menteeID string) ([]models.Booking, error)

	// ListConfirmedFor returns confirmed bookings where the user is either
	// party, used by the meetings view.
	ListConfirmedFor(ctx context.Context, userID string) ([]models.Booking, error)

	// TransitionStatus atomically advances the booking's status from
	// fromStatus to toStatus, applying the extra $set fields in the same
	// update. It returns (nil, nil) when no booking matched the
	// (id, fromStatus) pair, which callers must disambiguate into not-found
	// versus already-processed.
	TransitionStatus(ctx context.Context, id, fromStatus, toStatus string, set bson.M) (*models.Booking, error)

	// UpdateFields applies a partial $set update to a booking.
	UpdateFields(ctx context.Context, id string, set bson.M) error

	// AttachTranscript binds the session artifacts to the booking.
	AttachTranscript(ctx context.Context, id, transcriptText string, transcriptPDF []byte) error
}
