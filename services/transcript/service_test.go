package transcript

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Happyesss/careerlive---alpha/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// memBookingRepo is the minimal in-memory store the transcript flow needs.
type memBookingRepo struct {
	bookings map[string]*models.Booking
}

func (m *memBookingRepo) Create(ctx context.Context, b *models.Booking) error { return nil }

func (m *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (m *memBookingRepo) GetByMeetingLink(ctx context.Context, link string) (*models.Booking, error) {
	for _, b := range m.bookings {
		if b.MeetingLink == link {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memBookingRepo) ListByMeetingLinks(ctx context.Context, links []string) ([]models.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) ListByMentee(ctx context.Context, menteeID string) ([]models.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) ListConfirmedFor(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string, set bson.M) (*models.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) UpdateFields(ctx context.Context, id string, set bson.M) error {
	return nil
}

func (m *memBookingRepo) AttachTranscript(ctx context.Context, id, text string, pdf []byte) error {
	b, ok := m.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.TranscriptText = text
	b.TranscriptPDF = pdf
	return nil
}

// cannedTranscriber returns a fixed transcript.
type cannedTranscriber struct {
	text string
}

func (c *cannedTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	return c.text, nil
}

func newTestService(bookings map[string]*models.Booking) (*DefaultTranscriptService, *memBookingRepo) {
	repo := &memBookingRepo{bookings: bookings}
	svc := NewDefaultTranscriptService(repo, &cannedTranscriber{text: "hello from the session"}, NewPlainPDFRenderer())
	return svc, repo
}

func seededBooking() *models.Booking {
	return &models.Booking{
		ID:                "booking-1",
		MentorID:          "mentor-1",
		MenteeID:          "mentee-1",
		Status:            models.BookingStatusConfirmed,
		ScheduledDateTime: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		MeetingLink:       "https://app.test/meeting/room-1",
	}
}

func TestTranscribeAndBindByBookingID(t *testing.T) {
	svc, repo := newTestService(map[string]*models.Booking{"booking-1": seededBooking()})
	ctx := context.Background()

	booking, text, err := svc.TranscribeAndBind(ctx, "mentee-1",
		BindInput{BookingID: "booking-1"}, []byte("audio"), "en-US")
	require.NoError(t, err)
	require.Equal(t, "booking-1", booking.ID)
	require.Equal(t, "hello from the session", text)

	stored := repo.bookings["booking-1"]
	require.Equal(t, "hello from the session", stored.TranscriptText)
	require.True(t, strings.HasPrefix(string(stored.TranscriptPDF), "%PDF-1.4"))
}

func TestTranscribeAndBindFallsBackToMeetingLink(t *testing.T) {
	svc, repo := newTestService(map[string]*models.Booking{"booking-1": seededBooking()})
	ctx := context.Background()

	booking, _, err := svc.TranscribeAndBind(ctx, "mentor-1",
		BindInput{MeetingLink: "https://app.test/meeting/room-1"}, []byte("audio"), "")
	require.NoError(t, err)
	require.Equal(t, "booking-1", booking.ID)
	require.NotEmpty(t, repo.bookings["booking-1"].TranscriptText)
}

func TestTranscribeAndBindUnresolvedRecording(t *testing.T) {
	svc, _ := newTestService(map[string]*models.Booking{})

	_, _, err := svc.TranscribeAndBind(context.Background(), "mentee-1",
		BindInput{BookingID: "ghost", MeetingLink: "https://app.test/meeting/ghost"}, []byte("audio"), "")
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTranscribeAndBindPartyCheck(t *testing.T) {
	svc, _ := newTestService(map[string]*models.Booking{"booking-1": seededBooking()})

	_, _, err := svc.TranscribeAndBind(context.Background(), "stranger",
		BindInput{BookingID: "booking-1"}, []byte("audio"), "")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTranscribeAndBindRejectsEmptyAudio(t *testing.T) {
	svc, _ := newTestService(map[string]*models.Booking{"booking-1": seededBooking()})

	_, _, err := svc.TranscribeAndBind(context.Background(), "mentee-1",
		BindInput{BookingID: "booking-1"}, nil, "")
	require.ErrorIs(t, err, ErrEmptyAudio)
}

func TestTranscriptPDFAccess(t *testing.T) {
	b := seededBooking()
	b.TranscriptPDF = []byte("%PDF-1.4 test")
	svc, _ := newTestService(map[string]*models.Booking{"booking-1": b})
	ctx := context.Background()

	pdf, err := svc.TranscriptPDF(ctx, "booking-1", "mentor-1")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	_, err = svc.TranscriptPDF(ctx, "booking-1", "stranger")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.TranscriptPDF(ctx, "missing", "mentor-1")
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTranscriptPDFMissingArtifact(t *testing.T) {
	svc, _ := newTestService(map[string]*models.Booking{"booking-1": seededBooking()})

	_, err := svc.TranscriptPDF(context.Background(), "booking-1", "mentee-1")
	require.ErrorIs(t, err, ErrNoTranscript)
}
