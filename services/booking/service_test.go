package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Happyesss/careerlive---alpha/config"
	"github.com/Happyesss/careerlive---alpha/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory BookingRepository that mirrors the
// conditional-update semantics of the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) GetByMeetingLink(ctx context.Context, link string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.MeetingLink == link {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListByMeetingLinks(ctx context.Context, links []string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		for _, link := range links {
			if b.MeetingLink == link {
				out = append(out, *b)
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.MentorID == mentorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByMentee(ctx context.Context, menteeID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.MenteeID == menteeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListConfirmedFor(ctx context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingStatusConfirmed && (b.MentorID == userID || b.MenteeID == userID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string, set bson.M) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != fromStatus {
		return nil, nil
	}
	b.Status = toStatus
	b.UpdatedAt = time.Now()
	applySet(b, set)
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) UpdateFields(ctx context.Context, id string, set bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking with id %s not found", id)
	}
	b.UpdatedAt = time.Now()
	applySet(b, set)
	return nil
}

func (f *fakeBookingRepo) AttachTranscript(ctx context.Context, id, text string, pdf []byte) error {
	return f.UpdateFields(ctx, id, bson.M{"transcriptText": text, "transcriptPdf": pdf})
}

func applySet(b *models.Booking, set bson.M) {
	for k, v := range set {
		switch k {
		case "meetingLink":
			b.MeetingLink = v.(string)
		case "scheduledDateTime":
			b.ScheduledDateTime = v.(time.Time)
		case "duration":
			b.Duration = v.(int)
		case "transcriptText":
			b.TranscriptText = v.(string)
		case "transcriptPdf":
			b.TranscriptPDF = v.([]byte)
		}
	}
}

// fakeProvisioner issues deterministic links and records releases.
type fakeProvisioner struct {
	mu       sync.Mutex
	counter  int
	released []string
	failNext bool
}

func (f *fakeProvisioner) EnsureMeeting(ctx context.Context, bookingID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return "", fmt.Errorf("provisioner unavailable")
	}
	f.counter++
	return fmt.Sprintf("https://app.test/meeting/room-%d", f.counter), nil
}

func (f *fakeProvisioner) Release(ctx context.Context, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, link)
	return nil
}

func (f *fakeProvisioner) RoomExists(ctx context.Context, link string) (bool, error) {
	return strings.Contains(link, "/meeting/"), nil
}

// fakeDispatcher records which notifications went out.
type fakeDispatcher struct {
	mu         sync.Mutex
	requested  int
	scheduled  int
	declined   int
	reminders  []models.ReminderPayload
	confirmURL string
	declineURL string
}

func (f *fakeDispatcher) BookingRequested(ctx context.Context, b *models.Booking, mentor, mentee *models.User, confirmURL, declineURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested++
	f.confirmURL = confirmURL
	f.declineURL = declineURL
	return nil
}

func (f *fakeDispatcher) MeetingScheduled(ctx context.Context, b *models.Booking, mentor, mentee *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled++
	return nil
}

func (f *fakeDispatcher) BookingDeclined(ctx context.Context, b *models.Booking, mentor, mentee *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declined++
	return nil
}

func (f *fakeDispatcher) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders = append(f.reminders, payload)
	return nil
}

// fakeUserRepo serves the two fixed test users.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type testEnv struct {
	svc         *DefaultBookingService
	repo        *fakeBookingRepo
	provisioner *fakeProvisioner
	dispatcher  *fakeDispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	repo := newFakeBookingRepo()
	users := &fakeUserRepo{users: map[string]*models.User{
		"mentor-1": {ID: "mentor-1", Email: "mentor@test.io", FirstName: "Maya", LastName: "Odhiambo", Role: models.RoleMentor},
		"mentee-1": {ID: "mentee-1", Email: "mentee@test.io", FirstName: "Ken", LastName: "Wafula", Role: models.RoleMentee},
	}}
	provisioner := &fakeProvisioner{}
	dispatcher := &fakeDispatcher{}
	tokens := NewActionTokenManager(nil)

	svc := NewDefaultBookingService(repo, users, provisioner, dispatcher, tokens, "https://app.test")
	return &testEnv{svc: svc, repo: repo, provisioner: provisioner, dispatcher: dispatcher}
}

func (e *testEnv) seedBooking(t *testing.T, status, meetingLink string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ID:                "booking-1",
		MenteeID:          "mentee-1",
		MentorID:          "mentor-1",
		ScheduledDateTime: time.Now().Add(48 * time.Hour),
		Duration:          60,
		Status:            status,
		MeetingLink:       meetingLink,
	}
	require.NoError(t, e.repo.Create(context.Background(), b))
	return b
}

func TestCreateRequestStoresPendingBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := CreateInput{
		MentorID:          "mentor-1",
		ScheduledDateTime: time.Now().Add(24 * time.Hour),
		Description:       "Preparing for backend interviews",
	}
	booking, err := env.svc.CreateRequest(ctx, "mentee-1", in)
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusPending, booking.Status)
	require.Equal(t, models.DefaultDurationMinutes, booking.Duration)
	require.Empty(t, booking.MeetingLink)

	stored, err := env.repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.Equal(t, 1, env.dispatcher.requested)
	require.Contains(t, env.dispatcher.confirmURL, "https://app.test/api/bookings/"+booking.ID+"/confirm?token=")
	require.Contains(t, env.dispatcher.declineURL, "https://app.test/api/bookings/"+booking.ID+"/decline?token=")
}

func TestCreateRequestRejectsPastTime(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateRequest(context.Background(), "mentee-1", CreateInput{
		MentorID:          "mentor-1",
		ScheduledDateTime: time.Now().Add(-time.Hour),
	})
	require.ErrorIs(t, err, ErrPastDateTime)
}

func TestCreateRequestRejectsOversizedDescription(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateRequest(context.Background(), "mentee-1", CreateInput{
		MentorID:          "mentor-1",
		ScheduledDateTime: time.Now().Add(time.Hour),
		Description:       strings.Repeat("x", models.MaxDescriptionLength+1),
	})
	require.ErrorIs(t, err, ErrDescriptionTooLong)
}

func TestCreateRequestValidatesParties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	in := CreateInput{MentorID: "nobody", ScheduledDateTime: time.Now().Add(time.Hour)}

	_, err := env.svc.CreateRequest(ctx, "mentee-1", in)
	require.ErrorIs(t, err, ErrInvalidMentor)

	// A mentor cannot pose as the requesting mentee.
	in.MentorID = "mentor-1"
	_, err = env.svc.CreateRequest(ctx, "mentor-1", in)
	require.ErrorIs(t, err, ErrInvalidMentee)
}

func TestConfirmBindsMeetingAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	booking, err := env.svc.confirm(ctx, "booking-1")
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.Contains(t, booking.MeetingLink, "/meeting/")

	require.Equal(t, 1, env.dispatcher.scheduled)
	require.Len(t, env.dispatcher.reminders, 1)
	require.Equal(t, booking.MeetingLink, env.dispatcher.reminders[0].MeetingLink)
	require.Empty(t, env.provisioner.released)
}

func TestConfirmTwiceReportsAlreadyProcessed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	first, err := env.svc.confirm(ctx, "booking-1")
	require.NoError(t, err)

	_, err = env.svc.confirm(ctx, "booking-1")
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	// The losing attempt must release the room it provisioned and leave the
	// winning link bound.
	require.Len(t, env.provisioner.released, 1)
	require.NotEqual(t, first.MeetingLink, env.provisioner.released[0])

	stored, err := env.repo.GetByID(ctx, "booking-1")
	require.NoError(t, err)
	require.Equal(t, first.MeetingLink, stored.MeetingLink)
}

func TestConfirmUnknownBookingNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.confirm(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeclineCancelsAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	booking, err := env.svc.decline(ctx, "booking-1")
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusCancelled, booking.Status)
	require.Equal(t, 1, env.dispatcher.declined)
}

func TestDeclineAfterConfirmConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	_, err := env.svc.confirm(ctx, "booking-1")
	require.NoError(t, err)

	_, err = env.svc.decline(ctx, "booking-1")
	require.ErrorIs(t, err, ErrAlreadyProcessed)
	require.Zero(t, env.dispatcher.declined)
}

func TestUpdateStatusMentorOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	_, err := env.svc.UpdateStatus(ctx, "booking-1", "mentee-1", models.BookingStatusConfirmed)
	require.ErrorIs(t, err, ErrForbidden)

	booking, err := env.svc.UpdateStatus(ctx, "booking-1", "mentor-1", models.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, booking.Status)
}

func TestUpdateStatusRejectsIllegalEdges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	_, err := env.svc.UpdateStatus(ctx, "booking-1", "mentor-1", models.BookingStatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.svc.UpdateStatus(ctx, "booking-1", "mentor-1", "archived")
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.svc.UpdateStatus(ctx, "booking-1", "mentor-1", models.BookingStatusPending)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestUpdateStatusCompletesConfirmedBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusConfirmed, "https://app.test/meeting/room-0")

	booking, err := env.svc.UpdateStatus(ctx, "booking-1", "mentor-1", models.BookingStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusCompleted, booking.Status)
}

func TestScheduleMeetingReplacesRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusConfirmed, "https://app.test/meeting/old-room")

	booking, err := env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{BookingID: "booking-1"})
	require.NoError(t, err)
	require.NotEqual(t, "https://app.test/meeting/old-room", booking.MeetingLink)
	require.Equal(t, []string{"https://app.test/meeting/old-room"}, env.provisioner.released)
	require.Equal(t, 1, env.dispatcher.scheduled)

	stored, err := env.repo.GetByID(ctx, "booking-1")
	require.NoError(t, err)
	require.Equal(t, booking.MeetingLink, stored.MeetingLink)
}

func TestScheduleMeetingConfirmsPendingBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	// A mentee cannot trigger the mentor's scheduling path.
	_, err := env.svc.ScheduleMeeting(ctx, "mentee-1", ScheduleInput{BookingID: "booking-1"})
	require.ErrorIs(t, err, ErrForbidden)

	booking, err := env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{BookingID: "booking-1"})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.Contains(t, booking.MeetingLink, "/meeting/")
	require.Equal(t, 1, env.dispatcher.scheduled)
	require.Len(t, env.dispatcher.reminders, 1)
}

func TestScheduleMeetingOverridesTimeAndDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	newTime := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	booking, err := env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{
		BookingID:         "booking-1",
		ScheduledDateTime: newTime,
		Duration:          90,
	})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.True(t, booking.ScheduledDateTime.Equal(newTime))
	require.Equal(t, 90, booking.Duration)

	stored, err := env.repo.GetByID(ctx, "booking-1")
	require.NoError(t, err)
	require.True(t, stored.ScheduledDateTime.Equal(newTime))
	require.Equal(t, 90, stored.Duration)
}

func TestScheduleMeetingRejectsPastReschedule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	_, err := env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{
		BookingID:         "booking-1",
		ScheduledDateTime: time.Now().Add(-time.Hour),
	})
	require.ErrorIs(t, err, ErrPastDateTime)
}

func TestScheduleMeetingCreatesConfirmedBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	booking, err := env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{
		MenteeID:          "mentee-1",
		ScheduledDateTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.Equal(t, models.DefaultDurationMinutes, booking.Duration)
	require.Contains(t, booking.MeetingLink, "/meeting/")
	require.Equal(t, 1, env.dispatcher.scheduled)
	require.Len(t, env.dispatcher.reminders, 1)

	stored, err := env.repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, booking.MeetingLink, stored.MeetingLink)
}

func TestScheduleMeetingCreateValidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{
		MenteeID:          "nobody",
		ScheduledDateTime: time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, ErrInvalidMentee)

	_, err = env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{
		MenteeID:          "mentee-1",
		ScheduledDateTime: time.Now().Add(-time.Hour),
	})
	require.ErrorIs(t, err, ErrPastDateTime)
}

func TestScheduleMeetingRejectsClosedBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusCancelled, "")

	_, err := env.svc.ScheduleMeeting(ctx, "mentor-1", ScheduleInput{BookingID: "booking-1"})
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestGetRestrictedToParties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBooking(t, models.BookingStatusPending, "")

	booking, err := env.svc.Get(ctx, "booking-1", "mentee-1")
	require.NoError(t, err)
	require.Equal(t, "booking-1", booking.ID)

	_, err = env.svc.Get(ctx, "booking-1", "stranger")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = env.svc.Get(ctx, "missing", "mentee-1")
	require.ErrorIs(t, err, ErrNotFound)
}
