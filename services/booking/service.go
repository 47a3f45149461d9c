package booking

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	bookingRepo "github.com/Happyesss/careerlive---alpha/database/repository/booking"
	userRepo "github.com/Happyesss/careerlive---alpha/database/repository/user"
	"github.com/Happyesss/careerlive---alpha/models"
	"github.com/Happyesss/careerlive---alpha/services/meeting"
	"github.com/Happyesss/careerlive---alpha/services/notification"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// reminderLead is how far before the session start the reminder fires.
const reminderLead = 15 * time.Minute

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	bookings    bookingRepo.BookingRepository
	users       userRepo.UserRepository
	provisioner meeting.Provisioner
	notifier    notification.Dispatcher
	tokens      *ActionTokenManager
	baseURL     string
	now         func() time.Time
}

// NewDefaultBookingService wires the booking lifecycle over its stores and
// side-effect services.
func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	users userRepo.UserRepository,
	provisioner meeting.Provisioner,
	notifier notification.Dispatcher,
	tokens *ActionTokenManager,
	baseURL string,
) *DefaultBookingService {
	return &DefaultBookingService{
		bookings:    bookings,
		users:       users,
		provisioner: provisioner,
		notifier:    notifier,
		tokens:      tokens,
		baseURL:     strings.TrimRight(baseURL, "/"),
		now:         time.Now,
	}
}

// CreateRequest validates the input, stores the pending booking and emails
// the mentor its action links.
func (s *DefaultBookingService) CreateRequest(ctx context.Context, menteeID string, in CreateInput) (*models.Booking, error) {
	if !in.ScheduledDateTime.After(s.now()) {
		return nil, ErrPastDateTime
	}
	if len(in.Description) > models.MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	mentor, err := s.users.GetByID(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}
	if mentor == nil || mentor.Role != models.RoleMentor {
		return nil, ErrInvalidMentor
	}

	mentee, err := s.users.GetByID(ctx, menteeID)
	if err != nil {
		return nil, err
	}
	if mentee == nil || mentee.Role != models.RoleMentee {
		return nil, ErrInvalidMentee
	}

	duration := in.Duration
	if duration <= 0 {
		duration = models.DefaultDurationMinutes
	}

	booking := &models.Booking{
		ID:                uuid.NewString(),
		MenteeID:          menteeID,
		MentorID:          in.MentorID,
		ScheduledDateTime: in.ScheduledDateTime,
		Duration:          duration,
		Status:            models.BookingStatusPending,
		Description:       in.Description,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	// The booking is stored; a notification failure must not undo it.
	if err := s.notifyRequested(ctx, booking, mentor, mentee); err != nil {
		utils.GetLogger().Error("Failed to notify mentor of booking request",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	return booking, nil
}

func (s *DefaultBookingService) notifyRequested(ctx context.Context, booking *models.Booking, mentor, mentee *models.User) error {
	confirmToken, err := s.tokens.Issue(booking.ID, ActionConfirm)
	if err != nil {
		return err
	}
	declineToken, err := s.tokens.Issue(booking.ID, ActionDecline)
	if err != nil {
		return err
	}

	confirmURL := fmt.Sprintf("%s/api/bookings/%s/confirm?token=%s", s.baseURL, booking.ID, url.QueryEscape(confirmToken))
	declineURL := fmt.Sprintf("%s/api/bookings/%s/decline?token=%s", s.baseURL, booking.ID, url.QueryEscape(declineToken))
	return s.notifier.BookingRequested(ctx, booking, mentor, mentee, confirmURL, declineURL)
}

// ConfirmWithToken redeems the confirm link and runs the confirm flow.
func (s *DefaultBookingService) ConfirmWithToken(ctx context.Context, id, token string) (*models.Booking, error) {
	bookingID, err := s.tokens.Redeem(ctx, token, ActionConfirm)
	if err != nil {
		return nil, err
	}
	if bookingID != id {
		return nil, ErrTokenInvalid
	}
	return s.confirm(ctx, bookingID)
}

// DeclineWithToken redeems the decline link and runs the decline flow.
func (s *DefaultBookingService) DeclineWithToken(ctx context.Context, id, token string) (*models.Booking, error) {
	bookingID, err := s.tokens.Redeem(ctx, token, ActionDecline)
	if err != nil {
		return nil, err
	}
	if bookingID != id {
		return nil, ErrTokenInvalid
	}
	return s.decline(ctx, bookingID)
}

// confirm provisions the meeting first, then binds it in the same atomic
// update that flips the status. A lost race releases the provisioned room.
func (s *DefaultBookingService) confirm(ctx context.Context, id string) (*models.Booking, error) {
	return s.confirmWith(ctx, id, nil)
}

// confirmWith is confirm with extra fields bound in the same conditional
// update, so a mentor-supplied reschedule lands atomically with the flip.
func (s *DefaultBookingService) confirmWith(ctx context.Context, id string, extra bson.M) (*models.Booking, error) {
	link, err := s.provisioner.EnsureMeeting(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"meetingLink": link}
	for k, v := range extra {
		set[k] = v
	}
	booking, err := s.bookings.TransitionStatus(ctx, id,
		models.BookingStatusPending, models.BookingStatusConfirmed, set)
	if err != nil {
		s.releaseQuietly(ctx, link)
		return nil, err
	}
	if booking == nil {
		s.releaseQuietly(ctx, link)
		return nil, s.transitionConflict(ctx, id)
	}

	mentor, mentee, err := s.loadParties(ctx, booking)
	if err != nil {
		utils.GetLogger().Error("Confirmed booking but could not load parties for notification",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return booking, nil
	}

	if err := s.notifier.MeetingScheduled(ctx, booking, mentor, mentee); err != nil {
		utils.GetLogger().Error("Failed to send meeting scheduled emails",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	s.scheduleReminder(ctx, booking, mentor, mentee)

	return booking, nil
}

// decline flips a pending booking to cancelled and notifies the mentee.
func (s *DefaultBookingService) decline(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.TransitionStatus(ctx, id,
		models.BookingStatusPending, models.BookingStatusCancelled, nil)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, s.transitionConflict(ctx, id)
	}

	mentor, mentee, err := s.loadParties(ctx, booking)
	if err != nil {
		utils.GetLogger().Error("Declined booking but could not load parties for notification",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return booking, nil
	}
	if err := s.notifier.BookingDeclined(ctx, booking, mentor, mentee); err != nil {
		utils.GetLogger().Error("Failed to send decline email",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	return booking, nil
}

// complete closes out a confirmed booking after the session took place.
func (s *DefaultBookingService) complete(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.TransitionStatus(ctx, id,
		models.BookingStatusConfirmed, models.BookingStatusCompleted, nil)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, s.transitionConflict(ctx, id)
	}
	return booking, nil
}

// UpdateStatus performs a mentor-driven lifecycle transition.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, actorID, toStatus string) (*models.Booking, error) {
	if !IsValidStatus(toStatus) {
		return nil, ErrInvalidTransition
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if booking.MentorID != actorID {
		return nil, ErrForbidden
	}
	if booking.Status == toStatus {
		return nil, ErrAlreadyProcessed
	}
	if !CanTransition(booking.Status, toStatus) {
		return nil, ErrInvalidTransition
	}

	switch toStatus {
	case models.BookingStatusConfirmed:
		return s.confirm(ctx, id)
	case models.BookingStatusCancelled:
		return s.decline(ctx, id)
	case models.BookingStatusCompleted:
		return s.complete(ctx, id)
	}
	return nil, ErrInvalidTransition
}

// ScheduleMeeting is the mentor's direct scheduling path. Given a booking id
// it confirms a pending request or replaces the meeting on a confirmed one;
// without an id it creates a new booking straight into confirmed.
func (s *DefaultBookingService) ScheduleMeeting(ctx context.Context, actorID string, in ScheduleInput) (*models.Booking, error) {
	if in.BookingID == "" {
		return s.scheduleNew(ctx, actorID, in)
	}
	if !in.ScheduledDateTime.IsZero() && !in.ScheduledDateTime.After(s.now()) {
		return nil, ErrPastDateTime
	}

	booking, err := s.bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if booking.MentorID != actorID {
		return nil, ErrForbidden
	}

	switch booking.Status {
	case models.BookingStatusPending:
		return s.confirmWith(ctx, in.BookingID, scheduleOverrides(in))
	case models.BookingStatusConfirmed:
		return s.replaceMeeting(ctx, booking, in)
	default:
		return nil, ErrAlreadyProcessed
	}
}

// scheduleOverrides collects the optional reschedule fields the mentor sent.
func scheduleOverrides(in ScheduleInput) bson.M {
	set := bson.M{}
	if !in.ScheduledDateTime.IsZero() {
		set["scheduledDateTime"] = in.ScheduledDateTime
	}
	if in.Duration > 0 {
		set["duration"] = in.Duration
	}
	return set
}

// scheduleNew creates a mentor-initiated booking directly in confirmed, with
// the room provisioned before the record exists so the link is never empty.
func (s *DefaultBookingService) scheduleNew(ctx context.Context, mentorID string, in ScheduleInput) (*models.Booking, error) {
	if !in.ScheduledDateTime.After(s.now()) {
		return nil, ErrPastDateTime
	}

	mentor, err := s.users.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor == nil || mentor.Role != models.RoleMentor {
		return nil, ErrInvalidMentor
	}
	mentee, err := s.users.GetByID(ctx, in.MenteeID)
	if err != nil {
		return nil, err
	}
	if mentee == nil || mentee.Role != models.RoleMentee {
		return nil, ErrInvalidMentee
	}

	duration := in.Duration
	if duration <= 0 {
		duration = models.DefaultDurationMinutes
	}

	id := uuid.NewString()
	link, err := s.provisioner.EnsureMeeting(ctx, id)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:                id,
		MenteeID:          in.MenteeID,
		MentorID:          mentorID,
		ScheduledDateTime: in.ScheduledDateTime,
		Duration:          duration,
		Status:            models.BookingStatusConfirmed,
		Description:       "Meeting scheduled by mentor",
		MeetingLink:       link,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		s.releaseQuietly(ctx, link)
		return nil, err
	}

	if err := s.notifier.MeetingScheduled(ctx, booking, mentor, mentee); err != nil {
		utils.GetLogger().Error("Failed to send meeting scheduled emails",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	s.scheduleReminder(ctx, booking, mentor, mentee)

	return booking, nil
}

// replaceMeeting swaps the room on a confirmed booking. The old room is
// released so its link stops resolving; time and duration updates ride along.
func (s *DefaultBookingService) replaceMeeting(ctx context.Context, booking *models.Booking, in ScheduleInput) (*models.Booking, error) {
	newLink, err := s.provisioner.EnsureMeeting(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	set := scheduleOverrides(in)
	set["meetingLink"] = newLink
	if err := s.bookings.UpdateFields(ctx, booking.ID, set); err != nil {
		s.releaseQuietly(ctx, newLink)
		return nil, err
	}

	oldLink := booking.MeetingLink
	if oldLink != "" {
		s.releaseQuietly(ctx, oldLink)
	}
	booking.MeetingLink = newLink
	if !in.ScheduledDateTime.IsZero() {
		booking.ScheduledDateTime = in.ScheduledDateTime
	}
	if in.Duration > 0 {
		booking.Duration = in.Duration
	}

	mentor, mentee, err := s.loadParties(ctx, booking)
	if err == nil {
		if err := s.notifier.MeetingScheduled(ctx, booking, mentor, mentee); err != nil {
			utils.GetLogger().Error("Failed to send replacement meeting emails",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	} else {
		utils.GetLogger().Error("Replaced meeting but could not load parties for notification",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	return booking, nil
}

// Get returns the booking, restricted to its two parties.
func (s *DefaultBookingService) Get(ctx context.Context, id, actorID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if !booking.IsParty(actorID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

// ListFor returns the user's bookings, scoped by their role.
func (s *DefaultBookingService) ListFor(ctx context.Context, userID, role string) ([]models.Booking, error) {
	if role == models.RoleMentor {
		return s.bookings.ListByMentor(ctx, userID)
	}
	return s.bookings.ListByMentee(ctx, userID)
}

// GetByMeetingLink resolves a meeting link to its booking, (nil, nil) when
// the link is unbound.
func (s *DefaultBookingService) GetByMeetingLink(ctx context.Context, meetingLink string) (*models.Booking, error) {
	return s.bookings.GetByMeetingLink(ctx, meetingLink)
}

// transitionConflict turns a failed conditional update into the right
// sentinel: the booking is either gone or already past the expected status.
func (s *DefaultBookingService) transitionConflict(ctx context.Context, id string) error {
	existing, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return ErrAlreadyProcessed
}

func (s *DefaultBookingService) loadParties(ctx context.Context, booking *models.Booking) (*models.User, *models.User, error) {
	mentor, err := s.users.GetByID(ctx, booking.MentorID)
	if err != nil {
		return nil, nil, err
	}
	if mentor == nil {
		return nil, nil, ErrInvalidMentor
	}
	mentee, err := s.users.GetByID(ctx, booking.MenteeID)
	if err != nil {
		return nil, nil, err
	}
	if mentee == nil {
		return nil, nil, ErrInvalidMentee
	}
	return mentor, mentee, nil
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, booking *models.Booking, mentor, mentee *models.User) {
	fireAt := booking.ScheduledDateTime.Add(-reminderLead)
	if !fireAt.After(s.now()) {
		return
	}

	payload := models.ReminderPayload{
		BookingID:   booking.ID,
		MeetingLink: booking.MeetingLink,
		StartsAt:    booking.ScheduledDateTime,
		MenteeEmail: mentee.Email,
		MentorEmail: mentor.Email,
	}
	if err := s.notifier.ScheduleReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Error("Failed to schedule session reminder",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) releaseQuietly(ctx context.Context, link string) {
	if err := s.provisioner.Release(ctx, link); err != nil {
		utils.GetLogger().Warn("Failed to release meeting room",
			zap.String("meetingLink", link), zap.Error(err))
	}
}
