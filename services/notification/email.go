package notification

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Happyesss/careerlive---alpha/models"
	"github.com/Happyesss/careerlive---alpha/services/tasks"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// whenFormat is how session times render in emails.
const whenFormat = "Monday, 2 January 2006 at 15:04 MST"

// EmailDispatcher renders lifecycle emails and enqueues them for delivery.
type EmailDispatcher struct {
	queue *asynq.Client
}

// NewEmailDispatcher creates a Dispatcher backed by the given task queue.
func NewEmailDispatcher(queue *asynq.Client) *EmailDispatcher {
	return &EmailDispatcher{queue: queue}
}

type emailData struct {
	MentorName  string
	MenteeName  string
	When        string
	Duration    int
	Description string
	MeetingLink string
	ConfirmURL  string
	DeclineURL  string
}

func newEmailData(booking *models.Booking, mentor, mentee *models.User) emailData {
	return emailData{
		MentorName:  mentor.FullName(),
		MenteeName:  mentee.FullName(),
		When:        booking.ScheduledDateTime.Format(whenFormat),
		Duration:    booking.Duration,
		Description: booking.Description,
		MeetingLink: booking.MeetingLink,
	}
}

func (d *EmailDispatcher) BookingRequested(ctx context.Context, booking *models.Booking, mentor, mentee *models.User, confirmURL, declineURL string) error {
	data := newEmailData(booking, mentor, mentee)
	data.ConfirmURL = confirmURL
	data.DeclineURL = declineURL

	subject := fmt.Sprintf("New session request from %s", mentee.FullName())
	return d.enqueue(ctx, "booking_requested", subject, data, mentor.Email)
}

func (d *EmailDispatcher) MeetingScheduled(ctx context.Context, booking *models.Booking, mentor, mentee *models.User) error {
	data := newEmailData(booking, mentor, mentee)

	subject := fmt.Sprintf("Session confirmed with %s", mentor.FullName())
	if err := d.enqueue(ctx, "meeting_scheduled", subject, data, mentee.Email); err != nil {
		return err
	}

	subject = fmt.Sprintf("Session scheduled with %s", mentee.FullName())
	return d.enqueue(ctx, "mentor_scheduled", subject, data, mentor.Email)
}

func (d *EmailDispatcher) BookingDeclined(ctx context.Context, booking *models.Booking, mentor, mentee *models.User) error {
	data := newEmailData(booking, mentor, mentee)

	subject := fmt.Sprintf("Session request declined by %s", mentor.FullName())
	return d.enqueue(ctx, "booking_declined", subject, data, mentee.Email)
}

func (d *EmailDispatcher) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := d.queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	utils.GetLogger().Debug("Scheduled session reminder",
		zap.String("bookingId", payload.BookingID),
		zap.Time("fireAt", fireAt))
	return nil
}

// RenderReminder builds the reminder email for a scheduled session. The
// worker calls this when the reminder task fires.
func RenderReminder(payload models.ReminderPayload) (models.EmailMessage, error) {
	data := emailData{
		When:        payload.StartsAt.Format(whenFormat),
		MeetingLink: payload.MeetingLink,
	}

	var body bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&body, "session_reminder", data); err != nil {
		return models.EmailMessage{}, fmt.Errorf("failed to render reminder email: %w", err)
	}

	return models.EmailMessage{
		To:      []string{payload.MenteeEmail, payload.MentorEmail},
		Subject: "Your mentoring session starts soon",
		HTML:    body.String(),
	}, nil
}

// enqueue renders the named template and hands the result to the delivery
// queue.
func (d *EmailDispatcher) enqueue(ctx context.Context, templateName, subject string, data emailData, to ...string) error {
	var body bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to render %s email: %w", templateName, err)
	}

	task, err := tasks.NewEmailTask(models.EmailMessage{
		To:      to,
		Subject: subject,
		HTML:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}

	if _, err := d.queue.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s email: %w", templateName, err)
	}

	utils.GetLogger().Debug("Enqueued lifecycle email",
		zap.String("template", templateName),
		zap.Strings("to", to))
	return nil
}
