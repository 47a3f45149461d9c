package tasks

import (
	"encoding/json"
	"time"

	"github.com/Happyesss/careerlive---alpha/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendEmail    = "email:send"
	TypeSendReminder = "reminder:send"
)

// NewEmailTask wraps a rendered email for the delivery queue.
func NewEmailTask(msg models.EmailMessage) (*asynq.Task, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendEmail, b, asynq.MaxRetry(5)), nil
}

// NewReminderTask builds a session reminder scheduled to fire at the given
// time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
