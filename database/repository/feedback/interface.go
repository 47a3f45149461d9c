package feedbackRepo

import (
	"context"

	"github.com/Happyesss/careerlive---alpha/models"
)

// FeedbackRepository stores post-session feedback submitted by mentees.
type FeedbackRepository interface {
	// Create inserts a feedback document. It returns ErrDuplicateFeedback
	// when the mentee already submitted feedback for the meeting.
	Create(ctx context.Context, feedback *models.Feedback) error

	// GetByMeetingAndMentee returns (nil, nil) when no feedback exists.
	GetByMeetingAndMentee(ctx context.Context, meetingID, menteeID string) (*models.Feedback, error)

	ListByMentor(ctx context.Context, mentorID string) ([]models.Feedback, error)
}
