package feedback

import (
	"context"
	"errors"

	bookingRepo "github.com/Happyesss/careerlive---alpha/database/repository/booking"
	feedbackRepo "github.com/Happyesss/careerlive---alpha/database/repository/feedback"
	"github.com/Happyesss/careerlive---alpha/models"

	"github.com/google/uuid"
)

var (
	// ErrDuplicate means the mentee already filed feedback for the meeting.
	ErrDuplicate = errors.New("feedback already submitted for this meeting")

	// ErrInvalidRating rejects ratings outside the 1-10 scale.
	ErrInvalidRating = errors.New("ratings must be between 1 and 10")

	// ErrUnknownMeeting means neither the booking id nor the meeting id
	// resolves to a stored booking.
	ErrUnknownMeeting = errors.New("no booking found for this meeting")

	// ErrNotParticipant means the submitting mentee was not a party to the
	// session being rated.
	ErrNotParticipant = errors.New("not a participant of this meeting")
)

// SubmitInput carries the post-session questionnaire. The mentor is derived
// from the booking behind the meeting, never taken from the client.
type SubmitInput struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	MeetingID string `json:"meetingId" binding:"required"`
	BookingID string `json:"bookingId"`

	SessionEffectiveness int `json:"sessionEffectiveness" binding:"required"`
	MentorGuidance       int `json:"mentorGuidance" binding:"required"`
	PlatformExperience   int `json:"platformExperience" binding:"required"`

	WhatWorkedWell     string `json:"whatWorkedWell"`
	HowToImprove       string `json:"howToImprove"`
	AdditionalComments string `json:"additionalComments"`
}

// FeedbackService records and serves post-session feedback.
type FeedbackService interface {
	Submit(ctx context.Context, menteeID string, in SubmitInput) (*models.Feedback, error)
	ListForMentor(ctx context.Context, mentorID string) ([]models.Feedback, error)
}

// DefaultFeedbackService is the production implementation.
type DefaultFeedbackService struct {
	feedbacks feedbackRepo.FeedbackRepository
	bookings  bookingRepo.BookingRepository
}

// NewDefaultFeedbackService creates a FeedbackService over the repositories.
func NewDefaultFeedbackService(feedbacks feedbackRepo.FeedbackRepository, bookings bookingRepo.BookingRepository) *DefaultFeedbackService {
	return &DefaultFeedbackService{feedbacks: feedbacks, bookings: bookings}
}

func (s *DefaultFeedbackService) Submit(ctx context.Context, menteeID string, in SubmitInput) (*models.Feedback, error) {
	for _, rating := range []int{in.SessionEffectiveness, in.MentorGuidance, in.PlatformExperience} {
		if rating < 1 || rating > 10 {
			return nil, ErrInvalidRating
		}
	}

	booking, err := s.resolveBooking(ctx, in)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrUnknownMeeting
	}
	if booking.MenteeID != menteeID {
		return nil, ErrNotParticipant
	}

	fb := &models.Feedback{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		MeetingID: in.MeetingID,
		MentorID:  booking.MentorID,
		MenteeID:  menteeID,
		BookingID: booking.ID,

		SessionEffectiveness: in.SessionEffectiveness,
		MentorGuidance:       in.MentorGuidance,
		PlatformExperience:   in.PlatformExperience,

		WhatWorkedWell:     in.WhatWorkedWell,
		HowToImprove:       in.HowToImprove,
		AdditionalComments: in.AdditionalComments,
	}

	if err := s.feedbacks.Create(ctx, fb); err != nil {
		if errors.Is(err, feedbackRepo.ErrDuplicateFeedback) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return fb, nil
}

// resolveBooking prefers the explicit booking id; the meeting id doubles as
// the meeting link for sessions rated straight from the room.
func (s *DefaultFeedbackService) resolveBooking(ctx context.Context, in SubmitInput) (*models.Booking, error) {
	if in.BookingID != "" {
		return s.bookings.GetByID(ctx, in.BookingID)
	}
	return s.bookings.GetByMeetingLink(ctx, in.MeetingID)
}

func (s *DefaultFeedbackService) ListForMentor(ctx context.Context, mentorID string) ([]models.Feedback, error) {
	return s.feedbacks.ListByMentor(ctx, mentorID)
}
