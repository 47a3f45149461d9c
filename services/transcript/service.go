package transcript

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/Happyesss/careerlive---alpha/database/repository/booking"
	"github.com/Happyesss/careerlive---alpha/models"
)

var (
	// ErrBookingNotFound means neither the booking id nor the meeting link
	// resolved to a booking.
	ErrBookingNotFound = errors.New("no booking for this recording")

	// ErrForbidden means the caller is not a party of the booking.
	ErrForbidden = errors.New("not authorized for this booking")

	// ErrNoTranscript means no transcript has been attached yet.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrEmptyAudio rejects empty uploads before they hit the recognizer.
	ErrEmptyAudio = errors.New("audio recording is empty")
)

// BindInput identifies the booking a recording belongs to. BookingID is
// authoritative; MeetingLink is the fallback for older clients that only
// know the room they were in.
type BindInput struct {
	BookingID   string
	MeetingLink string
}

// TranscriptService transcribes session recordings and binds the artifacts
// to their booking.
type TranscriptService interface {
	// TranscribeAndBind transcribes the audio, renders the PDF and attaches
	// both to the resolved booking. It returns the booking and the
	// transcript text.
	TranscribeAndBind(ctx context.Context, actorID string, in BindInput, audio []byte, language string) (*models.Booking, string, error)

	// TranscriptPDF returns the rendered transcript for a party of the
	// booking.
	TranscriptPDF(ctx context.Context, bookingID, actorID string) ([]byte, error)
}

// DefaultTranscriptService is the production implementation.
type DefaultTranscriptService struct {
	bookings    bookingRepo.BookingRepository
	transcriber Transcriber
	renderer    PDFRenderer
}

// NewDefaultTranscriptService wires transcription over the booking store.
func NewDefaultTranscriptService(bookings bookingRepo.BookingRepository, transcriber Transcriber, renderer PDFRenderer) *DefaultTranscriptService {
	return &DefaultTranscriptService{
		bookings:    bookings,
		transcriber: transcriber,
		renderer:    renderer,
	}
}

func (s *DefaultTranscriptService) TranscribeAndBind(ctx context.Context, actorID string, in BindInput, audio []byte, language string) (*models.Booking, string, error) {
	if len(audio) == 0 {
		return nil, "", ErrEmptyAudio
	}

	booking, err := s.resolveBooking(ctx, in)
	if err != nil {
		return nil, "", err
	}
	if !booking.IsParty(actorID) {
		return nil, "", ErrForbidden
	}

	text, err := s.transcriber.Transcribe(ctx, audio, language)
	if err != nil {
		return nil, "", err
	}

	title := fmt.Sprintf("Session Transcript - %s", booking.ScheduledDateTime.Format("2 January 2006"))
	pdf, err := s.renderer.Render(title, text)
	if err != nil {
		return nil, "", err
	}

	if err := s.bookings.AttachTranscript(ctx, booking.ID, text, pdf); err != nil {
		return nil, "", err
	}

	booking.TranscriptText = text
	booking.TranscriptPDF = pdf
	return booking, text, nil
}

func (s *DefaultTranscriptService) TranscriptPDF(ctx context.Context, bookingID, actorID string) ([]byte, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !booking.IsParty(actorID) {
		return nil, ErrForbidden
	}
	if len(booking.TranscriptPDF) == 0 {
		return nil, ErrNoTranscript
	}
	return booking.TranscriptPDF, nil
}

// resolveBooking prefers the explicit booking id and falls back to the
// meeting link.
func (s *DefaultTranscriptService) resolveBooking(ctx context.Context, in BindInput) (*models.Booking, error) {
	if in.BookingID != "" {
		booking, err := s.bookings.GetByID(ctx, in.BookingID)
		if err != nil {
			return nil, err
		}
		if booking != nil {
			return booking, nil
		}
	}
	if in.MeetingLink != "" {
		booking, err := s.bookings.GetByMeetingLink(ctx, in.MeetingLink)
		if err != nil {
			return nil, err
		}
		if booking != nil {
			return booking, nil
		}
	}
	return nil, ErrBookingNotFound
}
