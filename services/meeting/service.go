package meeting

import (
	"context"
	"fmt"
	"sort"
	"time"

	bookingRepo "github.com/Happyesss/careerlive---alpha/database/repository/booking"
	"github.com/Happyesss/careerlive---alpha/models"
	"github.com/Happyesss/careerlive---alpha/utils"

	"go.uber.org/zap"
)

// MeetingService assembles a user's meetings view and handles join tracking.
type MeetingService interface {
	// Join validates the room and records the join for the user. It returns
	// the booking bound to the link when one exists, (nil, nil) otherwise.
	Join(ctx context.Context, userID, meetingLink string) (*models.Booking, error)

	// ListFor merges the user's confirmed bookings with sessions they joined
	// by link, de-duplicated, and partitions them into upcoming and previous.
	ListFor(ctx context.Context, userID string) (upcoming, previous []models.Booking, err error)
}

// ErrRoomNotFound is returned when a join targets a link with no live room.
var ErrRoomNotFound = fmt.Errorf("meeting room not found")

// DefaultMeetingService is the production implementation.
type DefaultMeetingService struct {
	bookings    bookingRepo.BookingRepository
	provisioner Provisioner
	registry    JoinRegistry
	now         func() time.Time
}

// NewDefaultMeetingService wires the meetings view over the booking store,
// room provisioner and join registry.
func NewDefaultMeetingService(bookings bookingRepo.BookingRepository, provisioner Provisioner, registry JoinRegistry) *DefaultMeetingService {
	return &DefaultMeetingService{
		bookings:    bookings,
		provisioner: provisioner,
		registry:    registry,
		now:         time.Now,
	}
}

// Join records that the user entered the room behind the link. Unknown rooms
// are rejected so stale or fabricated links cannot populate the registry.
func (s *DefaultMeetingService) Join(ctx context.Context, userID, meetingLink string) (*models.Booking, error) {
	exists, err := s.provisioner.RoomExists(ctx, meetingLink)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	if err := s.registry.RecordJoin(ctx, userID, meetingLink); err != nil {
		return nil, err
	}
	return s.bookings.GetByMeetingLink(ctx, meetingLink)
}

// ListFor merges the authoritative confirmed bookings with link-joined
// sessions. Confirmed bookings win on overlap; a session the user both owns
// and joined appears once. The joined set is supplementary, so a failure
// there degrades to the confirmed bookings instead of failing the view.
func (s *DefaultMeetingService) ListFor(ctx context.Context, userID string) ([]models.Booking, []models.Booking, error) {
	confirmed, err := s.bookings.ListConfirmedFor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var joined []models.Booking
	links, err := s.registry.JoinedLinks(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("Failed to load joined meeting links, serving confirmed bookings only",
			zap.String("userId", userID), zap.Error(err))
	} else if len(links) > 0 {
		joined, err = s.bookings.ListByMeetingLinks(ctx, links)
		if err != nil {
			utils.GetLogger().Warn("Failed to resolve joined meeting links, serving confirmed bookings only",
				zap.String("userId", userID), zap.Error(err))
			joined = nil
		}
	}

	seen := make(map[string]bool, len(confirmed))
	merged := make([]models.Booking, 0, len(confirmed)+len(joined))
	for _, b := range confirmed {
		seen[b.ID] = true
		merged = append(merged, b)
	}
	for _, b := range joined {
		if !seen[b.ID] {
			seen[b.ID] = true
			merged = append(merged, b)
		}
	}

	now := s.now()
	var upcoming, previous []models.Booking
	for _, b := range merged {
		if b.Status == models.BookingStatusCompleted || !b.ScheduledDateTime.After(now) {
			previous = append(previous, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}

	// Soonest first for upcoming, most recent first for previous.
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledDateTime.Before(upcoming[j].ScheduledDateTime)
	})
	sort.Slice(previous, func(i, j int) bool {
		return previous[i].ScheduledDateTime.After(previous[j].ScheduledDateTime)
	})

	return upcoming, previous, nil
}
