package models

import "time"

// Booking statuses. A booking only ever moves forward: pending is the sole
// entry state for mentee-initiated requests, and nothing leaves cancelled or
// completed.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// MaxDescriptionLength bounds the free-text description on a booking.
const MaxDescriptionLength = 2000

// DefaultDurationMinutes is used when a request omits the duration.
const DefaultDurationMinutes = 60

// Booking is the persisted record of a requested or scheduled mentoring
// session. MenteeID and MentorID are fixed at creation; MeetingLink is bound
// by the provisioning step and replaced only through the explicit
// replace-meeting path.
type Booking struct {
	ID                string    `bson:"id" json:"id"`
	MenteeID          string    `bson:"menteeId" json:"menteeId"`
	MentorID          string    `bson:"mentorId" json:"mentorId"`
	ScheduledDateTime time.Time `bson:"scheduledDateTime" json:"scheduledDateTime"`
	Duration          int       `bson:"duration" json:"duration"` // minutes
	Status            string    `bson:"status" json:"status"`
	Description       string    `bson:"description,omitempty" json:"description,omitempty"`
	MeetingLink       string    `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	TranscriptText    string    `bson:"transcriptText,omitempty" json:"transcriptText,omitempty"`
	TranscriptPDF     []byte    `bson:"transcriptPdf,omitempty" json:"-"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsParty reports whether the given user is one of the two fixed roles on the
// booking.
func (b *Booking) IsParty(userID string) bool {
	return b.MenteeID == userID || b.MentorID == userID
}
