package models

import "time"

// Notification kinds dispatched on booking lifecycle transitions.
const (
	NotifyBookingRequested = "booking_requested" // to mentor, with confirm/decline action links
	NotifyMeetingScheduled = "meeting_scheduled" // to mentee, with the meeting link
	NotifyMentorScheduled  = "mentor_scheduled"  // acknowledgement to the mentor after confirm
	NotifyBookingDeclined  = "booking_declined"  // to mentee
)

// EmailMessage is the rendered email carried through the delivery queue.
// Rendering happens at dispatch time so the worker never needs store access.
type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ReminderPayload schedules a session reminder relative to the confirmed
// start time.
type ReminderPayload struct {
	BookingID   string    `json:"bookingId"`
	MeetingLink string    `json:"meetingLink"`
	StartsAt    time.Time `json:"startsAt"`
	MenteeEmail string    `json:"menteeEmail"`
	MentorEmail string    `json:"mentorEmail"`
}
