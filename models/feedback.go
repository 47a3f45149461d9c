package models

import "time"

// Feedback is the post-session questionnaire a mentee files against a
// meeting. One feedback per (meetingId, menteeId); ratings are on a 1-10
// scale.
type Feedback struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	MeetingID string `bson:"meetingId" json:"meetingId"`
	MentorID  string `bson:"mentorId" json:"mentorId"`
	MenteeID  string `bson:"menteeId" json:"menteeId"`
	BookingID string `bson:"bookingId,omitempty" json:"bookingId,omitempty"`

	SessionEffectiveness int `bson:"sessionEffectiveness" json:"sessionEffectiveness"`
	MentorGuidance       int `bson:"mentorGuidance" json:"mentorGuidance"`
	PlatformExperience   int `bson:"platformExperience" json:"platformExperience"`

	WhatWorkedWell     string `bson:"whatWorkedWell,omitempty" json:"whatWorkedWell,omitempty"`
	HowToImprove       string `bson:"howToImprove,omitempty" json:"howToImprove,omitempty"`
	AdditionalComments string `bson:"additionalComments,omitempty" json:"additionalComments,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
