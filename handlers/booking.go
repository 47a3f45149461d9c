package handlers

import (
	"errors"
	"net/http"

	"github.com/Happyesss/careerlive---alpha/middleware"
	"github.com/Happyesss/careerlive---alpha/models"
	bookingService "github.com/Happyesss/careerlive---alpha/services/booking"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
)

// BookingSvc is wired at startup.
var BookingSvc bookingService.BookingService

// CreateBooking opens a pending session request; mentee only.
func CreateBooking(c *gin.Context) {
	var in bookingService.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	menteeID := c.GetString(middleware.ContextUserID)
	booking, err := BookingSvc.CreateRequest(c.Request.Context(), menteeID, in)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetBooking returns a single booking to one of its parties.
func GetBooking(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)
	booking, err := BookingSvc.Get(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ListBookings returns the caller's bookings scoped by role.
func ListBookings(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextRole)

	bookings, err := BookingSvc.ListFor(c.Request.Context(), userID, role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBookingStatus performs an authenticated lifecycle transition; mentor
// only.
func UpdateBookingStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actorID := c.GetString(middleware.ContextUserID)
	booking, err := BookingSvc.UpdateStatus(c.Request.Context(), c.Param("id"), actorID, in.Status)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ScheduleMeeting is the mentor's direct scheduling endpoint: it confirms an
// existing request by id, or creates a confirmed booking for a mentee when no
// id is given; mentor only.
func ScheduleMeeting(c *gin.Context) {
	var in bookingService.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if in.BookingID == "" && (in.MenteeID == "" || in.ScheduledDateTime.IsZero()) {
		utils.JSONError(c, http.StatusBadRequest, "menteeId and scheduledDateTime are required without a bookingId", "")
		return
	}

	actorID := c.GetString(middleware.ContextUserID)
	booking, err := BookingSvc.ScheduleMeeting(c.Request.Context(), actorID, in)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking, "meetingLink": booking.MeetingLink})
}

// GetBookingByMeetingLink resolves a meeting link to its booking. An unbound
// link yields a null booking, not an error, so meeting pages for ad-hoc rooms
// still render.
func GetBookingByMeetingLink(c *gin.Context) {
	link := c.Query("meetingLink")
	if link == "" {
		utils.JSONError(c, http.StatusBadRequest, "meetingLink query parameter is required", "")
		return
	}

	booking, err := BookingSvc.GetByMeetingLink(c.Request.Context(), link)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to resolve meeting link", err.Error())
		return
	}
	if booking == nil {
		c.JSON(http.StatusOK, gin.H{"booking": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// bookingError maps service sentinels onto HTTP statuses.
func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookingService.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
	case errors.Is(err, bookingService.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "not authorized for this booking", "")
	case errors.Is(err, bookingService.ErrAlreadyProcessed):
		utils.JSONError(c, http.StatusConflict, "booking has already been processed", "")
	case errors.Is(err, bookingService.ErrInvalidTransition):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid status transition", "")
	case errors.Is(err, bookingService.ErrPastDateTime):
		utils.JSONError(c, http.StatusBadRequest, "booking time must be in the future", "")
	case errors.Is(err, bookingService.ErrDescriptionTooLong):
		utils.JSONError(c, http.StatusBadRequest, "description exceeds maximum length", "")
	case errors.Is(err, bookingService.ErrInvalidMentor):
		utils.JSONError(c, http.StatusBadRequest, "mentor not found", "")
	case errors.Is(err, bookingService.ErrInvalidMentee):
		utils.JSONError(c, http.StatusBadRequest, "mentee not found", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
	}
}
