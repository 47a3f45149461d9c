package handlers

import (
	"errors"
	"net/http"

	"github.com/Happyesss/careerlive---alpha/middleware"
	"github.com/Happyesss/careerlive---alpha/models"
	meetingService "github.com/Happyesss/careerlive---alpha/services/meeting"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
)

// MeetingSvc is wired at startup.
var MeetingSvc meetingService.MeetingService

// JoinMeeting records that the caller entered a meeting room.
func JoinMeeting(c *gin.Context) {
	var in struct {
		MeetingLink string `json:"meetingLink" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	booking, err := MeetingSvc.Join(c.Request.Context(), userID, in.MeetingLink)
	if err != nil {
		if errors.Is(err, meetingService.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "meeting room not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to join meeting", err.Error())
		return
	}
	if booking == nil {
		c.JSON(http.StatusOK, gin.H{"booking": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ListMeetings returns the caller's meetings split into upcoming and
// previous.
func ListMeetings(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	upcoming, previous, err := MeetingSvc.ListFor(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list meetings", err.Error())
		return
	}

	if upcoming == nil {
		upcoming = []models.Booking{}
	}
	if previous == nil {
		previous = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming, "previous": previous})
}
