package handlers

import (
	"errors"
	"net/http"

	"github.com/Happyesss/careerlive---alpha/middleware"
	"github.com/Happyesss/careerlive---alpha/models"
	feedbackService "github.com/Happyesss/careerlive---alpha/services/feedback"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
)

// FeedbackSvc is wired at startup.
var FeedbackSvc feedbackService.FeedbackService

// SubmitFeedback records the post-session questionnaire; mentee only.
func SubmitFeedback(c *gin.Context) {
	var in feedbackService.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	menteeID := c.GetString(middleware.ContextUserID)
	fb, err := FeedbackSvc.Submit(c.Request.Context(), menteeID, in)
	if err != nil {
		switch {
		case errors.Is(err, feedbackService.ErrDuplicate):
			utils.JSONError(c, http.StatusConflict, "feedback already submitted for this meeting", "")
		case errors.Is(err, feedbackService.ErrInvalidRating):
			utils.JSONError(c, http.StatusBadRequest, "ratings must be between 1 and 10", "")
		case errors.Is(err, feedbackService.ErrUnknownMeeting):
			utils.JSONError(c, http.StatusNotFound, "no booking found for this meeting", "")
		case errors.Is(err, feedbackService.ErrNotParticipant):
			utils.JSONError(c, http.StatusForbidden, "not a participant of this meeting", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to submit feedback", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": fb})
}

// ListMentorFeedback returns the feedback left for the authenticated mentor.
func ListMentorFeedback(c *gin.Context) {
	mentorID := c.GetString(middleware.ContextUserID)
	feedbacks, err := FeedbackSvc.ListForMentor(c.Request.Context(), mentorID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list feedback", err.Error())
		return
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedbacks})
}
