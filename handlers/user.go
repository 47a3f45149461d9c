package handlers

import (
	"net/http"

	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
)

// ListMentors returns the mentor directory shown to mentees when booking.
func ListMentors(c *gin.Context) {
	mentors, err := UserSvc.ListMentors(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list mentors", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// ListMentees returns all mentee accounts; mentor only.
func ListMentees(c *gin.Context) {
	mentees, err := UserSvc.ListMentees(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list mentees", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentees": mentees})
}
