package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Happyesss/careerlive---alpha/middleware"
	transcriptService "github.com/Happyesss/careerlive---alpha/services/transcript"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
)

// TranscriptSvc is wired at startup.
var TranscriptSvc transcriptService.TranscriptService

// MaxRecordingSize bounds uploaded session recordings.
const MaxRecordingSize = 50 * 1024 * 1024

// TranscribeRecording accepts a session recording, transcribes it and binds
// the transcript to its booking.
func TranscribeRecording(c *gin.Context) {
	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio file is required", err.Error())
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, MaxRecordingSize))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to read audio file", err.Error())
		return
	}

	in := transcriptService.BindInput{
		BookingID:   c.PostForm("bookingId"),
		MeetingLink: c.PostForm("meetingLink"),
	}
	language := c.DefaultPostForm("language", "en-US")

	actorID := c.GetString(middleware.ContextUserID)
	booking, text, err := TranscriptSvc.TranscribeAndBind(c.Request.Context(), actorID, in, audio, language)
	if err != nil {
		transcriptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookingId":     booking.ID,
		"transcription": text,
	})
}

// DownloadTranscript serves the transcript PDF to a party of the booking.
func DownloadTranscript(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)
	bookingID := c.Param("id")

	pdf, err := TranscriptSvc.TranscriptPDF(c.Request.Context(), bookingID, actorID)
	if err != nil {
		transcriptError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="transcript-%s.pdf"`, bookingID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func transcriptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, transcriptService.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "no booking for this recording", "")
	case errors.Is(err, transcriptService.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "not authorized for this booking", "")
	case errors.Is(err, transcriptService.ErrNoTranscript):
		utils.JSONError(c, http.StatusNotFound, "no transcript available", "")
	case errors.Is(err, transcriptService.ErrEmptyAudio):
		utils.JSONError(c, http.StatusBadRequest, "audio recording is empty", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "transcription failed", err.Error())
	}
}
