package handlers

import (
	"errors"
	"html/template"
	"net/http"

	bookingService "github.com/Happyesss/careerlive---alpha/services/booking"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// actionPage is the browser-facing result of an emailed action link. Mentors
// land here from their inbox, so the response is a small HTML page rather
// than JSON.
var actionPage = template.Must(template.New("action").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; display: flex; justify-content: center; padding-top: 80px; background: #f5f5f5; }
    .card { background: #fff; border-radius: 8px; padding: 40px; max-width: 480px; text-align: center; box-shadow: 0 1px 4px rgba(0,0,0,.15); }
    h1 { font-size: 22px; color: {{.Color}}; }
    a.button { display: inline-block; margin-top: 16px; background: #1a73e8; color: #fff; padding: 10px 24px; text-decoration: none; border-radius: 4px; }
  </style>
</head>
<body>
  <div class="card">
    <h1>{{.Title}}</h1>
    <p>{{.Message}}</p>
    {{if .MeetingLink}}<a class="button" href="{{.MeetingLink}}">Open Meeting</a>{{end}}
  </div>
</body>
</html>
`))

type actionPageData struct {
	Title       string
	Message     string
	Color       string
	MeetingLink string
}

// ConfirmBookingLink handles the emailed confirm link.
func ConfirmBookingLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		renderActionPage(c, http.StatusBadRequest, actionPageData{
			Title:   "Invalid Link",
			Message: "This confirmation link is malformed.",
			Color:   "#d93025",
		})
		return
	}

	booking, err := BookingSvc.ConfirmWithToken(c.Request.Context(), c.Param("id"), token)
	if err != nil {
		renderActionError(c, err, "confirm")
		return
	}

	renderActionPage(c, http.StatusOK, actionPageData{
		Title:       "Session Confirmed",
		Message:     "The session is confirmed and both of you have received the meeting link by email.",
		Color:       "#188038",
		MeetingLink: booking.MeetingLink,
	})
}

// DeclineBookingLink handles the emailed decline link.
func DeclineBookingLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		renderActionPage(c, http.StatusBadRequest, actionPageData{
			Title:   "Invalid Link",
			Message: "This decline link is malformed.",
			Color:   "#d93025",
		})
		return
	}

	if _, err := BookingSvc.DeclineWithToken(c.Request.Context(), c.Param("id"), token); err != nil {
		renderActionError(c, err, "decline")
		return
	}

	renderActionPage(c, http.StatusOK, actionPageData{
		Title:   "Session Declined",
		Message: "The request was declined and the mentee has been notified.",
		Color:   "#d93025",
	})
}

func renderActionError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, bookingService.ErrTokenInvalid):
		renderActionPage(c, http.StatusBadRequest, actionPageData{
			Title:   "Invalid Link",
			Message: "This link is invalid or has expired. Ask the mentee to send a new request if needed.",
			Color:   "#d93025",
		})
	case errors.Is(err, bookingService.ErrTokenUsed), errors.Is(err, bookingService.ErrAlreadyProcessed):
		renderActionPage(c, http.StatusConflict, actionPageData{
			Title:   "Already Processed",
			Message: "This booking has already been confirmed or declined. No further action is needed.",
			Color:   "#e37400",
		})
	case errors.Is(err, bookingService.ErrNotFound):
		renderActionPage(c, http.StatusNotFound, actionPageData{
			Title:   "Booking Not Found",
			Message: "The booking behind this link no longer exists.",
			Color:   "#d93025",
		})
	default:
		utils.GetLogger().Error("Action link handling failed",
			zap.String("action", action), zap.Error(err))
		renderActionPage(c, http.StatusInternalServerError, actionPageData{
			Title:   "Something Went Wrong",
			Message: "We could not process this link right now. Please try again later.",
			Color:   "#d93025",
		})
	}
}

func renderActionPage(c *gin.Context, status int, data actionPageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := actionPage.Execute(c.Writer, data); err != nil {
		utils.GetLogger().Error("Failed to render action page", zap.Error(err))
	}
}
