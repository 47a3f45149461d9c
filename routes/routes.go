package routes

import (
	"net/http"
	"time"

	"github.com/Happyesss/careerlive---alpha/config"
	userRepo "github.com/Happyesss/careerlive---alpha/database/repository/user"
	"github.com/Happyesss/careerlive---alpha/handlers"
	"github.com/Happyesss/careerlive---alpha/middleware"
	"github.com/Happyesss/careerlive---alpha/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, users userRepo.UserRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, users)
	RegisterBookingRoutes(r, users)
	RegisterMeetingRoutes(r, users)
	RegisterFeedbackRoutes(r, users)
	RegisterDirectoryRoutes(r, users)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/logout", handlers.Logout)

		api.Use(middleware.JWTAuthMiddleware(users))
		api.GET("/me", handlers.Me)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints. The confirm
// and decline routes stay public: they are reached from emailed links and
// carry their own single-use tokens.
func RegisterBookingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/bookings")
	{
		api.GET("/:id/confirm", handlers.ConfirmBookingLink)
		api.GET("/:id/decline", handlers.DeclineBookingLink)

		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("", middleware.RequireRole(models.RoleMentee), handlers.CreateBooking)
		api.GET("", handlers.ListBookings)
		api.GET("/by-link", handlers.GetBookingByMeetingLink)
		api.GET("/:id", handlers.GetBooking)
		api.PUT("/:id", middleware.RequireRole(models.RoleMentor), handlers.UpdateBookingStatus)
		api.GET("/:id/transcript.pdf", handlers.DownloadTranscript)
	}

	mentor := r.Group("/api/mentor")
	{
		mentor.Use(middleware.JWTAuthMiddleware(users))
		mentor.POST("/schedule-meeting", middleware.RequireRole(models.RoleMentor), handlers.ScheduleMeeting)
	}

	transcribe := r.Group("/api/transcribe-recording")
	{
		transcribe.Use(middleware.JWTAuthMiddleware(users))
		transcribe.POST("", handlers.TranscribeRecording)
	}
}

// RegisterMeetingRoutes sets up the meetings view endpoints.
func RegisterMeetingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/meetings")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("/join", handlers.JoinMeeting)
		api.GET("", handlers.ListMeetings)
	}
}

// RegisterFeedbackRoutes sets up the post-session feedback endpoints.
func RegisterFeedbackRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/feedback")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("", middleware.RequireRole(models.RoleMentee), handlers.SubmitFeedback)
		api.GET("", middleware.RequireRole(models.RoleMentor), handlers.ListMentorFeedback)
	}
}

// RegisterDirectoryRoutes sets up the mentor and mentee directories.
func RegisterDirectoryRoutes(r *gin.Engine, users userRepo.UserRepository) {
	mentors := r.Group("/api/mentors")
	{
		mentors.Use(middleware.JWTAuthMiddleware(users))
		mentors.GET("/available", handlers.ListMentors)
	}

	menteesGroup := r.Group("/api/users")
	{
		menteesGroup.Use(middleware.JWTAuthMiddleware(users))
		menteesGroup.GET("/mentees", middleware.RequireRole(models.RoleMentor), handlers.ListMentees)
	}
}
