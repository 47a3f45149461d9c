package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Happyesss/careerlive---alpha/config"
	"github.com/Happyesss/careerlive---alpha/cron"
	"github.com/Happyesss/careerlive---alpha/database"
	bookingRepoPkg "github.com/Happyesss/careerlive---alpha/database/repository/booking"
	feedbackRepoPkg "github.com/Happyesss/careerlive---alpha/database/repository/feedback"
	userRepoPkg "github.com/Happyesss/careerlive---alpha/database/repository/user"
	"github.com/Happyesss/careerlive---alpha/handlers"
	"github.com/Happyesss/careerlive---alpha/middleware"
	"github.com/Happyesss/careerlive---alpha/routes"
	"github.com/Happyesss/careerlive---alpha/services/booking"
	"github.com/Happyesss/careerlive---alpha/services/feedback"
	"github.com/Happyesss/careerlive---alpha/services/meeting"
	"github.com/Happyesss/careerlive---alpha/services/notification"
	"github.com/Happyesss/careerlive---alpha/services/transcript"
	"github.com/Happyesss/careerlive---alpha/services/user"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()

	// Task queue and delivery worker.
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	cron.InitDeliveryWorker()

	// Services.
	cache := utils.GetCacheClient()
	provisioner := meeting.NewRoomProvisioner(cache, config.AppConfig.BaseURL)
	registry := meeting.NewJoinRegistry(cache)
	dispatcher := notification.NewEmailDispatcher(queueClient)
	tokens := booking.NewActionTokenManager(cache)

	handlers.UserSvc = user.NewDefaultUserService(userRepo)
	handlers.BookingSvc = booking.NewDefaultBookingService(
		bookingRepo, userRepo, provisioner, dispatcher, tokens, config.AppConfig.BaseURL)
	handlers.MeetingSvc = meeting.NewDefaultMeetingService(bookingRepo, provisioner, registry)
	handlers.TranscriptSvc = transcript.NewDefaultTranscriptService(
		bookingRepo, transcript.NewGoogleTranscriber(), transcript.NewPlainPDFRenderer())
	handlers.FeedbackSvc = feedback.NewDefaultFeedbackService(feedbackRepo, bookingRepo)

	routes.RegisterRoutes(router, userRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
