package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Happyesss/careerlive---alpha/config"
	"github.com/Happyesss/careerlive---alpha/models"
	"github.com/Happyesss/careerlive---alpha/services/notification"
	"github.com/Happyesss/careerlive---alpha/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"gopkg.in/gomail.v2"
)

// InitDeliveryWorker runs the async worker for email delivery and session
// reminders in the background.
func InitDeliveryWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, handleEmailTask)
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask)

	go monitorRedisConnection()

	// Start async worker with retry logic.
	go func() {
		log.Println("[DeliveryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DeliveryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DeliveryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// NewQueueClient creates the asynq client used by dispatchers to enqueue
// tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

func handleEmailTask(ctx context.Context, t *asynq.Task) error {
	var msg models.EmailMessage
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		return err
	}
	return sendEmail(msg)
}

func handleReminderTask(ctx context.Context, t *asynq.Task) error {
	var payload models.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	msg, err := notification.RenderReminder(payload)
	if err != nil {
		return err
	}
	return sendEmail(msg)
}

// sendEmail delivers a rendered message over SMTP.
func sendEmail(msg models.EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", config.AppConfig.EmailFrom)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPassword,
	)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("[DeliveryWorker] Failed to send email %q: %v", msg.Subject, err)
		return err
	}
	return nil
}

// monitorRedisConnection periodically pings the queue Redis so a broken
// broker shows up in the logs before tasks silently pile up.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DeliveryWorker] Redis ping failed: %v", err)
		}
		cancel()
	}
}
