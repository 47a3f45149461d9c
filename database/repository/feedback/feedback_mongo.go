package feedbackRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Happyesss/careerlive---alpha/database"
	"github.com/Happyesss/careerlive---alpha/models"
	"github.com/Happyesss/careerlive---alpha/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrDuplicateFeedback is returned when a mentee submits feedback twice for
// the same meeting.
var ErrDuplicateFeedback = errors.New("feedback already submitted for this meeting")

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo creates a new instance of FeedbackRepository using MongoDB.
func NewMongoFeedbackRepo() FeedbackRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("feedbacks")
	repo := &MongoFeedbackRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// unique (meetingId, menteeId) index enforces one feedback per mentee per
// meeting at the storage layer.
func (r *MongoFeedbackRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "meetingId", Value: 1}, {Key: "menteeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "mentorId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new feedback document.
func (r *MongoFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	feedback.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, feedback); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateFeedback
		}
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetByMeetingAndMentee retrieves the feedback a mentee left for a meeting.
func (r *MongoFeedbackRepo) GetByMeetingAndMentee(ctx context.Context, meetingID, menteeID string) (*models.Feedback, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var fb models.Feedback
	filter := bson.M{"meetingId": meetingID, "menteeId": menteeID}
	if err := r.coll.FindOne(ctx, filter).Decode(&fb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	return &fb, nil
}

// ListByMentor retrieves all feedback left for a mentor, newest first.
func (r *MongoFeedbackRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Feedback, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"mentorId": mentorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve feedback for mentor %s: %w", mentorID, err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	for cursor.Next(ctx) {
		var fb models.Feedback
		if err := cursor.Decode(&fb); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, nil
}
