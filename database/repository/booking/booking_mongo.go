package bookingRepo

import (
	"context"
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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByMeetingLink retrieves the booking bound to a meeting link, or
// (nil, nil) when the link is not associated with any booking.
func (r *MongoBookingRepo) GetByMeetingLink(ctx context.Context, meetingLink string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"meetingLink": meetingLink}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking by meeting link: %w", err)
	}
	return &booking, nil
}

// ListByMeetingLinks retrieves all bookings whose meeting link is in the
// given set.
func (r *MongoBookingRepo) ListByMeetingLinks(ctx context.Context, meetingLinks []string) ([]models.Booking, error) {
	if len(meetingLinks) == 0 {
		return nil, nil
	}
	filter := bson.M{"meetingLink": bson.M{"$in": meetingLinks}}
	return r.list(ctx, filter)
}

// ListByMentor retrieves bookings for which the user is the mentor, newest
// created first.
func (r *MongoBookingRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"mentorId": mentorID})
}

// ListByMentee retrieves bookings for which the user is the mentee, newest
// created first.
func (r *MongoBookingRepo) ListByMentee(ctx context.Context, menteeID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"menteeId": menteeID})
}

// ListConfirmedFor retrieves confirmed bookings where the user is either party.
func (r *MongoBookingRepo) ListConfirmedFor(ctx context.Context, userID string) ([]models.Booking, error) {
	filter := bson.M{
		"status": models.BookingStatusConfirmed,
		"$or": []bson.M{
			{"mentorId": userID},
			{"menteeId": userID},
		},
	}
	return r.list(ctx, filter)
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// TransitionStatus performs the status edge as a single conditional update:
// "set status=toStatus where id=X and status=fromStatus". Two racing
// transition attempts can therefore never both succeed; the loser observes
// zero matched documents and gets (nil, nil).
func (r *MongoBookingRepo) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string, set bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"status": toStatus, "updatedAt": time.Now()}
	for k, v := range set {
		update[k] = v
	}

	filter := bson.M{"id": id, "status": fromStatus}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": update}, opts).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to transition booking %s to %s: %w", id, toStatus, err)
	}
	return &booking, nil
}

// UpdateFields applies a partial update to a booking document.
func (r *MongoBookingRepo) UpdateFields(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// AttachTranscript binds the transcript text and PDF to the booking.
func (r *MongoBookingRepo) AttachTranscript(ctx context.Context, id, transcriptText string, transcriptPDF []byte) error {
	return r.UpdateFields(ctx, id, bson.M{
		"transcriptText": transcriptText,
		"transcriptPdf":  transcriptPDF,
	})
}
