package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	prepareForInsert(booking)
	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// ConditionalUpdate matches on id and version in one UpdateOne, so a stale
// writer matches nothing and the document is left untouched.
func (repo *MongoBookingRepo) ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, mutation models.BookingMutation) (int64, error) {
	filter := bson.M{"id": id, "version": expectedVersion}
	update := bson.M{
		"$set": mutationSetDoc(mutation),
		"$inc": bson.M{"version": 1},
	}
	result, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error updating booking %s: %w", id, err)
	}
	if result.MatchedCount == 1 {
		return expectedVersion + 1, nil
	}

	count, err := repo.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return 0, fmt.Errorf("error checking booking %s after missed update: %w", id, err)
	}
	if count == 0 {
		return 0, ErrNotFound
	}
	return 0, ErrVersionConflict
}

// ListByParticipant uses the clientId+status and providerId+status indexes.
func (repo *MongoBookingRepo) ListByParticipant(ctx context.Context, participantID string, status models.BookingStatus, limit int) ([]models.Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := repo.coll.Find(ctx, participantFilter(participantID, status), opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for %s: %w", participantID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for %s: %w", participantID, err)
	}
	return bookings, nil
}

func participantFilter(participantID string, status models.BookingStatus) bson.M {
	filter := bson.M{"$or": bson.A{
		bson.M{"clientId": participantID},
		bson.M{"providerId": participantID},
	}}
	if status != "" {
		filter["status"] = string(status)
	}
	return filter
}

func mutationSetDoc(m models.BookingMutation) bson.M {
	set := bson.M{}
	if m.Status != "" {
		set["status"] = m.Status
	}
	if m.ConfirmedAt != nil {
		set["confirmedAt"] = *m.ConfirmedAt
	}
	if m.StartedAt != nil {
		set["startedAt"] = *m.StartedAt
	}
	if m.CompletionRequestedAt != nil {
		set["completionRequestedAt"] = *m.CompletionRequestedAt
	}
	if m.CompletedAt != nil {
		set["completedAt"] = *m.CompletedAt
	}
	if m.CancelledAt != nil {
		set["cancelledAt"] = *m.CancelledAt
	}
	if m.LateFlag != nil {
		set["lateFlag"] = *m.LateFlag
	}
	if m.MinutesLate != nil {
		set["minutesLate"] = *m.MinutesLate
	}
	if m.CancelledBy != "" {
		set["cancelledBy"] = m.CancelledBy
	}
	if m.CancelledByRole != "" {
		set["cancelledByRole"] = m.CancelledByRole
	}
	if m.Evidence != nil {
		set["evidence"] = *m.Evidence
	}
	if !m.UpdatedAt.IsZero() {
		set["updatedAt"] = m.UpdatedAt
	}
	return set
}

func prepareForInsert(booking *models.Booking) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	if booking.Version == 0 {
		booking.Version = 1
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = booking.CreatedAt
	}
}
