package repository

import (
	"context"
	"errors"
	"fmt"

	catalogerrors "rihla/internal/catalog/errors"
	"rihla/pkg/config"
	"rihla/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SeatCollection = "bus_seats"

type SeatRepository interface {
	InsertMany(ctx context.Context, seats []*model.Seat) error
	FindByTrip(ctx context.Context, tripID string) ([]*model.Seat, error)
	FindByTripAndNumber(ctx context.Context, tripID, seatNumber string) (*model.Seat, error)
	ClaimSeat(ctx context.Context, tripID, seatNumber string) (bool, error)
	ReleaseSeat(ctx context.Context, tripID, seatNumber string) (bool, error)
	CountAvailableByTrip(ctx context.Context, tripID string) (int64, error)
}

type mongoSeatRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSeatRepository(cfg *config.Config) SeatRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSeatRepository{
		cfg:        cfg,
		collection: db.Collection(SeatCollection),
	}
}

func (r *mongoSeatRepository) InsertMany(ctx context.Context, seats []*model.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	docs := make([]any, 0, len(seats))
	for _, s := range seats {
		docs = append(docs, s)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert seats: %w", err)
	}
	return nil
}

func (r *mongoSeatRepository) FindByTrip(ctx context.Context, tripID string) ([]*model.Seat, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Seat numbers are opaque strings; this is lexical order, display
	// ordering is up to the client.
	opts := options.Find().SetSort(bson.D{{Key: "seat_number", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"trip_id": tripID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}
	defer cursor.Close(ctx)

	var seats []*model.Seat
	if err = cursor.All(ctx, &seats); err != nil {
		return nil, fmt.Errorf("failed to decode seats: %w", err)
	}

	return seats, nil
}

func (r *mongoSeatRepository) FindByTripAndNumber(ctx context.Context, tripID, seatNumber string) (*model.Seat, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var seat model.Seat
	err := r.collection.FindOne(ctx, bson.M{"trip_id": tripID, "seat_number": seatNumber}).Decode(&seat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrSeatNotFound
		}
		return nil, fmt.Errorf("failed to find seat: %w", err)
	}

	return &seat, nil
}

// ClaimSeat flips the availability flag to false only if it is currently
// true. The conditional filter makes check-then-flip one atomic store
// operation: of two concurrent claims on the same seat exactly one
// matches, the other reports false.
func (r *mongoSeatRepository) ClaimSeat(ctx context.Context, tripID, seatNumber string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"trip_id":      tripID,
		"seat_number":  seatNumber,
		"is_available": true,
	}
	update := bson.M{"$set": bson.M{"is_available": false}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to claim seat: %w", err)
	}

	return result.ModifiedCount == 1, nil
}

// ReleaseSeat is the inverse guard: it frees the seat only if it is
// currently taken, so a duplicate release cannot make the counter drift.
func (r *mongoSeatRepository) ReleaseSeat(ctx context.Context, tripID, seatNumber string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"trip_id":      tripID,
		"seat_number":  seatNumber,
		"is_available": false,
	}
	update := bson.M{"$set": bson.M{"is_available": true}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release seat: %w", err)
	}

	return result.ModifiedCount == 1, nil
}

func (r *mongoSeatRepository) CountAvailableByTrip(ctx context.Context, tripID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"trip_id": tripID, "is_available": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count available seats: %w", err)
	}
	return count, nil
}
