package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogerrors "rihla/internal/catalog/errors"
	"rihla/pkg/config"
	"rihla/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TripCollection = "bus_trips"

type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	FindByID(ctx context.Context, id string) (*model.Trip, error)
	FindDepartures(ctx context.Context, routeIDs []string, dayStart, dayEnd time.Time, minAvailableSeats int) ([]*model.Trip, error)
	SetSeatInventory(ctx context.Context, tripID string, totalSeats int) error
	IncrementAvailableSeats(ctx context.Context, tripID string, delta int) error
}

type mongoTripRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTripRepository(cfg *config.Config) TripRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTripRepository{
		cfg:        cfg,
		collection: db.Collection(TripCollection),
	}
}

func (r *mongoTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	trip.CreatedAt = now
	trip.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *mongoTripRepository) FindByID(ctx context.Context, id string) (*model.Trip, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var trip model.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}

	return &trip, nil
}

// FindDepartures returns trips on the given routes departing inside
// [dayStart, dayEnd) with capacity for the requested passenger count.
func (r *mongoTripRepository) FindDepartures(ctx context.Context, routeIDs []string, dayStart, dayEnd time.Time, minAvailableSeats int) ([]*model.Trip, error) {
	if len(routeIDs) == 0 {
		return []*model.Trip{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"route_id":        bson.M{"$in": routeIDs},
		"departure_date":  bson.M{"$gte": dayStart, "$lt": dayEnd},
		"available_seats": bson.M{"$gte": minAvailableSeats},
	}

	opts := options.Find().SetSort(bson.D{{Key: "departure_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find departures: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*model.Trip
	if err = cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}

	return trips, nil
}

// SetSeatInventory overwrites both seat counters after a seat generation.
// This is a deliberate overwrite, not a merge.
func (r *mongoTripRepository) SetSeatInventory(ctx context.Context, tripID string, totalSeats int) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"total_seats":     totalSeats,
			"available_seats": totalSeats,
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": tripID}, update)
	if err != nil {
		return fmt.Errorf("failed to set seat inventory: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalogerrors.ErrTripNotFound
	}
	return nil
}

// IncrementAvailableSeats adjusts the cached availability counter by delta
// ($inc, so concurrent adjustments never lose updates).
func (r *mongoTripRepository) IncrementAvailableSeats(ctx context.Context, tripID string, delta int) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"available_seats": delta},
		"$set": bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": tripID}, update)
	if err != nil {
		return fmt.Errorf("failed to adjust available seats: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalogerrors.ErrTripNotFound
	}
	return nil
}
