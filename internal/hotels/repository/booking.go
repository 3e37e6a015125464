package repository

import (
	"context"
	"fmt"
	"time"

	"rihla/pkg/config"
	"rihla/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BookingCollection = "bookings"

type BookingRepository interface {
	Create(ctx context.Context, booking *model.HotelBooking) error
	FindByUser(ctx context.Context, userID string) ([]*model.HotelBooking, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(BookingCollection),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.HotelBooking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create hotel booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.HotelBooking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotel bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.HotelBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode hotel bookings: %w", err)
	}
	return bookings, nil
}
