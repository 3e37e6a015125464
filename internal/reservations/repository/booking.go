package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reserrors "rihla/internal/reservations/errors"
	"rihla/pkg/config"
	mongotx "rihla/pkg/db/mongo"
	"rihla/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BookingCollection = "bus_ticket_bookings"

type BookingRepository interface {
	Create(ctx context.Context, booking *model.TicketBooking) error
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.TicketBooking, error)
	FindByUser(ctx context.Context, userID string) ([]*model.TicketBooking, error)
	SetStatus(ctx context.Context, id, status string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(BookingCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds the call unless it already runs inside a transaction,
// whose session context must not be replaced.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.TicketBooking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create ticket booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*model.TicketBooking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.TicketBooking
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find ticket booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.TicketBooking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find ticket bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.TicketBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode ticket bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) SetStatus(ctx context.Context, id, status string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrBookingNotFound
	}
	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
