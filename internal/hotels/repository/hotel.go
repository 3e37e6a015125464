package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	hotelerrors "rihla/internal/hotels/errors"
	"rihla/pkg/config"
	"rihla/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const HotelCollection = "hotels"

// HotelFilter narrows hotel listings. Zero values mean no constraint.
type HotelFilter struct {
	City     string
	MinStars int
}

type HotelRepository interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	Find(ctx context.Context, filter HotelFilter, limit int, offset int64) ([]*model.Hotel, error)
	Count(ctx context.Context, filter HotelFilter) (int64, error)
}

type mongoHotelRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoHotelRepository(cfg *config.Config) HotelRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHotelRepository{
		cfg:        cfg,
		collection: db.Collection(HotelCollection),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func buildHotelFilter(filter HotelFilter) bson.M {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = bson.M{"$regex": regexp.QuoteMeta(filter.City), "$options": "i"}
	}
	if filter.MinStars > 0 {
		query["stars"] = bson.M{"$gte": filter.MinStars}
	}
	return query
}

func (r *mongoHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if hotel.ID == "" {
		hotel.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	hotel.CreatedAt = now
	hotel.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, hotel); err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *mongoHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var hotel model.Hotel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelerrors.ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}
	return &hotel, nil
}

func (r *mongoHotelRepository) Find(ctx context.Context, filter HotelFilter, limit int, offset int64) ([]*model.Hotel, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "stars", Value: -1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildHotelFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*model.Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (r *mongoHotelRepository) Count(ctx context.Context, filter HotelFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildHotelFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}
	return count, nil
}
