package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	catalogerrors "rihla/internal/catalog/errors"
	"rihla/pkg/config"
	"rihla/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RouteCollection = "bus_routes"

type RouteRepository interface {
	Create(ctx context.Context, route *model.Route) error
	FindByID(ctx context.Context, id string) (*model.Route, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.Route, error)
	FindByCities(ctx context.Context, origin, destination string) ([]*model.Route, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Route, error)
	Count(ctx context.Context) (int64, error)
}

type mongoRouteRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRouteRepository(cfg *config.Config) RouteRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRouteRepository{
		cfg:        cfg,
		collection: db.Collection(RouteCollection),
	}
}

func (r *mongoRouteRepository) Create(ctx context.Context, route *model.Route) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	route.CreatedAt = now
	route.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, route); err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

func (r *mongoRouteRepository) FindByID(ctx context.Context, id string) (*model.Route, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var route model.Route
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&route)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to find route: %w", err)
	}

	return &route, nil
}

func (r *mongoRouteRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Route, error) {
	if len(ids) == 0 {
		return map[string]*model.Route{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find routes: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []*model.Route
	if err = cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}

	byID := make(map[string]*model.Route, len(routes))
	for _, rt := range routes {
		byID[rt.ID] = rt
	}
	return byID, nil
}

// FindByCities matches origin and destination by case-insensitive substring,
// so "algiers" finds routes stored as "Algiers Centre".
func (r *mongoRouteRepository) FindByCities(ctx context.Context, origin, destination string) ([]*model.Route, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"origin_city":      bson.M{"$regex": regexp.QuoteMeta(origin), "$options": "i"},
		"destination_city": bson.M{"$regex": regexp.QuoteMeta(destination), "$options": "i"},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find routes by cities: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []*model.Route
	if err = cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}

	return routes, nil
}

func (r *mongoRouteRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Route, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "origin_city", Value: 1}, {Key: "destination_city", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find routes: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []*model.Route
	if err = cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}

	return routes, nil
}

func (r *mongoRouteRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count routes: %w", err)
	}
	return count, nil
}
