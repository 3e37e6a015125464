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

const CompanyCollection = "bus_companies"

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	FindByID(ctx context.Context, id string) (*model.Company, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.Company, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Company, error)
	Count(ctx context.Context) (int64, error)
}

type mongoCompanyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCompanyRepository(cfg *config.Config) CompanyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCompanyRepository{
		cfg:        cfg,
		collection: db.Collection(CompanyCollection),
	}
}

func (r *mongoCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	company.CreatedAt = now
	company.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *mongoCompanyRepository) FindByID(ctx context.Context, id string) (*model.Company, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var company model.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	return &company, nil
}

func (r *mongoCompanyRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Company, error) {
	if len(ids) == 0 {
		return map[string]*model.Company{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []*model.Company
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}

	byID := make(map[string]*model.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}
	return byID, nil
}

func (r *mongoCompanyRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Company, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []*model.Company
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}

	return companies, nil
}

func (r *mongoCompanyRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}
