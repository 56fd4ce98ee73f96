package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sittawut/doctors-portal/models"
)

type ServiceRepository struct {
	coll *mongo.Collection
}

func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	services, err := findAll[models.Service](ctx, r.coll, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (r *ServiceRepository) ListNames(ctx context.Context) ([]models.ServiceName, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	names, err := findAll[models.ServiceName](ctx, r.coll, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list service names: %w", err)
	}
	return names, nil
}

// Seed upserts services by name.
func (r *ServiceRepository) Seed(ctx context.Context, services []models.Service) (int64, error) {
	var upserted int64
	for _, s := range services {
		s.ID = primitive.NilObjectID
		res, err := r.coll.ReplaceOne(ctx, bson.M{"name": s.Name}, s, options.Replace().SetUpsert(true))
		if err != nil {
			return upserted, fmt.Errorf("seed service %s: %w", s.Name, err)
		}
		upserted += res.UpsertedCount + res.ModifiedCount
	}
	return upserted, nil
}
