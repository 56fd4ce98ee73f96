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

type ProjectRepository struct {
	coll *mongo.Collection
}

func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	projects, err := findAll[models.Project](ctx, r.coll, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return findOne[models.Project](ctx, r.coll, bson.M{"_id": id})
}

// Seed upserts projects by name.
func (r *ProjectRepository) Seed(ctx context.Context, projects []models.Project) (int64, error) {
	var upserted int64
	for _, p := range projects {
		p.ID = primitive.NilObjectID
		res, err := r.coll.ReplaceOne(ctx, bson.M{"name": p.Name}, p, options.Replace().SetUpsert(true))
		if err != nil {
			return upserted, fmt.Errorf("seed project %s: %w", p.Name, err)
		}
		upserted += res.UpsertedCount + res.ModifiedCount
	}
	return upserted, nil
}
