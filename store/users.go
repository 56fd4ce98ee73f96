package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sittawut/doctors-portal/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

// Upsert creates or refreshes the user keyed by email. Role is never touched.
func (r *UserRepository) Upsert(ctx context.Context, email string, req models.UpsertUserRequest) (models.WriteResult, error) {
	set := bson.M{"email": email}
	if req.Name != "" {
		set["name"] = req.Name
	}
	filter := bson.M{"email": email}
	update := bson.M{"$set": set}
	opts := options.Update().SetUpsert(true)

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted the user first; this one now matches.
		res, err = r.coll.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("upsert user %s: %w", email, err)
	}
	return updateResult(res), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email})
}

func (r *UserRepository) MakeAdmin(ctx context.Context, email string) (models.WriteResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("make %s admin: %w", email, err)
	}
	if res.MatchedCount == 0 {
		return updateResult(res), ErrNotFound
	}
	return updateResult(res), nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users, err := findAll[models.User](ctx, r.coll, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
