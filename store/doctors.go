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

type DoctorRepository struct {
	coll *mongo.Collection
}

func (r *DoctorRepository) Create(ctx context.Context, doctor models.Doctor) (models.WriteResult, error) {
	doctor.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, doctor)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("insert doctor: %w", err)
	}
	return models.WriteResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := findAll[models.Doctor](ctx, r.coll, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) DeleteByEmail(ctx context.Context, email string) (models.WriteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("delete doctor %s: %w", email, err)
	}
	return models.WriteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Seed upserts doctors by email.
func (r *DoctorRepository) Seed(ctx context.Context, doctors []models.Doctor) (int64, error) {
	var upserted int64
	for _, d := range doctors {
		d.ID = primitive.NilObjectID
		res, err := r.coll.ReplaceOne(ctx, bson.M{"email": d.Email}, d, options.Replace().SetUpsert(true))
		if err != nil {
			return upserted, fmt.Errorf("seed doctor %s: %w", d.Email, err)
		}
		upserted += res.UpsertedCount + res.ModifiedCount
	}
	return upserted, nil
}
