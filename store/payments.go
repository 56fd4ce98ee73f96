package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sittawut/doctors-portal/models"
)

type PaymentRepository struct {
	coll *mongo.Collection
}

func (r *PaymentRepository) Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	payment.ID = primitive.NilObjectID
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert payment: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
