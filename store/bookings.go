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

type BookingRepository struct {
	coll *mongo.Collection
}

func keyFilter(key models.BookingKey) bson.M {
	return bson.M{
		"treatmentName": key.TreatmentName,
		"date":          key.Date,
		"patient":       key.Patient,
	}
}

// Create inserts the booking unless one already exists for the same
// (treatmentName, date, patient). It reports whether a new document was
// written; when it was not, the existing booking is returned untouched.
func (r *BookingRepository) Create(ctx context.Context, booking models.Booking) (*models.Booking, bool, error) {
	booking.ID = primitive.NilObjectID
	filter := keyFilter(booking.Key())
	update := bson.M{"$setOnInsert": booking}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race against a concurrent insert of the same key.
			existing, findErr := findOne[models.Booking](ctx, r.coll, filter)
			if findErr != nil {
				return nil, false, fmt.Errorf("load conflicting booking: %w", findErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("upsert booking: %w", err)
	}

	if res.UpsertedID == nil {
		existing, err := findOne[models.Booking](ctx, r.coll, filter)
		if err != nil {
			return nil, false, fmt.Errorf("load existing booking: %w", err)
		}
		return existing, false, nil
	}

	id, ok := res.UpsertedID.(primitive.ObjectID)
	if !ok {
		return nil, false, fmt.Errorf("unexpected upserted id type %T", res.UpsertedID)
	}
	created, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("load created booking: %w", err)
	}
	return created, true, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return findOne[models.Booking](ctx, r.coll, bson.M{"_id": id})
}

func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	bookings, err := findAll[models.Booking](ctx, r.coll, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", date, err)
	}
	return bookings, nil
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	bookings, err := findAll[models.Booking](ctx, r.coll, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", email, err)
	}
	return bookings, nil
}

// MarkPaid records the client supplied transaction on the booking. The
// transaction is not checked against the payment gateway.
func (r *BookingRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string, amount float64) (models.WriteResult, error) {
	update := bson.M{"$set": bson.M{
		"paid":          true,
		"transactionId": transactionID,
		"amount":        amount,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("mark booking paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return updateResult(res), ErrNotFound
	}
	return updateResult(res), nil
}

// RemoveDuplicates deletes every booking but the oldest for each
// (treatmentName, date, patient) and returns how many were removed.
func (r *BookingRepository) RemoveDuplicates(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "treatmentName", Value: "$treatmentName"},
				{Key: "date", Value: "$date"},
				{Key: "patient", Value: "$patient"},
			}},
			{Key: "ids", Value: bson.D{{Key: "$push", Value: "$_id"}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "ids.1", Value: bson.D{{Key: "$exists", Value: true}}}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("find duplicate bookings: %w", err)
	}
	var groups []struct {
		IDs []interface{} `bson:"ids"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return 0, fmt.Errorf("decode duplicate bookings: %w", err)
	}

	var extra []interface{}
	for _, g := range groups {
		extra = append(extra, g.IDs[1:]...)
	}
	if len(extra) == 0 {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": extra}})
	if err != nil {
		return 0, fmt.Errorf("delete duplicate bookings: %w", err)
	}
	return res.DeletedCount, nil
}
