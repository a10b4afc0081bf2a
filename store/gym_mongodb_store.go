package store

import (
	"context"
	"regexp"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
)

const (
	DATABASE        = "gymdirectory"
	GYMS_COLLECTION = "gyms"
)

type GymMongoDBStore struct {
	gyms    *mongo.Collection
	tracer  trace.Tracer
	breaker *gobreaker.CircuitBreaker
}

func NewGymMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.GymStore {
	gyms := client.Database(DATABASE).Collection(GYMS_COLLECTION)
	return &GymMongoDBStore{
		gyms:    gyms,
		tracer:  tracer,
		breaker: newBreaker("gyms-mongodb"),
	}
}

func (store *GymMongoDBStore) Create(ctx context.Context, gym *domain.Gym) (*domain.Gym, error) {
	ctx, span := store.tracer.Start(ctx, "GymMongoDBStore.Create")
	defer span.End()

	now := time.Now()
	gym.ID = primitive.NewObjectID().Hex()
	gym.CreatedAt = now
	gym.UpdatedAt = now
	if gym.Reviews == nil {
		gym.Reviews = []domain.GymReview{}
	}

	_, err := store.breaker.Execute(func() (interface{}, error) {
		return store.gyms.InsertOne(ctx, gym)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return gym, nil
}

func (store *GymMongoDBStore) Get(ctx context.Context, id string) (*domain.Gym, error) {
	ctx, span := store.tracer.Start(ctx, "GymMongoDBStore.Get")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewInvalidID(id)
	}
	return store.filterOne(ctx, bson.M{"_id": id})
}

func (store *GymMongoDBStore) GetAll(ctx context.Context, filter domain.GymFilter) ([]*domain.Gym, error) {
	ctx, span := store.tracer.Start(ctx, "GymMongoDBStore.GetAll")
	defer span.End()

	// The list predicates are pushed down into the query; the result set
	// must match what GymFilter.Matches selects in fallback mode.
	query := bson.M{}
	if filter.Showers {
		query["hasShower"] = true
	}
	if filter.Brand != "" {
		query["brand"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Brand), Options: "i"}
	}
	if filter.Size != "" {
		query["size"] = filter.Size
	}
	if filter.EquipmentType != "" {
		query["equipment"] = bson.M{
			"$in": []primitive.Regex{{Pattern: regexp.QuoteMeta(filter.EquipmentType), Options: "i"}},
		}
	}

	result, err := store.breaker.Execute(func() (interface{}, error) {
		cursor, err := store.gyms.Find(ctx, query)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		return decodeGyms(ctx, cursor)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result.([]*domain.Gym), nil
}

func (store *GymMongoDBStore) Update(ctx context.Context, gym *domain.Gym) (*domain.Gym, error) {
	ctx, span := store.tracer.Start(ctx, "GymMongoDBStore.Update")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(gym.ID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewInvalidID(gym.ID)
	}

	gym.UpdatedAt = time.Now()
	result, err := store.breaker.Execute(func() (interface{}, error) {
		return store.gyms.ReplaceOne(ctx, bson.M{"_id": gym.ID}, gym)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if result.(*mongo.UpdateResult).MatchedCount == 0 {
		span.SetStatus(codes.Error, "gym not found")
		return nil, errors.NewNotFound("gym")
	}
	return gym, nil
}

func (store *GymMongoDBStore) Delete(ctx context.Context, id string) error {
	ctx, span := store.tracer.Start(ctx, "GymMongoDBStore.Delete")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.NewInvalidID(id)
	}

	result, err := store.breaker.Execute(func() (interface{}, error) {
		return store.gyms.DeleteOne(ctx, bson.M{"_id": id})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.(*mongo.DeleteResult).DeletedCount == 0 {
		span.SetStatus(codes.Error, "gym not found")
		return errors.NewNotFound("gym")
	}
	return nil
}

// AddReview relies on a conditional update: the filter excludes gyms the
// user already reviewed, so of two racing identical requests exactly one
// push matches and the other reports the conflict.
func (store *GymMongoDBStore) AddReview(ctx context.Context, gymID string, review domain.GymReview) (*domain.Gym, error) {
	ctx, span := store.tracer.Start(ctx, "GymMongoDBStore.AddReview")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(gymID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewInvalidID(gymID)
	}

	if _, err := store.filterOne(ctx, bson.M{"_id": gymID}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	result, err := store.breaker.Execute(func() (interface{}, error) {
		return store.gyms.UpdateOne(ctx,
			bson.M{"_id": gymID, "reviews.userId": bson.M{"$ne": review.UserID}},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$set":  bson.M{"updatedAt": time.Now()},
			})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if result.(*mongo.UpdateResult).ModifiedCount == 0 {
		span.SetStatus(codes.Error, "duplicate review")
		return nil, errors.NewConflict("you have already reviewed this gym")
	}

	return store.filterOne(ctx, bson.M{"_id": gymID})
}

func (store *GymMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Gym, error) {
	// An absent document is a regular outcome, not a backend fault, so it
	// must not count toward tripping the breaker.
	result, err := store.breaker.Execute(func() (interface{}, error) {
		var gym domain.Gym
		if err := store.gyms.FindOne(ctx, filter).Decode(&gym); err != nil {
			if err == mongo.ErrNoDocuments {
				return (*domain.Gym)(nil), nil
			}
			return nil, err
		}
		return &gym, nil
	})
	if err != nil {
		return nil, err
	}
	gym := result.(*domain.Gym)
	if gym == nil {
		return nil, errors.NewNotFound("gym")
	}
	return gym, nil
}

func decodeGyms(ctx context.Context, cursor *mongo.Cursor) (gyms []*domain.Gym, err error) {
	for cursor.Next(ctx) {
		var gym domain.Gym
		err = cursor.Decode(&gym)
		if err != nil {
			return
		}
		gyms = append(gyms, &gym)
	}
	err = cursor.Err()
	return
}
