package store

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
)

const USERS_COLLECTION = "users"

type UserMongoDBStore struct {
	users   *mongo.Collection
	tracer  trace.Tracer
	breaker *gobreaker.CircuitBreaker
}

func NewUserMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	users := client.Database(DATABASE).Collection(USERS_COLLECTION)

	// Unique index backs the case-insensitive email invariant; emails are
	// normalized to lowercase before every write.
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := users.Indexes().CreateOne(context.TODO(), indexModel); err != nil {
		log.Println("could not ensure unique email index:", err)
	}

	return &UserMongoDBStore{
		users:   users,
		tracer:  tracer,
		breaker: newBreaker("users-mongodb"),
	}
}

func (store *UserMongoDBStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Create")
	defer span.End()

	now := time.Now()
	user.ID = primitive.NewObjectID().Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteGyms == nil {
		user.FavoriteGyms = []string{}
	}
	if user.Reviews == nil {
		user.Reviews = []domain.UserReview{}
	}

	_, err := store.breaker.Execute(func() (interface{}, error) {
		return store.users.InsertOne(ctx, user)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.NewConflict("email already exists, please use a different email address")
		}
		return nil, err
	}
	return user, nil
}

func (store *UserMongoDBStore) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Get")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewInvalidID(id)
	}
	return store.filterOne(ctx, bson.M{"_id": id})
}

func (store *UserMongoDBStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.GetAll")
	defer span.End()

	result, err := store.breaker.Execute(func() (interface{}, error) {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := store.users.Find(ctx, bson.D{{}}, opts)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		return decodeUsers(ctx, cursor)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result.([]*domain.User), nil
}

func (store *UserMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.GetByEmail")
	defer span.End()

	return store.filterOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (store *UserMongoDBStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Update")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(user.ID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewInvalidID(user.ID)
	}

	user.UpdatedAt = time.Now()
	result, err := store.breaker.Execute(func() (interface{}, error) {
		return store.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.NewConflict("email already exists, please use a different email address")
		}
		return nil, err
	}
	if result.(*mongo.UpdateResult).MatchedCount == 0 {
		span.SetStatus(codes.Error, "user not found")
		return nil, errors.NewNotFound("user")
	}
	return user, nil
}

func (store *UserMongoDBStore) Delete(ctx context.Context, id string) error {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Delete")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.NewInvalidID(id)
	}

	result, err := store.breaker.Execute(func() (interface{}, error) {
		return store.users.DeleteOne(ctx, bson.M{"_id": id})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.(*mongo.DeleteResult).DeletedCount == 0 {
		span.SetStatus(codes.Error, "user not found")
		return errors.NewNotFound("user")
	}
	return nil
}

// AddFavorite uses the same conditional-update trick as gym reviews: the
// filter excludes users that already favorited the gym.
func (store *UserMongoDBStore) AddFavorite(ctx context.Context, userID, gymID string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.AddFavorite")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewInvalidID(userID)
	}

	if _, err := store.filterOne(ctx, bson.M{"_id": userID}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	result, err := store.breaker.Execute(func() (interface{}, error) {
		return store.users.UpdateOne(ctx,
			bson.M{"_id": userID, "favoriteGyms": bson.M{"$ne": gymID}},
			bson.M{
				"$push": bson.M{"favoriteGyms": gymID},
				"$set":  bson.M{"updatedAt": time.Now()},
			})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if result.(*mongo.UpdateResult).ModifiedCount == 0 {
		span.SetStatus(codes.Error, "duplicate favorite")
		return nil, errors.NewConflict("gym is already in favorites")
	}

	return store.filterOne(ctx, bson.M{"_id": userID})
}

func (store *UserMongoDBStore) AppendReview(ctx context.Context, userID string, review domain.UserReview) error {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.AppendReview")
	defer span.End()

	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.NewInvalidID(userID)
	}

	result, err := store.breaker.Execute(func() (interface{}, error) {
		return store.users.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$set":  bson.M{"updatedAt": time.Now()},
			})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.(*mongo.UpdateResult).MatchedCount == 0 {
		span.SetStatus(codes.Error, "user not found")
		return errors.NewNotFound("user")
	}
	return nil
}

func (store *UserMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.User, error) {
	// An absent document is a regular outcome, not a backend fault, so it
	// must not count toward tripping the breaker.
	result, err := store.breaker.Execute(func() (interface{}, error) {
		var user domain.User
		if err := store.users.FindOne(ctx, filter).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				return (*domain.User)(nil), nil
			}
			return nil, err
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	user := result.(*domain.User)
	if user == nil {
		return nil, errors.NewNotFound("user")
	}
	return user, nil
}

func decodeUsers(ctx context.Context, cursor *mongo.Cursor) (users []*domain.User, err error) {
	for cursor.Next(ctx) {
		var user domain.User
		err = cursor.Decode(&user)
		if err != nil {
			return
		}
		users = append(users, &user)
	}
	err = cursor.Err()
	return
}
