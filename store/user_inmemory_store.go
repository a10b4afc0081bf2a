package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
)

type UserInMemoryStore struct {
	mu     sync.RWMutex
	users  []*domain.User
	nextID int
	tracer trace.Tracer
}

func NewUserInMemoryStore(seed []*domain.User, nextID int, tracer trace.Tracer) domain.UserStore {
	return &UserInMemoryStore{
		users:  seed,
		nextID: nextID,
		tracer: tracer,
	}
}

func (store *UserInMemoryStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.Create")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	user.Email = domain.NormalizeEmail(user.Email)
	for _, existing := range store.users {
		if existing.Email == user.Email {
			span.SetStatus(codes.Error, "duplicate email")
			return nil, errors.NewConflict("email already exists, please use a different email address")
		}
	}

	now := time.Now()
	user.ID = fmt.Sprintf("user%d", store.nextID)
	store.nextID++
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteGyms == nil {
		user.FavoriteGyms = []string{}
	}
	if user.Reviews == nil {
		user.Reviews = []domain.UserReview{}
	}

	store.users = append(store.users, user.Clone())
	return user, nil
}

func (store *UserInMemoryStore) Get(ctx context.Context, id string) (*domain.User, error) {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.Get")
	defer span.End()

	store.mu.RLock()
	defer store.mu.RUnlock()

	index := store.indexOf(id)
	if index < 0 {
		span.SetStatus(codes.Error, "user not found")
		return nil, errors.NewNotFound("user")
	}
	return store.users[index].Clone(), nil
}

func (store *UserInMemoryStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.GetAll")
	defer span.End()

	store.mu.RLock()
	defer store.mu.RUnlock()

	results := make([]*domain.User, 0, len(store.users))
	for _, user := range store.users {
		results = append(results, user.Clone())
	}
	// Newest first, matching the database-backed listing.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (store *UserInMemoryStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.GetByEmail")
	defer span.End()

	store.mu.RLock()
	defer store.mu.RUnlock()

	email = domain.NormalizeEmail(email)
	for _, user := range store.users {
		if user.Email == email {
			return user.Clone(), nil
		}
	}
	span.SetStatus(codes.Error, "user not found")
	return nil, errors.NewNotFound("user")
}

func (store *UserInMemoryStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.Update")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(user.ID)
	if index < 0 {
		span.SetStatus(codes.Error, "user not found")
		return nil, errors.NewNotFound("user")
	}

	user.Email = domain.NormalizeEmail(user.Email)
	for i, existing := range store.users {
		if i != index && existing.Email == user.Email {
			span.SetStatus(codes.Error, "duplicate email")
			return nil, errors.NewConflict("email already exists, please use a different email address")
		}
	}

	user.CreatedAt = store.users[index].CreatedAt
	user.UpdatedAt = time.Now()
	store.users[index] = user.Clone()
	return user, nil
}

func (store *UserInMemoryStore) Delete(ctx context.Context, id string) error {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.Delete")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(id)
	if index < 0 {
		span.SetStatus(codes.Error, "user not found")
		return errors.NewNotFound("user")
	}
	store.users = append(store.users[:index], store.users[index+1:]...)
	return nil
}

func (store *UserInMemoryStore) AddFavorite(ctx context.Context, userID, gymID string) (*domain.User, error) {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.AddFavorite")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(userID)
	if index < 0 {
		span.SetStatus(codes.Error, "user not found")
		return nil, errors.NewNotFound("user")
	}

	user := store.users[index]
	for _, favorite := range user.FavoriteGyms {
		if favorite == gymID {
			span.SetStatus(codes.Error, "duplicate favorite")
			return nil, errors.NewConflict("gym is already in favorites")
		}
	}

	user.FavoriteGyms = append(user.FavoriteGyms, gymID)
	user.UpdatedAt = time.Now()
	return user.Clone(), nil
}

func (store *UserInMemoryStore) AppendReview(ctx context.Context, userID string, review domain.UserReview) error {
	_, span := store.tracer.Start(ctx, "UserInMemoryStore.AppendReview")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(userID)
	if index < 0 {
		span.SetStatus(codes.Error, "user not found")
		return errors.NewNotFound("user")
	}

	user := store.users[index]
	user.Reviews = append(user.Reviews, review)
	user.UpdatedAt = time.Now()
	return nil
}

func (store *UserInMemoryStore) indexOf(id string) int {
	for i, user := range store.users {
		if user.ID == id {
			return i
		}
	}
	return -1
}
