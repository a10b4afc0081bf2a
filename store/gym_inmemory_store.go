package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
)

// GymInMemoryStore is the fallback used when the database is unreachable at
// startup. Ids are monotonic per process run ("gym1", "gym2", ...) and any
// id string is syntactically acceptable, so this store never reports
// InvalidIDError. The slice keeps insertion order, which the query engine
// relies on for stable tie-breaking.
type GymInMemoryStore struct {
	mu     sync.RWMutex
	gyms   []*domain.Gym
	nextID int
	tracer trace.Tracer
}

func NewGymInMemoryStore(seed []*domain.Gym, nextID int, tracer trace.Tracer) domain.GymStore {
	return &GymInMemoryStore{
		gyms:   seed,
		nextID: nextID,
		tracer: tracer,
	}
}

func (store *GymInMemoryStore) Create(ctx context.Context, gym *domain.Gym) (*domain.Gym, error) {
	_, span := store.tracer.Start(ctx, "GymInMemoryStore.Create")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	now := time.Now()
	gym.ID = fmt.Sprintf("gym%d", store.nextID)
	store.nextID++
	gym.CreatedAt = now
	gym.UpdatedAt = now
	if gym.Reviews == nil {
		gym.Reviews = []domain.GymReview{}
	}

	store.gyms = append(store.gyms, gym.Clone())
	return gym, nil
}

func (store *GymInMemoryStore) Get(ctx context.Context, id string) (*domain.Gym, error) {
	_, span := store.tracer.Start(ctx, "GymInMemoryStore.Get")
	defer span.End()

	store.mu.RLock()
	defer store.mu.RUnlock()

	index := store.indexOf(id)
	if index < 0 {
		span.SetStatus(codes.Error, "gym not found")
		return nil, errors.NewNotFound("gym")
	}
	return store.gyms[index].Clone(), nil
}

func (store *GymInMemoryStore) GetAll(ctx context.Context, filter domain.GymFilter) ([]*domain.Gym, error) {
	_, span := store.tracer.Start(ctx, "GymInMemoryStore.GetAll")
	defer span.End()

	store.mu.RLock()
	defer store.mu.RUnlock()

	results := make([]*domain.Gym, 0, len(store.gyms))
	for _, gym := range store.gyms {
		if filter.Matches(gym) {
			results = append(results, gym.Clone())
		}
	}
	return results, nil
}

func (store *GymInMemoryStore) Update(ctx context.Context, gym *domain.Gym) (*domain.Gym, error) {
	_, span := store.tracer.Start(ctx, "GymInMemoryStore.Update")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(gym.ID)
	if index < 0 {
		span.SetStatus(codes.Error, "gym not found")
		return nil, errors.NewNotFound("gym")
	}

	gym.CreatedAt = store.gyms[index].CreatedAt
	gym.UpdatedAt = time.Now()
	store.gyms[index] = gym.Clone()
	return gym, nil
}

func (store *GymInMemoryStore) Delete(ctx context.Context, id string) error {
	_, span := store.tracer.Start(ctx, "GymInMemoryStore.Delete")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(id)
	if index < 0 {
		span.SetStatus(codes.Error, "gym not found")
		return errors.NewNotFound("gym")
	}
	store.gyms = append(store.gyms[:index], store.gyms[index+1:]...)
	return nil
}

// AddReview holds the write lock across the duplicate check and the append,
// so of two racing identical requests exactly one succeeds.
func (store *GymInMemoryStore) AddReview(ctx context.Context, gymID string, review domain.GymReview) (*domain.Gym, error) {
	_, span := store.tracer.Start(ctx, "GymInMemoryStore.AddReview")
	defer span.End()

	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(gymID)
	if index < 0 {
		span.SetStatus(codes.Error, "gym not found")
		return nil, errors.NewNotFound("gym")
	}

	gym := store.gyms[index]
	for _, existing := range gym.Reviews {
		if existing.UserID == review.UserID {
			span.SetStatus(codes.Error, "duplicate review")
			return nil, errors.NewConflict("you have already reviewed this gym")
		}
	}

	gym.Reviews = append(gym.Reviews, review)
	gym.UpdatedAt = time.Now()
	return gym.Clone(), nil
}

func (store *GymInMemoryStore) indexOf(id string) int {
	for i, gym := range store.gyms {
		if gym.ID == id {
			return i
		}
	}
	return -1
}
