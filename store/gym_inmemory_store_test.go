package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
)

func newTestGymStore() domain.GymStore {
	return NewGymInMemoryStore(SeedGyms(), SeedNextGymID, trace.NewNoopTracerProvider().Tracer("test"))
}

func newGym(name string) *domain.Gym {
	return &domain.Gym{
		Name:        name,
		Brand:       "Basic-Fit",
		Equipment:   []string{"Treadmill"},
		Size:        domain.SizeMedium,
		HasShower:   true,
		Distance:    1.5,
		Coordinates: &domain.Coordinates{Lat: 50.85, Lng: 4.35},
	}
}

func TestGymInMemoryStoreCreateAndGet(t *testing.T) {
	store := newTestGymStore()
	ctx := context.Background()

	created, err := store.Create(ctx, newGym("Test Gym"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "gym5" {
		t.Errorf("id = %q, want gym5 (counter resumes after seed)", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}
	if created.Reviews == nil || len(created.Reviews) != 0 {
		t.Errorf("reviews = %v, want empty slice", created.Reviews)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Test Gym" || got.Brand != "Basic-Fit" || got.Size != domain.SizeMedium {
		t.Errorf("round trip mismatch: %+v", got)
	}

	next, err := store.Create(ctx, newGym("Another Gym"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if next.ID != "gym6" {
		t.Errorf("second id = %q, want gym6", next.ID)
	}
}

func TestGymInMemoryStoreGetNotFound(t *testing.T) {
	store := newTestGymStore()

	_, err := store.Get(context.Background(), "gym999")
	if !errors.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestGymInMemoryStoreGetAllFilters(t *testing.T) {
	store := newTestGymStore()
	ctx := context.Background()

	tests := []struct {
		name   string
		filter domain.GymFilter
		want   int
	}{
		{"no filter returns all", domain.GymFilter{}, 4},
		{"showers", domain.GymFilter{Showers: true}, 3},
		{"brand substring", domain.GymFilter{Brand: "basic"}, 2},
		{"size", domain.GymFilter{Size: "large"}, 2},
		{"equipment", domain.GymFilter{EquipmentType: "pool"}, 1},
		{"combined", domain.GymFilter{Brand: "basic", Showers: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gyms, err := store.GetAll(ctx, tt.filter)
			if err != nil {
				t.Fatalf("GetAll: %v", err)
			}
			if len(gyms) != tt.want {
				t.Errorf("got %d gyms, want %d", len(gyms), tt.want)
			}
		})
	}
}

func TestGymInMemoryStoreUpdate(t *testing.T) {
	store := newTestGymStore()
	ctx := context.Background()

	existing, err := store.Get(ctx, "gym1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	existing.Name = "Renamed Gym"
	updated, err := store.Update(ctx, existing)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Renamed Gym" {
		t.Errorf("name = %q, want Renamed Gym", updated.Name)
	}
	if !updated.CreatedAt.Equal(existing.CreatedAt) {
		t.Error("update changed createdAt")
	}

	missing := newGym("Ghost")
	missing.ID = "gym999"
	if _, err := store.Update(ctx, missing); !errors.IsNotFound(err) {
		t.Errorf("update of missing gym: err = %v, want NotFoundError", err)
	}
}

func TestGymInMemoryStoreDelete(t *testing.T) {
	store := newTestGymStore()
	ctx := context.Background()

	if err := store.Delete(ctx, "gym3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "gym3"); !errors.IsNotFound(err) {
		t.Errorf("Get after Delete: err = %v, want NotFoundError", err)
	}
	if err := store.Delete(ctx, "gym3"); !errors.IsNotFound(err) {
		t.Errorf("second Delete: err = %v, want NotFoundError", err)
	}
}

func TestGymInMemoryStoreAddReview(t *testing.T) {
	store := newTestGymStore()
	ctx := context.Background()

	review := domain.GymReview{UserID: "user2", Rating: 3, Comment: "ok", CreatedAt: time.Now()}
	gym, err := store.AddReview(ctx, "gym1", review)
	if err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if len(gym.Reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(gym.Reviews))
	}

	// user1 already reviewed gym1 in the seed data.
	_, err = store.AddReview(ctx, "gym1", domain.GymReview{UserID: "user1", Rating: 5})
	if !errors.IsConflict(err) {
		t.Errorf("duplicate review: err = %v, want ConflictError", err)
	}

	_, err = store.AddReview(ctx, "gym999", review)
	if !errors.IsNotFound(err) {
		t.Errorf("missing gym: err = %v, want NotFoundError", err)
	}
}

func TestGymInMemoryStoreAddReviewRace(t *testing.T) {
	store := newTestGymStore()
	ctx := context.Background()
	review := domain.GymReview{UserID: "user2", Rating: 4, CreatedAt: time.Now()}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddReview(ctx, "gym3", review)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, conflicted := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.IsConflict(err):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != 1 {
		t.Errorf("racing reviews: %d succeeded, %d conflicted, want exactly one of each", succeeded, conflicted)
	}
}

func TestGymInMemoryStoreReturnsCopies(t *testing.T) {
	store := newTestGymStore()
	ctx := context.Background()

	first, err := store.Get(ctx, "gym1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	first.Name = "mutated"
	first.Equipment[0] = "mutated"

	second, err := store.Get(ctx, "gym1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if second.Name == "mutated" || second.Equipment[0] == "mutated" {
		t.Error("mutating a returned gym leaked into the store")
	}
}
