package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
	"gym_service/store"
)

func newTestServices() (*GymService, *UserService) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	gyms := store.NewGymInMemoryStore(store.SeedGyms(), store.SeedNextGymID, tracer)
	users := store.NewUserInMemoryStore(store.SeedUsers(), store.SeedNextUserID, tracer)
	return NewGymService(gyms, users, tracer, logger), NewUserService(users, gyms, tracer, logger)
}

func validGym() *domain.Gym {
	return &domain.Gym{
		Name:        "Fit Gent",
		Brand:       "Fit",
		Equipment:   []string{"Treadmill"},
		Size:        domain.SizeSmall,
		Distance:    2.0,
		Coordinates: &domain.Coordinates{Lat: 51.05, Lng: 3.72},
	}
}

func TestGymServiceCreate(t *testing.T) {
	gyms, _ := newTestServices()

	created, err := gyms.Create(context.Background(), validGym())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("created gym has no id")
	}

	invalid := validGym()
	invalid.Name = "x"
	if _, err := gyms.Create(context.Background(), invalid); !errors.IsValidation(err) {
		t.Errorf("invalid gym: err = %v, want ValidationError", err)
	}
}

func TestGymServiceCreateGymMaster(t *testing.T) {
	gyms, _ := newTestServices()

	gym := validGym()
	gym.Name = "  GYM Master "
	gym.Equipment = nil
	gym.Size = domain.SizeSmall
	gym.HasShower = false

	created, err := gyms.Create(context.Background(), gym)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Size != domain.SizeLarge {
		t.Errorf("size = %q, want large", created.Size)
	}
	if !created.HasShower {
		t.Error("gym master must have showers")
	}
	if len(created.Equipment) == 0 {
		t.Error("gym master with no equipment should receive the premium set")
	}
}

func TestGymServiceGetAllSortsAndFilters(t *testing.T) {
	gyms, _ := newTestServices()
	ctx := context.Background()

	rated, err := gyms.GetAll(ctx, domain.GymFilter{Brand: "basic"}, "")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rated) != 2 {
		t.Fatalf("got %d gyms, want 2 Basic-Fit locations", len(rated))
	}
	if rated[0].Name != "Basic-Fit Brussel Centrum" {
		t.Errorf("default sort: first = %q, want name ascending", rated[0].Name)
	}

	bySize, err := gyms.GetAll(ctx, domain.GymFilter{}, "size")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if bySize[0].Size != domain.SizeSmall || bySize[len(bySize)-1].Size != domain.SizeLarge {
		t.Errorf("size sort out of order: first = %q, last = %q", bySize[0].Size, bySize[len(bySize)-1].Size)
	}
}

func TestGymServiceGetAttachesAverageRating(t *testing.T) {
	gyms, _ := newTestServices()

	// gym1 carries a single seeded rating of 4.
	rated, err := gyms.Get(context.Background(), "gym1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rated.AverageRating != 4 {
		t.Errorf("averageRating = %v, want 4", rated.AverageRating)
	}

	unrated, err := gyms.Get(context.Background(), "gym3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if unrated.AverageRating != 0 {
		t.Errorf("averageRating without reviews = %v, want 0", unrated.AverageRating)
	}
}

func TestGymServiceUpdate(t *testing.T) {
	gyms, _ := newTestServices()
	ctx := context.Background()

	updated, err := gyms.Update(ctx, "gym4", map[string]interface{}{
		"hasShower": true,
		"distance":  1.1,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.HasShower || updated.Distance != 1.1 {
		t.Errorf("partial update not applied: %+v", updated)
	}
	if updated.Name != "Basic-Fit Leuven" {
		t.Errorf("untouched field changed: name = %q", updated.Name)
	}

	if _, err := gyms.Update(ctx, "gym4", map[string]interface{}{"size": "gigantic"}); !errors.IsValidation(err) {
		t.Errorf("bad size: err = %v, want ValidationError", err)
	}
	if _, err := gyms.Update(ctx, "gym999", map[string]interface{}{"distance": 1.0}); !errors.IsNotFound(err) {
		t.Errorf("missing gym: err = %v, want NotFoundError", err)
	}
}

func TestGymServiceUpdateIgnoresProtectedFields(t *testing.T) {
	gyms, _ := newTestServices()

	updated, err := gyms.Update(context.Background(), "gym1", map[string]interface{}{
		"id":      "hijacked",
		"reviews": []interface{}{},
		"brand":   "Rebranded",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != "gym1" {
		t.Errorf("id changed to %q", updated.ID)
	}
	if len(updated.Reviews) != 1 {
		t.Errorf("reviews overwritten: %d left, want 1", len(updated.Reviews))
	}
	if updated.Brand != "Rebranded" {
		t.Errorf("brand = %q, want Rebranded", updated.Brand)
	}
}

func TestGymServiceRenameToGymMasterUpgrades(t *testing.T) {
	gyms, _ := newTestServices()

	updated, err := gyms.Update(context.Background(), "gym4", map[string]interface{}{"name": "Gym Master"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Size != domain.SizeLarge || !updated.HasShower {
		t.Errorf("rename to Gym Master: size = %q, hasShower = %v, want large with showers", updated.Size, updated.HasShower)
	}
}

func TestGymServiceAddReview(t *testing.T) {
	gyms, users := newTestServices()
	ctx := context.Background()

	rated, err := gyms.AddReview(ctx, "gym3", "user1", 5, "great pool")
	if err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if rated.AverageRating != 5 {
		t.Errorf("averageRating = %v, want 5", rated.AverageRating)
	}

	// The review is mirrored on the author.
	profile, err := users.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("users.Get: %v", err)
	}
	found := false
	for _, review := range profile.Reviews {
		if review.GymID == "gym3" {
			found = true
		}
	}
	if !found {
		t.Error("review not mirrored on the user profile")
	}

	if _, err := gyms.AddReview(ctx, "gym3", "user1", 3, ""); !errors.IsConflict(err) {
		t.Errorf("second review: err = %v, want ConflictError", err)
	}
}

func TestGymServiceAddReviewValidation(t *testing.T) {
	gyms, _ := newTestServices()
	ctx := context.Background()

	if _, err := gyms.AddReview(ctx, "gym3", "", 4, ""); !errors.IsValidation(err) {
		t.Errorf("missing userId: err = %v, want ValidationError", err)
	}
	if _, err := gyms.AddReview(ctx, "gym3", "user1", 0, ""); !errors.IsValidation(err) {
		t.Errorf("missing rating: err = %v, want ValidationError", err)
	}
	if _, err := gyms.AddReview(ctx, "gym3", "user1", 6, ""); !errors.IsValidation(err) {
		t.Errorf("rating out of range: err = %v, want ValidationError", err)
	}
	if _, err := gyms.AddReview(ctx, "gym3", "user999", 4, ""); !errors.IsNotFound(err) {
		t.Errorf("unknown author: err = %v, want NotFoundError", err)
	}
	if _, err := gyms.AddReview(ctx, "gym999", "user1", 4, ""); !errors.IsNotFound(err) {
		t.Errorf("unknown gym: err = %v, want NotFoundError", err)
	}
}

func TestGymServiceDeleteLeavesUserMirrors(t *testing.T) {
	gyms, users := newTestServices()
	ctx := context.Background()

	if _, err := gyms.AddReview(ctx, "gym3", "user1", 4, ""); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if err := gyms.Delete(ctx, "gym3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The mirror stays, now pointing at a gym that no longer exists. The
	// profile view keeps the raw gymId but cannot resolve the gym.
	profile, err := users.Get(ctx, "user1")
	if err != nil {
		t.Fatalf("users.Get: %v", err)
	}
	if len(profile.Reviews) != 1 {
		t.Fatalf("mirrored reviews = %d, want 1", len(profile.Reviews))
	}
	if profile.Reviews[0].GymID != "gym3" {
		t.Errorf("gymId = %q, want gym3", profile.Reviews[0].GymID)
	}
	if profile.Reviews[0].Gym != nil {
		t.Error("deleted gym should not resolve to a reference")
	}
}
