package domain

import "context"

// GymStore is the per-entity store contract. Two implementations exist, a
// MongoDB-backed one and an in-memory fallback, selected once at startup.
type GymStore interface {
	Create(ctx context.Context, gym *Gym) (*Gym, error)
	Get(ctx context.Context, id string) (*Gym, error)
	GetAll(ctx context.Context, filter GymFilter) ([]*Gym, error)
	Update(ctx context.Context, gym *Gym) (*Gym, error)
	Delete(ctx context.Context, id string) error
	// AddReview appends atomically with respect to the one-review-per-user
	// rule: of two racing identical calls exactly one succeeds.
	AddReview(ctx context.Context, gymID string, review GymReview) (*Gym, error)
}
