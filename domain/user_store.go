package domain

import "context"

type UserStore interface {
	Create(ctx context.Context, user *User) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	Delete(ctx context.Context, id string) error
	// AddFavorite rejects duplicates atomically.
	AddFavorite(ctx context.Context, userID, gymID string) (*User, error)
	// AppendReview mirrors a gym review onto the user that wrote it.
	AppendReview(ctx context.Context, userID string, review UserReview) error
}
