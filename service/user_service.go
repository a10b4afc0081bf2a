package application

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
)

// GymRef is the short gym reference attached to resolved user views.
type GymRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

type UserReviewView struct {
	GymID     string  `json:"gymId"`
	Gym       *GymRef `json:"gym,omitempty"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// UserProfile is the single-user view: favorites resolved to gym references
// and reviews annotated with the gym they describe. Dangling favorite ids
// are dropped from this view only; the stored record keeps them.
type UserProfile struct {
	*domain.User
	FavoriteGyms []GymRef         `json:"favoriteGyms"`
	Reviews      []UserReviewView `json:"reviews"`
}

type UserService struct {
	users  domain.UserStore
	gyms   domain.GymStore
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewUserService(users domain.UserStore, gyms domain.GymStore, tracer trace.Tracer, logger *logrus.Logger) *UserService {
	return &UserService{
		users:  users,
		gyms:   gyms,
		tracer: tracer,
		logger: logger,
	}
}

func (service *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Create")
	defer span.End()

	user.Email = domain.NormalizeEmail(user.Email)
	if err := domain.ValidateUser(user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if _, err := service.users.GetByEmail(ctx, user.Email); err == nil {
		span.SetStatus(codes.Error, "duplicate email")
		return nil, errors.NewConflict("email already exists, please use a different email address")
	}

	created, err := service.users.Create(ctx, user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	service.logger.WithField("userId", created.ID).Info("user created")
	return created.Sanitized(), nil
}

func (service *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetAll")
	defer span.End()

	users, err := service.users.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sanitized := make([]*domain.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}
	return sanitized, nil
}

func (service *UserService) Get(ctx context.Context, id string) (*UserProfile, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Get")
	defer span.End()

	user, err := service.users.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	profile := &UserProfile{
		User:         user.Sanitized(),
		FavoriteGyms: []GymRef{},
		Reviews:      []UserReviewView{},
	}

	for _, gymID := range user.FavoriteGyms {
		gym, err := service.gyms.Get(ctx, gymID)
		if err != nil {
			continue
		}
		profile.FavoriteGyms = append(profile.FavoriteGyms, GymRef{ID: gym.ID, Name: gym.Name, Brand: gym.Brand})
	}

	for _, review := range user.Reviews {
		view := UserReviewView{
			GymID:     review.GymID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if gym, err := service.gyms.Get(ctx, review.GymID); err == nil {
			view.Gym = &GymRef{ID: gym.ID, Name: gym.Name, Brand: gym.Brand}
		}
		profile.Reviews = append(profile.Reviews, view)
	}

	return profile, nil
}

func (service *UserService) Update(ctx context.Context, id string, fields map[string]interface{}) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Update")
	defer span.End()

	// Password changes do not go through this operation.
	delete(fields, "password")
	for _, key := range []string{"id", "_id", "favoriteGyms", "reviews", "createdAt", "updatedAt"} {
		delete(fields, key)
	}

	existing, err := service.users.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := domain.ValidateUserFields(fields); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if raw, ok := fields["email"]; ok {
		email := domain.NormalizeEmail(raw.(string))
		fields["email"] = email
		if email != existing.Email {
			if _, err := service.users.GetByEmail(ctx, email); err == nil {
				span.SetStatus(codes.Error, "duplicate email")
				return nil, errors.NewConflict("email already exists, please use a different email address")
			}
		}
	}

	updated := existing.Clone()
	if err := mapstructure.Decode(fields, updated); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	saved, err := service.users.Update(ctx, updated)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return saved.Sanitized(), nil
}

func (service *UserService) Delete(ctx context.Context, id string) error {
	ctx, span := service.tracer.Start(ctx, "UserService.Delete")
	defer span.End()

	if err := service.users.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	// Reviews this user already left on gyms stay there; see DESIGN.md.
	service.logger.WithField("userId", id).Info("user deleted")
	return nil
}

func (service *UserService) AddFavorite(ctx context.Context, userID, gymID string) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.AddFavorite")
	defer span.End()

	if gymID == "" {
		return nil, errors.NewValidation("please provide gymId")
	}

	if _, err := service.gyms.Get(ctx, gymID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	user, err := service.users.AddFavorite(ctx, userID, gymID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	service.logger.WithFields(logrus.Fields{"userId": userID, "gymId": gymID}).Info("favorite added")
	return user.Sanitized(), nil
}
