package application

import (
	"context"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/errors"
)

type GymService struct {
	gyms   domain.GymStore
	users  domain.UserStore
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewGymService(gyms domain.GymStore, users domain.UserStore, tracer trace.Tracer, logger *logrus.Logger) *GymService {
	return &GymService{
		gyms:   gyms,
		users:  users,
		tracer: tracer,
		logger: logger,
	}
}

func (service *GymService) GetAll(ctx context.Context, filter domain.GymFilter, sortBy string) ([]RatedGym, error) {
	ctx, span := service.tracer.Start(ctx, "GymService.GetAll")
	defer span.End()

	gyms, err := service.gyms.GetAll(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rated := RateGyms(gyms)
	SortRatedGyms(rated, sortBy)
	return rated, nil
}

func (service *GymService) Get(ctx context.Context, id string) (*RatedGym, error) {
	ctx, span := service.tracer.Start(ctx, "GymService.Get")
	defer span.End()

	gym, err := service.gyms.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &RatedGym{Gym: gym, AverageRating: AverageRating(gym.Reviews)}, nil
}

func (service *GymService) Create(ctx context.Context, gym *domain.Gym) (*domain.Gym, error) {
	ctx, span := service.tracer.Start(ctx, "GymService.Create")
	defer span.End()

	domain.ApplyGymMasterUpgrade(gym)
	if err := domain.ValidateGym(gym); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := service.gyms.Create(ctx, gym)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	service.logger.WithField("gymId", created.ID).Info("gym created")
	return created, nil
}

func (service *GymService) Update(ctx context.Context, id string, fields map[string]interface{}) (*domain.Gym, error) {
	ctx, span := service.tracer.Start(ctx, "GymService.Update")
	defer span.End()

	existing, err := service.gyms.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := domain.ValidateGymFields(fields); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Ids, reviews and timestamps are store-managed.
	for _, key := range []string{"id", "_id", "reviews", "createdAt", "updatedAt"} {
		delete(fields, key)
	}

	_, nameTouched := fields["name"]
	_, equipmentTouched := fields["equipment"]

	updated := existing.Clone()
	if err := mapstructure.Decode(fields, updated); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if nameTouched || equipmentTouched {
		domain.ApplyGymMasterUpgrade(updated)
	}

	saved, err := service.gyms.Update(ctx, updated)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return saved, nil
}

func (service *GymService) Delete(ctx context.Context, id string) error {
	ctx, span := service.tracer.Start(ctx, "GymService.Delete")
	defer span.End()

	if err := service.gyms.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	// Reviews mirrored on users and favorites pointing here are left as
	// they are; see the dangling-references note in DESIGN.md.
	service.logger.WithField("gymId", id).Info("gym deleted")
	return nil
}

// AddReview records a review on both sides of the relation: the gym's
// embedded list (which enforces the one-review-per-user rule atomically)
// and the author's mirror list.
func (service *GymService) AddReview(ctx context.Context, gymID, userID string, rating int, comment string) (*RatedGym, error) {
	ctx, span := service.tracer.Start(ctx, "GymService.AddReview")
	defer span.End()

	if userID == "" || rating == 0 {
		return nil, errors.NewValidation("please provide userId and rating")
	}
	if err := domain.ValidateReview(rating, comment); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if _, err := service.users.Get(ctx, userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	gym, err := service.gyms.AddReview(ctx, gymID, domain.GymReview{
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	err = service.users.AppendReview(ctx, userID, domain.UserReview{
		GymID:     gym.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	})
	if err != nil {
		// The gym-side review is already recorded at this point.
		span.SetStatus(codes.Error, err.Error())
		service.logger.WithField("userId", userID).Warn("could not mirror review on user: ", err)
		return nil, err
	}

	service.logger.WithFields(logrus.Fields{"gymId": gym.ID, "userId": userID}).Info("review added")
	return &RatedGym{Gym: gym, AverageRating: AverageRating(gym.Reviews)}, nil
}
