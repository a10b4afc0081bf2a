package store

import (
	"time"

	"gym_service/domain"
)

// Fallback-mode bootstrap dataset: two users and four gyms, the first two
// gyms carrying one review each. Counters resume after the seeded ids.

const (
	SeedNextGymID  = 5
	SeedNextUserID = 3
)

func SeedUsers() []*domain.User {
	now := time.Now()
	return []*domain.User{
		{
			ID:           "user1",
			Name:         "Jan Peeters",
			Email:        "jan.peeters@gmail.com",
			Password:     "password123",
			Age:          25,
			Gender:       domain.Male,
			Location:     "Brussel",
			FavoriteGyms: []string{},
			Reviews:      []domain.UserReview{},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "user2",
			Name:         "Marie Dubois",
			Email:        "marie.dubois@gmail.com",
			Password:     "password123",
			Age:          30,
			Gender:       domain.Female,
			Location:     "Antwerpen",
			FavoriteGyms: []string{},
			Reviews:      []domain.UserReview{},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

func SeedGyms() []*domain.Gym {
	now := time.Now()
	return []*domain.Gym{
		{
			ID:          "gym1",
			Name:        "Basic-Fit Brussel Centrum",
			Brand:       "Basic-Fit",
			Equipment:   []string{"Treadmill", "Chest Press", "Rowing Machine", "Dumbbells"},
			Size:        domain.SizeMedium,
			HasShower:   true,
			Distance:    2.5,
			Coordinates: &domain.Coordinates{Lat: 50.8503, Lng: 4.3517},
			Reviews: []domain.GymReview{
				{UserID: "user1", Rating: 4, Comment: "Good atmosphere and modern equipment!", CreatedAt: now},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "gym2",
			Name:        "Jims Antwerpen",
			Brand:       "Jims",
			Equipment:   []string{"Treadmill", "Leg Press", "Pull-up Bar", "Kettlebells"},
			Size:        domain.SizeLarge,
			HasShower:   true,
			Distance:    1.2,
			Coordinates: &domain.Coordinates{Lat: 51.2194, Lng: 4.4025},
			Reviews: []domain.GymReview{
				{UserID: "user2", Rating: 5, Comment: "Excellent facilities!", CreatedAt: now},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "gym3",
			Name:        "David Lloyd Gent",
			Brand:       "David Lloyd",
			Equipment:   []string{"Treadmill", "Chest Press", "Swimming Pool", "Spa"},
			Size:        domain.SizeLarge,
			HasShower:   true,
			Distance:    3.8,
			Coordinates: &domain.Coordinates{Lat: 51.0543, Lng: 3.7174},
			Reviews:     []domain.GymReview{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "gym4",
			Name:        "Basic-Fit Leuven",
			Brand:       "Basic-Fit",
			Equipment:   []string{"Treadmill", "Chest Press"},
			Size:        domain.SizeSmall,
			HasShower:   false,
			Distance:    5.0,
			Coordinates: &domain.Coordinates{Lat: 50.8798, Lng: 4.7005},
			Reviews:     []domain.GymReview{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
