package application

import (
	"math"
	"sort"

	"gym_service/domain"
)

// RatedGym is a gym with its derived rating attached. The rating is computed
// fresh on every read and never written back to the store.
type RatedGym struct {
	*domain.Gym
	AverageRating float64 `json:"averageRating"`
}

// AverageRating is the arithmetic mean of the embedded ratings rounded to
// two decimals, 0 when there are no reviews.
func AverageRating(reviews []domain.GymReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*100) / 100
}

func RateGyms(gyms []*domain.Gym) []RatedGym {
	rated := make([]RatedGym, 0, len(gyms))
	for _, gym := range gyms {
		rated = append(rated, RatedGym{Gym: gym, AverageRating: AverageRating(gym.Reviews)})
	}
	return rated
}

// SortRatedGyms orders the result set in place. Every key is total and
// stable; ties keep the order the store returned. "afstand" and "grootte"
// are accepted aliases kept from the original query surface. Unrecognized
// keys fall back to the name ordering.
func SortRatedGyms(gyms []RatedGym, sortBy string) {
	switch sortBy {
	case "rating":
		sort.SliceStable(gyms, func(i, j int) bool {
			return gyms[i].AverageRating > gyms[j].AverageRating
		})
	case "distance", "afstand":
		sort.SliceStable(gyms, func(i, j int) bool {
			return gyms[i].Distance < gyms[j].Distance
		})
	case "size", "grootte":
		sort.SliceStable(gyms, func(i, j int) bool {
			return gyms[i].Size.Ordinal() < gyms[j].Size.Ordinal()
		})
	default:
		sort.SliceStable(gyms, func(i, j int) bool {
			return gyms[i].Name < gyms[j].Name
		})
	}
}
