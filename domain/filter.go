package domain

import "strings"

// GymFilter holds the optional list predicates, combined with logical AND.
// The zero value matches every gym.
type GymFilter struct {
	Showers       bool
	Brand         string
	Size          string
	EquipmentType string
}

// Matches evaluates the filter against a materialized gym record. The
// MongoDB store pushes the same predicates into its query; both paths must
// select the same set.
func (filter GymFilter) Matches(gym *Gym) bool {
	if filter.Showers && !gym.HasShower {
		return false
	}
	if filter.Brand != "" && !containsFold(gym.Brand, filter.Brand) {
		return false
	}
	if filter.Size != "" && string(gym.Size) != filter.Size {
		return false
	}
	if filter.EquipmentType != "" {
		found := false
		for _, item := range gym.Equipment {
			if containsFold(item, filter.EquipmentType) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
