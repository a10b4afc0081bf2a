package domain

import "strings"

const masterGymName = "gym master"

var premiumEquipment = []string{
	"Premium Chest Press",
	"Premium Treadmill",
	"Premium Rowing Machine",
}

// ApplyGymMasterUpgrade grants the premium treatment to gyms named
// "Gym Master" (any casing, surrounding whitespace ignored): large size,
// showers, and the premium equipment set when none was supplied.
// It runs on every create and on every update that touches name or equipment.
func ApplyGymMasterUpgrade(gym *Gym) {
	if strings.ToLower(strings.TrimSpace(gym.Name)) != masterGymName {
		return
	}
	gym.Size = SizeLarge
	gym.HasShower = true
	if len(gym.Equipment) == 0 {
		gym.Equipment = append([]string(nil), premiumEquipment...)
	}
}

// NormalizeEmail lowercases and trims the address so uniqueness checks are
// case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
