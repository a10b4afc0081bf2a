package domain

import (
	"reflect"
	"testing"
)

func TestApplyGymMasterUpgrade(t *testing.T) {
	tests := []struct {
		name          string
		gym           Gym
		wantSize      GymSize
		wantShower    bool
		wantEquipment []string
	}{
		{
			name:          "exact name gets premium equipment",
			gym:           Gym{Name: "Gym Master"},
			wantSize:      SizeLarge,
			wantShower:    true,
			wantEquipment: []string{"Premium Chest Press", "Premium Treadmill", "Premium Rowing Machine"},
		},
		{
			name:          "case and whitespace insensitive",
			gym:           Gym{Name: "  gYm MaStEr  ", Size: SizeSmall},
			wantSize:      SizeLarge,
			wantShower:    true,
			wantEquipment: []string{"Premium Chest Press", "Premium Treadmill", "Premium Rowing Machine"},
		},
		{
			name:          "supplied equipment is preserved",
			gym:           Gym{Name: "gym master", Equipment: []string{"Treadmill"}},
			wantSize:      SizeLarge,
			wantShower:    true,
			wantEquipment: []string{"Treadmill"},
		},
		{
			name:          "other names untouched",
			gym:           Gym{Name: "Basic-Fit Leuven", Size: SizeSmall, Equipment: []string{"Treadmill"}},
			wantSize:      SizeSmall,
			wantShower:    false,
			wantEquipment: []string{"Treadmill"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gym := tt.gym
			ApplyGymMasterUpgrade(&gym)
			if gym.Size != tt.wantSize {
				t.Errorf("size = %q, want %q", gym.Size, tt.wantSize)
			}
			if gym.HasShower != tt.wantShower {
				t.Errorf("hasShower = %v, want %v", gym.HasShower, tt.wantShower)
			}
			if !reflect.DeepEqual(gym.Equipment, tt.wantEquipment) {
				t.Errorf("equipment = %v, want %v", gym.Equipment, tt.wantEquipment)
			}
		})
	}
}

func TestApplyGymMasterUpgradeIsIdempotent(t *testing.T) {
	gym := Gym{Name: "Gym Master"}
	ApplyGymMasterUpgrade(&gym)
	first := *gym.Clone()
	ApplyGymMasterUpgrade(&gym)
	if !reflect.DeepEqual(gym.Equipment, first.Equipment) || gym.Size != first.Size {
		t.Errorf("second application changed the gym: %+v vs %+v", gym, first)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@X.Com "); got != "a@x.com" {
		t.Errorf("NormalizeEmail = %q, want %q", got, "a@x.com")
	}
}
