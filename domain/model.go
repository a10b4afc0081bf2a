package domain

import (
	"encoding/json"
	"io"
	"time"
)

type GymSize string

const (
	SizeSmall  GymSize = "small"
	SizeMedium GymSize = "medium"
	SizeLarge  GymSize = "large"
)

var sizeOrder = map[GymSize]int{
	SizeSmall:  1,
	SizeMedium: 2,
	SizeLarge:  3,
}

// Ordinal returns the sort rank of a size. Unknown sizes rank first.
func (s GymSize) Ordinal() int {
	return sizeOrder[s]
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat" validate:"min=-90,max=90"`
	Lng float64 `bson:"lng" json:"lng" validate:"min=-180,max=180"`
}

// GymReview is embedded in the gym document it belongs to.
type GymReview struct {
	UserID    string    `bson:"userId" json:"userId"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Gym struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Name        string       `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Brand       string       `bson:"brand" json:"brand" validate:"required,max=50"`
	Equipment   []string     `bson:"equipment" json:"equipment" validate:"required,min=1"`
	Size        GymSize      `bson:"size" json:"size" validate:"required,oneof=small medium large"`
	HasShower   bool         `bson:"hasShower" json:"hasShower"`
	Distance    float64      `bson:"distance" json:"distance" validate:"min=0"`
	Coordinates *Coordinates `bson:"coordinates" json:"coordinates" validate:"required"`
	Reviews     []GymReview  `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// UserReview mirrors a GymReview on the user that wrote it.
type UserReview struct {
	GymID     string    `bson:"gymId" json:"gymId"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type User struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	Name         string       `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Email        string       `bson:"email" json:"email" validate:"required,email"`
	Password     string       `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Age          int          `bson:"age" json:"age" validate:"required,min=13,max=120"`
	Gender       Gender       `bson:"gender" json:"gender" validate:"required,oneof=male female other"`
	Location     string       `bson:"location" json:"location" validate:"required,max=100"`
	FavoriteGyms []string     `bson:"favoriteGyms" json:"favoriteGyms"`
	Reviews      []UserReview `bson:"reviews" json:"reviews"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Sanitized returns a copy without the password, for responses.
func (user *User) Sanitized() *User {
	clone := user.Clone()
	clone.Password = ""
	return clone
}

func (gym *Gym) Clone() *Gym {
	clone := *gym
	clone.Equipment = append([]string(nil), gym.Equipment...)
	clone.Reviews = append([]GymReview(nil), gym.Reviews...)
	if gym.Coordinates != nil {
		coords := *gym.Coordinates
		clone.Coordinates = &coords
	}
	return &clone
}

func (user *User) Clone() *User {
	clone := *user
	clone.FavoriteGyms = append([]string(nil), user.FavoriteGyms...)
	clone.Reviews = append([]UserReview(nil), user.Reviews...)
	return &clone
}

func (gym *Gym) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(gym)
}

func (gym *Gym) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(gym)
}

func (user *User) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(user)
}

func (user *User) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(user)
}
