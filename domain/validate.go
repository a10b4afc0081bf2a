package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"gym_service/errors"
)

var validate = validator.New()

const maxCommentLength = 500

// ValidateGym checks a full create payload and reports every violated field.
func ValidateGym(gym *Gym) error {
	err := validate.Struct(gym)
	if err == nil {
		return nil
	}
	return translate(err)
}

// ValidateUser checks a full create payload and reports every violated field.
func ValidateUser(user *User) error {
	err := validate.Struct(user)
	if err == nil {
		return nil
	}
	return translate(err)
}

// ValidateReview guards the embedded review payload before any store work.
func ValidateReview(rating int, comment string) error {
	var messages []string
	if rating < 1 || rating > 5 {
		messages = append(messages, "rating must be between 1 and 5")
	}
	if len(comment) > maxCommentLength {
		messages = append(messages, "comment cannot exceed 500 characters")
	}
	if len(messages) > 0 {
		return errors.NewValidation(messages...)
	}
	return nil
}

func translate(err error) error {
	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidation(err.Error())
	}
	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, fieldMessage(violation))
	}
	return errors.NewValidation(messages...)
}

func fieldMessage(violation validator.FieldError) string {
	field := violation.Field()
	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("please provide a value for %s", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, violation.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s", field, violation.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, violation.Param())
	case "email":
		return "please provide a valid email address"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidateGymFields checks only the fields present in a partial update
// payload. JSON numbers arrive as float64, arrays as []interface{}.
func ValidateGymFields(fields map[string]interface{}) error {
	var messages []string

	if raw, ok := fields["name"]; ok {
		name, isString := raw.(string)
		if !isString || len(name) < 2 || len(name) > 100 {
			messages = append(messages, "name must be a string between 2 and 100 characters")
		}
	}
	if raw, ok := fields["brand"]; ok {
		brand, isString := raw.(string)
		if !isString || brand == "" || len(brand) > 50 {
			messages = append(messages, "brand must be a non-empty string of at most 50 characters")
		}
	}
	if raw, ok := fields["equipment"]; ok {
		items, isList := raw.([]interface{})
		if !isList || len(items) == 0 {
			messages = append(messages, "please provide at least one equipment item")
		} else {
			for _, item := range items {
				if _, isString := item.(string); !isString {
					messages = append(messages, "equipment entries must be strings")
					break
				}
			}
		}
	}
	if raw, ok := fields["size"]; ok {
		size, isString := raw.(string)
		if !isString || GymSize(size).Ordinal() == 0 {
			messages = append(messages, "size must be small, medium, or large")
		}
	}
	if raw, ok := fields["hasShower"]; ok {
		if _, isBool := raw.(bool); !isBool {
			messages = append(messages, "hasShower must be a boolean")
		}
	}
	if raw, ok := fields["distance"]; ok {
		distance, isNumber := raw.(float64)
		if !isNumber || distance < 0 {
			messages = append(messages, "distance cannot be negative")
		}
	}
	if raw, ok := fields["coordinates"]; ok {
		coords, isMap := raw.(map[string]interface{})
		if !isMap {
			messages = append(messages, "coordinates must contain lat and lng")
		} else {
			if lat, isNumber := coords["lat"].(float64); !isNumber || lat < -90 || lat > 90 {
				messages = append(messages, "latitude must be between -90 and 90")
			}
			if lng, isNumber := coords["lng"].(float64); !isNumber || lng < -180 || lng > 180 {
				messages = append(messages, "longitude must be between -180 and 180")
			}
		}
	}

	if len(messages) > 0 {
		return errors.NewValidation(messages...)
	}
	return nil
}

// ValidateUserFields is the user-side counterpart of ValidateGymFields.
func ValidateUserFields(fields map[string]interface{}) error {
	var messages []string

	if raw, ok := fields["name"]; ok {
		name, isString := raw.(string)
		if !isString || len(name) < 2 || len(name) > 50 {
			messages = append(messages, "name must be a string between 2 and 50 characters")
		}
	}
	if raw, ok := fields["email"]; ok {
		email, isString := raw.(string)
		if !isString || validate.Var(email, "required,email") != nil {
			messages = append(messages, "please provide a valid email address")
		}
	}
	if raw, ok := fields["age"]; ok {
		age, isNumber := raw.(float64)
		if !isNumber || age < 13 || age > 120 {
			messages = append(messages, "age must be between 13 and 120")
		}
	}
	if raw, ok := fields["gender"]; ok {
		gender, isString := raw.(string)
		if !isString || (Gender(gender) != Male && Gender(gender) != Female && Gender(gender) != Other) {
			messages = append(messages, "gender must be male, female, or other")
		}
	}
	if raw, ok := fields["location"]; ok {
		location, isString := raw.(string)
		if !isString || location == "" || len(location) > 100 {
			messages = append(messages, "location must be a non-empty string of at most 100 characters")
		}
	}

	if len(messages) > 0 {
		return errors.NewValidation(messages...)
	}
	return nil
}
