package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle represents a tracked vehicle.
type Vehicle struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nickname       string             `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Make           string             `bson:"make" json:"make"`
	Model          string             `bson:"model" json:"model"`
	Year           int                `bson:"year" json:"year"`
	CurrentMileage int                `bson:"current_mileage" json:"current_mileage"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Display returns the label used for the vehicle across every view:
// "{nickname • }{year} {make} {model}".
func (v Vehicle) Display() string {
	if v.Nickname != "" {
		return fmt.Sprintf("%s • %d %s %s", v.Nickname, v.Year, v.Make, v.Model)
	}
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

// Validate checks that the vehicle fields are sound.
func (v Vehicle) Validate() error {
	if v.Make == "" || v.Model == "" {
		return fmt.Errorf("make and model are required")
	}
	if v.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	if v.CurrentMileage < 0 {
		return fmt.Errorf("current mileage cannot be negative")
	}
	return nil
}
