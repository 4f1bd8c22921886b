package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRecord represents one completed maintenance service for a vehicle.
// Many records reference the same vehicle; together they form the history
// the scheduling engine works from.
type ServiceRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID   string             `bson:"vehicle_id" json:"vehicle_id"`
	Type        ServiceType        `bson:"type" json:"type"`
	ServiceDate string             `bson:"service_date" json:"service_date"` // YYYY-MM-DD
	Mileage     int                `bson:"mileage" json:"mileage"`
	CostCents   int64              `bson:"cost_cents,omitempty" json:"cost_cents,omitempty"`
	ShopName    string             `bson:"shop_name,omitempty" json:"shop_name,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks that the record fields are sound. The service date itself
// is validated by the maintenance package when the engine parses it.
func (r ServiceRecord) Validate() error {
	if r.VehicleID == "" {
		return fmt.Errorf("vehicle_id is required")
	}
	if !IsValidServiceType(r.Type) {
		return fmt.Errorf("unknown service type %q", r.Type)
	}
	if r.ServiceDate == "" {
		return fmt.Errorf("service_date is required")
	}
	if r.Mileage < 0 {
		return fmt.Errorf("mileage cannot be negative")
	}
	if r.CostCents < 0 {
		return fmt.Errorf("cost cannot be negative")
	}
	return nil
}

// FormatMoneyCents renders integer cents as a dollar amount with two
// decimals, e.g. 12345 -> "123.45". Empty string for zero keeps optional
// costs blank in exports.
func FormatMoneyCents(cents int64) string {
	if cents == 0 {
		return ""
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
