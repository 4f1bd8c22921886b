package db

import (
	"context"

	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	UpdateVehicleMileage(ctx context.Context, id string, mileage int) error
	DeleteVehicle(ctx context.Context, id string) error
}

// RecordCollection defines the interface for service record data operations.
type RecordCollection interface {
	InsertRecord(ctx context.Context, record models.ServiceRecord) (string, error)
	ListRecords(ctx context.Context) ([]models.ServiceRecord, error)
	ListRecordsByVehicle(ctx context.Context, vehicleID string) ([]models.ServiceRecord, error)
	FindRecordByID(ctx context.Context, id string) (*models.ServiceRecord, error)
	UpdateRecord(ctx context.Context, id string, record models.ServiceRecord) error
	DeleteRecord(ctx context.Context, id string) error
	DeleteRecordsByVehicle(ctx context.Context, vehicleID string) (int64, error)
}

// UserCollection defines the interface for user database operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}
