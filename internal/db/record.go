package db

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// MongoRecordCollection implements RecordCollection for MongoDB.
type MongoRecordCollection struct {
	Collection *mongo.Collection
}

// InsertRecord inserts a service record and returns its id.
func (c *MongoRecordCollection) InsertRecord(ctx context.Context, record models.ServiceRecord) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	if _, err := c.Collection.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID.Hex(), nil
}

// ListRecords returns every stored service record. Corrupt collections
// degrade to an empty result, same as vehicles.
func (c *MongoRecordCollection) ListRecords(ctx context.Context) ([]models.ServiceRecord, error) {
	return c.list(ctx, bson.M{})
}

// ListRecordsByVehicle returns the service history of one vehicle.
func (c *MongoRecordCollection) ListRecordsByVehicle(ctx context.Context, vehicleID string) ([]models.ServiceRecord, error) {
	return c.list(ctx, bson.M{"vehicle_id": vehicleID})
}

func (c *MongoRecordCollection) list(ctx context.Context, filter bson.M) ([]models.ServiceRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.ServiceRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.WithError(err).Error("corrupt service record collection, returning empty set")
		return []models.ServiceRecord{}, nil
	}
	return records, nil
}

// FindRecordByID finds a service record by its ID.
func (c *MongoRecordCollection) FindRecordByID(ctx context.Context, id string) (*models.ServiceRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record ID: %w", err)
	}
	var record models.ServiceRecord
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("record not found")
		}
		return nil, err
	}
	return &record, nil
}

// UpdateRecord updates a service record by its ID.
func (c *MongoRecordCollection) UpdateRecord(ctx context.Context, id string, record models.ServiceRecord) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}
	record.ID = objectID
	record.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": record})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("record not found")
	}
	return nil
}

// DeleteRecord deletes a service record by its ID.
func (c *MongoRecordCollection) DeleteRecord(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("record not found")
	}
	return nil
}

// DeleteRecordsByVehicle deletes every record belonging to a vehicle and
// returns how many were removed. Called when a vehicle is deleted so its
// history does not linger unattributable.
func (c *MongoRecordCollection) DeleteRecordsByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
