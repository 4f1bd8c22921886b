package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/uyildiz/vehicle-maintenance/internal/db"
	"github.com/uyildiz/vehicle-maintenance/internal/maintenance"
	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// RecordHandler handles service record CRUD.
type RecordHandler struct {
	records  db.RecordCollection
	vehicles db.VehicleCollection
}

// NewRecordHandler creates a new service record handler.
func NewRecordHandler(records db.RecordCollection, vehicles db.VehicleCollection) *RecordHandler {
	return &RecordHandler{records: records, vehicles: vehicles}
}

// Collection handles /api/records.
func (h *RecordHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles /api/records/{id}.
func (h *RecordHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/records/")
	if id == "" {
		http.Error(w, "Record id required", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *RecordHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		records []models.ServiceRecord
		err     error
	)
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		records, err = h.records.ListRecordsByVehicle(r.Context(), vehicleID)
	} else {
		records, err = h.records.ListRecords(r.Context())
	}
	if err != nil {
		log.WithError(err).Error("failed to list service records")
		http.Error(w, "Failed to list records", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) create(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}
	// Reject records for vehicles that do not exist; a typo'd id would
	// otherwise silently create unattributable history.
	if _, err := h.vehicles.FindVehicleByID(r.Context(), record.VehicleID); err != nil {
		http.Error(w, "Unknown vehicle", http.StatusBadRequest)
		return
	}

	id, err := h.records.InsertRecord(r.Context(), record)
	if err != nil {
		log.WithError(err).Error("failed to insert service record")
		http.Error(w, "Failed to create record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *RecordHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.records.FindRecordByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	record, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}
	if err := h.records.UpdateRecord(r.Context(), id, record); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to update service record")
		http.Error(w, "Failed to update record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record updated"})
}

func (h *RecordHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.records.DeleteRecord(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to delete service record")
		http.Error(w, "Failed to delete record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted"})
}

// decodeRecord reads and validates a service record body, including the
// date format, writing the error response itself on failure.
func (h *RecordHandler) decodeRecord(w http.ResponseWriter, r *http.Request) (models.ServiceRecord, bool) {
	var record models.ServiceRecord

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return record, false
	}
	if err := json.Unmarshal(body, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return record, false
	}
	if err := record.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return record, false
	}
	if _, err := maintenance.ParseDate(record.ServiceDate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return record, false
	}
	return record, true
}
