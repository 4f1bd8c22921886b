package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uyildiz/vehicle-maintenance/internal/db"
	"github.com/uyildiz/vehicle-maintenance/internal/maintenance"
	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// VehicleHandler handles vehicle CRUD and per-vehicle due queries.
type VehicleHandler struct {
	vehicles db.VehicleCollection
	records  db.RecordCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection, records db.RecordCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, records: records}
}

// Collection handles /api/vehicles.
func (h *VehicleHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles /api/vehicles/{id} and /api/vehicles/{id}/due.
func (h *VehicleHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/vehicles/")
	if rest == "" {
		http.Error(w, "Vehicle id required", http.StatusBadRequest)
		return
	}
	if id, ok := strings.CutSuffix(rest, "/due"); ok {
		h.due(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, rest)
	case http.MethodPut:
		h.update(w, r, rest)
	case http.MethodDelete:
		h.delete(w, r, rest)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *VehicleHandler) list(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListVehicles(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list vehicles")
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var vehicle models.Vehicle
	if err := json.Unmarshal(body, &vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := vehicle.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		log.WithError(err).Error("failed to insert vehicle")
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *VehicleHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	var vehicle models.Vehicle
	if err := json.Unmarshal(body, &vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := vehicle.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.vehicles.UpdateVehicle(r.Context(), id, vehicle); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to update vehicle")
		http.Error(w, "Failed to update vehicle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated"})
}

// delete removes the vehicle and cascades to its service records, so no
// history lingers pointing at a vehicle that no longer exists.
func (h *VehicleHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to delete vehicle")
		http.Error(w, "Failed to delete vehicle", http.StatusInternalServerError)
		return
	}

	removed, err := h.records.DeleteRecordsByVehicle(r.Context(), id)
	if err != nil {
		// The vehicle is already gone; surface the partial failure but keep
		// the response non-fatal.
		log.WithError(err).WithField("vehicle_id", id).Error("failed to cascade-delete service records")
	} else if removed > 0 {
		log.WithField("vehicle_id", id).WithField("records", removed).Info("cascade-deleted service records")
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

// due returns the engine verdict for every scheduled type of one vehicle.
func (h *VehicleHandler) due(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	records, err := h.records.ListRecordsByVehicle(r.Context(), id)
	if err != nil {
		log.WithError(err).Error("failed to list service records")
		http.Error(w, "Failed to list service records", http.StatusInternalServerError)
		return
	}

	today, lead, err := dueQueryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var items []maintenance.DueItem
	for _, typ := range maintenance.ScheduledTypes() {
		item, err := maintenance.ComputeDue(*vehicle, typ, records, today, lead)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if item != nil {
			items = append(items, *item)
		}
	}
	writeJSON(w, http.StatusOK, items)
}

// dueQueryParams reads today/lead_miles/lead_days query overrides, filling
// defaults from the clock and the engine's default lead window.
func dueQueryParams(r *http.Request) (string, maintenance.Lead, error) {
	today := r.URL.Query().Get("today")
	if today == "" {
		today = time.Now().UTC().Format("2006-01-02")
	}
	lead := maintenance.DefaultLead
	if v := r.URL.Query().Get("lead_miles"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return "", lead, err
		}
		lead.Miles = n
	}
	if v := r.URL.Query().Get("lead_days"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return "", lead, err
		}
		lead.Days = n
	}
	return today, lead, nil
}
