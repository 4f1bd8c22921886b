package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uyildiz/vehicle-maintenance/internal/db"
	"github.com/uyildiz/vehicle-maintenance/internal/maintenance"
	"github.com/uyildiz/vehicle-maintenance/internal/models"
	"github.com/uyildiz/vehicle-maintenance/internal/reports"
	"github.com/uyildiz/vehicle-maintenance/pkg/export"
)

// ReportHandler serves the due report, spend reports and CSV export.
type ReportHandler struct {
	vehicles db.VehicleCollection
	records  db.RecordCollection
}

// NewReportHandler creates a new report handler.
func NewReportHandler(vehicles db.VehicleCollection, records db.RecordCollection) *ReportHandler {
	return &ReportHandler{vehicles: vehicles, records: records}
}

// Due handles GET /api/reports/due: every (vehicle, scheduled type) verdict
// partitioned by status.
func (h *ReportHandler) Due(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vehicles, records, ok := h.load(w, r)
	if !ok {
		return
	}
	today, lead, err := dueQueryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := reports.BuildDueReport(vehicles, records, today, lead)
	if err != nil {
		if errors.Is(err, maintenance.ErrInvalidDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("failed to build due report")
		http.Error(w, "Failed to build due report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Spend handles GET /api/reports/spend: summary KPIs plus per-type and
// per-month totals, filtered by optional vehicle_id/from/to.
func (h *ReportHandler) Spend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, records, ok := h.load(w, r)
	if !ok {
		return
	}
	filtered, err := reports.FilterRecords(records, spendFilter(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary":  reports.Summarize(filtered),
		"by_type":  reports.SpendByType(filtered),
		"by_month": reports.SpendByMonth(filtered),
	})
}

// Export handles GET /api/reports/export: the filtered records as a CSV
// download.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vehicles, records, ok := h.load(w, r)
	if !ok {
		return
	}
	filtered, err := reports.FilterRecords(records, spendFilter(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("service-records-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	rows := reports.CSVRows(vehicles, filtered)
	if err := export.WriteCSV(w, reports.CSVHeader, rows); err != nil {
		// Headers are gone by now; all that is left is to log it.
		log.WithError(err).Error("failed to write CSV export")
	}
}

func (h *ReportHandler) load(w http.ResponseWriter, r *http.Request) ([]models.Vehicle, []models.ServiceRecord, bool) {
	vehicles, err := h.vehicles.ListVehicles(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list vehicles")
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return nil, nil, false
	}
	records, err := h.records.ListRecords(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list service records")
		http.Error(w, "Failed to list records", http.StatusInternalServerError)
		return nil, nil, false
	}
	return vehicles, records, true
}

func spendFilter(r *http.Request) reports.SpendFilter {
	q := r.URL.Query()
	return reports.SpendFilter{
		VehicleID: q.Get("vehicle_id"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}
}
