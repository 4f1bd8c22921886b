package maintenance

import (
	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// DueStatus classifies how urgent a service is for one (vehicle, type) pair.
type DueStatus string

const (
	StatusOK      DueStatus = "OK"
	StatusDueSoon DueStatus = "DUE_SOON"
	StatusOverdue DueStatus = "OVERDUE"
)

// Lead is the margin before a due threshold during which status is DUE_SOON
// rather than OK.
type Lead struct {
	Miles int
	Days  int
}

// DefaultLead is the lead window used when callers have no override.
var DefaultLead = Lead{Miles: 300, Days: 14}

// DueItem is the engine's verdict for one (vehicle, type) pair. It is
// derived on every call and never persisted. DistanceToDue and DaysToDue are
// signed and go negative once the threshold has passed.
type DueItem struct {
	VehicleID     string             `json:"vehicle_id"`
	VehicleLabel  string             `json:"vehicle_label"`
	Type          models.ServiceType `json:"type"`
	DueByMileage  *int               `json:"due_by_mileage,omitempty"`
	DueByDate     string             `json:"due_by_date,omitempty"` // YYYY-MM-DD
	Status        DueStatus          `json:"status"`
	DistanceToDue *int               `json:"distance_to_due,omitempty"` // miles remaining
	DaysToDue     *int               `json:"days_to_due,omitempty"`     // days remaining
}

// LastRecordOfType returns the most recent record of the given type for the
// vehicle, or nil. Records are ordered by service date descending; on equal
// dates the higher recorded mileage wins, since the odometer is the more
// precise signal when two services land on the same day. Pure function of
// its inputs.
func LastRecordOfType(records []models.ServiceRecord, vehicleID string, t models.ServiceType) *models.ServiceRecord {
	var last *models.ServiceRecord
	for i := range records {
		r := &records[i]
		if r.VehicleID != vehicleID || r.Type != t {
			continue
		}
		if last == nil ||
			r.ServiceDate > last.ServiceDate ||
			(r.ServiceDate == last.ServiceDate && r.Mileage > last.Mileage) {
			last = r
		}
	}
	if last == nil {
		return nil
	}
	out := *last
	return &out
}

// ComputeDue produces the due verdict for one (vehicle, type) pair given the
// full record history and today's date (YYYY-MM-DD). A type with no schedule
// rule yields (nil, nil): no verdict. A malformed date yields ErrInvalidDate.
func ComputeDue(v models.Vehicle, t models.ServiceType, records []models.ServiceRecord, today string, lead Lead) (*DueItem, error) {
	rule, ok := RuleFor(t)
	if !ok {
		return nil, nil
	}

	item := &DueItem{
		VehicleID:    v.ID.Hex(),
		VehicleLabel: v.Display(),
		Type:         t,
	}

	last := LastRecordOfType(records, v.ID.Hex(), t)
	if last == nil {
		// No history is not alarming: a fresh vehicle should not open on a
		// wall of overdue items.
		item.Status = StatusOK
		return item, nil
	}

	todayDate, err := ParseDate(today)
	if err != nil {
		return nil, err
	}

	if rule.Miles > 0 {
		due := last.Mileage + rule.Miles
		item.DueByMileage = &due
		dist := due - v.CurrentMileage
		item.DistanceToDue = &dist
	}
	if rule.Months > 0 {
		serviced, err := ParseDate(last.ServiceDate)
		if err != nil {
			return nil, err
		}
		dueDate := AddMonths(serviced, rule.Months)
		item.DueByDate = FormatDate(dueDate)
		days := DaysBetween(todayDate, dueDate)
		item.DaysToDue = &days
	}

	item.Status = classify(item, lead)
	return item, nil
}

// classify applies the status rules in precedence order. Mileage and date
// triggers are OR'd: either alone is enough to flip the status.
func classify(item *DueItem, lead Lead) DueStatus {
	if item.DistanceToDue == nil && item.DaysToDue == nil {
		return StatusOK
	}
	overMiles := item.DistanceToDue != nil && *item.DistanceToDue <= 0
	overDate := item.DaysToDue != nil && *item.DaysToDue <= 0
	if overMiles || overDate {
		return StatusOverdue
	}
	nearMiles := item.DistanceToDue != nil && *item.DistanceToDue <= lead.Miles
	nearDate := item.DaysToDue != nil && *item.DaysToDue <= lead.Days
	if nearMiles || nearDate {
		return StatusDueSoon
	}
	return StatusOK
}
