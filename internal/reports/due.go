package reports

import (
	"math"
	"sort"

	"github.com/uyildiz/vehicle-maintenance/internal/maintenance"
	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// DueReport buckets engine verdicts by status. Overdue and DueSoon are
// sorted most urgent first; Ok keeps the vehicle x type iteration order.
type DueReport struct {
	Overdue []maintenance.DueItem `json:"overdue"`
	DueSoon []maintenance.DueItem `json:"due_soon"`
	Ok      []maintenance.DueItem `json:"ok"`
}

// milesPerDay is the nominal daily driving distance used to put mileage
// urgency and calendar urgency on one scale.
const milesPerDay = 30.0

// urgencyKey flattens a verdict to a single days-equivalent scalar: the
// smaller of days-to-due and miles-to-due converted at milesPerDay. Signed,
// so the most overdue item sorts first.
func urgencyKey(item maintenance.DueItem) float64 {
	key := math.Inf(1)
	if item.DaysToDue != nil {
		key = float64(*item.DaysToDue)
	}
	if item.DistanceToDue != nil {
		if m := float64(*item.DistanceToDue) / milesPerDay; m < key {
			key = m
		}
	}
	return key
}

// BuildDueReport runs the engine for every (vehicle, scheduled type) pair
// and partitions the verdicts. The lead window applies to every pair.
func BuildDueReport(vehicles []models.Vehicle, records []models.ServiceRecord, today string, lead maintenance.Lead) (*DueReport, error) {
	report := &DueReport{}
	for _, v := range vehicles {
		for _, typ := range maintenance.ScheduledTypes() {
			item, err := maintenance.ComputeDue(v, typ, records, today, lead)
			if err != nil {
				return nil, err
			}
			if item == nil {
				continue
			}
			switch item.Status {
			case maintenance.StatusOverdue:
				report.Overdue = append(report.Overdue, *item)
			case maintenance.StatusDueSoon:
				report.DueSoon = append(report.DueSoon, *item)
			default:
				report.Ok = append(report.Ok, *item)
			}
		}
	}
	sort.SliceStable(report.Overdue, func(i, j int) bool {
		return urgencyKey(report.Overdue[i]) < urgencyKey(report.Overdue[j])
	})
	sort.SliceStable(report.DueSoon, func(i, j int) bool {
		return urgencyKey(report.DueSoon[i]) < urgencyKey(report.DueSoon[j])
	})
	return report, nil
}
