package maintenance

import (
	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// Rule defines the recurrence for one service type: a mileage interval
// and/or a calendar interval in months. A zero field means that trigger does
// not apply; at least one is set for every entry in the table.
type Rule struct {
	Miles  int `json:"miles,omitempty"`
	Months int `json:"months,omitempty"`
}

// DefaultSchedules is the built-in schedule table. Types absent from the
// table have no recurrence rule and the engine produces no verdict for them.
// Static and read-only; per-vehicle schedules are out of scope.
var DefaultSchedules = map[models.ServiceType]Rule{
	models.ServiceOilChange:    {Miles: 5000, Months: 6},
	models.ServiceTireRotation: {Miles: 6000, Months: 12},
	models.ServiceAirFilter:    {Miles: 12000, Months: 12},
	models.ServiceCabinFilter:  {Miles: 12000, Months: 12},
	models.ServiceInspection:   {Months: 12},
	models.ServiceBrakePads:    {Miles: 30000},
}

// RuleFor looks up the schedule rule for a service type.
func RuleFor(t models.ServiceType) (Rule, bool) {
	rule, ok := DefaultSchedules[t]
	return rule, ok
}

// ScheduledTypes returns the schedulable service types in the stable
// enumeration order, for aggregation passes over all (vehicle, type) pairs.
func ScheduledTypes() []models.ServiceType {
	var types []models.ServiceType
	for _, t := range models.AllServiceTypes {
		if _, ok := DefaultSchedules[t]; ok {
			types = append(types, t)
		}
	}
	return types
}
