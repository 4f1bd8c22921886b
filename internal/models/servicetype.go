package models

// ServiceType identifies a kind of maintenance service.
type ServiceType string

const (
	ServiceOilChange         ServiceType = "oil_change"
	ServiceTireRotation      ServiceType = "tire_rotation"
	ServiceBrakePads         ServiceType = "brake_pads"
	ServiceBrakeFluid        ServiceType = "brake_fluid"
	ServiceCoolant           ServiceType = "coolant"
	ServiceTransmissionFluid ServiceType = "transmission_fluid"
	ServiceBattery           ServiceType = "battery"
	ServiceSparkPlugs        ServiceType = "spark_plugs"
	ServiceAirFilter         ServiceType = "air_filter"
	ServiceCabinFilter       ServiceType = "cabin_filter"
	ServiceAlignment         ServiceType = "alignment"
	ServiceInspection        ServiceType = "inspection"
	ServiceRegistration      ServiceType = "registration"
	ServiceOther             ServiceType = "other"
)

// typeLabels is the canonical type-to-label mapping. Every display surface
// (API responses, CSV export, simulator) goes through Label so the copies
// cannot drift.
var typeLabels = map[ServiceType]string{
	ServiceOilChange:         "Oil Change",
	ServiceTireRotation:      "Tire Rotation",
	ServiceBrakePads:         "Brake Pads",
	ServiceBrakeFluid:        "Brake Fluid",
	ServiceCoolant:           "Coolant",
	ServiceTransmissionFluid: "Transmission Fluid",
	ServiceBattery:           "Battery",
	ServiceSparkPlugs:        "Spark Plugs",
	ServiceAirFilter:         "Air Filter",
	ServiceCabinFilter:       "Cabin Filter",
	ServiceAlignment:         "Alignment",
	ServiceInspection:        "Inspection",
	ServiceRegistration:      "Registration",
	ServiceOther:             "Other",
}

// AllServiceTypes lists every known service type in a stable order.
var AllServiceTypes = []ServiceType{
	ServiceOilChange,
	ServiceTireRotation,
	ServiceBrakePads,
	ServiceBrakeFluid,
	ServiceCoolant,
	ServiceTransmissionFluid,
	ServiceBattery,
	ServiceSparkPlugs,
	ServiceAirFilter,
	ServiceCabinFilter,
	ServiceAlignment,
	ServiceInspection,
	ServiceRegistration,
	ServiceOther,
}

// IsValidServiceType checks if a service type is one of the known values.
func IsValidServiceType(t ServiceType) bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the human-readable label for a service type. Unknown types
// fall back to the raw token.
func (t ServiceType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}
