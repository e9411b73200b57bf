package models

// EstimateRequest is the request body for a rooftop estimation. Lat and Lon
// are pointers so that 0 is distinguishable from absent.
type EstimateRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`

	// AnnualConsumptionKwh sizes the default consumption curve. Ignored when
	// an explicit hourly curve is supplied.
	AnnualConsumptionKwh float64   `json:"annual_consumption_kwh,omitempty"`
	HourlyConsumptionKwh []float64 `json:"hourly_consumption_kwh,omitempty"`

	Household HouseholdConfig `json:"household,omitempty"`

	// PeakPowerKwp forces a system size instead of sizing from the roof.
	PeakPowerKwp float64 `json:"peak_power_kwp,omitempty"`
}

// HouseholdConfig flags the appliances that scale consumption upward.
type HouseholdConfig struct {
	HasAirConditioning bool `json:"has_air_conditioning,omitempty"`
	HasElectricHeating bool `json:"has_electric_heating,omitempty"`
	HasEV              bool `json:"has_ev,omitempty"`
}
