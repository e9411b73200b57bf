// Package energy turns roof, shading and irradiance outputs plus a
// consumption curve into capacity, production, balance, financial and
// environmental figures.
package energy

import (
	"math"

	"rooftop-solar/internal/model"
)

// PanelSpec describes the reference PV module used for packing.
type PanelSpec struct {
	PeakWp float64 // nameplate power per panel
	AreaM2 float64 // footprint per panel
}

// DefaultPanel is a contemporary residential module.
var DefaultPanel = PanelSpec{PeakWp: 450, AreaM2: 2.3}

// packingDensity mirrors the roof usability fraction: panels cannot tile the
// usable area perfectly.
const packingDensity = 0.85

// RoofCapacityKwp returns the installable capacity of a usable roof area:
// whole panels only, packed at the reduced density.
func RoofCapacityKwp(usableAreaM2 float64, panel PanelSpec) float64 {
	if panel.AreaM2 <= 0 {
		return 0
	}
	maxPanels := math.Floor(usableAreaM2 / panel.AreaM2 * packingDensity)
	return maxPanels * panel.PeakWp / 1000
}

// AnnualProductionKwh scales the profile's specific yield by the system size.
func AnnualProductionKwh(profile *model.IrradianceProfile, systemKwp float64) float64 {
	return profile.SpecificYieldKwhPerKwpYear * systemKwp
}

// HourlyProductionKwh converts the profile's per-kWp hourly power series into
// the system's hourly energy in kWh.
func HourlyProductionKwh(profile *model.IrradianceProfile, systemKwp float64) []float64 {
	out := make([]float64, len(profile.Hourly))
	for i, h := range profile.Hourly {
		out[i] = h.PowerW * systemKwp / 1000
	}
	return out
}

// Balance reconciles production against consumption hour by hour. Each
// hour's min(production, consumption) is self-consumed; the non-negative
// remainders go to grid injection or grid draw.
//
// When the arrays differ in length only the overlapping prefix is reconciled;
// the rates still use the totals of the overlap, and the truncation is a
// documented constraint rather than something to pad over.
func Balance(productionKwh, consumptionKwh []float64) model.EnergyBalance {
	n := len(productionKwh)
	if len(consumptionKwh) < n {
		n = len(consumptionKwh)
	}

	var b model.EnergyBalance
	for i := 0; i < n; i++ {
		prod := productionKwh[i]
		cons := consumptionKwh[i]
		b.TotalProductionKwh += prod
		b.TotalConsumptionKwh += cons

		if prod >= cons {
			b.SelfConsumptionKwh += cons
			b.GridInjectionKwh += prod - cons
		} else {
			b.SelfConsumptionKwh += prod
			b.GridConsumptionKwh += cons - prod
		}
	}

	if b.TotalProductionKwh > 0 {
		b.SelfConsumptionPct = b.SelfConsumptionKwh / b.TotalProductionKwh * 100
	}
	if b.TotalConsumptionKwh > 0 {
		b.AutarkyPct = b.SelfConsumptionKwh / b.TotalConsumptionKwh * 100
	}
	return b
}
