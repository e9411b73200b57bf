package irradiance

import (
	"time"

	"rooftop-solar/internal/model"
)

// PVGIS wire shapes. Fields the fallback logic depends on are pointers so a
// missing field is distinguishable from zero; shape validation happens before
// any value is trusted.

// PVGISResponse matches `{outputs:{monthly, totals:{fixed:{E_y, PR}}, hourly}}`.
type PVGISResponse struct {
	Outputs *PVGISOutputs `json:"outputs"`
}

type PVGISOutputs struct {
	Monthly []PVGISMonthly `json:"monthly"`
	Totals  *PVGISTotals   `json:"totals"`
	Hourly  []PVGISHourly  `json:"hourly"`
}

type PVGISTotals struct {
	Fixed *PVGISFixed `json:"fixed"`
}

type PVGISFixed struct {
	EYearly          *float64 `json:"E_y"`
	PerformanceRatio *float64 `json:"PR"`
}

type PVGISMonthly struct {
	Month    int     `json:"month"`
	EDaily   float64 `json:"E_d"`
	EMonthly float64 `json:"E_m"`
	SunHours float64 `json:"H_sun"`
}

type PVGISHourly struct {
	Time          string  `json:"time"`
	Power         float64 `json:"P"`
	GlobalIrrad   float64 `json:"G_i"`
	Temperature2m float64 `json:"T_2m"`
}

// Valid reports whether the response carries the yearly-total and
// performance-ratio fields the estimator needs. Anything less triggers the
// synthetic fallback.
func (r *PVGISResponse) Valid() bool {
	return r != nil &&
		r.Outputs != nil &&
		r.Outputs.Totals != nil &&
		r.Outputs.Totals.Fixed != nil &&
		r.Outputs.Totals.Fixed.EYearly != nil &&
		r.Outputs.Totals.Fixed.PerformanceRatio != nil
}

// pvgisTimeLayouts are the timestamp encodings seen from the service and its
// proxies.
var pvgisTimeLayouts = []string{
	"20060102:1504",
	time.RFC3339,
}

func parsePVGISTime(s string, index int) time.Time {
	for _, layout := range pvgisTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// Unparseable timestamps degrade to an index-derived hour of the
	// reference year.
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(index) * time.Hour)
}

// toProfile converts a validated response into the internal profile,
// tagged as measured data.
func (r *PVGISResponse) toProfile(peakKwp, tiltDeg, azimuthDeg float64) *model.IrradianceProfile {
	p := &model.IrradianceProfile{
		Source:                     model.SourceMeasured,
		SpecificYieldKwhPerKwpYear: *r.Outputs.Totals.Fixed.EYearly,
		PerformanceRatio:           *r.Outputs.Totals.Fixed.PerformanceRatio,
		PeakKwp:                    peakKwp,
		TiltDeg:                    tiltDeg,
		AzimuthDeg:                 azimuthDeg,
	}
	for i, m := range r.Outputs.Monthly {
		if i >= 12 {
			break
		}
		p.Monthly[i] = model.MonthlyIrradiance{
			Month:      m.Month,
			DailyKwh:   m.EDaily,
			MonthlyKwh: m.EMonthly,
			SunHours:   m.SunHours,
		}
	}
	p.Hourly = make([]model.HourlyIrradiance, len(r.Outputs.Hourly))
	for i, h := range r.Outputs.Hourly {
		p.Hourly[i] = model.HourlyIrradiance{
			Time:          parsePVGISTime(h.Time, i),
			PowerW:        h.Power,
			IrradianceWm2: h.GlobalIrrad,
			AmbientTempC:  h.Temperature2m,
		}
	}
	return p
}
