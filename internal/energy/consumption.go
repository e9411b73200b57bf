package energy

import "math/rand"

// ConsumptionProfile carries the normalized daily and seasonal shape of a
// household's demand. Hourly weights are relative within a day; monthly
// weights are relative across the year.
type ConsumptionProfile struct {
	Hourly  [24]float64
	Monthly [12]float64
}

// DefaultConsumptionProfile is the residential reference curve: a morning
// ramp, a midday plateau and an evening peak, with higher winter and summer
// months.
var DefaultConsumptionProfile = ConsumptionProfile{
	Hourly: [24]float64{
		0.3, 0.25, 0.22, 0.2, 0.18, 0.2, 0.3, 0.5,
		0.7, 0.8, 0.9, 1.0, 1.1, 1.0, 0.9, 0.8,
		0.9, 1.2, 1.5, 1.8, 1.6, 1.2, 0.8, 0.5,
	},
	Monthly: [12]float64{1.1, 1.0, 0.9, 0.8, 0.7, 0.8, 1.2, 1.3, 0.9, 0.8, 1.0, 1.2},
}

// HouseholdOptions scale the annual figure for major electric appliances.
type HouseholdOptions struct {
	HasAirConditioning bool
	HasElectricHeating bool
	HasEV              bool

	// Jitter, when non-nil, perturbs each hour by ±10% from an explicitly
	// seeded source. Nil means a fully deterministic curve.
	Jitter *rand.Rand
}

// appliance multipliers on the annual consumption
const (
	acFactor      = 1.2
	heatingFactor = 1.15
	evFactor      = 1.3
)

// AdjustedAnnualKwh applies the appliance multipliers to a base annual
// consumption.
func AdjustedAnnualKwh(annualKwh float64, opts HouseholdOptions) float64 {
	adjusted := annualKwh
	if opts.HasAirConditioning {
		adjusted *= acFactor
	}
	if opts.HasElectricHeating {
		adjusted *= heatingFactor
	}
	if opts.HasEV {
		adjusted *= evFactor
	}
	return adjusted
}

// HourlyConsumptionKwh expands an annual consumption into an 8760-hour curve
// using the profile's daily and monthly shapes. The curve is normalized so it
// sums back to the adjusted annual total (jitter included).
func HourlyConsumptionKwh(annualKwh float64, profile ConsumptionProfile, opts HouseholdOptions) []float64 {
	adjusted := AdjustedAnnualKwh(annualKwh, opts)

	out := make([]float64, 0, 8760)
	sum := 0.0
	for day := 0; day < 365; day++ {
		month := day / 30
		if month > 11 {
			month = 11
		}
		monthlyFactor := profile.Monthly[month]
		dailyAverage := adjusted * monthlyFactor / 365

		for hour := 0; hour < 24; hour++ {
			v := dailyAverage * profile.Hourly[hour] / 24
			if opts.Jitter != nil {
				v *= 0.9 + opts.Jitter.Float64()*0.2
			}
			out = append(out, v)
			sum += v
		}
	}

	if sum > 0 {
		scale := adjusted / sum
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}
