package energy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyConsumptionKwh_SumsToAnnual(t *testing.T) {
	curve := HourlyConsumptionKwh(3500, DefaultConsumptionProfile, HouseholdOptions{})
	require.Len(t, curve, 8760)

	sum := 0.0
	for _, v := range curve {
		require.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 3500, sum, 3500*0.001)
}

func TestHourlyConsumptionKwh_Deterministic(t *testing.T) {
	a := HourlyConsumptionKwh(3500, DefaultConsumptionProfile, HouseholdOptions{})
	b := HourlyConsumptionKwh(3500, DefaultConsumptionProfile, HouseholdOptions{})
	assert.Equal(t, a, b)
}

func TestHourlyConsumptionKwh_SeededJitterReproducible(t *testing.T) {
	a := HourlyConsumptionKwh(3500, DefaultConsumptionProfile, HouseholdOptions{Jitter: rand.New(rand.NewSource(42))})
	b := HourlyConsumptionKwh(3500, DefaultConsumptionProfile, HouseholdOptions{Jitter: rand.New(rand.NewSource(42))})
	c := HourlyConsumptionKwh(3500, DefaultConsumptionProfile, HouseholdOptions{Jitter: rand.New(rand.NewSource(7))})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Jitter must not break the annual total.
	sum := 0.0
	for _, v := range a {
		sum += v
	}
	assert.InDelta(t, 3500, sum, 3500*0.001)
}

func TestHourlyConsumptionKwh_EveningPeak(t *testing.T) {
	curve := HourlyConsumptionKwh(3500, DefaultConsumptionProfile, HouseholdOptions{})
	// Hour 19 carries the daily peak weight; hour 4 the trough.
	assert.Greater(t, curve[19], curve[4])
}

func TestAdjustedAnnualKwh_ApplianceMultipliers(t *testing.T) {
	base := 3000.0
	assert.Equal(t, base, AdjustedAnnualKwh(base, HouseholdOptions{}))
	assert.InDelta(t, base*1.2, AdjustedAnnualKwh(base, HouseholdOptions{HasAirConditioning: true}), 1e-9)
	assert.InDelta(t, base*1.2*1.15*1.3, AdjustedAnnualKwh(base, HouseholdOptions{
		HasAirConditioning: true,
		HasElectricHeating: true,
		HasEV:              true,
	}), 1e-9)
}

func TestEnvironmentalImpact(t *testing.T) {
	impact := EnvironmentalImpact(6000, 25)

	assert.InDelta(t, 6000*0.331/1000, impact.CO2SavedAnnuallyTons, 1e-9)
	assert.InDelta(t, impact.CO2SavedAnnuallyTons*25, impact.CO2SavedHorizonTons, 1e-9)
	// 49.65 tons over the horizon / 25 kg per tree-year
	assert.Equal(t, 1986, impact.TreesEquivalent)
}
