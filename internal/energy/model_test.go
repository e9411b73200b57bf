package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftop-solar/internal/model"
)

func TestRoofCapacityKwp(t *testing.T) {
	// floor(100/2.3*0.85) = floor(36.9) = 36 panels -> 16.2 kWp
	got := RoofCapacityKwp(100, PanelSpec{PeakWp: 450, AreaM2: 2.3})
	assert.InDelta(t, 16.2, got, 1e-9)
}

func TestRoofCapacityKwp_Degenerate(t *testing.T) {
	assert.Zero(t, RoofCapacityKwp(100, PanelSpec{PeakWp: 450, AreaM2: 0}))
	assert.Zero(t, RoofCapacityKwp(1, DefaultPanel))
}

func TestAnnualProductionKwh(t *testing.T) {
	p := &model.IrradianceProfile{SpecificYieldKwhPerKwpYear: 1550}
	assert.InDelta(t, 1550*4.5, AnnualProductionKwh(p, 4.5), 1e-9)
}

func TestHourlyProductionKwh(t *testing.T) {
	p := &model.IrradianceProfile{
		Hourly: []model.HourlyIrradiance{
			{PowerW: 0}, {PowerW: 500}, {PowerW: 1000},
		},
	}
	got := HourlyProductionKwh(p, 3)
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 1.5, got[1], 1e-9)
	assert.InDelta(t, 3.0, got[2], 1e-9)
}

func TestBalance_ReferenceExample(t *testing.T) {
	b := Balance([]float64{5, 5, 5}, []float64{2, 8, 4})

	assert.InDelta(t, 11, b.SelfConsumptionKwh, 1e-9)
	assert.InDelta(t, 4, b.GridInjectionKwh, 1e-9)
	assert.InDelta(t, 3, b.GridConsumptionKwh, 1e-9)

	assert.InDelta(t, b.TotalProductionKwh, b.SelfConsumptionKwh+b.GridInjectionKwh, 1e-9)
	assert.InDelta(t, b.TotalConsumptionKwh, b.SelfConsumptionKwh+b.GridConsumptionKwh, 1e-9)
}

func TestBalance_ReconciliationHoldsForArbitraryArrays(t *testing.T) {
	prod := []float64{0, 1.5, 7.2, 3.3, 0.4, 8, 0, 2.25}
	cons := []float64{2.1, 1.5, 0, 9.9, 0.4, 1, 5, 2.25}

	b := Balance(prod, cons)
	assert.InDelta(t, b.TotalProductionKwh, b.SelfConsumptionKwh+b.GridInjectionKwh, 1e-9)
	assert.InDelta(t, b.TotalConsumptionKwh, b.SelfConsumptionKwh+b.GridConsumptionKwh, 1e-9)
	assert.GreaterOrEqual(t, b.SelfConsumptionPct, 0.0)
	assert.LessOrEqual(t, b.SelfConsumptionPct, 100.0)
	assert.GreaterOrEqual(t, b.AutarkyPct, 0.0)
	assert.LessOrEqual(t, b.AutarkyPct, 100.0)
}

func TestBalance_TruncatesToOverlap(t *testing.T) {
	// Only the first two hours overlap; the trailing production is ignored.
	b := Balance([]float64{5, 5, 99}, []float64{2, 8})
	assert.InDelta(t, 7, b.SelfConsumptionKwh, 1e-9)
	assert.InDelta(t, 10, b.TotalProductionKwh, 1e-9)
}

func TestBalance_Empty(t *testing.T) {
	b := Balance(nil, nil)
	assert.Zero(t, b.SelfConsumptionKwh)
	assert.Zero(t, b.SelfConsumptionPct)
	assert.Zero(t, b.AutarkyPct)
}
