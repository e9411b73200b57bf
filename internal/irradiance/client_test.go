package irradiance

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftop-solar/internal/model"
)

func pvgisBody(eYearly float64) string {
	return fmt.Sprintf(`{
		"outputs": {
			"monthly": [{"month": 1, "E_d": 3.1, "E_m": 96.2, "H_sun": 5.2}],
			"totals": {"fixed": {"E_y": %f, "PR": 0.85}},
			"hourly": [
				{"time": "20240101:0010", "P": 0, "G_i": 0, "T_2m": 4.1},
				{"time": "20240101:1210", "P": 710.5, "G_i": 820.3, "T_2m": 11.9}
			]
		}
	}`, eYearly)
}

func TestGetIrradiance_MeasuredPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/irradiance", r.URL.Path)
		assert.Equal(t, "40.416800", r.URL.Query().Get("lat"))
		assert.Equal(t, "35", r.URL.Query().Get("angle"))
		fmt.Fprint(w, pvgisBody(1580))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	p := c.GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 35, 0)

	assert.Equal(t, model.SourceMeasured, p.Source)
	assert.Equal(t, 1580.0, p.SpecificYieldKwhPerKwpYear)
	assert.Equal(t, 0.85, p.PerformanceRatio)
	require.Len(t, p.Hourly, 2)
	assert.Equal(t, 710.5, p.Hourly[1].PowerW)
	assert.Equal(t, 2024, p.Hourly[1].Time.Year())
}

func TestGetIrradiance_CachePreventsSecondRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, pvgisBody(1500))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	first := c.GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 35, 0)
	second := c.GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 35, 0)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Same(t, first, second)

	// A different tilt is a different key.
	c.GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 30, 0)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 2, c.Cache().Len())
}

func TestGetIrradiance_TransportFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, 0)
	p := c.GetIrradiance(context.Background(), 40.4168, -3.7038, 2, 35, 0)

	assert.Equal(t, model.SourceSynthetic, p.Source)
	assert.InDelta(t, 1550*2, p.SpecificYieldKwhPerKwpYear, 1e-9)
	assert.Len(t, p.Hourly, 8760)
}

func TestGetIrradiance_Non200FallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewClient(srv.URL, 0).GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 35, 0)
	assert.Equal(t, model.SourceSynthetic, p.Source)
}

func TestGetIrradiance_MissingTotalsFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"outputs": {"monthly": [], "hourly": []}}`)
	}))
	defer srv.Close()

	p := NewClient(srv.URL, 0).GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 35, 0)
	assert.Equal(t, model.SourceSynthetic, p.Source)
}

func TestGetIrradiance_SyntheticTagPersistsInCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	first := c.GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 35, 0)
	second := c.GetIrradiance(context.Background(), 40.4168, -3.7038, 1, 35, 0)

	assert.Equal(t, model.SourceSynthetic, first.Source)
	assert.Equal(t, model.SourceSynthetic, second.Source)
}

func TestLimiter_EnforcesSpacing(t *testing.T) {
	l := NewLimiter(30 * time.Millisecond)

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	require.NoError(t, l.Wait(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestLimiter_ContextCancellation(t *testing.T) {
	l := NewLimiter(time.Hour)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}

func TestLimiter_CancelledWaitReleasesSlot(t *testing.T) {
	l := NewLimiter(100 * time.Millisecond)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, l.Wait(ctx))

	// The cancelled wait must not consume an interval: the next request
	// waits out the spacing from the first request only, not two slots.
	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestGetOptimalIrradiance_PicksBestTilt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		angle := r.URL.Query().Get("angle")
		// Yield peaks at 30 degrees.
		yield := map[string]float64{
			"20": 1400, "25": 1480, "30": 1560, "35": 1540, "40": 1470, "45": 1380,
		}[angle]
		fmt.Fprint(w, pvgisBody(yield))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	best, tilt, tried := c.GetOptimalIrradiance(context.Background(), 40.4168, -3.7038, 1)

	assert.Equal(t, 30.0, tilt)
	assert.Equal(t, 1560.0, best.SpecificYieldKwhPerKwpYear)
	assert.Equal(t, model.SourceMeasured, best.Source)
	assert.Len(t, tried, 6)
}

func TestGetOptimalIrradiance_AllFailFallsBackTo35(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	best, tilt, tried := c.GetOptimalIrradiance(context.Background(), 40.4168, -3.7038, 1)

	assert.Equal(t, 35.0, tilt)
	assert.Equal(t, model.SourceSynthetic, best.Source)
	assert.Len(t, tried, 6)
	for _, tr := range tried {
		assert.Equal(t, model.SourceSynthetic, tr.Source)
	}
}

func TestCacheKey_Rounding(t *testing.T) {
	a := CacheKey(40.41681, -3.70379, 1, 35, 0)
	b := CacheKey(40.41682, -3.70381, 1, 35, 0)
	c := CacheKey(40.41681, -3.70379, 2, 35, 0)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
