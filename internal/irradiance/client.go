// Package irradiance fetches specific-yield and hourly irradiance data for a
// coordinate/tilt/azimuth/peak-power combination through a rate-limited,
// cached proxy client, synthesizing a latitude-banded substitute profile when
// the service fails. Irradiance unavailability never aborts an estimation.
package irradiance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"rooftop-solar/internal/model"
)

// optimalTiltCandidates is the tilt set tried by the optimal-yield search.
var optimalTiltCandidates = []float64{20, 25, 30, 35, 40, 45}

const defaultTiltDeg = 35

// Client talks to the irradiance proxy. Cache and limiter are constructed
// explicitly and shared by injection, so tests can reset them.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	cache   *Cache
	limiter *Limiter
}

// NewClient creates an irradiance client against the given proxy base URL
// (e.g. "http://localhost:8080"). If minInterval is zero the rate limiter is
// effectively disabled.
func NewClient(baseURL string, minInterval time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache:   NewCache(),
		limiter: NewLimiter(minInterval),
	}
}

// Cache exposes the client's cache for inspection and test resets.
func (c *Client) Cache() *Cache { return c.cache }

// GetIrradiance returns the irradiance profile for one tilt/azimuth. It
// never returns an error: transport failures and malformed responses degrade
// to a synthetic profile, tagged as such.
func (c *Client) GetIrradiance(ctx context.Context, lat, lon, peakKwp, tiltDeg, azimuthDeg float64) *model.IrradianceProfile {
	key := CacheKey(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	if cached, ok := c.cache.Get(key); ok {
		log.Printf("[Irradiance] Cache hit (lat=%.4f, lon=%.4f, tilt=%g)", lat, lon, tiltDeg)
		return cached
	}

	profile := c.fetch(ctx, lat, lon, peakKwp, tiltDeg, azimuthDeg)
	c.cache.Set(key, profile)
	return profile
}

func (c *Client) fetch(ctx context.Context, lat, lon, peakKwp, tiltDeg, azimuthDeg float64) *model.IrradianceProfile {
	if err := c.limiter.Wait(ctx); err != nil {
		log.Printf("[Irradiance] Rate limit wait interrupted: %v, using synthetic profile", err)
		return SyntheticProfile(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	}

	u, err := url.Parse(c.BaseURL + "/irradiance")
	if err != nil {
		log.Printf("[Irradiance] Invalid base URL %q: %v, using synthetic profile", c.BaseURL, err)
		return SyntheticProfile(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	}
	q := u.Query()
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("peakpower", fmt.Sprintf("%g", peakKwp))
	q.Set("angle", fmt.Sprintf("%d", int(tiltDeg)))
	q.Set("aspect", fmt.Sprintf("%d", int(azimuthDeg)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Printf("[Irradiance] Failed to create request: %v, using synthetic profile", err)
		return SyntheticProfile(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[Irradiance] Request failed: %v (duration: %v), using synthetic profile", err, duration)
		return SyntheticProfile(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	}
	defer resp.Body.Close()

	log.Printf("[Irradiance] Response: %d %s (duration: %v, lat=%.4f, lon=%.4f, tilt=%g)",
		resp.StatusCode, resp.Status, duration, lat, lon, tiltDeg)

	if resp.StatusCode != http.StatusOK {
		return SyntheticProfile(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	}

	var parsed PVGISResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("[Irradiance] Error decoding response: %v, using synthetic profile", err)
		return SyntheticProfile(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	}
	if !parsed.Valid() {
		log.Printf("[Irradiance] Response missing yearly totals, using synthetic profile")
		return SyntheticProfile(lat, lon, peakKwp, tiltDeg, azimuthDeg)
	}

	return parsed.toProfile(peakKwp, tiltDeg, azimuthDeg)
}

// GetOptimalIrradiance tries a small fixed set of tilt angles sequentially
// (the shared limiter spaces the calls) and returns the profile with the
// highest specific yield. If every attempt lands on the synthetic path, the
// single synthetic profile at 35° is returned.
func (c *Client) GetOptimalIrradiance(ctx context.Context, lat, lon, peakKwp float64) (*model.IrradianceProfile, float64, []model.TiltResult) {
	var (
		best    *model.IrradianceProfile
		tried   []model.TiltResult
		anyReal bool
	)

	for _, tilt := range optimalTiltCandidates {
		p := c.GetIrradiance(ctx, lat, lon, peakKwp, tilt, 0)
		tried = append(tried, model.TiltResult{
			TiltDeg:                    tilt,
			SpecificYieldKwhPerKwpYear: p.SpecificYieldKwhPerKwpYear,
			Source:                     p.Source,
		})
		if p.Source == model.SourceMeasured {
			anyReal = true
			if best == nil || p.SpecificYieldKwhPerKwpYear > best.SpecificYieldKwhPerKwpYear {
				best = p
			}
		}
	}

	if !anyReal {
		log.Printf("[Irradiance] No measured data for any tilt, falling back to synthetic at %d°", defaultTiltDeg)
		p := c.GetIrradiance(ctx, lat, lon, peakKwp, defaultTiltDeg, 0)
		return p, defaultTiltDeg, tried
	}

	log.Printf("[Irradiance] Optimal tilt %g° (%.0f kWh/kWp/year)", best.TiltDeg, best.SpecificYieldKwhPerKwpYear)
	return best, best.TiltDeg, tried
}
