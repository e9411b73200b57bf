package handlers

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"rooftop-solar/internal/api/models"

	"github.com/gin-gonic/gin"
)

const proxyUserAgent = "rooftop-solar/1.0 (irradiance proxy)"

// ProxyHandler forwards irradiance requests to the upstream PVGIS service.
// Browsers cannot call PVGIS directly because it sends no CORS headers.
type ProxyHandler struct {
	UpstreamURL string
	HTTP        *http.Client
}

// NewProxyHandler creates a new irradiance proxy handler
func NewProxyHandler(upstreamURL string) *ProxyHandler {
	return &ProxyHandler{
		UpstreamURL: upstreamURL,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
	}
}

// Irradiance handles GET /irradiance
func (h *ProxyHandler) Irradiance(c *gin.Context) {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MISSING_PARAMETERS",
				Message: "lat and lon query parameters are required",
			},
		})
		return
	}

	u, err := url.Parse(h.UpstreamURL)
	if err != nil {
		h.fallback(c, "invalid upstream URL")
		return
	}

	// Fixed system losses and mounting; the remaining parameters pass
	// through from the caller.
	q := u.Query()
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("peakpower", c.DefaultQuery("peakpower", "1"))
	q.Set("angle", c.DefaultQuery("angle", "35"))
	q.Set("aspect", c.DefaultQuery("aspect", "0"))
	q.Set("loss", "14")
	q.Set("mountingplace", "building")
	q.Set("outputformat", "json")
	q.Set("pvcalculation", "1")
	q.Set("hourlyvalues", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		h.fallback(c, err.Error())
		return
	}
	req.Header.Set("User-Agent", proxyUserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := h.HTTP.Do(req)
	if err != nil {
		log.Printf("[Proxy] Upstream request failed: %v", err)
		h.fallback(c, err.Error())
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.fallback(c, err.Error())
		return
	}

	log.Printf("[Proxy] Upstream %d (duration: %v, lat=%s, lon=%s)",
		resp.StatusCode, time.Since(start), lat, lon)

	if resp.StatusCode != http.StatusOK {
		h.fallback(c, string(body))
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// fallback answers 200 with a marker instead of an upstream error, so the
// irradiance client can switch to its synthetic model without treating the
// proxy itself as broken.
func (h *ProxyHandler) fallback(c *gin.Context, reason string) {
	c.JSON(http.StatusOK, gin.H{
		"fallback": true,
		"message":  "PVGIS data unavailable, using estimated values",
		"reason":   reason,
	})
}
