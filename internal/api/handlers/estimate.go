package handlers

import (
	"errors"
	"net/http"

	"rooftop-solar/internal/api/models"
	"rooftop-solar/internal/energy"
	"rooftop-solar/internal/estimator"

	"github.com/gin-gonic/gin"
)

// EstimateHandler handles estimation requests
type EstimateHandler struct {
	Estimator *estimator.Estimator
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(est *estimator.Estimator) *EstimateHandler {
	return &EstimateHandler{Estimator: est}
}

// Estimate handles POST /api/v1/estimate
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	report, err := h.Estimator.Estimate(c.Request.Context(), estimator.Request{
		Lat:                  *req.Lat,
		Lon:                  *req.Lon,
		AnnualConsumptionKwh: req.AnnualConsumptionKwh,
		HourlyConsumptionKwh: req.HourlyConsumptionKwh,
		Household: energy.HouseholdOptions{
			HasAirConditioning: req.Household.HasAirConditioning,
			HasElectricHeating: req.Household.HasElectricHeating,
			HasEV:              req.Household.HasEV,
		},
		PeakPowerOverrideKwp: req.PeakPowerKwp,
	})
	if err != nil {
		if errors.Is(err, estimator.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_INPUT",
					Message: err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ESTIMATE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.EstimateResponse{
		Status: "completed",
		Result: report,
	})
}
