package models

import "rooftop-solar/internal/estimator"

// EstimateResponse wraps a completed estimation report.
type EstimateResponse struct {
	Status string            `json:"status"`
	Result *estimator.Report `json:"result"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
