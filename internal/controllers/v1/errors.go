package v1

import (
	"errors"
	"net/http"

	"github.com/envelope-zero/payoff/internal/models"
	"github.com/envelope-zero/payoff/internal/plan"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, plan.ErrNoAutomation) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrPlanExists) || errors.Is(err, models.ErrPlanVersionConflict) || errors.Is(err, plan.ErrAutomationActive) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
