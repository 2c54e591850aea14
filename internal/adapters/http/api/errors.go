package api

import (
	"errors"
	"net/http"

	service "github.com/PolySpeedRunners/INF8808-Project/internal/app"
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/repository"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/derive"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
)

// errorStatus maps an upstream error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, model.ErrInvalidYearSeason),
		errors.Is(err, service.ErrInvalidSeason),
		errors.Is(err, service.ErrInvalidMinYear):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBackpressure), errors.Is(err, service.ErrQueueFull):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, derive.ErrUnknownKey):
		return http.StatusInternalServerError, "config_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes err with the status it maps to.
func fail(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	writeError(w, status, code, err)
}
