package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gamescout/gamescout/internal/apperr"
)

// mapError translates aggregation-layer errors into Huma status errors.
// Validation problems become 400s, missing games 404s, broken upstream
// credentials 503s, and upstream failures or timeouts 502s.
func mapError(err error) error {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return huma.Error400BadRequest(verr.Reason)
	}

	if apperr.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	var cerr *apperr.ConfigError
	if errors.As(err, &cerr) {
		return huma.Error503ServiceUnavailable("catalog provider not configured")
	}

	var aerr *apperr.AuthError
	if errors.As(err, &aerr) {
		return huma.Error503ServiceUnavailable("catalog authentication failed")
	}

	var uerr *apperr.UpstreamError
	if errors.As(err, &uerr) {
		return huma.Error502BadGateway(uerr.Error())
	}

	return huma.Error500InternalServerError(err.Error())
}
