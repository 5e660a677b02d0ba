package errors

import "net/http"

var (
	ErrNothingFound = New(
		"NOTHING_FOUND",
		"No matching places found within the requested radius",
		http.StatusNotFound,
	)

	ErrProviderTimeout = New(
		"PROVIDER_TIMEOUT",
		"External data provider timed out",
		http.StatusGatewayTimeout,
	)

	ErrProviderRateLimited = New(
		"PROVIDER_RATE_LIMITED",
		"External data provider rate limit exceeded",
		http.StatusTooManyRequests,
	)

	ErrProviderFailure = New(
		"PROVIDER_FAILURE",
		"External data provider request failed",
		http.StatusBadGateway,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Unknown place category",
		http.StatusBadRequest,
	)

	ErrParcelGeometry = New(
		"PARCEL_GEOMETRY_MISSING",
		"Parcel has no geometry, cannot compute centroid",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
