package entity

import "errors"

var (
	// ErrInvalidCoordinates is returned when latitude or longitude is
	// outside the valid degree range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidAccuracy is returned when a reported accuracy is
	// negative or implausibly large.
	ErrInvalidAccuracy = errors.New("invalid accuracy")

	// ErrNoWorkLocationAssigned is returned when a user has no geofence
	// configured. Distinct from an outside_geofence verdict: validation
	// cannot proceed at all.
	ErrNoWorkLocationAssigned = errors.New("no work location assigned")

	// ErrInvalidOverrideRequest is returned for an empty or over-length
	// reason, or an out-of-range duration.
	ErrInvalidOverrideRequest = errors.New("invalid override request")

	// ErrOverrideDenied is returned when the authorization boundary
	// reports the issuing admin lacks authority.
	ErrOverrideDenied = errors.New("override denied")

	// ErrOverrideNotFound is returned when revoking an unknown override.
	ErrOverrideNotFound = errors.New("override not found")
)
