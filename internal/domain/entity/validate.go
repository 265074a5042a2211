package entity

import (
	"fmt"
	"strings"
)

// Boundary limits re-validated inside the core so it is safe to call
// directly, not only behind the HTTP layer.
const (
	MaxAccuracyMeters            = 1000.0
	MaxOverrideReasonLength      = 500
	MinOverrideDurationHours     = 1
	MaxOverrideDurationHours     = 72
	DefaultOverrideDurationHours = 24
)

// ValidateCoordinates checks latitude and longitude against valid
// degree ranges.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %.6f outside [-90,90]", ErrInvalidCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %.6f outside [-180,180]", ErrInvalidCoordinates, lon)
	}
	return nil
}

// ValidatePosition checks a full position report, including the
// optional accuracy.
func ValidatePosition(p PositionReport) error {
	if err := ValidateCoordinates(p.Latitude, p.Longitude); err != nil {
		return err
	}
	if p.HasAccuracy() {
		if acc := p.Accuracy(); acc < 0 || acc > MaxAccuracyMeters {
			return fmt.Errorf("%w: accuracy %.1fm outside [0,%.0f]", ErrInvalidAccuracy, acc, MaxAccuracyMeters)
		}
	}
	return nil
}

// ValidateOverrideReason enforces that the audit reason is present and
// bounded.
func ValidateOverrideReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidOverrideRequest)
	}
	if len(reason) > MaxOverrideReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidOverrideRequest, MaxOverrideReasonLength)
	}
	return nil
}

// ValidateOverrideDuration rejects out-of-range durations instead of
// silently clamping them.
func ValidateOverrideDuration(hours int) error {
	if hours < MinOverrideDurationHours || hours > MaxOverrideDurationHours {
		return fmt.Errorf("%w: duration %dh outside [%d,%d]",
			ErrInvalidOverrideRequest, hours, MinOverrideDurationHours, MaxOverrideDurationHours)
	}
	return nil
}
