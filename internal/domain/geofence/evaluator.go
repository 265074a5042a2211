// Package geofence decides whether a reported GPS position lies within
// a work location's circular boundary.
package geofence

import (
	"math"

	"github.com/medikita/gps-attendance/internal/domain/entity"
)

// Mean Earth radius in meters, as used by the haversine formula.
const earthRadiusMeters = 6371000.0

// DefaultAccuracyToleranceCap bounds how much reported GPS uncertainty
// may widen the effective radius.
const DefaultAccuracyToleranceCap = 100.0

// Result is the outcome of one containment check.
type Result struct {
	DistanceMeters  float64
	EffectiveRadius float64
	WithinGeofence  bool
}

// Evaluator computes containment against a work location. It is pure
// and safe for concurrent use.
type Evaluator struct {
	accuracyToleranceCap float64
}

// NewEvaluator creates an evaluator. A non-positive cap falls back to
// the default.
func NewEvaluator(accuracyToleranceCap float64) *Evaluator {
	if accuracyToleranceCap <= 0 {
		accuracyToleranceCap = DefaultAccuracyToleranceCap
	}
	return &Evaluator{accuracyToleranceCap: accuracyToleranceCap}
}

// Evaluate computes the great-circle distance between the reported
// position and the work location center, and checks it against the
// radius widened by the accuracy tolerance. Total for coordinates
// within valid degree ranges; the caller validates bounds.
func (e *Evaluator) Evaluate(pos entity.PositionReport, loc *entity.WorkLocation) Result {
	distance := HaversineDistance(pos.Latitude, pos.Longitude, loc.Latitude, loc.Longitude)
	effective := loc.RadiusMeters + e.accuracyTolerance(pos)

	return Result{
		DistanceMeters:  distance,
		EffectiveRadius: effective,
		WithinGeofence:  distance <= effective,
	}
}

// accuracyTolerance returns the buffer added for reported GPS
// uncertainty: min(accuracy, cap) when present, zero when the device
// reported none. Absence must not count as perfect accuracy; the
// signal analyzer flags that case instead.
func (e *Evaluator) accuracyTolerance(pos entity.PositionReport) float64 {
	if !pos.HasAccuracy() {
		return 0
	}
	return math.Min(pos.Accuracy(), e.accuracyToleranceCap)
}

// HaversineDistance returns the great-circle distance in meters between
// two points given in decimal degrees, on a spherical Earth. Accurate
// to well under 0.5% at the sub-country distances attendance checks
// deal with.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
