// Package signal inspects GPS readings for quality problems and
// produces diagnostic reports for troubleshooting and admin review.
package signal

import (
	"math"

	"github.com/medikita/gps-attendance/internal/domain/entity"
)

// Accuracy bucket boundaries in meters.
const (
	excellentAccuracy = 10.0
	goodAccuracy      = 30.0
	fairAccuracy      = 100.0
)

// fallbackCoordinates are known default positions injected by devices
// and libraries when no real fix is available. A reading landing
// exactly on one of these almost certainly never came from a GPS chip.
var fallbackCoordinates = [][2]float64{
	{0, 0},                  // null island
	{-6.200000, 106.816666}, // Jakarta city center, common geocoder fallback
	{37.421998, -122.084},   // emulator default (Googleplex)
}

const fallbackEpsilon = 1e-6

// Analyzer produces diagnostic reports for position readings. Pure and
// stateless; the same inputs always yield the same report.
type Analyzer struct{}

// NewAnalyzer creates an analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze inspects a reading and returns a report with the accuracy
// bucket, suspected anomalies, troubleshooting tips, and an overall
// confidence classification. The geofence result, when available, is
// echoed into the report so the caller sees distance and tolerance in
// one place; a zero-value result is fine for pure diagnostics.
func (a *Analyzer) Analyze(pos entity.PositionReport, flags entity.SimulationFlags, distanceMeters, effectiveRadius float64) *entity.DiagnosticReport {
	bucket := a.bucketAccuracy(pos)

	var anomalies []entity.SignalAnomaly
	if !pos.HasAccuracy() {
		anomalies = append(anomalies, entity.AnomalyAccuracyMissing)
	} else if pos.Accuracy() > fairAccuracy {
		anomalies = append(anomalies, entity.AnomalyLowAccuracy)
	}
	if a.suspiciousPrecision(pos.Latitude, pos.Longitude) {
		anomalies = append(anomalies, entity.AnomalySuspiciousPrecision)
	}
	if flags.VPNSuspected {
		anomalies = append(anomalies, entity.AnomalyVPNSuspected)
	}

	return &entity.DiagnosticReport{
		AccuracyBucket:      bucket,
		Confidence:          a.classify(anomalies),
		Anomalies:           anomalies,
		TroubleshootingTips: a.tips(anomalies),
		DistanceMeters:      distanceMeters,
		EffectiveRadius:     effectiveRadius,
	}
}

func (a *Analyzer) bucketAccuracy(pos entity.PositionReport) entity.AccuracyBucket {
	if !pos.HasAccuracy() {
		return entity.AccuracyPoor
	}
	switch acc := pos.Accuracy(); {
	case acc <= excellentAccuracy:
		return entity.AccuracyExcellent
	case acc <= goodAccuracy:
		return entity.AccuracyGood
	case acc <= fairAccuracy:
		return entity.AccuracyFair
	default:
		return entity.AccuracyPoor
	}
}

// suspiciousPrecision flags coordinate pairs consistent with
// programmatic injection rather than a live fix: a known fallback
// location, or lat and lon sharing an identical fractional pattern at
// fine precision. Coarse fractions, integer degrees included, collide
// by chance on rounded real-world input and are left alone.
func (a *Analyzer) suspiciousPrecision(lat, lon float64) bool {
	for _, fb := range fallbackCoordinates {
		if math.Abs(lat-fb[0]) < fallbackEpsilon && math.Abs(lon-fb[1]) < fallbackEpsilon {
			return true
		}
	}

	latFrac := math.Abs(lat - math.Trunc(lat))
	lonFrac := math.Abs(lon - math.Trunc(lon))
	if math.Abs(latFrac-lonFrac) >= fallbackEpsilon {
		return false
	}

	// The shared fraction must carry detail beyond two decimal places
	// before it counts as a copied pattern.
	coarse := math.Round(latFrac*100) / 100
	return math.Abs(latFrac-coarse) >= fallbackEpsilon
}

func (a *Analyzer) classify(anomalies []entity.SignalAnomaly) entity.SignalConfidence {
	hasLow := false
	for _, anomaly := range anomalies {
		switch anomaly {
		case entity.AnomalyVPNSuspected, entity.AnomalySuspiciousPrecision:
			return entity.ConfidenceLow
		case entity.AnomalyLowAccuracy, entity.AnomalyAccuracyMissing:
			hasLow = true
		}
	}
	if hasLow {
		return entity.ConfidenceMedium
	}
	return entity.ConfidenceHigh
}

func (a *Analyzer) tips(anomalies []entity.SignalAnomaly) []string {
	if len(anomalies) == 0 {
		return []string{"GPS signal looks healthy."}
	}

	var tips []string
	for _, anomaly := range anomalies {
		switch anomaly {
		case entity.AnomalyLowAccuracy:
			tips = append(tips, "Move to an open area away from buildings and enable high-accuracy (GPS) mode.")
		case entity.AnomalyAccuracyMissing:
			tips = append(tips, "Allow precise location access for this app or browser, then retry.")
		case entity.AnomalySuspiciousPrecision:
			tips = append(tips, "Disable mock-location or GPS-spoofing apps and retry with a real fix.")
		case entity.AnomalyVPNSuspected:
			tips = append(tips, "Turn off VPN or proxy connections before checking in.")
		}
	}
	return tips
}
