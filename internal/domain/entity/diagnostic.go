package entity

// AccuracyBucket classifies reported GPS accuracy for human review.
type AccuracyBucket string

const (
	AccuracyExcellent AccuracyBucket = "excellent" // <= 10m
	AccuracyGood      AccuracyBucket = "good"      // <= 30m
	AccuracyFair      AccuracyBucket = "fair"      // <= 100m
	AccuracyPoor      AccuracyBucket = "poor"      // > 100m or unreported
)

// SignalAnomaly flags a suspected problem with a position report.
type SignalAnomaly string

const (
	AnomalyLowAccuracy         SignalAnomaly = "low_accuracy"
	AnomalyAccuracyMissing     SignalAnomaly = "accuracy_missing"
	AnomalySuspiciousPrecision SignalAnomaly = "suspicious_coordinate_precision"
	AnomalyVPNSuspected        SignalAnomaly = "vpn_suspected"
)

// SignalConfidence is an overall trust classification for a reading.
type SignalConfidence string

const (
	ConfidenceHigh   SignalConfidence = "high"
	ConfidenceMedium SignalConfidence = "medium"
	ConfidenceLow    SignalConfidence = "low"
)

// DiagnosticReport explains why a verdict was reached. It is
// informative, never gating: an operator reviewing it may decide to
// issue an override, but the report itself changes no outcome.
type DiagnosticReport struct {
	AccuracyBucket      AccuracyBucket   `json:"accuracy_bucket"`
	Confidence          SignalConfidence `json:"confidence"`
	Anomalies           []SignalAnomaly  `json:"anomalies"`
	TroubleshootingTips []string         `json:"troubleshooting_tips"`
	DistanceMeters      float64          `json:"distance_meters"`
	EffectiveRadius     float64          `json:"effective_radius_meters"`
}

// HasAnomaly reports whether the given anomaly was flagged.
func (r *DiagnosticReport) HasAnomaly(a SignalAnomaly) bool {
	for _, flag := range r.Anomalies {
		if flag == a {
			return true
		}
	}
	return false
}
