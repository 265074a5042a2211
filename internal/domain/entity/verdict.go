package entity

// VerdictCode identifies the outcome of one validation call. These are
// business outcomes, not errors: a failed geofence check is an expected
// result carried in a successful response.
type VerdictCode string

const (
	VerdictWithinGeofence  VerdictCode = "within_geofence"
	VerdictOutsideGeofence VerdictCode = "outside_geofence"
	VerdictOverrideApplied VerdictCode = "override_applied"
)

// ValidationVerdict is the result of one attendance validation.
// Valid is true only when containment holds or an active override
// applied.
type ValidationVerdict struct {
	Valid            bool              `json:"valid"`
	Code             VerdictCode       `json:"code"`
	Message          string            `json:"message"`
	DistanceMeters   float64           `json:"distance_meters"`
	EffectiveRadius  float64           `json:"effective_radius_meters"`
	OverrideApplied  bool              `json:"override_applied"`
	OverrideID       string            `json:"override_id,omitempty"`
	WorkLocationID   int64             `json:"work_location_id"`
	WorkLocationName string            `json:"work_location_name"`
	Diagnostics      *DiagnosticReport `json:"diagnostics"`
}
