package entity

// PositionReport is a single GPS reading submitted for validation.
// It is constructed per call and never persisted by the core.
type PositionReport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// AccuracyMeters is the reported horizontal accuracy. Nil means the
	// device did not report one; that is treated as "trust minimally",
	// not as perfectly accurate.
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
}

// HasAccuracy reports whether the device supplied an accuracy estimate.
func (p PositionReport) HasAccuracy() bool {
	return p.AccuracyMeters != nil
}

// Accuracy returns the reported accuracy, or 0 if absent.
func (p PositionReport) Accuracy() float64 {
	if p.AccuracyMeters == nil {
		return 0
	}
	return *p.AccuracyMeters
}

// SimulationFlags carries best-effort signals supplied by the caller
// alongside a position. The core never computes these itself; the admin
// test-coordinates tooling uses them to simulate degraded conditions,
// and a network-level collaborator may set them for real traffic.
type SimulationFlags struct {
	VPNSuspected bool `json:"vpn_suspected"`
}
