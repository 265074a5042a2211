package entity

import "time"

// GPSOverride is an administrator-issued, time-bounded exception that
// lets a specific user pass attendance validation despite failing the
// geofence check. Overrides suspend the check; the optional coordinates
// are retained for the audit trail only and never move the geofence.
type GPSOverride struct {
	ID           string     `json:"id"`
	AdminUserID  string     `json:"admin_user_id"`
	TargetUserID string     `json:"target_user_id"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Reason       string     `json:"reason"`
	IssuedAt     time.Time  `json:"issued_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Revoked      bool       `json:"revoked"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
}

// ActiveAt reports whether the override bypasses geofence enforcement
// at the given instant. Expiry is strict: an override whose ExpiresAt
// equals now is already expired.
func (o *GPSOverride) ActiveAt(now time.Time) bool {
	return !o.Revoked && now.Before(o.ExpiresAt)
}
