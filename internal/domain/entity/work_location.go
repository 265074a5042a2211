package entity

import "time"

// WorkLocation represents a clinic or office geofence: a circular
// boundary around a fixed center, assigned to staff for attendance
// validation.
type WorkLocation struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters float64   `json:"radius_meters"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
