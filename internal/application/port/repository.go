package port

import (
	"context"
	"time"

	"github.com/medikita/gps-attendance/internal/domain/entity"
)

// WorkLocationRepository defines read access to geofence assignments.
// Work locations are administered outside this core and read-only here.
type WorkLocationRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.WorkLocation, error)
	GetByUserID(ctx context.Context, userID string) (*entity.WorkLocation, error)
	List(ctx context.Context) ([]*entity.WorkLocation, error)
}

// OverrideRepository defines persistence operations for GPSOverride.
// Rows are append-only; revocation flags a row rather than deleting it
// so the audit trail survives.
type OverrideRepository interface {
	Create(ctx context.Context, override *entity.GPSOverride) error
	GetByID(ctx context.Context, id string) (*entity.GPSOverride, error)
	// LatestActiveForUser returns the most recently issued override
	// that is neither revoked nor expired at the given instant, or nil.
	// An expired newer row must not shadow an older still-active one.
	LatestActiveForUser(ctx context.Context, userID string, now time.Time) (*entity.GPSOverride, error)
	Revoke(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.GPSOverride, error)
}
