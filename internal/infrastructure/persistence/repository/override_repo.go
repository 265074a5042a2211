package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/medikita/gps-attendance/internal/application/port"
	"github.com/medikita/gps-attendance/internal/domain/entity"
)

// OverrideRepository implements port.OverrideRepository
type OverrideRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOverrideRepository creates a new override repository
func NewOverrideRepository(db *sql.DB, logger *zap.Logger) port.OverrideRepository {
	return &OverrideRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new override. Prior rows for the same user are
// untouched; history is append-only.
func (r *OverrideRepository) Create(ctx context.Context, override *entity.GPSOverride) error {
	query := `
		INSERT INTO gps_overrides (
			id, admin_user_id, target_user_id, latitude, longitude,
			reason, issued_at, expires_at, revoked
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`

	_, err := r.db.ExecContext(ctx, query,
		override.ID,
		override.AdminUserID,
		override.TargetUserID,
		override.Latitude,
		override.Longitude,
		override.Reason,
		override.IssuedAt,
		override.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("Failed to create override",
			zap.String("override_id", override.ID),
			zap.String("target_user_id", override.TargetUserID),
			zap.Error(err))
		return fmt.Errorf("failed to create override: %w", err)
	}

	return nil
}

// GetByID retrieves an override by ID
func (r *OverrideRepository) GetByID(ctx context.Context, id string) (*entity.GPSOverride, error) {
	query := selectOverride + ` WHERE id = ?`

	override, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		r.logger.Error("Failed to get override by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get override: %w", err)
	}
	return override, nil
}

// LatestActiveForUser retrieves the most recently issued override that
// is still in force at the given instant, or nil. Expired rows are
// filtered in the query so a newer expired override never shadows an
// older active one. Concurrent creates for the same user resolve by
// issued_at ordering at read time.
func (r *OverrideRepository) LatestActiveForUser(ctx context.Context, userID string, now time.Time) (*entity.GPSOverride, error) {
	query := selectOverride + `
		WHERE target_user_id = ? AND revoked = 0 AND expires_at > ?
		ORDER BY issued_at DESC
		LIMIT 1
	`

	override, err := r.scanOne(r.db.QueryRowContext(ctx, query, userID, now))
	if err != nil {
		r.logger.Error("Failed to get active override", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get active override: %w", err)
	}
	return override, nil
}

// Revoke marks an override revoked while keeping the row for audit
func (r *OverrideRepository) Revoke(ctx context.Context, id string) error {
	query := `UPDATE gps_overrides SET revoked = 1, revoked_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to revoke override", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to revoke override: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check revoke result: %w", err)
	}
	if affected == 0 {
		return entity.ErrOverrideNotFound
	}

	return nil
}

// ListByUser retrieves the full override history for a user, newest first
func (r *OverrideRepository) ListByUser(ctx context.Context, userID string) ([]*entity.GPSOverride, error) {
	query := selectOverride + `
		WHERE target_user_id = ?
		ORDER BY issued_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list overrides", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	defer rows.Close()

	var overrides []*entity.GPSOverride
	for rows.Next() {
		override, err := scanOverride(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, override)
	}

	return overrides, rows.Err()
}

const selectOverride = `
	SELECT id, admin_user_id, target_user_id, latitude, longitude,
		reason, issued_at, expires_at, revoked, revoked_at
	FROM gps_overrides`

func (r *OverrideRepository) scanOne(row *sql.Row) (*entity.GPSOverride, error) {
	override, err := scanOverride(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return override, err
}

func scanOverride(scan func(dest ...interface{}) error) (*entity.GPSOverride, error) {
	var override entity.GPSOverride
	var lat, lon sql.NullFloat64
	var revokedAt sql.NullTime

	err := scan(
		&override.ID,
		&override.AdminUserID,
		&override.TargetUserID,
		&lat,
		&lon,
		&override.Reason,
		&override.IssuedAt,
		&override.ExpiresAt,
		&override.Revoked,
		&revokedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		override.Latitude = &lat.Float64
	}
	if lon.Valid {
		override.Longitude = &lon.Float64
	}
	if revokedAt.Valid {
		override.RevokedAt = &revokedAt.Time
	}

	return &override, nil
}
