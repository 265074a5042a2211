package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/medikita/gps-attendance/internal/application/port"
	"github.com/medikita/gps-attendance/internal/domain/entity"
)

// WorkLocationRepository implements port.WorkLocationRepository
type WorkLocationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWorkLocationRepository creates a new work location repository
func NewWorkLocationRepository(db *sql.DB, logger *zap.Logger) port.WorkLocationRepository {
	return &WorkLocationRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a work location by ID
func (r *WorkLocationRepository) GetByID(ctx context.Context, id int64) (*entity.WorkLocation, error) {
	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM work_locations
		WHERE id = ?
	`

	loc, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		r.logger.Error("Failed to get work location by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get work location: %w", err)
	}
	return loc, nil
}

// GetByUserID retrieves the work location assigned to a user, or nil
// when the user has no assignment
func (r *WorkLocationRepository) GetByUserID(ctx context.Context, userID string) (*entity.WorkLocation, error) {
	query := `
		SELECT wl.id, wl.name, wl.address, wl.latitude, wl.longitude, wl.radius_meters,
			wl.created_at, wl.updated_at
		FROM work_locations wl
		JOIN user_work_locations uwl ON uwl.work_location_id = wl.id
		WHERE uwl.user_id = ?
	`

	loc, err := r.scanOne(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		r.logger.Error("Failed to get work location by user", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get work location: %w", err)
	}
	return loc, nil
}

// List retrieves all work locations
func (r *WorkLocationRepository) List(ctx context.Context) ([]*entity.WorkLocation, error) {
	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM work_locations
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list work locations", zap.Error(err))
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	var locations []*entity.WorkLocation
	for rows.Next() {
		var loc entity.WorkLocation
		var address sql.NullString
		if err := rows.Scan(
			&loc.ID, &loc.Name, &address, &loc.Latitude, &loc.Longitude,
			&loc.RadiusMeters, &loc.CreatedAt, &loc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		loc.Address = address.String
		locations = append(locations, &loc)
	}

	return locations, rows.Err()
}

func (r *WorkLocationRepository) scanOne(row *sql.Row) (*entity.WorkLocation, error) {
	var loc entity.WorkLocation
	var address sql.NullString

	err := row.Scan(
		&loc.ID, &loc.Name, &address, &loc.Latitude, &loc.Longitude,
		&loc.RadiusMeters, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	loc.Address = address.String
	return &loc, nil
}
