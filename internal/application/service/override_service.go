package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medikita/gps-attendance/internal/application/port"
	"github.com/medikita/gps-attendance/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// CreateOverrideInput carries an administrator's override request.
// DurationHours of 0 means "use the default"; any other out-of-range
// value is rejected, never clamped.
type CreateOverrideInput struct {
	AdminUserID   string
	TargetUserID  string
	Latitude      *float64
	Longitude     *float64
	Reason        string
	DurationHours int
}

// OverrideService manages time-bounded per-user exceptions to geofence
// enforcement.
type OverrideService interface {
	CreateOverride(ctx context.Context, input CreateOverrideInput) (*entity.GPSOverride, error)
	ActiveOverride(ctx context.Context, userID string) (*entity.GPSOverride, error)
	Revoke(ctx context.Context, overrideID string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.GPSOverride, error)
}

type overrideServiceImpl struct {
	overrideRepo port.OverrideRepository
	logger       Logger
	now          func() time.Time
}

// NewOverrideService creates a new OverrideService.
func NewOverrideService(overrideRepo port.OverrideRepository, logger Logger) OverrideService {
	return &overrideServiceImpl{
		overrideRepo: overrideRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateOverride validates and persists a new override. Prior overrides
// for the same user are left untouched; history is retained for audit.
func (s *overrideServiceImpl) CreateOverride(ctx context.Context, input CreateOverrideInput) (*entity.GPSOverride, error) {
	if input.AdminUserID == "" || input.TargetUserID == "" {
		return nil, fmt.Errorf("%w: admin and target user are required", entity.ErrInvalidOverrideRequest)
	}
	if err := entity.ValidateOverrideReason(input.Reason); err != nil {
		return nil, err
	}

	hours := input.DurationHours
	if hours == 0 {
		hours = entity.DefaultOverrideDurationHours
	}
	if err := entity.ValidateOverrideDuration(hours); err != nil {
		return nil, err
	}

	if input.Latitude != nil || input.Longitude != nil {
		if input.Latitude == nil || input.Longitude == nil {
			return nil, fmt.Errorf("%w: latitude and longitude must be supplied together", entity.ErrInvalidOverrideRequest)
		}
		if err := entity.ValidateCoordinates(*input.Latitude, *input.Longitude); err != nil {
			return nil, err
		}
	}

	issuedAt := s.now()
	override := &entity.GPSOverride{
		ID:           uuid.New().String(),
		AdminUserID:  input.AdminUserID,
		TargetUserID: input.TargetUserID,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Reason:       input.Reason,
		IssuedAt:     issuedAt,
		ExpiresAt:    issuedAt.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.overrideRepo.Create(ctx, override); err != nil {
		s.logger.Error("Failed to create override", "target_user_id", input.TargetUserID, "error", err)
		return nil, fmt.Errorf("create override: %w", err)
	}

	s.logger.Info("GPS override created",
		"override_id", override.ID,
		"admin_user_id", input.AdminUserID,
		"target_user_id", input.TargetUserID,
		"expires_at", override.ExpiresAt.Format(time.RFC3339))

	return override, nil
}

// ActiveOverride returns the most recent non-revoked, non-expired
// override for the user, or nil when none applies. The instant is
// sampled once here so the repository filter and the ActiveAt boundary
// agree on the same "now".
func (s *overrideServiceImpl) ActiveOverride(ctx context.Context, userID string) (*entity.GPSOverride, error) {
	now := s.now()
	override, err := s.overrideRepo.LatestActiveForUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("get active override: %w", err)
	}
	if override == nil || !override.ActiveAt(now) {
		return nil, nil
	}
	return override, nil
}

// Revoke flags an override as revoked while keeping the record for
// audit.
func (s *overrideServiceImpl) Revoke(ctx context.Context, overrideID string) error {
	if err := s.overrideRepo.Revoke(ctx, overrideID); err != nil {
		return err
	}
	s.logger.Info("GPS override revoked", "override_id", overrideID)
	return nil
}

// ListByUser returns the full override history for a user, newest
// first.
func (s *overrideServiceImpl) ListByUser(ctx context.Context, userID string) ([]*entity.GPSOverride, error) {
	overrides, err := s.overrideRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return overrides, nil
}
