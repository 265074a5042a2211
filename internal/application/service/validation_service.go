package service

import (
	"context"
	"fmt"

	"github.com/medikita/gps-attendance/internal/application/port"
	"github.com/medikita/gps-attendance/internal/domain/entity"
	"github.com/medikita/gps-attendance/internal/domain/geofence"
	"github.com/medikita/gps-attendance/internal/domain/signal"
)

// ValidationService is the public entry point for attendance GPS
// validation. Each call is a single atomic decision; the only state
// crossing calls is the override store.
type ValidationService interface {
	// ValidateWorkLocation resolves the user's assigned geofence,
	// checks containment, consults overrides on failure, and always
	// attaches diagnostics.
	ValidateWorkLocation(ctx context.Context, userID string, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.ValidationVerdict, error)

	// GPSDiagnostics produces a report for an already-resolved work
	// location without a user-bound validation. Used by the admin
	// test-coordinates tooling.
	GPSDiagnostics(pos entity.PositionReport, loc *entity.WorkLocation, flags entity.SimulationFlags) (*entity.DiagnosticReport, error)

	// GPSDiagnosticsForLocation resolves a work location by ID before
	// producing the same report.
	GPSDiagnosticsForLocation(ctx context.Context, workLocationID int64, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.DiagnosticReport, error)
}

type validationServiceImpl struct {
	workLocationRepo port.WorkLocationRepository
	overrideService  OverrideService
	evaluator        *geofence.Evaluator
	analyzer         *signal.Analyzer
	logger           Logger
}

// NewValidationService creates a new ValidationService.
func NewValidationService(
	workLocationRepo port.WorkLocationRepository,
	overrideService OverrideService,
	evaluator *geofence.Evaluator,
	analyzer *signal.Analyzer,
	logger Logger,
) ValidationService {
	return &validationServiceImpl{
		workLocationRepo: workLocationRepo,
		overrideService:  overrideService,
		evaluator:        evaluator,
		analyzer:         analyzer,
		logger:           logger,
	}
}

// ValidateWorkLocation runs the full validation flow for one reading.
func (s *validationServiceImpl) ValidateWorkLocation(ctx context.Context, userID string, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.ValidationVerdict, error) {
	if err := entity.ValidatePosition(pos); err != nil {
		return nil, err
	}

	loc, err := s.workLocationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to resolve work location", "user_id", userID, "error", err)
		return nil, fmt.Errorf("resolve work location: %w", err)
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: user %s", entity.ErrNoWorkLocationAssigned, userID)
	}

	result := s.evaluator.Evaluate(pos, loc)
	diagnostics := s.analyzer.Analyze(pos, flags, result.DistanceMeters, result.EffectiveRadius)

	verdict := &entity.ValidationVerdict{
		DistanceMeters:   result.DistanceMeters,
		EffectiveRadius:  result.EffectiveRadius,
		WorkLocationID:   loc.ID,
		WorkLocationName: loc.Name,
		Diagnostics:      diagnostics,
	}

	if result.WithinGeofence {
		verdict.Valid = true
		verdict.Code = entity.VerdictWithinGeofence
		verdict.Message = fmt.Sprintf("Position is %.0fm from %s, inside the %.0fm boundary.",
			result.DistanceMeters, loc.Name, result.EffectiveRadius)
		return verdict, nil
	}

	override, err := s.overrideService.ActiveOverride(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to check override", "user_id", userID, "error", err)
		return nil, err
	}
	if override != nil {
		verdict.Valid = true
		verdict.Code = entity.VerdictOverrideApplied
		verdict.OverrideApplied = true
		verdict.OverrideID = override.ID
		verdict.Message = fmt.Sprintf("Geofence check bypassed by administrator override (reason: %s).", override.Reason)
		s.logger.Info("Validation passed via override",
			"user_id", userID,
			"override_id", override.ID,
			"distance_meters", result.DistanceMeters)
		return verdict, nil
	}

	verdict.Valid = false
	verdict.Code = entity.VerdictOutsideGeofence
	verdict.Message = fmt.Sprintf("Position is %.0fm from %s, outside the %.0fm boundary.",
		result.DistanceMeters, loc.Name, result.EffectiveRadius)
	return verdict, nil
}

// GPSDiagnostics is a pass-through to the signal analyzer, with the
// geofence result included when a work location is supplied.
func (s *validationServiceImpl) GPSDiagnostics(pos entity.PositionReport, loc *entity.WorkLocation, flags entity.SimulationFlags) (*entity.DiagnosticReport, error) {
	if err := entity.ValidatePosition(pos); err != nil {
		return nil, err
	}

	if loc == nil {
		return s.analyzer.Analyze(pos, flags, 0, 0), nil
	}

	if err := entity.ValidateCoordinates(loc.Latitude, loc.Longitude); err != nil {
		return nil, err
	}

	result := s.evaluator.Evaluate(pos, loc)
	return s.analyzer.Analyze(pos, flags, result.DistanceMeters, result.EffectiveRadius), nil
}

// GPSDiagnosticsForLocation resolves the work location and delegates to
// GPSDiagnostics.
func (s *validationServiceImpl) GPSDiagnosticsForLocation(ctx context.Context, workLocationID int64, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.DiagnosticReport, error) {
	loc, err := s.workLocationRepo.GetByID(ctx, workLocationID)
	if err != nil {
		s.logger.Error("Failed to resolve work location", "work_location_id", workLocationID, "error", err)
		return nil, fmt.Errorf("resolve work location: %w", err)
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: work location %d", entity.ErrNoWorkLocationAssigned, workLocationID)
	}
	return s.GPSDiagnostics(pos, loc, flags)
}
