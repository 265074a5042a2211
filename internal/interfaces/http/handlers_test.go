package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikita/gps-attendance/internal/application/service"
	"github.com/medikita/gps-attendance/internal/domain/entity"
	"github.com/medikita/gps-attendance/internal/metrics"
)

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockValidationService struct {
	validateFunc func(ctx context.Context, userID string, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.ValidationVerdict, error)
}

func (m *mockValidationService) ValidateWorkLocation(ctx context.Context, userID string, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.ValidationVerdict, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, userID, pos, flags)
	}
	return nil, entity.ErrNoWorkLocationAssigned
}

func (m *mockValidationService) GPSDiagnostics(pos entity.PositionReport, loc *entity.WorkLocation, flags entity.SimulationFlags) (*entity.DiagnosticReport, error) {
	if err := entity.ValidatePosition(pos); err != nil {
		return nil, err
	}
	return &entity.DiagnosticReport{
		AccuracyBucket: entity.AccuracyGood,
		Confidence:     entity.ConfidenceHigh,
	}, nil
}

func (m *mockValidationService) GPSDiagnosticsForLocation(ctx context.Context, workLocationID int64, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.DiagnosticReport, error) {
	if workLocationID == 404 {
		return nil, entity.ErrNoWorkLocationAssigned
	}
	return m.GPSDiagnostics(pos, nil, flags)
}

type mockOverrideService struct {
	createFunc func(ctx context.Context, input service.CreateOverrideInput) (*entity.GPSOverride, error)
	revokeFunc func(ctx context.Context, overrideID string) error
}

func (m *mockOverrideService) CreateOverride(ctx context.Context, input service.CreateOverrideInput) (*entity.GPSOverride, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	now := time.Now()
	return &entity.GPSOverride{
		ID:           "ov-1",
		AdminUserID:  input.AdminUserID,
		TargetUserID: input.TargetUserID,
		Reason:       input.Reason,
		IssuedAt:     now,
		ExpiresAt:    now.Add(24 * time.Hour),
	}, nil
}

func (m *mockOverrideService) ActiveOverride(ctx context.Context, userID string) (*entity.GPSOverride, error) {
	return nil, nil
}

func (m *mockOverrideService) Revoke(ctx context.Context, overrideID string) error {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, overrideID)
	}
	return nil
}

func (m *mockOverrideService) ListByUser(ctx context.Context, userID string) ([]*entity.GPSOverride, error) {
	return []*entity.GPSOverride{}, nil
}

func newTestServer(t *testing.T, validation *mockValidationService, override *mockOverrideService) *Server {
	t.Helper()

	collector, err := metrics.NewCollector()
	require.NoError(t, err)

	return NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, validation, override, collector, testLogger{})
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, req)
	return recorder
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "healthy")
}

func TestValidateAttendanceSuccess(t *testing.T) {
	validation := &mockValidationService{
		validateFunc: func(ctx context.Context, userID string, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.ValidationVerdict, error) {
			return &entity.ValidationVerdict{
				Valid:           true,
				Code:            entity.VerdictWithinGeofence,
				Message:         "inside",
				DistanceMeters:  12.3,
				EffectiveRadius: 105,
				Diagnostics:     &entity.DiagnosticReport{AccuracyBucket: entity.AccuracyExcellent, Confidence: entity.ConfidenceHigh},
			}, nil
		},
	}
	server := newTestServer(t, validation, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/attendance/validate", jsonBody{
		"user_id":         "user-7",
		"latitude":        -6.2088,
		"longitude":       106.8456,
		"accuracy_meters": 5,
	})

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ValidationResult struct {
				Valid bool   `json:"valid"`
				Code  string `json:"code"`
			} `json:"validation_result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.ValidationResult.Valid)
	assert.Equal(t, "within_geofence", resp.Data.ValidationResult.Code)
}

func TestValidateAttendanceMissingFields(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/attendance/validate", jsonBody{
		"user_id": "user-7",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestValidateAttendanceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid coordinates", entity.ErrInvalidCoordinates, http.StatusBadRequest},
		{"invalid accuracy", entity.ErrInvalidAccuracy, http.StatusBadRequest},
		{"no work location", entity.ErrNoWorkLocationAssigned, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validation := &mockValidationService{
				validateFunc: func(ctx context.Context, userID string, pos entity.PositionReport, flags entity.SimulationFlags) (*entity.ValidationVerdict, error) {
					return nil, tt.err
				},
			}
			server := newTestServer(t, validation, &mockOverrideService{})

			recorder := doJSON(t, server, http.MethodPost, "/api/v1/attendance/validate", jsonBody{
				"user_id":   "user-7",
				"latitude":  -6.2088,
				"longitude": 106.8456,
			})

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"success":false`)
		})
	}
}

func TestGPSDiagnosticsEndpoint(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/gps/diagnostics", jsonBody{
		"latitude":        -6.2088,
		"longitude":       106.8456,
		"accuracy_meters": 20,
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "diagnostic_report")
}

func TestGPSDiagnosticsUnknownLocation(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/gps/diagnostics", jsonBody{
		"latitude":         -6.2088,
		"longitude":        106.8456,
		"work_location_id": 404,
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateOverrideEndpoint(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/overrides", jsonBody{
		"admin_user_id":  "admin-1",
		"target_user_id": "user-7",
		"reason":         "field visit",
		"duration_hours": 4,
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":"ov-1"`)
}

func TestCreateOverrideInvalidRequest(t *testing.T) {
	override := &mockOverrideService{
		createFunc: func(ctx context.Context, input service.CreateOverrideInput) (*entity.GPSOverride, error) {
			return nil, entity.ErrInvalidOverrideRequest
		},
	}
	server := newTestServer(t, &mockValidationService{}, override)

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/overrides", jsonBody{
		"admin_user_id":  "admin-1",
		"target_user_id": "user-7",
		"reason":         "x",
		"duration_hours": 100,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestCreateOverrideMalformedBody(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	// A body that does not parse is a client formatting error, not an
	// override invariant violation.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/overrides", bytes.NewReader([]byte(`{"admin_user_id":`)))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRevokeOverrideNotFound(t *testing.T) {
	override := &mockOverrideService{
		revokeFunc: func(ctx context.Context, overrideID string) error {
			return entity.ErrOverrideNotFound
		},
	}
	server := newTestServer(t, &mockValidationService{}, override)

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/overrides/missing/revoke", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListOverridesEndpoint(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodGet, "/api/v1/overrides/user-7", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"history"`)
}

func TestMetricsEndpointExposed(t *testing.T) {
	server := newTestServer(t, &mockValidationService{}, &mockOverrideService{})

	recorder := doJSON(t, server, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

type jsonBody = map[string]interface{}
