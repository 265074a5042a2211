package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medikita/gps-attendance/internal/application/service"
	"github.com/medikita/gps-attendance/internal/domain/entity"
	"github.com/medikita/gps-attendance/internal/metrics"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	validationService service.ValidationService
	overrideService   service.OverrideService
	collector         *metrics.Collector
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	validationService service.ValidationService,
	overrideService service.OverrideService,
	collector *metrics.Collector,
	logger Logger,
) *Handlers {
	return &Handlers{
		validationService: validationService,
		overrideService:   overrideService,
		collector:         collector,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ValidateRequest is the body for POST /api/v1/attendance/validate
type ValidateRequest struct {
	UserID         string   `json:"user_id" binding:"required"`
	Latitude       *float64 `json:"latitude" binding:"required"`
	Longitude      *float64 `json:"longitude" binding:"required"`
	AccuracyMeters *float64 `json:"accuracy_meters"`
	VPNSuspected   bool     `json:"vpn_suspected"`
}

// DiagnosticsRequest is the body for POST /api/v1/gps/diagnostics
type DiagnosticsRequest struct {
	Latitude       *float64 `json:"latitude" binding:"required"`
	Longitude      *float64 `json:"longitude" binding:"required"`
	AccuracyMeters *float64 `json:"accuracy_meters"`
	VPNSuspected   bool     `json:"vpn_suspected"`
	WorkLocationID *int64   `json:"work_location_id"`
}

// CreateOverrideRequest is the body for POST /api/v1/overrides
type CreateOverrideRequest struct {
	AdminUserID   string   `json:"admin_user_id" binding:"required"`
	TargetUserID  string   `json:"target_user_id" binding:"required"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Reason        string   `json:"reason" binding:"required"`
	DurationHours int      `json:"duration_hours"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "gps-attendance",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// ValidateAttendance handles POST /api/v1/attendance/validate
func (h *Handlers) ValidateAttendance(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request: " + err.Error()})
		return
	}

	pos := entity.PositionReport{
		Latitude:       *req.Latitude,
		Longitude:      *req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
	}
	flags := entity.SimulationFlags{VPNSuspected: req.VPNSuspected}

	verdict, err := h.validationService.ValidateWorkLocation(c.Request.Context(), req.UserID, pos, flags)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordVerdict(string(verdict.Code))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"validation_result": verdict},
	})
}

// GPSDiagnostics handles POST /api/v1/gps/diagnostics
func (h *Handlers) GPSDiagnostics(c *gin.Context) {
	var req DiagnosticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request: " + err.Error()})
		return
	}

	pos := entity.PositionReport{
		Latitude:       *req.Latitude,
		Longitude:      *req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
	}
	flags := entity.SimulationFlags{VPNSuspected: req.VPNSuspected}

	var report *entity.DiagnosticReport
	var err error
	if req.WorkLocationID != nil {
		report, err = h.validationService.GPSDiagnosticsForLocation(c.Request.Context(), *req.WorkLocationID, pos, flags)
	} else {
		report, err = h.validationService.GPSDiagnostics(pos, nil, flags)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"diagnostic_report": report},
	})
}

// CreateOverride handles POST /api/v1/overrides
func (h *Handlers) CreateOverride(c *gin.Context) {
	var req CreateOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request: " + err.Error()})
		return
	}

	override, err := h.overrideService.CreateOverride(c.Request.Context(), service.CreateOverrideInput{
		AdminUserID:   req.AdminUserID,
		TargetUserID:  req.TargetUserID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Reason:        req.Reason,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordOverrideIssued()
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    gin.H{"override": override},
	})
}

// ListOverrides handles GET /api/v1/overrides/:userID
func (h *Handlers) ListOverrides(c *gin.Context) {
	userID := c.Param("userID")

	active, err := h.overrideService.ActiveOverride(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	history, err := h.overrideService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"active":  active,
			"history": history,
		},
	})
}

// RevokeOverride handles POST /api/v1/overrides/:id/revoke
func (h *Handlers) RevokeOverride(c *gin.Context) {
	id := c.Param("id")

	if err := h.overrideService.Revoke(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"override_id": id, "revoked": true},
	})
}

// respondError maps core error kinds to HTTP statuses. Business
// verdicts never arrive here; only input and lookup failures do.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, entity.ErrInvalidCoordinates), errors.Is(err, entity.ErrInvalidAccuracy):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidOverrideRequest):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrNoWorkLocationAssigned), errors.Is(err, entity.ErrOverrideNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrOverrideDenied):
		status = http.StatusForbidden
	default:
		h.logger.Error("Request failed", "error", err)
	}

	c.JSON(status, Response{Success: false, Error: err.Error()})
}
