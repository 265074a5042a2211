package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medikita/gps-attendance/internal/domain/entity"
)

func floatPtr(f float64) *float64 { return &f }

func jakartaClinic() *entity.WorkLocation {
	return &entity.WorkLocation{
		ID:           1,
		Name:         "Klinik Pusat",
		Latitude:     -6.2088,
		Longitude:    106.8456,
		RadiusMeters: 100,
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"jakarta pair", -6.2088, 106.8456, -6.2098, 106.8456},
		{"cross equator", 1.5, 103.8, -1.5, 103.8},
		{"antimeridian", 0.0, 179.9, 0.0, -179.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			ba := HaversineDistance(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			assert.InDelta(t, ab, ba, 1e-9)
		})
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// One arc-minute of latitude is one nautical mile (~1852m).
	d := HaversineDistance(0, 0, 1.0/60.0, 0)
	assert.InDelta(t, 1852, d, 10)

	// ~0.001 degrees of latitude near Jakarta is ~111m.
	d = HaversineDistance(-6.2088, 106.8456, -6.2098, 106.8456)
	assert.InDelta(t, 111, d, 2)
}

func TestEvaluateAtCenter(t *testing.T) {
	evaluator := NewEvaluator(DefaultAccuracyToleranceCap)
	pos := entity.PositionReport{Latitude: -6.2088, Longitude: 106.8456, AccuracyMeters: floatPtr(5)}

	result := evaluator.Evaluate(pos, jakartaClinic())

	assert.True(t, result.WithinGeofence)
	assert.InDelta(t, 0, result.DistanceMeters, 0.01)
	assert.InDelta(t, 105, result.EffectiveRadius, 0.01)
}

func TestEvaluateOutsideWithoutAccuracy(t *testing.T) {
	evaluator := NewEvaluator(DefaultAccuracyToleranceCap)
	pos := entity.PositionReport{Latitude: -6.2098, Longitude: 106.8456}

	result := evaluator.Evaluate(pos, jakartaClinic())

	assert.False(t, result.WithinGeofence)
	assert.InDelta(t, 111, result.DistanceMeters, 2)
	assert.Equal(t, 100.0, result.EffectiveRadius)
}

func TestEvaluateAccuracyWidensRadius(t *testing.T) {
	evaluator := NewEvaluator(DefaultAccuracyToleranceCap)
	// ~111m north of center, outside the bare 100m radius.
	pos := entity.PositionReport{Latitude: -6.2098, Longitude: 106.8456, AccuracyMeters: floatPtr(50)}

	result := evaluator.Evaluate(pos, jakartaClinic())

	assert.True(t, result.WithinGeofence)
	assert.Equal(t, 150.0, result.EffectiveRadius)
}

func TestEvaluateAccuracyCapped(t *testing.T) {
	evaluator := NewEvaluator(100)
	pos := entity.PositionReport{Latitude: -6.2098, Longitude: 106.8456, AccuracyMeters: floatPtr(500)}

	result := evaluator.Evaluate(pos, jakartaClinic())

	// Tolerance is capped at 100m, not the full 500m claim.
	assert.Equal(t, 200.0, result.EffectiveRadius)
}

func TestEvaluateRadiusMonotonicity(t *testing.T) {
	evaluator := NewEvaluator(DefaultAccuracyToleranceCap)
	pos := entity.PositionReport{Latitude: -6.2098, Longitude: 106.8456}

	loc := jakartaClinic()
	within := false
	for radius := 10.0; radius <= 500; radius += 10 {
		loc.RadiusMeters = radius
		result := evaluator.Evaluate(pos, loc)
		if within {
			assert.True(t, result.WithinGeofence,
				"growing the radius must never flip within back to false (radius %.0f)", radius)
		}
		within = result.WithinGeofence
	}
	assert.True(t, within)
}

func TestEvaluateAccuracyMonotonicity(t *testing.T) {
	evaluator := NewEvaluator(DefaultAccuracyToleranceCap)
	loc := jakartaClinic()

	within := false
	for accuracy := 0.0; accuracy <= 100; accuracy += 5 {
		pos := entity.PositionReport{Latitude: -6.2098, Longitude: 106.8456, AccuracyMeters: floatPtr(accuracy)}
		result := evaluator.Evaluate(pos, loc)
		if within {
			assert.True(t, result.WithinGeofence,
				"higher reported accuracy must never flip within back to false (accuracy %.0f)", accuracy)
		}
		within = result.WithinGeofence
	}
	assert.True(t, within)
}

func TestNewEvaluatorDefaultsCap(t *testing.T) {
	evaluator := NewEvaluator(0)
	assert.Equal(t, DefaultAccuracyToleranceCap, evaluator.accuracyToleranceCap)
}
