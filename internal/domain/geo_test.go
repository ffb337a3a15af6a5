package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid point", func(t *testing.T) {
		p, err := NewGeoPoint(38.8232, -122.7955, "The Geysers, CA")
		require.NoError(t, err)
		assert.Equal(t, 38.8232, p.Latitude)
		assert.Equal(t, -122.7955, p.Longitude)
		assert.Equal(t, "The Geysers, CA", p.Label)
	})

	t.Run("empty label allowed", func(t *testing.T) {
		_, err := NewGeoPoint(0, 0, "")
		assert.NoError(t, err)
	})

	tests := []struct {
		name  string
		lat   float64
		lon   float64
		field string
	}{
		{"latitude above range", 90.01, 0, "latitude"},
		{"latitude below range", -90.01, 0, "latitude"},
		{"longitude above range", 0, 180.5, "longitude"},
		{"longitude below range", 0, -180.5, "longitude"},
		{"latitude NaN", math.NaN(), 0, "latitude"},
		{"longitude infinite", 0, math.Inf(1), "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeoPoint(tt.lat, tt.lon, "")
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestDistance(t *testing.T) {
	geysers := GeoPoint{Latitude: 38.8232, Longitude: -122.7955}
	ridgecrest := GeoPoint{Latitude: 35.7695, Longitude: -117.5993}

	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(geysers, geysers))
	})

	t.Run("symmetry", func(t *testing.T) {
		assert.InDelta(t, Distance(geysers, ridgecrest), Distance(ridgecrest, geysers), 1e-9)
	})

	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		a := GeoPoint{Latitude: 0, Longitude: 0}
		b := GeoPoint{Latitude: 0, Longitude: 1}
		// One degree of arc on a 6371 km sphere.
		assert.InDelta(t, 6371.0*math.Pi/180, Distance(a, b), 1e-6)
	})

	t.Run("known pair sanity", func(t *testing.T) {
		d := Distance(geysers, ridgecrest)
		// Geysers to Ridgecrest is roughly 570 km.
		assert.Greater(t, d, 500.0)
		assert.Less(t, d, 650.0)
	})

	t.Run("antipodal points stay finite", func(t *testing.T) {
		a := GeoPoint{Latitude: 0, Longitude: 0}
		b := GeoPoint{Latitude: 0, Longitude: 180}
		d := Distance(a, b)
		assert.False(t, math.IsNaN(d))
		assert.InDelta(t, 6371.0*math.Pi, d, 1e-6)
	})
}
