package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

var (
	jfk = models.Coordinates{Latitude: 40.6413, Longitude: -73.7781}
	lhr = models.Coordinates{Latitude: 51.4700, Longitude: -0.4543}
	syd = models.Coordinates{Latitude: -33.9399, Longitude: 151.1753}
	akl = models.Coordinates{Latitude: -37.0082, Longitude: 174.7850}
)

func TestDistanceJFKToLHR(t *testing.T) {
	d, err := Distance(jfk, lhr)
	require.NoError(t, err)
	assert.InDelta(t, 5540, d, 5)
}

func TestDistanceSymmetric(t *testing.T) {
	points := []models.Coordinates{jfk, lhr, syd, akl}
	for _, a := range points {
		for _, b := range points {
			ab, err := Distance(a, b)
			require.NoError(t, err)
			ba, err := Distance(b, a)
			require.NoError(t, err)
			assert.InDelta(t, ab, ba, 1e-9)
		}
	}
}

func TestDistanceIdentity(t *testing.T) {
	for _, p := range []models.Coordinates{jfk, lhr, syd, {}} {
		d, err := Distance(p, p)
		require.NoError(t, err)
		assert.Equal(t, 0.0, d)
	}
}

func TestDistanceInvalidCoordinate(t *testing.T) {
	for _, tc := range []models.Coordinates{
		{Latitude: 91, Longitude: 0},
		{Latitude: -90.5, Longitude: 0},
		{Latitude: 0, Longitude: 180.1},
		{Latitude: 0, Longitude: -181},
	} {
		_, err := Distance(tc, jfk)
		assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
	}
}

func TestAirportDistanceWrapsSubject(t *testing.T) {
	_, err := AirportDistance(
		models.Airport{Code: "XXX", Location: models.Coordinates{Latitude: 100}},
		models.Airport{Code: "JFK", Location: jfk},
	)
	var ce *models.ComputeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "XXX-JFK", ce.Subject)
	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
}
