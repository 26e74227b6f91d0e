// Package geo computes great-circle distances between airports.
package geo

import (
	"fmt"
	"math"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

const EarthRadiusKm = 6371.0

// Distance returns the Haversine distance in kilometers between two points
// given in decimal degrees.
func Distance(a, b models.Coordinates) (float64, error) {
	if err := Validate(a); err != nil {
		return 0, err
	}
	if err := Validate(b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}

	dLat := degToRad(b.Latitude - a.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Latitude))*math.Cos(degToRad(b.Latitude))*sinLon*sinLon

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c, nil
}

func AirportDistance(from, to models.Airport) (float64, error) {
	d, err := Distance(from.Location, to.Location)
	if err != nil {
		return 0, models.NewComputeError(err, from.Code+"-"+to.Code)
	}
	return d, nil
}

func Validate(c models.Coordinates) error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", models.ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", models.ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
