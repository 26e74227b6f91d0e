package ranking

import (
	"math"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

const (
	DurationWeight = 0.6
	StopsWeight    = 0.25
	LayoverWeight  = 0.15
)

func CalculateScores(options []models.Option) []models.Option {
	if len(options) == 0 {
		return options
	}

	maxDuration := findMaxDuration(options)
	maxLayover := findMaxLayover(options)

	result := make([]models.Option, len(options))
	for i, o := range options {
		result[i] = o
		result[i].BestValueScore = CalculateBestValue(o.Itinerary, maxDuration, maxLayover)
	}

	return result
}

// Lower score = better value
func CalculateBestValue(it models.Itinerary, maxDuration, maxLayover float64) float64 {
	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(it.TotalMinutes) / maxDuration) * 100
	}

	layoverScore := 0.0
	if maxLayover > 0 {
		layoverScore = (float64(layoverMinutes(it)) / maxLayover) * 100
	}

	stopsScore := float64(it.Stops()) * 15
	score := (durationScore * DurationWeight) + (stopsScore * StopsWeight) + (layoverScore * LayoverWeight)

	return math.Round(score*100) / 100
}

func layoverMinutes(it models.Itinerary) int {
	if it.Layover == nil {
		return 0
	}
	return it.Layover.Gap.TotalMinutes
}

func findMaxDuration(options []models.Option) float64 {
	maxDuration := 0.0
	for _, o := range options {
		dur := float64(o.TotalMinutes)
		if dur > maxDuration {
			maxDuration = dur
		}
	}
	return maxDuration
}

func findMaxLayover(options []models.Option) float64 {
	maxLayover := 0.0
	for _, o := range options {
		gap := float64(layoverMinutes(o.Itinerary))
		if gap > maxLayover {
			maxLayover = gap
		}
	}
	return maxLayover
}
