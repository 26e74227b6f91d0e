package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

func option(id string, clock string, total int, stops int) models.Option {
	dep, _ := time.Parse("2006-01-02 15:04", "2025-05-01 "+clock)
	segments := []models.FlightSegment{{
		FlightNumber: id,
		Departure: models.Location{
			Airport: "SYD",
			Local:   models.LocalTime{Date: "2025-05-01", Time: clock, Instant: dep},
		},
	}}
	var lay *models.Layover
	for i := 0; i < stops; i++ {
		segments = append(segments, models.FlightSegment{FlightNumber: id})
		lay = &models.Layover{Airport: "MEL", Gap: models.NewDuration(90, "1h 30m")}
	}
	return models.Option{Itinerary: models.Itinerary{
		Segments:     segments,
		Layover:      lay,
		TotalMinutes: total,
	}}
}

func numbers(options []models.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Segments[0].FlightNumber
	}
	return out
}

func sample() []models.Option {
	return []models.Option{
		option("QF 1", "06:00", 1500, 1),
		option("QF 2", "12:30", 1300, 1),
		option("QF 3", "21:15", 700, 0),
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters *models.OptionFilters
		want    []string
	}{
		{"no filters", nil, []string{"QF 1", "QF 2", "QF 3"}},
		{"nonstop only", &models.OptionFilters{MaxStops: intPtr(0)}, []string{"QF 3"}},
		{"max duration", &models.OptionFilters{MaxDuration: intPtr(1300)}, []string{"QF 2", "QF 3"}},
		{"departure window", &models.OptionFilters{DepartureTimeMin: strPtr("08:00"), DepartureTimeMax: strPtr("21:00")}, []string{"QF 2"}},
		{"malformed window ignored", &models.OptionFilters{DepartureTimeMin: strPtr("morning")}, []string{"QF 1", "QF 2", "QF 3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample(), tt.filters, "departure", "asc")
			assert.Equal(t, tt.want, numbers(got))
		})
	}
}

func TestApplySort(t *testing.T) {
	tests := []struct {
		sortBy, order string
		want          []string
	}{
		{"duration", "asc", []string{"QF 3", "QF 2", "QF 1"}},
		{"duration", "desc", []string{"QF 1", "QF 2", "QF 3"}},
		{"departure", "desc", []string{"QF 3", "QF 2", "QF 1"}},
		{"stops", "asc", []string{"QF 3", "QF 1", "QF 2"}},
		{"stops", "desc", []string{"QF 1", "QF 2", "QF 3"}},
		{"best_value", "asc", []string{"QF 3", "QF 2", "QF 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+"_"+tt.order, func(t *testing.T) {
			got := Apply(sample(), nil, tt.sortBy, tt.order)
			assert.Equal(t, tt.want, numbers(got))
		})
	}
}

func TestApplyBestValueScores(t *testing.T) {
	got := Apply(sample(), nil, "best_value", "asc")
	for _, o := range got {
		assert.Greater(t, o.BestValueScore, 0.0)
	}
}
