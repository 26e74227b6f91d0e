package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/ranking"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
)

func Apply(options []models.Option, filters *models.OptionFilters, sortBy, sortOrder string) []models.Option {
	filtered := applyFilters(options, filters)

	if strings.ToLower(sortBy) == "best_value" || sortBy == "" {
		filtered = ranking.CalculateScores(filtered)
	}

	sorted := applySort(filtered, sortBy, sortOrder)

	return sorted
}

func applyFilters(options []models.Option, filters *models.OptionFilters) []models.Option {
	if filters == nil {
		return options
	}

	result := make([]models.Option, 0, len(options))

	for _, o := range options {
		if matchesFilters(o, filters) {
			result = append(result, o)
		}
	}

	return result
}

func matchesFilters(o models.Option, filters *models.OptionFilters) bool {
	if filters.MaxStops != nil && o.Stops() > *filters.MaxStops {
		return false
	}

	if filters.MaxDuration != nil && o.TotalMinutes > *filters.MaxDuration {
		return false
	}

	depTime, ok := departureMinutes(o)
	if !ok {
		return true
	}

	if filters.DepartureTimeMin != nil {
		minTime, err := parseTimeOfDay(*filters.DepartureTimeMin)
		if err == nil && depTime < minTime {
			return false
		}
	}
	if filters.DepartureTimeMax != nil {
		maxTime, err := parseTimeOfDay(*filters.DepartureTimeMax)
		if err == nil && depTime > maxTime {
			return false
		}
	}

	return true
}

// departureMinutes is the first departure's local clock in minutes past
// midnight.
func departureMinutes(o models.Option) (int, bool) {
	if len(o.Segments) == 0 {
		return 0, false
	}
	t, err := parseTimeOfDay(o.Segments[0].Departure.Local.Time)
	if err != nil {
		return 0, false
	}
	return t, true
}

func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(timezone.ClockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func departureInstant(o models.Option) time.Time {
	if len(o.Segments) == 0 {
		return time.Time{}
	}
	return o.Segments[0].Departure.Local.Instant
}

func applySort(options []models.Option, sortBy, sortOrder string) []models.Option {
	if len(options) == 0 {
		return options
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	switch strings.ToLower(sortBy) {
	case "duration":
		sort.SliceStable(options, func(i, j int) bool {
			if ascending {
				return options[i].TotalMinutes < options[j].TotalMinutes
			}
			return options[i].TotalMinutes > options[j].TotalMinutes
		})

	case "departure":
		sort.SliceStable(options, func(i, j int) bool {
			if ascending {
				return departureInstant(options[i]).Before(departureInstant(options[j]))
			}
			return departureInstant(options[i]).After(departureInstant(options[j]))
		})

	case "stops":
		sort.SliceStable(options, func(i, j int) bool {
			if ascending {
				return options[i].Stops() < options[j].Stops()
			}
			return options[i].Stops() > options[j].Stops()
		})

	default:
		sort.SliceStable(options, func(i, j int) bool {
			if ascending {
				return options[i].BestValueScore < options[j].BestValueScore
			}
			return options[i].BestValueScore > options[j].BestValueScore
		})
	}

	return options
}
