package query

import (
	"github.com/couchcryptid/quake-analysis-service/internal/domain"
)

// DateRange is an inclusive [Start, End] window in feed time.
type DateRange struct {
	Start domain.EventTime
	End   domain.EventTime
}

// RadiusFilter keeps events within RadiusKm of Center.
type RadiusFilter struct {
	Center   domain.GeoPoint
	RadiusKm float64
}

// Filters holds the optional query constraints. Nil members are skipped.
// The presentation layer validates the parameters (start <= end, start not
// before the configured minimum date, positive radius) before they reach
// this package.
type Filters struct {
	DateRange *DateRange
	Radius    *RadiusFilter
}

// Run applies the filter chain to a set of earthquake events and optionally
// orders the result by magnitude descending. Filtering stages cannot fail on
// well-formed inputs; the error return is reserved for pipeline-level faults
// so the contract matches Hotspot.
func Run(events []domain.SeismicEvent, filters Filters, sortByMagnitude bool) ([]domain.SeismicEvent, error) {
	result := events
	if filters.DateRange != nil {
		result = FilterDateRange(result, filters.DateRange.Start, filters.DateRange.End)
	}
	if filters.Radius != nil {
		result = FilterRadius(result, filters.Radius.Center, filters.Radius.RadiusKm)
	}
	if sortByMagnitude {
		result = SortByMagnitude(result)
	}
	return result, nil
}

// Hotspot ranks every event by surrounding event density and returns the
// selected center with its neighborhood. See FindHotspot for the ranking
// rule.
func Hotspot(events []domain.SeismicEvent, radiusKm float64) (domain.SeismicEvent, []domain.SeismicEvent, error) {
	return FindHotspot(events, radiusKm)
}
