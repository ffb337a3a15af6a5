// Package query implements the analytical operations over parsed seismic
// events: earthquake extraction, date-range and radius filtering, magnitude
// ordering, and the activity-hotspot search. Every operation is a pure
// function over its input slice; results reference the original events and
// never mutate them.
package query

import (
	"sort"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
)

// FilterEarthquakes extracts the successfully parsed earthquake events from a
// batch of per-record parse outcomes. Parse failures are dropped silently at
// this boundary (callers that want the tally read it off the ParseResult
// slice before filtering); an empty result is a valid success.
func FilterEarthquakes(parsed []domain.ParseResult) ([]domain.SeismicEvent, error) {
	events := make([]domain.SeismicEvent, 0, len(parsed))
	for _, r := range parsed {
		if !r.Ok() {
			continue
		}
		if r.Event.IsEarthquake() {
			events = append(events, r.Event)
		}
	}
	return events, nil
}

// FilterDateRange keeps events with start <= time <= end, inclusive on both
// ends, using the EventTime field order.
func FilterDateRange(events []domain.SeismicEvent, start, end domain.EventTime) []domain.SeismicEvent {
	kept := make([]domain.SeismicEvent, 0, len(events))
	for _, e := range events {
		if e.Time.Compare(start) >= 0 && e.Time.Compare(end) <= 0 {
			kept = append(kept, e)
		}
	}
	return kept
}

// FilterRadius keeps events within radiusKm of center, inclusive.
func FilterRadius(events []domain.SeismicEvent, center domain.GeoPoint, radiusKm float64) []domain.SeismicEvent {
	kept := make([]domain.SeismicEvent, 0, len(events))
	for _, e := range events {
		if domain.Distance(e.Location, center) <= radiusKm {
			kept = append(kept, e)
		}
	}
	return kept
}

// SortByMagnitude returns the events ordered by magnitude value descending.
// The sort is stable and the input slice is left untouched.
func SortByMagnitude(events []domain.SeismicEvent) []domain.SeismicEvent {
	sorted := make([]domain.SeismicEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Magnitude.Value > sorted[j].Magnitude.Value
	})
	return sorted
}
