package query

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
)

// FindHotspot pairs every event with the count of events within radiusKm of
// its location (self included, distance-to-self being zero), ranks the
// candidates by count descending, and returns the second-ranked candidate
// together with its full neighborhood.
//
// Selecting rank index 1 rather than the top-ranked candidate reproduces the
// original tool's observable behavior; see TestFindHotspot_SelectsSecondRankedHotspot.
// Ties on count keep input order, so a fixed input sequence always yields the
// same center.
//
// Fails with a QueryError when fewer than 2 events exist, since there is no
// second ranked entry.
func FindHotspot(events []domain.SeismicEvent, radiusKm float64) (domain.SeismicEvent, []domain.SeismicEvent, error) {
	if len(events) < 2 {
		return domain.SeismicEvent{}, nil, &domain.QueryError{
			Stage: "hotspot",
			Msg:   "need at least 2 events to rank neighborhoods",
		}
	}

	counts := neighborhoodCounts(events, radiusKm)

	// Rank candidate centers by neighborhood count, descending. The stable
	// sort keeps input order between equal counts.
	ranked := make([]int, len(events))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return counts[ranked[a]] > counts[ranked[b]]
	})

	center := events[ranked[1]]
	return center, FilterRadius(events, center.Location, radiusKm), nil
}

// neighborhoodCounts computes, for each event, how many events lie within
// radiusKm of it. Each candidate's count is independent and reads only the
// shared immutable slice, so the O(n²) scan fans out across CPUs.
func neighborhoodCounts(events []domain.SeismicEvent, radiusKm float64) []int {
	counts := make([]int, len(events))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range events {
		g.Go(func() error {
			n := 0
			for j := range events {
				if domain.Distance(events[j].Location, events[i].Location) <= radiusKm {
					n++
				}
			}
			counts[i] = n
			return nil
		})
	}
	// Workers never return errors; Wait is the join point.
	_ = g.Wait()

	return counts
}