package stats

import (
	"sort"
	"time"

	"triplogs/internal/domain"
)

// GroupByYear partitions trips by the calendar year of their date.
// The partition is disjoint and exhaustive: concatenating all groups
// reproduces the input set. Ordering within a group follows input order.
func GroupByYear(trips []domain.Trip) map[int][]domain.Trip {
	groups := make(map[int][]domain.Trip)
	for _, t := range trips {
		groups[t.Year()] = append(groups[t.Year()], t)
	}
	return groups
}

// Years returns the distinct calendar years present in trips, newest first.
func Years(trips []domain.Trip) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, t := range trips {
		if _, ok := seen[t.Year()]; !ok {
			seen[t.Year()] = struct{}{}
			years = append(years, t.Year())
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// TimelineKind tags a timeline item as a trip or an odometer check-in.
type TimelineKind string

const (
	KindTrip     TimelineKind = "trip"
	KindOdometer TimelineKind = "odometer"
)

// TimelineItem is one entry in the merged history view. Exactly one of
// Trip or Reading is set, according to Kind.
type TimelineItem struct {
	Kind    TimelineKind
	Trip    *domain.Trip
	Reading *domain.OdometerReading
}

// Date returns the calendar date of the underlying item.
func (i TimelineItem) Date() time.Time {
	if i.Kind == KindTrip {
		return i.Trip.Date
	}
	return i.Reading.Date
}

// BuildTimeline merges the trips and odometer readings of one calendar year
// into a single sequence ordered by date descending. The sort is stable with
// trips queued ahead of readings, so same-date ordering is deterministic:
// trips first, then readings, each in input order.
func BuildTimeline(trips []domain.Trip, readings []domain.OdometerReading, year int) []TimelineItem {
	var items []TimelineItem
	for i := range trips {
		if trips[i].Year() == year {
			items = append(items, TimelineItem{Kind: KindTrip, Trip: &trips[i]})
		}
	}
	for i := range readings {
		if readings[i].Date.Year() == year {
			items = append(items, TimelineItem{Kind: KindOdometer, Reading: &readings[i]})
		}
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Date().After(items[b].Date())
	})
	return items
}
