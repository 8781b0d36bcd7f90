package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplogs/internal/domain"
	"triplogs/internal/stats"
)

func readingOn(date time.Time, odometer int64) domain.OdometerReading {
	return domain.OdometerReading{
		ID:        "r-" + date.Format("2006-01-02"),
		VehicleID: "v1",
		Date:      date,
		Odometer:  odometer,
	}
}

func TestGroupByYear_PartitionsDisjointlyAndExhaustively(t *testing.T) {
	trips := []domain.Trip{
		tripOn(day(2023, 1, 1)),
		tripOn(day(2023, 6, 1)),
		tripOn(day(2024, 1, 1)),
	}

	groups := stats.GroupByYear(trips)

	require.Len(t, groups, 2)
	assert.Len(t, groups[2023], 2)
	assert.Len(t, groups[2024], 1)

	// Concatenating all groups reproduces the original set.
	total := 0
	seen := make(map[string]bool)
	for year, group := range groups {
		for _, trip := range group {
			assert.Equal(t, year, trip.Year())
			assert.False(t, seen[trip.ID], "trip %s appears in more than one group", trip.ID)
			seen[trip.ID] = true
			total++
		}
	}
	assert.Equal(t, len(trips), total)
}

func TestGroupByYear_Empty(t *testing.T) {
	assert.Empty(t, stats.GroupByYear(nil))
}

func TestYears_DistinctNewestFirst(t *testing.T) {
	trips := []domain.Trip{
		tripOn(day(2022, 5, 1)),
		tripOn(day(2024, 1, 1)),
		tripOn(day(2022, 8, 1)),
		tripOn(day(2023, 3, 1)),
	}

	assert.Equal(t, []int{2024, 2023, 2022}, stats.Years(trips))
}

func TestBuildTimeline_DescendingByDate(t *testing.T) {
	trips := []domain.Trip{
		tripOn(day(2024, 2, 10)),
		tripOn(day(2024, 5, 1)),
		tripOn(day(2023, 12, 31)), // different year, excluded
	}
	readings := []domain.OdometerReading{
		readingOn(day(2024, 3, 15), 42000),
	}

	items := stats.BuildTimeline(trips, readings, 2024)

	require.Len(t, items, 3)
	assert.Equal(t, stats.KindTrip, items[0].Kind)
	assert.Equal(t, day(2024, 5, 1), items[0].Date())
	assert.Equal(t, stats.KindOdometer, items[1].Kind)
	assert.Equal(t, day(2024, 3, 15), items[1].Date())
	assert.Equal(t, day(2024, 2, 10), items[2].Date())
}

// Items sharing a date must come out in a deterministic order:
// trips ahead of readings, then input order.
func TestBuildTimeline_SameDateTieBreak(t *testing.T) {
	d := day(2024, 4, 4)
	tripA := tripOn(d)
	tripA.ID = "a"
	tripB := tripOn(d)
	tripB.ID = "b"
	reading := readingOn(d, 50000)

	items := stats.BuildTimeline([]domain.Trip{tripA, tripB}, []domain.OdometerReading{reading}, 2024)

	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Trip.ID)
	assert.Equal(t, "b", items[1].Trip.ID)
	assert.Equal(t, stats.KindOdometer, items[2].Kind)
}

func TestBuildTimeline_EmptyYear(t *testing.T) {
	items := stats.BuildTimeline([]domain.Trip{tripOn(day(2023, 1, 1))}, nil, 2024)
	assert.Empty(t, items)
}
