// Package agenda converts keyed record collections into the date-bucketed,
// chronologically sorted structures that drive calendar-style views.
package agenda

import (
	"slices"
	"strings"
	"time"

	"github.com/rosterhq/roster-api/internal/timeutil"
)

// Item is any record that can be placed on the agenda.
type Item interface {
	StartsAt() time.Time
}

// Entry is the display projection of a single record, bucketed under the
// ISO calendar date of its start time. Entries are rebuilt from scratch on
// every Build call and never mutated in place.
type Entry struct {
	ID   string `json:"id"`
	Data Item   `json:"data"`
	Day  string `json:"day"`
}

// Dot is a single marker annotation on a calendar date, keyed by the entry
// that produced it.
type Dot struct {
	Key string `json:"key"`
}

// Marker aggregates the dots shown on a marked calendar date.
type Marker struct {
	Marked bool  `json:"marked"`
	Dots   []Dot `json:"dots"`
}

// Window bounds the pre-populated display range relative to a reference
// instant. Records outside the window contribute no entries and no markers.
type Window struct {
	MonthsBack    int
	MonthsForward int
}

// DefaultWindow matches the 18-month display range of the mobile client.
var DefaultWindow = Window{MonthsBack: 6, MonthsForward: 12}

// Result holds the schedule and marker index produced by a single build.
// Schedule contains one key per calendar day in the window, empty days
// included; Markers holds only dates that received at least one entry.
type Result struct {
	Schedule map[string][]Entry `json:"schedule"`
	Markers  map[string]Marker  `json:"markers"`
}

// Build places every record of items into its day bucket and returns the
// fully populated schedule plus the marker index. The output is
// deterministic for a given now: records are visited in ascending key
// order, and each day's entries are stable-sorted by start time so records
// sharing a start time keep their key order.
func Build[T Item](items map[string]T, now time.Time, window Window) Result {
	schedule := populateSchedule(now, window)
	markers := make(map[string]Marker)

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		item := items[id]
		day := timeutil.DateKey(item.StartsAt())
		entries, ok := schedule[day]
		if !ok {
			continue
		}
		schedule[day] = append(entries, Entry{ID: id, Data: item, Day: day})

		marker := markers[day]
		marker.Marked = true
		marker.Dots = append(marker.Dots, Dot{Key: id})
		markers[day] = marker
	}

	for day, entries := range schedule {
		if len(entries) < 2 {
			continue
		}
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return a.Data.StartsAt().Compare(b.Data.StartsAt())
		})
		schedule[day] = entries
	}

	return Result{Schedule: schedule, Markers: markers}
}

// populateSchedule creates an empty entry list for every calendar day from
// window.MonthsBack months before now through window.MonthsForward months
// after, inclusive.
func populateSchedule(now time.Time, window Window) map[string][]Entry {
	start := now.AddDate(0, -window.MonthsBack, 0)
	end := now.AddDate(0, window.MonthsForward, 0)

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	schedule := make(map[string][]Entry)
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		schedule[timeutil.DateKey(d)] = []Entry{}
	}
	return schedule
}

// Days returns the schedule's date keys in ascending order.
func (r Result) Days() []string {
	days := make([]string, 0, len(r.Schedule))
	for day := range r.Schedule {
		days = append(days, day)
	}
	slices.SortFunc(days, strings.Compare)
	return days
}
