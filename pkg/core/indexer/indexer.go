// Package indexer builds the 4-dimensional coordinate space mapping
// (person, person-shift slot, day, day-shift) tuples to decision variables.
//
// People are indexed in input order, days by sorted date, and shifts within a
// day by sorted name. The ordering is deterministic across runs with the same
// input, which decision-variable identity and solver reproducibility depend
// on.
package indexer

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/shiftrota/pkg/core/model"
)

// Coord addresses one decision variable in the coordinate space.
type Coord struct {
	Person int
	Slot   int
	Day    int
	Shift  int
}

func (c Coord) less(o Coord) bool {
	if c.Person != o.Person {
		return c.Person < o.Person
	}
	if c.Slot != o.Slot {
		return c.Slot < o.Slot
	}
	if c.Day != o.Day {
		return c.Day < o.Day
	}
	return c.Shift < o.Shift
}

// Entry resolves a coordinate back to the domain objects it addresses.
type Entry struct {
	Coord    Coord
	Person   model.Person
	Slot     int
	Day      time.Time
	DayShift model.Shift
}

type dayShiftKey struct {
	day  time.Time
	name string
}

// Indexer is the built coordinate space. It is immutable after Build.
type Indexer struct {
	personIndices   map[model.Person]int
	dayIndices      map[time.Time]int
	dayShiftIndices map[dayShiftKey]int

	entries map[Coord]Entry
	ordered []Coord
}

// Build constructs the coordinate space over people x slots x days x each
// day's shifts. The caller is responsible for deduplicating people.
func Build(people []model.Person, maxShiftsPerPerson int, shiftsByDay map[time.Time][]model.Shift) *Indexer {
	ix := &Indexer{
		personIndices:   make(map[model.Person]int, len(people)),
		dayIndices:      make(map[time.Time]int, len(shiftsByDay)),
		dayShiftIndices: make(map[dayShiftKey]int),
		entries:         make(map[Coord]Entry),
	}

	days := SortedDays(shiftsByDay)

	for personIdx, person := range people {
		ix.personIndices[person] = personIdx

		for slot := 0; slot < maxShiftsPerPerson; slot++ {
			for dayIdx, day := range days {
				ix.dayIndices[day] = dayIdx

				for shiftIdx, shift := range sortedShifts(shiftsByDay[day]) {
					ix.dayShiftIndices[dayShiftKey{day: day, name: shift.Name}] = shiftIdx

					coord := Coord{Person: personIdx, Slot: slot, Day: dayIdx, Shift: shiftIdx}
					entry := Entry{
						Coord:    coord,
						Person:   person,
						Slot:     slot,
						Day:      day,
						DayShift: shift,
					}
					ix.entries[coord] = entry
					ix.ordered = append(ix.ordered, coord)
				}
			}
		}
	}

	sort.Slice(ix.ordered, func(i, j int) bool { return ix.ordered[i].less(ix.ordered[j]) })

	return ix
}

// Get resolves a coordinate, failing on any combination outside the built
// space.
func (ix *Indexer) Get(coord Coord) (Entry, error) {
	entry, ok := ix.entries[coord]
	if !ok {
		return Entry{}, fmt.Errorf("coordinate %+v is not in the index", coord)
	}
	return entry, nil
}

// filter holds the optional dimensions an iteration is restricted to.
type filter struct {
	person   *model.Person
	slot     *int
	day      *time.Time
	dayShift *model.Shift
}

// Filter restricts Iter to a subset of the coordinate space.
type Filter func(*filter)

// ByPerson restricts iteration to one person.
func ByPerson(person model.Person) Filter {
	return func(f *filter) { f.person = &person }
}

// BySlot restricts iteration to one person-shift slot.
func BySlot(slot int) Filter {
	return func(f *filter) { f.slot = &slot }
}

// ByDay restricts iteration to one day.
func ByDay(day time.Time) Filter {
	return func(f *filter) { f.day = &day }
}

// ByDayShift restricts iteration to one shift. It is only meaningful together
// with ByDay, since a shift's index is unique only within its day; Iter
// panics if it is used alone.
func ByDayShift(shift model.Shift) Filter {
	return func(f *filter) { f.dayShift = &shift }
}

// Iter returns all entries matching the given filters in ascending coordinate
// order.
//
// This scans the whole ordered space on every call. That is fine for normal
// use: solving dominates the cost as the index grows, not iteration.
func (ix *Indexer) Iter(filters ...Filter) []Entry {
	var f filter
	for _, apply := range filters {
		apply(&f)
	}

	if f.dayShift != nil && f.day == nil {
		panic("indexer: ByDayShift can only be used together with ByDay")
	}

	personIdx, dayIdx, shiftIdx := -1, -1, -1
	if f.person != nil {
		idx, ok := ix.personIndices[*f.person]
		if !ok {
			return nil
		}
		personIdx = idx
	}
	if f.day != nil {
		idx, ok := ix.dayIndices[*f.day]
		if !ok {
			return nil
		}
		dayIdx = idx
		if f.dayShift != nil {
			idx, ok := ix.dayShiftIndices[dayShiftKey{day: *f.day, name: f.dayShift.Name}]
			if !ok {
				return nil
			}
			shiftIdx = idx
		}
	}

	var entries []Entry
	for _, coord := range ix.ordered {
		if personIdx >= 0 && personIdx != coord.Person {
			continue
		}
		if f.slot != nil && *f.slot != coord.Slot {
			continue
		}
		if dayIdx >= 0 && dayIdx != coord.Day {
			continue
		}
		if shiftIdx >= 0 && shiftIdx != coord.Shift {
			continue
		}
		entries = append(entries, ix.entries[coord])
	}
	return entries
}

// SortedDays returns the days of a shifts-by-day map in ascending date order.
func SortedDays(shiftsByDay map[time.Time][]model.Shift) []time.Time {
	days := make([]time.Time, 0, len(shiftsByDay))
	for day := range shiftsByDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func sortedShifts(shifts []model.Shift) []model.Shift {
	sorted := make([]model.Shift, len(shifts))
	copy(sorted, shifts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}
