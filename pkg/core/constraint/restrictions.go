package constraint

import (
	"time"

	"github.com/jakechorley/shiftrota/pkg/core/indexer"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
	"github.com/jakechorley/shiftrota/pkg/pbsat"
)

// ForbidPersonsPerShiftType keeps named people off shifts of particular
// types (e.g. someone who never works special_b).
type ForbidPersonsPerShiftType struct {
	base
	forbidden map[model.ShiftType]map[string]bool
}

func NewForbidPersonsPerShiftType(name string, priority int, forbiddenByType map[model.ShiftType][]string) ForbidPersonsPerShiftType {
	forbidden := make(map[model.ShiftType]map[string]bool, len(forbiddenByType))
	for shiftType, names := range forbiddenByType {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		forbidden[shiftType] = set
	}
	return ForbidPersonsPerShiftType{
		base:      newBase(name, "ForbidPersonsPerShiftType", priority),
		forbidden: forbidden,
	}
}

func (c ForbidPersonsPerShiftType) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, person := range data.People {
		for _, day := range data.Days() {
			for _, dayShift := range shiftsByName(data.ShiftsByDay[day]) {
				if !c.forbidden[dayShift.Type][person.Name] {
					continue
				}
				entries := data.Indexer.Iter(indexer.ByPerson(person), indexer.ByDay(day), indexer.ByDayShift(dayShift))
				for _, entry := range entries {
					out = append(out, Generated{
						Expr:   pbsat.Eq(pbsat.Term(vars[entry.Coord], 1), 0),
						Impact: personDayImpact(person, day),
					})
				}
			}
		}
	}
	return out
}

// ForbidPersonsPerDay blocks named people on specific dates (holidays,
// personal restrictions).
type ForbidPersonsPerDay struct {
	base
	restrictions map[string]map[time.Time]bool
}

func NewForbidPersonsPerDay(name string, priority int, restrictions map[string][]time.Time) ForbidPersonsPerDay {
	byPerson := make(map[string]map[time.Time]bool, len(restrictions))
	for personName, days := range restrictions {
		set := make(map[time.Time]bool, len(days))
		for _, day := range days {
			set[day] = true
		}
		byPerson[personName] = set
	}
	return ForbidPersonsPerDay{
		base:         newBase(name, "ForbidPersonsPerDay", priority),
		restrictions: byPerson,
	}
}

func (c ForbidPersonsPerDay) Generate(vars Vars, data *rundata.RunData) []Generated {
	var out []Generated
	for _, person := range data.People {
		restricted := c.restrictions[person.Name]
		if len(restricted) == 0 {
			continue
		}
		for _, day := range data.Days() {
			if !restricted[day] {
				continue
			}
			for _, entry := range data.Indexer.Iter(indexer.ByPerson(person), indexer.ByDay(day)) {
				out = append(out, Generated{
					Expr:   pbsat.Eq(pbsat.Term(vars[entry.Coord], 1), 0),
					Impact: personDayImpact(person, day),
				})
			}
		}
	}
	return out
}
