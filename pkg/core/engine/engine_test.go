package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shiftrota/pkg/core/constraint"
	"github.com/jakechorley/shiftrota/pkg/core/model"
	"github.com/jakechorley/shiftrota/pkg/core/objective"
	"github.com/jakechorley/shiftrota/pkg/core/rundata"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDay(s)
	require.NoError(t, err)
	return d
}

func standardRota(t *testing.T, people []model.Person, dayStrs []string, maxShifts int, history model.History) *rundata.RunData {
	t.Helper()
	shiftsByDay := make(map[time.Time][]model.Shift, len(dayStrs))
	for _, s := range dayStrs {
		d := day(t, s)
		shiftsByDay[d] = []model.Shift{{Name: "ops", Type: model.ShiftTypeStandard, Day: d}}
	}
	return rundata.Build(people, maxShifts, shiftsByDay, history, time.Time{})
}

func defaultObjective() objective.Objective {
	return objective.NewRankingWeight(objective.DefaultWeights())
}

func TestSolve_OneShiftEach(t *testing.T) {
	var people []model.Person
	var days []string
	for i := 1; i <= 7; i++ {
		people = append(people, model.Person{Name: fmt.Sprintf("P%d", i)})
		days = append(days, fmt.Sprintf("2026-09-%02d", i))
	}
	data := standardRota(t, people, days, 1, model.History{})

	result, err := New(nil, nil).Solve(data, defaultObjective(), nil)
	require.NoError(t, err)

	// Every day covered, nobody doubled up.
	require.Len(t, result.Shifts, 7)
	assigned := make(map[model.Person]bool)
	for i, shift := range result.Shifts {
		assert.Equal(t, day(t, days[i]), shift.Day)
		assert.False(t, assigned[shift.Person], "%s assigned twice", shift.Person.Name)
		assigned[shift.Person] = true
	}

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.DroppedPriorities)
	assert.Empty(t, result.Violations)
}

func TestSolve_PrefersPersonWithFewerHistoricalShifts(t *testing.T) {
	alice := model.Person{Name: "Alice"}
	bob := model.Person{Name: "Bob"}
	history := model.NewHistory([]model.AssignedShift{
		{Shift: model.Shift{Name: "ops", Type: model.ShiftTypeStandard, Day: day(t, "2026-08-20")}, Person: alice},
	}, nil)
	data := standardRota(t, []model.Person{alice, bob}, []string{"2026-09-01"}, 1, history)

	result, err := New(nil, nil).Solve(data, defaultObjective(), nil)
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1)
	assert.Equal(t, bob, result.Shifts[0].Person)
}

func TestSolve_MinDaysExcludesRecentWorker(t *testing.T) {
	alice := model.Person{Name: "Alice"}
	bob := model.Person{Name: "Bob"}
	// Bob would normally win on fairness, but he worked yesterday.
	history := model.NewHistory([]model.AssignedShift{
		{Shift: model.Shift{Name: "ops", Type: model.ShiftTypeStandard, Day: day(t, "2026-08-01")}, Person: alice},
		{Shift: model.Shift{Name: "ops", Type: model.ShiftTypeStandard, Day: day(t, "2026-08-02")}, Person: alice},
		{Shift: model.Shift{Name: "ops", Type: model.ShiftTypeStandard, Day: day(t, "2026-08-31")}, Person: bob},
	}, nil)
	data := standardRota(t, []model.Person{alice, bob}, []string{"2026-09-01"}, 1, history)

	constraints := []constraint.Constraint{constraint.NewMinDaysBetweenShifts("", 2, 1)}
	result, err := New(nil, nil).Solve(data, defaultObjective(), constraints)
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1)
	assert.Equal(t, alice, result.Shifts[0].Person)
	assert.Empty(t, result.DroppedPriorities)
}

func TestSolve_RelaxesLeastImportantTier(t *testing.T) {
	alice := model.Person{Name: "Alice"}
	bob := model.Person{Name: "Bob"}
	data := standardRota(t, []model.Person{alice, bob}, []string{"2026-09-01", "2026-09-02"}, 1, model.History{})

	// Everyone blocked on the second day: satisfiable only by dropping the
	// restriction tier.
	blocked := constraint.NewForbidPersonsPerDay("", 2, map[string][]time.Time{
		"Alice": {day(t, "2026-09-02")},
		"Bob":   {day(t, "2026-09-02")},
	})

	result, err := New(nil, nil).Solve(data, defaultObjective(), []constraint.Constraint{blocked})
	require.NoError(t, err)

	assert.Len(t, result.Shifts, 2)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, []int{2}, result.DroppedPriorities)

	// The dropped restriction shows up as a diagnostic violation.
	require.NotEmpty(t, result.Violations)
	assert.Equal(t, "ForbidPersonsPerDay", result.Violations[0].Constraint)
}

func TestSolve_InfeasibleWhenOnlyMandatoryRemain(t *testing.T) {
	alice := model.Person{Name: "Alice"}
	bob := model.Person{Name: "Bob"}
	// Three day-shifts, two people, one slot each: structurally impossible.
	data := standardRota(t, []model.Person{alice, bob}, []string{"2026-09-01", "2026-09-02", "2026-09-03"}, 1, model.History{})

	_, err := New(nil, nil).Solve(data, defaultObjective(), nil)
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolve_RejectsInvalidConstraintConfig(t *testing.T) {
	alice := model.Person{Name: "Alice"}
	data := standardRota(t, []model.Person{alice}, []string{"2026-09-01"}, 1, model.History{})

	constraints := []constraint.Constraint{constraint.NewMaxShiftsPerPersonPerPeriod("", 1, 5)}
	_, err := New(nil, nil).Solve(data, defaultObjective(), constraints)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid constraint configuration")
}

func TestSolve_MultipleShiftsFillSlotsInOrder(t *testing.T) {
	alice := model.Person{Name: "Alice"}
	bob := model.Person{Name: "Bob"}
	data := standardRota(t, []model.Person{alice, bob},
		[]string{"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04"}, 2, model.History{})

	result, err := New(nil, nil).Solve(data, defaultObjective(), nil)
	require.NoError(t, err)

	// Four shifts across two people with two slots each: both get two.
	require.Len(t, result.Shifts, 4)
	perPerson := make(map[model.Person]int)
	for _, shift := range result.Shifts {
		perPerson[shift.Person]++
	}
	assert.Equal(t, 2, perPerson[alice])
	assert.Equal(t, 2, perPerson[bob])
}
