package inputs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shiftrota/pkg/core/constraint"
	"github.com/jakechorley/shiftrota/pkg/core/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfig = `{
  "people": [{"name": "Alice"}, {"name": "Bob"}],
  "max_shifts_per_person": 2,
  "shifts": [
    {"day": "2026-09-01", "name": "ops", "type": "standard"},
    {"day": "2026-09-01", "name": "oncall", "type": "special_a"},
    {"day": "2026-09-02", "name": "ops", "type": "standard"}
  ],
  "constraints": [
    {"type": "MaxShiftsPerPersonPerPeriod", "priority": 1, "params": {"x": 1}}
  ],
  "objective": "RankingWeight"
}`

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, "config.json", validConfig)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []model.Person{{Name: "Alice"}, {Name: "Bob"}}, cfg.People)
	assert.Equal(t, 2, cfg.MaxShiftsPerPerson)
	assert.Equal(t, "RankingWeight", cfg.Objective)

	day1, err := model.ParseDay("2026-09-01")
	require.NoError(t, err)
	require.Len(t, cfg.ShiftsByDay, 2)
	assert.Len(t, cfg.ShiftsByDay[day1], 2)
	assert.Equal(t, model.ShiftTypeSpecialA, cfg.ShiftsByDay[day1][1].Type)

	require.Len(t, cfg.Constraints, 1)
	assert.True(t, constraint.Equal(cfg.Constraints[0], constraint.NewMaxShiftsPerPersonPerPeriod("", 1, 1)))
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")

	_, err = LoadConfig(writeTemp(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = LoadConfig(writeTemp(t, "empty.json", `{"people": [], "max_shifts_per_person": 1, "shifts": [], "objective": "RankingWeight"}`))
	assert.ErrorContains(t, err, "validation failed")

	duplicate := `{
	  "people": [{"name": "Alice"}, {"name": "Alice"}],
	  "max_shifts_per_person": 1,
	  "shifts": [{"day": "2026-09-01", "name": "ops", "type": "standard"}],
	  "objective": "RankingWeight"
	}`
	_, err = LoadConfig(writeTemp(t, "dup.json", duplicate))
	assert.ErrorContains(t, err, "duplicate person")

	unknownConstraint := `{
	  "people": [{"name": "Alice"}],
	  "max_shifts_per_person": 1,
	  "shifts": [{"day": "2026-09-01", "name": "ops", "type": "standard"}],
	  "constraints": [{"type": "NoSuchRule", "priority": 1}],
	  "objective": "RankingWeight"
	}`
	_, err = LoadConfig(writeTemp(t, "unknown.json", unknownConstraint))
	assert.ErrorContains(t, err, "unknown constraint type")

	badDay := `{
	  "people": [{"name": "Alice"}],
	  "max_shifts_per_person": 1,
	  "shifts": [{"day": "01/09/2026", "name": "ops", "type": "standard"}],
	  "objective": "RankingWeight"
	}`
	_, err = LoadConfig(writeTemp(t, "badday.json", badDay))
	assert.ErrorContains(t, err, "invalid day")
}

func TestLoadHistory(t *testing.T) {
	doc := `{
	  "offsets": [{"person": "Alice", "shift_type": "standard", "offset": 3}],
	  "shifts": [
	    {"day": "2026-08-01", "name": "ops", "type": "standard", "person": "Bob"},
	    {"day": "2026-08-10", "name": "ops", "type": "standard", "person": "Alice"}
	  ]
	}`
	history, err := LoadHistory(writeTemp(t, "history.json", doc))
	require.NoError(t, err)

	require.Len(t, history.Offsets, 1)
	assert.Equal(t, model.PastShiftOffset{
		Person:    model.Person{Name: "Alice"},
		ShiftType: model.ShiftTypeStandard,
		Offset:    3,
	}, history.Offsets[0])

	// Most recent first after loading.
	require.Len(t, history.PastShifts, 2)
	assert.Equal(t, "Alice", history.PastShifts[0].Person.Name)

	_, err = LoadHistory(writeTemp(t, "badtype.json", `{"offsets": [{"person": "A", "shift_type": "bogus"}]}`))
	assert.ErrorContains(t, err, "unknown shift type")
}

func TestLoadHistory_EmptyDocument(t *testing.T) {
	history, err := LoadHistory(writeTemp(t, "empty.json", `{}`))
	require.NoError(t, err)
	assert.Empty(t, history.PastShifts)
	assert.Empty(t, history.Offsets)
}

func TestWriteOutputRoundTrip(t *testing.T) {
	day, err := model.ParseDay("2026-09-01")
	require.NoError(t, err)
	shifts := []model.AssignedShift{
		{
			Shift:  model.Shift{Name: "ops", Type: model.ShiftTypeStandard, Day: day},
			Person: model.Person{Name: "Alice"},
		},
	}

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteOutput(path, shifts))

	loaded, err := LoadSolution(path)
	require.NoError(t, err)
	assert.Equal(t, shifts, loaded)
}

func TestConfigTemplate(t *testing.T) {
	day, err := model.ParseDay("2026-09-01")
	require.NoError(t, err)
	shifts := []model.Shift{{Name: "ops", Type: model.ShiftTypeStandard, Day: day}}

	doc, err := ConfigTemplate([]string{"Alice", "Bob"}, 1, shifts)
	require.NoError(t, err)

	// The template must itself load as a valid config.
	cfg, err := LoadConfig(writeTemp(t, "template.json", string(doc)))
	require.NoError(t, err)
	assert.Equal(t, []model.Person{{Name: "Alice"}, {Name: "Bob"}}, cfg.People)
	assert.Equal(t, "RankingWeight", cfg.Objective)
	assert.Len(t, cfg.ShiftsByDay[day], 1)
	assert.Empty(t, cfg.Constraints)
}
