package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := ParseDay(s)
	require.NoError(t, err)
	return day
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "2026-09-01", FormatDay(day))

	_, err = ParseDay("01/09/2026")
	assert.Error(t, err)
}

func TestParseShiftType(t *testing.T) {
	for _, shiftType := range ShiftTypes() {
		parsed, err := ParseShiftType(shiftType.String())
		require.NoError(t, err)
		assert.Equal(t, shiftType, parsed)
	}

	_, err := ParseShiftType("nightshift")
	assert.Error(t, err)
}

func TestShiftTypeJSON(t *testing.T) {
	data, err := json.Marshal(ShiftTypeSpecialA)
	require.NoError(t, err)
	assert.Equal(t, `"special_a"`, string(data))

	var parsed ShiftType
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, ShiftTypeSpecialA, parsed)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &parsed))
}

func TestShiftJSONRoundTrip(t *testing.T) {
	shift := Shift{Name: "morning", Type: ShiftTypeStandard, Day: mustDay(t, "2026-09-03")}

	data, err := json.Marshal(shift)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"morning","type":"standard","day":"2026-09-03"}`, string(data))

	var parsed Shift
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, shift, parsed)
}

func TestAssignedShiftJSONRoundTrip(t *testing.T) {
	assigned := Shift{Name: "evening", Type: ShiftTypeSpecialB, Day: mustDay(t, "2026-09-04")}.
		Assign(Person{Name: "Alice"})

	data, err := json.Marshal(assigned)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"evening","type":"special_b","day":"2026-09-04","person":"Alice"}`, string(data))

	var parsed AssignedShift
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, assigned, parsed)
	assert.Equal(t, assigned.Unassigned(), parsed.Shift)
}

func TestNewHistorySortsMostRecentFirst(t *testing.T) {
	alice := Person{Name: "Alice"}
	bob := Person{Name: "Bob"}
	shifts := []AssignedShift{
		Shift{Name: "ops", Type: ShiftTypeStandard, Day: mustDay(t, "2026-08-01")}.Assign(alice),
		Shift{Name: "ops", Type: ShiftTypeStandard, Day: mustDay(t, "2026-08-10")}.Assign(bob),
		Shift{Name: "late", Type: ShiftTypeStandard, Day: mustDay(t, "2026-08-10")}.Assign(alice),
		Shift{Name: "ops", Type: ShiftTypeStandard, Day: mustDay(t, "2026-08-05")}.Assign(alice),
	}

	history := NewHistory(shifts, nil)

	require.Len(t, history.PastShifts, 4)
	assert.Equal(t, mustDay(t, "2026-08-10"), history.PastShifts[0].Day)
	assert.Equal(t, mustDay(t, "2026-08-10"), history.PastShifts[1].Day)
	// Stable: same-day shifts keep input order.
	assert.Equal(t, "ops", history.PastShifts[0].Name)
	assert.Equal(t, "late", history.PastShifts[1].Name)
	assert.Equal(t, mustDay(t, "2026-08-05"), history.PastShifts[2].Day)
	assert.Equal(t, mustDay(t, "2026-08-01"), history.PastShifts[3].Day)
}
