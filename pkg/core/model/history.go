package model

import "sort"

// PastShiftOffset seeds a person's shift count for a type before the recorded
// history window. Used to carry fairness state across onboarding or data
// migration gaps.
type PastShiftOffset struct {
	Person    Person
	ShiftType ShiftType
	Offset    int
}

// History holds past assigned shifts, most recent first, plus count offsets.
type History struct {
	PastShifts []AssignedShift
	Offsets    []PastShiftOffset
}

// NewHistory builds a History, sorting past shifts by day descending so the
// most recent shift comes first. The sort is stable so same-day shifts keep
// their input order.
func NewHistory(pastShifts []AssignedShift, offsets []PastShiftOffset) History {
	sorted := make([]AssignedShift, len(pastShifts))
	copy(sorted, pastShifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Day.After(sorted[j].Day)
	})
	return History{PastShifts: sorted, Offsets: offsets}
}
