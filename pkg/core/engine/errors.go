package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jakechorley/shiftrota/pkg/core/model"
)

// ErrInfeasible means no satisfying assignment exists even after relaxing
// every droppable constraint tier.
var ErrInfeasible = errors.New("no feasible assignment exists")

// InvalidInputsError reports a supplied evaluation solution whose shift set
// does not match the configured shift set. It is never silently coerced.
type InvalidInputsError struct {
	// Extra are shifts present in the solution but absent from the config.
	Extra []model.Shift

	// Missing are configured shifts the solution does not cover.
	Missing []model.Shift
}

func (e *InvalidInputsError) Error() string {
	var parts []string
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra shifts not in config: %s", formatShifts(e.Extra)))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("configured shifts missing from solution: %s", formatShifts(e.Missing)))
	}
	return "solution does not match configured shifts: " + strings.Join(parts, "; ")
}

func formatShifts(shifts []model.Shift) string {
	sorted := make([]model.Shift, len(shifts))
	copy(sorted, shifts)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Day.Equal(sorted[j].Day) {
			return sorted[i].Day.Before(sorted[j].Day)
		}
		return sorted[i].Name < sorted[j].Name
	})
	formatted := make([]string, len(sorted))
	for i, s := range sorted {
		formatted[i] = s.String()
	}
	return strings.Join(formatted, ", ")
}
