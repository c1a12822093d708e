package constraint

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jakechorley/shiftrota/pkg/core/model"
)

// Definition is a constraint entry as it appears in the config document.
// Params is decoded by the factory for the named type.
type Definition struct {
	Type     string          `json:"type"`
	Priority int             `json:"priority"`
	Name     string          `json:"name,omitempty"`
	Params   json.RawMessage `json:"params,omitempty"`
}

type factory func(name string, priority int, params json.RawMessage) (Constraint, error)

var factories = map[string]factory{
	"MaxShiftsPerPersonPerPeriod": buildMaxShiftsPerPersonPerPeriod,
	"SpecificPersonsMaxShifts":    buildSpecificPersonsMaxShifts,
	"MinDaysBetweenShifts":        buildMinDaysBetweenShifts,
	"MinDaysBetweenShiftsOfTypes": buildMinDaysBetweenShiftsOfTypes,
	"ForbidPersonsPerShiftType":   buildForbidPersonsPerShiftType,
	"ForbidPersonsPerDay":         buildForbidPersonsPerDay,
	"ConsecutiveShiftRequirement": buildConsecutiveShiftRequirement,
}

// FromDefinition constructs the constraint a config entry describes. Unknown
// type names and invalid parameters are hard configuration errors.
func FromDefinition(def Definition) (Constraint, error) {
	build, ok := factories[def.Type]
	if !ok {
		return nil, fmt.Errorf("unknown constraint type %q", def.Type)
	}
	if def.Priority < 0 {
		return nil, fmt.Errorf("constraint %q: priority must be >= 0, got %d", def.Type, def.Priority)
	}
	c, err := build(def.Name, def.Priority, def.Params)
	if err != nil {
		return nil, fmt.Errorf("constraint %q: %w", def.Type, err)
	}
	return c, nil
}

func decodeParams(params json.RawMessage, into any) error {
	if len(params) == 0 {
		return fmt.Errorf("missing params")
	}
	if err := json.Unmarshal(params, into); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func buildMaxShiftsPerPersonPerPeriod(name string, priority int, params json.RawMessage) (Constraint, error) {
	var p struct {
		X *int `json:"x"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.X == nil {
		return nil, fmt.Errorf("params.x is required")
	}
	return NewMaxShiftsPerPersonPerPeriod(name, priority, *p.X), nil
}

func buildSpecificPersonsMaxShifts(name string, priority int, params json.RawMessage) (Constraint, error) {
	var p struct {
		X       *int     `json:"x"`
		Persons []string `json:"persons"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.X == nil {
		return nil, fmt.Errorf("params.x is required")
	}
	if len(p.Persons) == 0 {
		return nil, fmt.Errorf("params.persons is required")
	}
	return NewSpecificPersonsMaxShifts(name, priority, *p.X, p.Persons), nil
}

func buildMinDaysBetweenShifts(name string, priority int, params json.RawMessage) (Constraint, error) {
	var p struct {
		X *int `json:"x"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.X == nil {
		return nil, fmt.Errorf("params.x is required")
	}
	return NewMinDaysBetweenShifts(name, priority, *p.X), nil
}

func buildMinDaysBetweenShiftsOfTypes(name string, priority int, params json.RawMessage) (Constraint, error) {
	var p struct {
		X          *int     `json:"x"`
		ShiftTypes []string `json:"shift_types"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.X == nil {
		return nil, fmt.Errorf("params.x is required")
	}
	if len(p.ShiftTypes) == 0 {
		return nil, fmt.Errorf("params.shift_types is required")
	}
	types := make([]model.ShiftType, 0, len(p.ShiftTypes))
	for _, raw := range p.ShiftTypes {
		shiftType, err := model.ParseShiftType(raw)
		if err != nil {
			return nil, err
		}
		types = append(types, shiftType)
	}
	return NewMinDaysBetweenShiftsOfTypes(name, priority, *p.X, types), nil
}

func buildForbidPersonsPerShiftType(name string, priority int, params json.RawMessage) (Constraint, error) {
	var p struct {
		ForbiddenByShiftType map[string][]string `json:"forbidden_by_shift_type"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if len(p.ForbiddenByShiftType) == 0 {
		return nil, fmt.Errorf("params.forbidden_by_shift_type is required")
	}
	forbidden := make(map[model.ShiftType][]string, len(p.ForbiddenByShiftType))
	for raw, names := range p.ForbiddenByShiftType {
		shiftType, err := model.ParseShiftType(raw)
		if err != nil {
			return nil, err
		}
		forbidden[shiftType] = names
	}
	return NewForbidPersonsPerShiftType(name, priority, forbidden), nil
}

func buildForbidPersonsPerDay(name string, priority int, params json.RawMessage) (Constraint, error) {
	var p struct {
		Restrictions map[string][]string `json:"restrictions"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if len(p.Restrictions) == 0 {
		return nil, fmt.Errorf("params.restrictions is required")
	}
	restrictions := make(map[string][]time.Time, len(p.Restrictions))
	for personName, rawDays := range p.Restrictions {
		days := make([]time.Time, 0, len(rawDays))
		for _, raw := range rawDays {
			day, err := model.ParseDay(raw)
			if err != nil {
				return nil, err
			}
			days = append(days, day)
		}
		restrictions[personName] = days
	}
	return NewForbidPersonsPerDay(name, priority, restrictions), nil
}

func buildConsecutiveShiftRequirement(name string, priority int, params json.RawMessage) (Constraint, error) {
	var p struct {
		ShiftType string   `json:"shift_type"`
		Persons   []string `json:"persons"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if len(p.Persons) == 0 {
		return nil, fmt.Errorf("params.persons is required")
	}
	shiftType, err := model.ParseShiftType(p.ShiftType)
	if err != nil {
		return nil, err
	}
	return NewConsecutiveShiftRequirement(name, priority, shiftType, p.Persons), nil
}
