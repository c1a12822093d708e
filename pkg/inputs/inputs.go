// Package inputs loads and validates the two JSON documents the engine
// consumes (config and history) and writes the output document. The schemas
// are load-bearing: unknown constraint or objective type names, malformed
// dates and duplicate people are all hard errors raised before any solve.
package inputs

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/shiftrota/pkg/core/constraint"
	"github.com/jakechorley/shiftrota/pkg/core/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

type personDoc struct {
	Name string `json:"name" validate:"required"`
}

type shiftDoc struct {
	Day  string `json:"day" validate:"required"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

type configDoc struct {
	People             []personDoc             `json:"people" validate:"required,min=1,dive"`
	MaxShiftsPerPerson int                     `json:"max_shifts_per_person" validate:"required,min=1"`
	Shifts             []shiftDoc              `json:"shifts" validate:"required,min=1,dive"`
	Constraints        []constraint.Definition `json:"constraints"`
	Objective          string                  `json:"objective" validate:"required"`
}

type offsetDoc struct {
	Person    string `json:"person" validate:"required"`
	ShiftType string `json:"shift_type" validate:"required"`
	Offset    int    `json:"offset"`
}

type historyDoc struct {
	Offsets []offsetDoc           `json:"offsets" validate:"dive"`
	Shifts  []model.AssignedShift `json:"shifts"`
}

type outputDoc struct {
	Shifts []model.AssignedShift `json:"shifts"`
}

// Config is the parsed, validated config document.
type Config struct {
	People             []model.Person
	MaxShiftsPerPerson int
	ShiftsByDay        map[time.Time][]model.Shift
	Constraints        []constraint.Constraint
	Objective          string
}

// LoadConfig reads and validates the config document at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var doc configDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	people := make([]model.Person, 0, len(doc.People))
	seen := make(map[string]bool, len(doc.People))
	for _, p := range doc.People {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate person %q in config", p.Name)
		}
		seen[p.Name] = true
		people = append(people, model.Person{Name: p.Name})
	}

	shiftsByDay := make(map[time.Time][]model.Shift)
	for _, s := range doc.Shifts {
		day, err := model.ParseDay(s.Day)
		if err != nil {
			return nil, err
		}
		shiftType, err := model.ParseShiftType(s.Type)
		if err != nil {
			return nil, err
		}
		shiftsByDay[day] = append(shiftsByDay[day], model.Shift{Name: s.Name, Type: shiftType, Day: day})
	}

	constraints := make([]constraint.Constraint, 0, len(doc.Constraints))
	for _, def := range doc.Constraints {
		c, err := constraint.FromDefinition(def)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}

	return &Config{
		People:             people,
		MaxShiftsPerPerson: doc.MaxShiftsPerPerson,
		ShiftsByDay:        shiftsByDay,
		Constraints:        constraints,
		Objective:          doc.Objective,
	}, nil
}

// LoadHistory reads and validates the history document at path.
func LoadHistory(path string) (model.History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.History{}, fmt.Errorf("failed to read history file: %w", err)
	}

	var doc historyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.History{}, fmt.Errorf("failed to parse history file: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return model.History{}, fmt.Errorf("history validation failed: %w", err)
	}

	offsets := make([]model.PastShiftOffset, 0, len(doc.Offsets))
	for _, o := range doc.Offsets {
		shiftType, err := model.ParseShiftType(o.ShiftType)
		if err != nil {
			return model.History{}, err
		}
		offsets = append(offsets, model.PastShiftOffset{
			Person:    model.Person{Name: o.Person},
			ShiftType: shiftType,
			Offset:    o.Offset,
		})
	}

	return model.NewHistory(doc.Shifts, offsets), nil
}

// LoadSolution reads a previously written output document, used by the
// evaluation mode.
func LoadSolution(path string) ([]model.AssignedShift, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read solution file: %w", err)
	}

	var doc outputDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse solution file: %w", err)
	}
	return doc.Shifts, nil
}

// ConfigTemplate renders a config document skeleton for the given people and
// shifts, with no constraints and the standard objective. Used by the
// generate-config command.
func ConfigTemplate(people []string, maxShiftsPerPerson int, shifts []model.Shift) ([]byte, error) {
	doc := configDoc{
		MaxShiftsPerPerson: maxShiftsPerPerson,
		Constraints:        []constraint.Definition{},
		Objective:          "RankingWeight",
	}
	for _, name := range people {
		doc.People = append(doc.People, personDoc{Name: name})
	}
	for _, shift := range shifts {
		doc.Shifts = append(doc.Shifts, shiftDoc{
			Day:  model.FormatDay(shift.Day),
			Name: shift.Name,
			Type: shift.Type.String(),
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialise config template: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteOutput writes the solution document, one entry per assigned shift in
// the engine's sort order.
func WriteOutput(path string, shifts []model.AssignedShift) error {
	data, err := json.MarshalIndent(outputDoc{Shifts: shifts}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialise solution: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write solution file: %w", err)
	}
	return nil
}
