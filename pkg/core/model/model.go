package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayLayout is the wire format for calendar dates in all documents.
const DayLayout = "2006-01-02"

// ParseDay parses an ISO date (YYYY-MM-DD) into a UTC midnight time.Time.
// All days in the engine are normalised this way so they can be used as map
// keys and compared directly.
func ParseDay(s string) (time.Time, error) {
	day, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return day, nil
}

// FormatDay renders a day back to its wire format.
func FormatDay(day time.Time) string {
	return day.Format(DayLayout)
}

// Person identifies someone who can be assigned to shifts. Identity is the
// name; the caller is responsible for deduplicating input.
type Person struct {
	Name string
}

// ShiftType classifies a shift for fairness and eligibility rules.
type ShiftType int

const (
	ShiftTypeStandard ShiftType = iota
	ShiftTypeSpecialA
	ShiftTypeSpecialB
)

// ShiftTypes lists every shift type in a fixed order. Metrics and the
// objective fold over this set.
func ShiftTypes() []ShiftType {
	return []ShiftType{ShiftTypeStandard, ShiftTypeSpecialA, ShiftTypeSpecialB}
}

func (t ShiftType) String() string {
	switch t {
	case ShiftTypeStandard:
		return "standard"
	case ShiftTypeSpecialA:
		return "special_a"
	case ShiftTypeSpecialB:
		return "special_b"
	}
	return fmt.Sprintf("ShiftType(%d)", int(t))
}

// ParseShiftType maps a serialised shift type name to its enum value.
// Unknown names are a configuration error.
func ParseShiftType(s string) (ShiftType, error) {
	switch s {
	case "standard":
		return ShiftTypeStandard, nil
	case "special_a":
		return ShiftTypeSpecialA, nil
	case "special_b":
		return ShiftTypeSpecialB, nil
	}
	return 0, fmt.Errorf("unknown shift type %q", s)
}

func (t ShiftType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ShiftType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseShiftType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Shift is a schedulable unit of work on a specific calendar day. It is a
// value type; equality is by all fields.
type Shift struct {
	Name string
	Type ShiftType
	Day  time.Time
}

// Assign binds a person to this shift.
func (s Shift) Assign(person Person) AssignedShift {
	return AssignedShift{Shift: s, Person: person}
}

func (s Shift) String() string {
	return fmt.Sprintf("%s (%s - %s)", FormatDay(s.Day), s.Name, s.Type)
}

type shiftDoc struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Day  string `json:"day"`
}

func (s Shift) MarshalJSON() ([]byte, error) {
	return json.Marshal(shiftDoc{Name: s.Name, Type: s.Type.String(), Day: FormatDay(s.Day)})
}

func (s *Shift) UnmarshalJSON(data []byte) error {
	var doc shiftDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	shiftType, err := ParseShiftType(doc.Type)
	if err != nil {
		return err
	}
	day, err := ParseDay(doc.Day)
	if err != nil {
		return err
	}
	*s = Shift{Name: doc.Name, Type: shiftType, Day: day}
	return nil
}

// AssignedShift is the output unit: a shift plus the person working it.
type AssignedShift struct {
	Shift
	Person Person
}

// Unassigned projects back to the bare shift, dropping the person. Used when
// checking a supplied solution against the configured shift set.
func (a AssignedShift) Unassigned() Shift {
	return a.Shift
}

func (a AssignedShift) String() string {
	return fmt.Sprintf("%s - %s", a.Shift, a.Person.Name)
}

type assignedShiftDoc struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Day    string `json:"day"`
	Person string `json:"person"`
}

func (a AssignedShift) MarshalJSON() ([]byte, error) {
	return json.Marshal(assignedShiftDoc{
		Name:   a.Name,
		Type:   a.Type.String(),
		Day:    FormatDay(a.Day),
		Person: a.Person.Name,
	})
}

func (a *AssignedShift) UnmarshalJSON(data []byte) error {
	var doc assignedShiftDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	shiftType, err := ParseShiftType(doc.Type)
	if err != nil {
		return err
	}
	day, err := ParseDay(doc.Day)
	if err != nil {
		return err
	}
	*a = AssignedShift{
		Shift:  Shift{Name: doc.Name, Type: shiftType, Day: day},
		Person: Person{Name: doc.Person},
	}
	return nil
}
