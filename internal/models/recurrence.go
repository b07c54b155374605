package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RecurrenceType is the repetition rule of a recurring income or expense
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// Valid reports whether t is a known recurrence type
func (t RecurrenceType) Valid() bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Recurrence describes how a record repeats. Days is only meaningful for monthly rules;
// an empty list means "the day-of-month of the original record".
type Recurrence struct {
	Type RecurrenceType `json:"type"`
	Days []int          `json:"days,omitempty"`
}

// UnmarshalJSON accepts either the object form or a bare boolean.
// true is a monthly rule on the record's own day, false means no recurrence.
func (r *Recurrence) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("true")):
		*r = Recurrence{Type: RecurrenceMonthly}
		return nil
	case bytes.Equal(trimmed, []byte("false")), bytes.Equal(trimmed, []byte("null")):
		*r = Recurrence{}
		return nil
	}

	type plain Recurrence
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return fmt.Errorf("invalid recurrence: %w", err)
	}
	*r = Recurrence(p)
	return nil
}

// Validate checks the rule type and the listed days
func (r *Recurrence) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("unknown recurrence type %q", r.Type)
	}
	for _, d := range r.Days {
		if d < 1 || d > 31 {
			return fmt.Errorf("recurrence day %d out of range 1-31", d)
		}
	}
	return nil
}

// normalizeRecurrence maps the decoded "false" form to no recurrence at all
func normalizeRecurrence(r *Recurrence) *Recurrence {
	if r == nil || r.Type == "" {
		return nil
	}
	return r
}
