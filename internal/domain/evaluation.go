// Package domain contains core business types and interfaces.
//
// This file defines the compliance evaluation result types produced by the
// rule engine for each shipboard crane inspection record.
package domain

import "strings"

// =============================================================================
// Compliance Status
// =============================================================================

// Status represents the overall compliance verdict for one crane record.
type Status string

const (
	// StatusPass indicates every check is satisfied with no open items.
	StatusPass Status = "PASS"

	// StatusAttention indicates no hard failures, but at least one item
	// needs follow-up (missing data, contradiction, evidence gap, or an
	// interval approaching its due date).
	StatusAttention Status = "ATTENTION"

	// StatusFail indicates at least one hard compliance failure.
	StatusFail Status = "FAIL"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPass, StatusAttention, StatusFail:
		return true
	}
	return false
}

// =============================================================================
// Tri-state Tick
// =============================================================================

// TriState is the normalized value of a Y/N checklist field. A field the
// inspector never answered is distinct from one answered "N"; the
// contradiction and evidence checks depend on that distinction.
type TriState string

const (
	TriYes        TriState = "Y"
	TriNo         TriState = "N"
	TriUnanswered TriState = ""
)

// ParseTriState normalizes a raw cell value to a TriState. Only an exact
// trimmed, upper-cased "Y" or "N" counts as an answer.
func ParseTriState(raw string) TriState {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "Y":
		return TriYes
	case "N":
		return TriNo
	}
	return TriUnanswered
}

// IsYes returns true if the field was ticked compliant.
func (t TriState) IsYes() bool {
	return t == TriYes
}

// IsNo returns true if the field was ticked non-compliant.
func (t TriState) IsNo() bool {
	return t == TriNo
}

// Answered returns true if the inspector gave any answer at all.
func (t TriState) Answered() bool {
	return t == TriYes || t == TriNo
}

// =============================================================================
// Evaluation Result
// =============================================================================

// Evaluation is the derived result for one inspection record. It is created
// once per evaluation call and never mutated afterwards, so it is safe to
// serialize or hand to report generators without copying.
type Evaluation struct {
	// Identity and context fields echoed from the record for tabulation.
	CraneNo      string
	VesselName   string
	IMO          string
	SerialNumber string
	SWL          string
	Shift        string
	Weather      string
	GearSerial   string
	GearSWL      string

	Status    Status   // Overall verdict
	Issues    []string // Hard failures (force FAIL)
	Attention []string // Missing data, contradictions, evidence gaps
	DueSoon   []string // Compliant intervals nearing expiry
}

// IssueSummary returns the issue list as one semicolon-joined string for
// tabular output.
func (e *Evaluation) IssueSummary() string {
	return strings.Join(e.Issues, "; ")
}

// AttentionSummary returns the attention list as one semicolon-joined string.
func (e *Evaluation) AttentionSummary() string {
	return strings.Join(e.Attention, "; ")
}

// DueSoonSummary returns the due-soon list as one semicolon-joined string.
func (e *Evaluation) DueSoonSummary() string {
	return strings.Join(e.DueSoon, "; ")
}

// StatusCounts tallies verdicts across a batch of evaluations.
type StatusCounts struct {
	Pass      int
	Attention int
	Fail      int
}

// CountStatuses returns per-status totals for a batch result.
func CountStatuses(evals []Evaluation) StatusCounts {
	var c StatusCounts
	for i := range evals {
		switch evals[i].Status {
		case StatusPass:
			c.Pass++
		case StatusAttention:
			c.Attention++
		case StatusFail:
			c.Fail++
		}
	}
	return c
}
