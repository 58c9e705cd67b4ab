// Package domain contains core business types and interfaces.
//
// This file defines the Case domain type: one saved evaluation of a vessel's
// crane checklist batch, indexed for later search and report download.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Report Format
// =============================================================================

// ReportFormat identifies the rendered report type stored with a case.
type ReportFormat string

const (
	ReportFormatDOCX ReportFormat = "docx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// String returns the string representation of the format.
func (f ReportFormat) String() string {
	return string(f)
}

// IsValid returns true if the format is a recognized value.
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportFormatDOCX, ReportFormatPDF:
		return true
	}
	return false
}

// ContentType returns the MIME type for the rendered report.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatPDF:
		return "application/pdf"
	default:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
}

// =============================================================================
// Case Domain Type
// =============================================================================

// Case records one evaluated inspection submission. The raw inputs, the
// tabulated results, and the rendered report are stored as blobs; the case
// row carries their storage keys plus the vessel identity used for search.
type Case struct {
	ID         uuid.UUID // Unique identifier
	VesselName string    // Vessel the batch was recorded against
	IMO        string    // IMO number (free text, may be blank)
	CreatedAt  time.Time // When the batch was evaluated

	InputKey   string       // Storage key of the submitted CSV
	ResultsKey string       // Storage key of the results CSV
	ReportKey  string       // Storage key of the rendered report
	Format     ReportFormat // Format of the stored report

	// Verdict tallies echoed for listing without re-reading artifacts.
	PassCount      int
	AttentionCount int
	FailCount      int
}

// =============================================================================
// Case Service Parameters
// =============================================================================

// SearchCasesParams filters the case index. Both filters are partial,
// case-insensitive matches; blank matches everything.
type SearchCasesParams struct {
	VesselName string
	IMO        string
	Limit      int32
}
