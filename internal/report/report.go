// Package report provides DOCX and PDF rendering of crane compliance
// evaluation results.
//
// This package defines a Generator interface implemented by DOCXGenerator
// and PDFGenerator, along with the report data model and shared formatting
// helpers. Generators only consume evaluation output; they never re-run any
// compliance rule.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/harborline/cranecheck/internal/domain"
	"github.com/harborline/cranecheck/internal/engine"
)

// =============================================================================
// Generator Interface
// =============================================================================

// Generator defines the interface for report generators.
// Implementations handle the specifics of each format (DOCX, PDF).
type Generator interface {
	// Generate creates a report and writes it to the provided writer.
	// Returns the number of bytes written and any error.
	Generate(ctx context.Context, data *Data, w io.Writer) (int64, error)

	// Format returns the output format of this generator.
	Format() domain.ReportFormat
}

// ForFormat returns the generator for the requested format.
func ForFormat(format domain.ReportFormat) Generator {
	if format == domain.ReportFormatPDF {
		return NewPDFGenerator()
	}
	return NewDOCXGenerator()
}

// =============================================================================
// Report Data
// =============================================================================

// Data carries everything a generator needs: the evaluated batch, its
// results in the same order, and the evaluation date.
type Data struct {
	VesselName  string
	IMO         string
	Inspector   string
	GeneratedAt time.Time

	Batch   engine.Batch
	Results []domain.Evaluation
}

// Counts tallies verdicts across the batch.
func (d *Data) Counts() domain.StatusCounts {
	return domain.CountStatuses(d.Results)
}

// craneSection pairs a record with its result for the per-crane pages.
type craneSection struct {
	Row    engine.Row
	Result *domain.Evaluation
}

// sections returns one section per record that has a crane number set;
// rows without one carry no crane and are skipped in the detail pages.
func (d *Data) sections() []craneSection {
	var out []craneSection
	for i, row := range d.Batch.Rows {
		if cleanField(row[engine.ColCraneNo]) == "" {
			continue
		}
		s := craneSection{Row: row}
		if i < len(d.Results) {
			s.Result = &d.Results[i]
		}
		out = append(out, s)
	}
	return out
}

// =============================================================================
// Guidance Appendix
// =============================================================================

// guidanceItem is one entry of the fixed MO32 clause list printed at the
// end of every report.
type guidanceItem struct {
	Text      string
	Reference string
}

var guidance = []guidanceItem{
	{"5-year proof load test interval", "MO32 Sch.3 2(2)(a)"},
	{"12-month thorough exam interval", "MO32 Sch.3 2(2)(b), 2(5)"},
	{"Certificates current / approved forms", "MO32 s.23"},
	{"Register of MHE kept onboard (maintenance & repair log)", "MO32 s.25"},
	{"Pre-use visual exam before operation", "MO32 s.22(2)(c)"},
	{"Rigging plan/drawings onboard", "MO32 Sch.6 Div.2 cl.1"},
	{"Controls & brakes (incl. limit switches)", "MO32 Sch.6 Div.3; Sch.3 cl.4(3)"},
	{"Weather protection at controls", "MO32 Sch.6 cl.19"},
	{"Loose Gear inspection & traceability", "Good practice; tie to crane SWL"},
}

// =============================================================================
// Status Colors
// =============================================================================

// StatusColor returns the fill color hex for a verdict cell.
func StatusColor(s domain.Status) string {
	switch s {
	case domain.StatusPass:
		return "#92D050"
	case domain.StatusAttention:
		return "#FFC000"
	case domain.StatusFail:
		return "#FF0000"
	}
	return "#D9D9D9"
}

// =============================================================================
// Formatting Helpers
// =============================================================================

// FormatDate renders a date in the checklist's day-month-year layout.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// HexToRGB converts a "#RRGGBB" hex color to RGB components.
func HexToRGB(hex string) (int, int, int) {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16), int(v >> 8 & 0xFF), int(v & 0xFF)
}

// cleanField normalizes a raw cell for display and transliterates it to
// the character set both renderers can embed.
func cleanField(raw string) string {
	return Transliterate(engine.CleanText(raw))
}

// orDefault substitutes a placeholder for blank display values.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// summaryOf renders one findings list or its empty placeholder.
func summaryOf(joined string) string {
	if joined == "" {
		return "None recorded."
	}
	return Transliterate(joined)
}

// reportTitle builds the document title line.
func reportTitle(d *Data) string {
	return fmt.Sprintf("Crane Compliance Inspection Report - %s", orDefault(cleanField(d.VesselName), "Unnamed Vessel"))
}
