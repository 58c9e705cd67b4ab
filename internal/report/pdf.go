package report

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/harborline/cranecheck/internal/domain"
	"github.com/harborline/cranecheck/internal/engine"
)

// =============================================================================
// PDF Generator
// =============================================================================

// PDFGenerator generates PDF compliance reports from evaluated batches.
type PDFGenerator struct {
	pageWidth    float64
	margin       float64
	contentWidth float64
}

// NewPDFGenerator creates a new PDF generator with A4 defaults.
func NewPDFGenerator() *PDFGenerator {
	margin := 15.0
	pageWidth := 210.0 // A4 width in mm
	return &PDFGenerator{
		pageWidth:    pageWidth,
		margin:       margin,
		contentWidth: pageWidth - (2 * margin),
	}
}

// Format returns the output format of this generator.
func (g *PDFGenerator) Format() domain.ReportFormat {
	return domain.ReportFormatPDF
}

// Generate creates a PDF report and writes it to the provided writer.
func (g *PDFGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle(data), true)
	pdf.SetAuthor(cleanField(data.Inspector), true)
	pdf.SetAutoPageBreak(true, 20)

	g.addCoverPage(pdf, data)
	g.addSummary(pdf, data)
	for _, section := range data.sections() {
		g.addCraneSection(pdf, section)
	}
	g.addGuidance(pdf)

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("pdf generation error: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("pdf output error: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Cover Page
// =============================================================================

func (g *PDFGenerator) addCoverPage(pdf *fpdf.Fpdf, data *Data) {
	pdf.AddPage()

	// Navy header bar
	pdf.SetFillColor(31, 78, 121)
	pdf.Rect(0, 0, g.pageWidth, 55, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(g.margin, 18)
	pdf.Cell(0, 12, "Crane Compliance Inspection Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(g.margin, 34)
	pdf.Cell(0, 8, "Marine Orders 32 (MO32) - Stevedore AutoCheck")

	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(g.margin, 70)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Vessel: %s    IMO: %s",
		orDefault(cleanField(data.VesselName), "-"),
		orDefault(cleanField(data.IMO), "-")), "", 1, "L", false, 0, "")
	pdf.SetX(g.margin)
	line := "Date: " + FormatDate(data.GeneratedAt)
	if data.Inspector != "" {
		line += "    Inspector: " + cleanField(data.Inspector)
	}
	pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
}

// =============================================================================
// Executive Summary
// =============================================================================

func (g *PDFGenerator) addSummary(pdf *fpdf.Fpdf, data *Data) {
	pdf.AddPage()
	g.sectionHeader(pdf, "Executive Summary")

	counts := data.Counts()
	total := len(data.Results)
	kpiWidth := g.contentWidth / 3

	pdf.SetFont("Helvetica", "B", 12)
	for _, kpi := range []struct {
		label  string
		count  int
		status domain.Status
	}{
		{"PASS", counts.Pass, domain.StatusPass},
		{"ATTENTION", counts.Attention, domain.StatusAttention},
		{"FAIL", counts.Fail, domain.StatusFail},
	} {
		r, gr, b := HexToRGB(StatusColor(kpi.status))
		pdf.SetFillColor(r, gr, b)
		if kpi.status == domain.StatusAttention {
			pdf.SetTextColor(0, 0, 0)
		} else {
			pdf.SetTextColor(255, 255, 255)
		}
		pdf.CellFormat(kpiWidth, 12, fmt.Sprintf("%s: %d of %d", kpi.label, kpi.count, total),
			"1", 0, "C", true, 0, "")
	}
	pdf.Ln(18)

	headers := []string{"Crane #", "Serial #", "SWL (t)", "Shift", "Weather", "Status"}
	widths := []float64{18, 38, 20, 24, 50, 30}

	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(217, 217, 217)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i := range data.Results {
		e := &data.Results[i]
		cells := []string{
			cleanField(e.CraneNo), cleanField(e.SerialNumber), cleanField(e.SWL),
			cleanField(e.Shift), cleanField(e.Weather),
		}
		pdf.SetFillColor(255, 255, 255)
		for j, c := range cells {
			pdf.CellFormat(widths[j], 8, c, "1", 0, "L", false, 0, "")
		}
		r, gr, b := HexToRGB(StatusColor(e.Status))
		pdf.SetFillColor(r, gr, b)
		pdf.CellFormat(widths[5], 8, e.Status.String(), "1", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}
}

// =============================================================================
// Per-Crane Sections
// =============================================================================

func (g *PDFGenerator) addCraneSection(pdf *fpdf.Fpdf, section craneSection) {
	row := section.Row
	pdf.AddPage()
	g.sectionHeader(pdf, "Crane "+cleanField(row[engine.ColCraneNo]))

	factPairs := []struct{ label, col string }{
		{"Make/Model", engine.ColMakeModel},
		{"Serial Number", engine.ColSerialNumber},
		{"SWL (t)", engine.ColSWL},
		{"Install/Commission Date", engine.ColInstallDate},
		{"Last 5-year Proof Test Date", engine.ColProofTestDate},
		{"Last Annual Thorough Exam Date", engine.ColAnnualExamDate},
		{"Exam By", engine.ColExamBy},
		{"Certificate of Test #", engine.ColCertificateNo},
	}
	labelWidth := 70.0
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range factPairs {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(238, 238, 238)
		pdf.CellFormat(labelWidth, 7, p.label, "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(g.contentWidth-labelWidth, 7, cleanField(row[p.col]), "1", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(238, 238, 238)
	pdf.CellFormat(labelWidth, 7, "Shift / Weather", "1", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(g.contentWidth-labelWidth, 7,
		cleanField(row[engine.ColShift])+" / "+cleanField(row[engine.ColWeather]), "1", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(217, 217, 217)
	pdf.CellFormat(g.contentWidth-20, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Y/N", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, check := range engine.MandatoryChecks() {
		pdf.CellFormat(g.contentWidth-20, 7, check.Column, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, cleanField(row[check.Column]), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	notes := cleanField(row[engine.ColNotes])
	gearNotes := cleanField(row[engine.ColGearNotes])
	if notes != "" || gearNotes != "" {
		g.subHeader(pdf, "Notes / Defects")
		pdf.SetFont("Helvetica", "", 10)
		if notes != "" {
			pdf.MultiCell(g.contentWidth, 6, notes, "", "L", false)
		}
		if gearNotes != "" {
			pdf.MultiCell(g.contentWidth, 6, gearNotes, "", "L", false)
		}
		pdf.Ln(2)
	}

	if e := section.Result; e != nil {
		g.subHeader(pdf, "Compliance Findings")
		g.findingBlock(pdf, "ISSUES (FAIL)", summaryOf(e.IssueSummary()), domain.StatusFail)
		g.findingBlock(pdf, "ATTENTION", summaryOf(e.AttentionSummary()), domain.StatusAttention)
		g.findingBlock(pdf, "DUE SOON", summaryOf(e.DueSoonSummary()), domain.StatusPass)
	}
}

// =============================================================================
// Guidance Appendix
// =============================================================================

func (g *PDFGenerator) addGuidance(pdf *fpdf.Fpdf) {
	pdf.AddPage()
	g.sectionHeader(pdf, "Applicable MO32 Clauses & Guidance")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range guidance {
		pdf.MultiCell(g.contentWidth, 6, fmt.Sprintf("* %s - %s", item.Text, item.Reference), "", "L", false)
		pdf.Ln(1)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func (g *PDFGenerator) sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(31, 78, 121)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(40, 40, 40)
	pdf.Ln(2)
}

func (g *PDFGenerator) subHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *PDFGenerator) findingBlock(pdf *fpdf.Fpdf, label, text string, status domain.Status) {
	r, gr, b := HexToRGB(StatusColor(status))
	pdf.SetFillColor(r, gr, b)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, label, "1", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(g.contentWidth-40, 7, text, "1", "L", false)
	pdf.Ln(1)
}
