package report

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"

	"github.com/harborline/cranecheck/internal/domain"
	"github.com/harborline/cranecheck/internal/engine"
)

// =============================================================================
// DOCX Generator
// =============================================================================

// DOCXGenerator generates DOCX compliance reports from evaluated batches.
type DOCXGenerator struct{}

// NewDOCXGenerator creates a new DOCX generator.
func NewDOCXGenerator() *DOCXGenerator {
	return &DOCXGenerator{}
}

// Format returns the output format of this generator.
func (g *DOCXGenerator) Format() domain.ReportFormat {
	return domain.ReportFormatDOCX
}

// Generate creates a DOCX report and writes it to the provided writer.
func (g *DOCXGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	doc := document.New()
	defer doc.Close()

	props := doc.CoreProperties
	props.SetTitle(reportTitle(data))
	props.SetAuthor(cleanField(data.Inspector))

	g.addCoverSection(doc, data)
	g.addExecutiveSummary(doc, data)
	for _, section := range data.sections() {
		g.addCraneSection(doc, section)
	}
	g.addGuidance(doc)

	// Write to buffer to count bytes
	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return 0, fmt.Errorf("docx save error: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Cover Section
// =============================================================================

func (g *DOCXGenerator) addCoverSection(doc *document.Document, data *Data) {
	title := doc.AddParagraph()
	titleRun := title.AddRun()
	titleRun.Properties().SetBold(true)
	titleRun.Properties().SetSize(28 * measurement.Point)
	titleRun.Properties().SetColor(color.RGB(31, 78, 121)) // Navy
	titleRun.AddText("Crane Compliance Inspection Report")
	title.Properties().SetSpacing(0, 20*measurement.Point)

	subtitle := doc.AddParagraph()
	subtitleRun := subtitle.AddRun()
	subtitleRun.Properties().SetBold(true)
	subtitleRun.Properties().SetSize(12 * measurement.Point)
	subtitleRun.AddText("Marine Orders 32 (MO32) - Stevedore AutoCheck")
	subtitle.Properties().SetSpacing(0, 12*measurement.Point)

	g.addLabelValue(doc, "Vessel", orDefault(cleanField(data.VesselName), "-"))
	g.addLabelValue(doc, "IMO", orDefault(cleanField(data.IMO), "-"))
	g.addLabelValue(doc, "Date", FormatDate(data.GeneratedAt))
	if data.Inspector != "" {
		g.addLabelValue(doc, "Inspector", cleanField(data.Inspector))
	}

	doc.AddParagraph().AddRun().AddPageBreak()
}

// =============================================================================
// Executive Summary
// =============================================================================

func (g *DOCXGenerator) addExecutiveSummary(doc *document.Document, data *Data) {
	g.addSectionHeader(doc, "Executive Summary")

	counts := data.Counts()
	total := len(data.Results)

	kpi := doc.AddTable()
	kpi.Properties().SetWidthPercent(80)
	kpiRow := kpi.AddRow()
	g.addStatusCell(kpiRow, fmt.Sprintf("PASS: %d of %d", counts.Pass, total), domain.StatusPass)
	g.addStatusCell(kpiRow, fmt.Sprintf("ATTENTION: %d of %d", counts.Attention, total), domain.StatusAttention)
	g.addStatusCell(kpiRow, fmt.Sprintf("FAIL: %d of %d", counts.Fail, total), domain.StatusFail)

	doc.AddParagraph() // Spacing

	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	headerRow := table.AddRow()
	for _, h := range []string{"Crane #", "Serial #", "SWL (t)", "Shift", "Weather", "Status"} {
		g.addTableCell(headerRow, h, true)
	}
	for i := range data.Results {
		e := &data.Results[i]
		row := table.AddRow()
		g.addTableCell(row, cleanField(e.CraneNo), false)
		g.addTableCell(row, cleanField(e.SerialNumber), false)
		g.addTableCell(row, cleanField(e.SWL), false)
		g.addTableCell(row, cleanField(e.Shift), false)
		g.addTableCell(row, cleanField(e.Weather), false)
		g.addStatusCell(row, e.Status.String(), e.Status)
	}

	doc.AddParagraph().AddRun().AddPageBreak()
}

// =============================================================================
// Per-Crane Sections
// =============================================================================

func (g *DOCXGenerator) addCraneSection(doc *document.Document, section craneSection) {
	row := section.Row
	g.addSectionHeader(doc, "Crane "+cleanField(row[engine.ColCraneNo]))

	facts := doc.AddTable()
	facts.Properties().SetWidthPercent(100)
	factPairs := []struct{ label, col string }{
		{"Make/Model", engine.ColMakeModel},
		{"Serial Number", engine.ColSerialNumber},
		{"SWL (t)", engine.ColSWL},
		{"Install/Commission Date", engine.ColInstallDate},
		{"Last 5-year Proof Test Date", engine.ColProofTestDate},
		{"Last Annual Thorough Exam Date", engine.ColAnnualExamDate},
		{"Exam By (Competent/Responsible Person)", engine.ColExamBy},
		{"Certificate of Test #", engine.ColCertificateNo},
	}
	for _, p := range factPairs {
		r := facts.AddRow()
		g.addTableCell(r, p.label, true)
		g.addTableCell(r, cleanField(row[p.col]), false)
	}
	r := facts.AddRow()
	g.addTableCell(r, "Shift / Weather", true)
	g.addTableCell(r, cleanField(row[engine.ColShift])+" / "+cleanField(row[engine.ColWeather]), false)

	doc.AddParagraph()

	ticks := doc.AddTable()
	ticks.Properties().SetWidthPercent(100)
	tickHeader := ticks.AddRow()
	g.addTableCell(tickHeader, "Item", true)
	g.addTableCell(tickHeader, "Y/N", true)
	for _, check := range engine.MandatoryChecks() {
		tr := ticks.AddRow()
		g.addTableCell(tr, check.Column, false)
		g.addTableCell(tr, cleanField(row[check.Column]), false)
	}

	notes := cleanField(row[engine.ColNotes])
	gearNotes := cleanField(row[engine.ColGearNotes])
	if notes != "" || gearNotes != "" {
		g.addSubsectionHeader(doc, "Notes / Defects")
		if notes != "" {
			g.addTextLine(doc, notes)
		}
		if gearNotes != "" {
			g.addTextLine(doc, gearNotes)
		}
	}

	if e := section.Result; e != nil {
		g.addSubsectionHeader(doc, "Compliance Findings")
		findings := doc.AddTable()
		findings.Properties().SetWidthPercent(100)
		g.addFindingRow(findings, "ISSUES (FAIL): ", summaryOf(e.IssueSummary()), domain.StatusFail)
		g.addFindingRow(findings, "ATTENTION: ", summaryOf(e.AttentionSummary()), domain.StatusAttention)
		g.addFindingRow(findings, "DUE SOON: ", summaryOf(e.DueSoonSummary()), domain.StatusPass)
	}

	doc.AddParagraph().AddRun().AddPageBreak()
}

// =============================================================================
// Guidance Appendix
// =============================================================================

func (g *DOCXGenerator) addGuidance(doc *document.Document) {
	g.addSectionHeader(doc, "Applicable MO32 Clauses & Guidance")
	for _, item := range guidance {
		para := doc.AddParagraph()
		run := para.AddRun()
		run.AddText(fmt.Sprintf("* %s - %s", item.Text, item.Reference))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (g *DOCXGenerator) addSectionHeader(doc *document.Document, title string) {
	para := doc.AddParagraph()
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(16 * measurement.Point)
	run.Properties().SetColor(color.RGB(31, 78, 121)) // Navy
	run.AddText(title)
	para.Properties().SetSpacing(0, 12*measurement.Point)
}

func (g *DOCXGenerator) addSubsectionHeader(doc *document.Document, title string) {
	para := doc.AddParagraph()
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(12 * measurement.Point)
	run.AddText(title)
	para.Properties().SetSpacing(12*measurement.Point, 6*measurement.Point)
}

func (g *DOCXGenerator) addTextLine(doc *document.Document, text string) {
	para := doc.AddParagraph()
	para.AddRun().AddText(text)
}

func (g *DOCXGenerator) addLabelValue(doc *document.Document, label, value string) {
	para := doc.AddParagraph()
	labelRun := para.AddRun()
	labelRun.Properties().SetBold(true)
	labelRun.AddText(label + ": ")
	para.AddRun().AddText(value)
}

func (g *DOCXGenerator) addTableCell(row document.Row, text string, bold bool) {
	cell := row.AddCell()
	para := cell.AddParagraph()
	run := para.AddRun()
	if bold {
		run.Properties().SetBold(true)
	}
	run.AddText(text)
}

func (g *DOCXGenerator) addStatusCell(row document.Row, text string, status domain.Status) {
	cell := row.AddCell()
	para := cell.AddParagraph()
	run := para.AddRun()
	run.Properties().SetBold(true)
	r, gr, b := HexToRGB(StatusColor(status))
	run.Properties().SetColor(color.RGB(uint8(r), uint8(gr), uint8(b)))
	run.AddText(text)
}

func (g *DOCXGenerator) addFindingRow(table document.Table, label, text string, status domain.Status) {
	row := table.AddRow()
	cell := row.AddCell()
	para := cell.AddParagraph()
	labelRun := para.AddRun()
	labelRun.Properties().SetBold(true)
	r, gr, b := HexToRGB(StatusColor(status))
	labelRun.Properties().SetColor(color.RGB(uint8(r), uint8(gr), uint8(b)))
	labelRun.AddText(label)
	para.AddRun().AddText(text)
}
