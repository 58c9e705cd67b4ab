package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/cranecheck/internal/domain"
)

// refDate is the fixed "today" used across these tests.
var refDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// dmy renders a date in the form's day-month-year layout.
func dmy(t time.Time) string {
	return t.Format("02-01-2006")
}

// daysAgo returns the form-formatted date n days before refDate.
func daysAgo(n int) string {
	return dmy(refDate.AddDate(0, 0, -n))
}

// compliantRow builds a record that passes every check with nothing due soon.
func compliantRow() Row {
	row := Row{
		ColCraneNo:            "1",
		ColVesselName:         "MV Example",
		ColIMO:                "9526722",
		ColMakeModel:          "NMF DKII",
		ColSerialNumber:       "CRN-123",
		ColSWL:                "45",
		ColInstallDate:        "10-05-2019",
		ColProofTestDate:      daysAgo(400),
		ColAnnualExamDate:     daysAgo(100),
		ColExamBy:             "Joe Bloggs (Comp)",
		ColCertificateNo:      "AMSA365-111",
		ColShift:              "Day",
		ColWeather:            "Clear",
		ColNotes:              "",
		ColGearSerial:         "LG-001",
		ColGearSWL:            "40",
		ColGearCertificateNo:  "LGCERT-789",
		ColGearInspectionDate: daysAgo(100),
		ColGearNotes:          "",
	}
	for _, check := range mandatoryChecks {
		row[check.Column] = "Y"
	}
	return row
}

func TestEvaluateRowPass(t *testing.T) {
	result := EvaluateRow(compliantRow(), refDate)

	assert.Equal(t, domain.StatusPass, result.Status)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Attention)
	assert.Empty(t, result.DueSoon)
	assert.Equal(t, "1", result.CraneNo)
	assert.Equal(t, "MV Example", result.VesselName)
}

func TestEvaluateRowMandatoryNo(t *testing.T) {
	row := compliantRow()
	row[ColBrakes] = "N"
	row[ColLimitSwitches] = "n" // lower case still counts as an answer

	result := EvaluateRow(row, refDate)

	require.Equal(t, domain.StatusFail, result.Status)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "Limit switches operational?: NOT OK (MO32 Sch.3 cl.4(3)).", result.Issues[0])
	assert.Equal(t, "Brakes operational?: NOT OK (MO32 Sch.6 Div.3).", result.Issues[1])
}

func TestEvaluateRowUnanswered(t *testing.T) {
	row := compliantRow()
	row[ColPreUseExam] = ""
	row[ColCabinAccess] = "maybe"

	result := EvaluateRow(row, refDate)

	assert.Equal(t, domain.StatusAttention, result.Status)
	assert.Empty(t, result.Issues)
	assert.Contains(t, result.Attention, "Pre-use Visual Exam OK? (Y/N) not answered (tick Y or N).")
	assert.Contains(t, result.Attention, "Access/escape to cabin compliant? (Y/N) not answered (tick Y or N).")
}

func TestProofTestBoundary(t *testing.T) {
	row := compliantRow()

	// Exactly 5*365 days ago is still compliant, with an expiry-day notice.
	row[ColProofTestDate] = daysAgo(5 * 365)
	result := EvaluateRow(row, refDate)
	assert.NotContains(t, result.Issues, proofTestRule.overdueMsg)
	assert.Contains(t, result.DueSoon, "5-year proof test due in 0 days.")

	// One day further back is overdue.
	row[ColProofTestDate] = daysAgo(5*365 + 1)
	result = EvaluateRow(row, refDate)
	assert.Equal(t, domain.StatusFail, result.Status)
	assert.Contains(t, result.Issues, proofTestRule.overdueMsg)
}

func TestProofTestMissing(t *testing.T) {
	row := compliantRow()
	row[ColProofTestDate] = ""

	result := EvaluateRow(row, refDate)

	assert.Equal(t, domain.StatusFail, result.Status)
	assert.Contains(t, result.Issues, proofTestRule.overdueMsg)
}

func TestAnnualExamGraceBoundary(t *testing.T) {
	row := compliantRow()

	// 365+31 days ago: inside the grace window, not overdue.
	row[ColAnnualExamDate] = daysAgo(396)
	result := EvaluateRow(row, refDate)
	assert.NotContains(t, result.Issues, annualExamRule.overdueMsg)

	// One day past the grace window: overdue.
	row[ColAnnualExamDate] = daysAgo(397)
	result = EvaluateRow(row, refDate)
	assert.Contains(t, result.Issues, annualExamRule.overdueMsg)
}

func TestAnnualExamDueSoonBoundary(t *testing.T) {
	row := compliantRow()

	// 30 days remaining: notice emitted.
	row[ColAnnualExamDate] = daysAgo(335)
	result := EvaluateRow(row, refDate)
	assert.Contains(t, result.DueSoon, "Annual thorough exam due in 30 days.")

	// 31 days remaining: no notice.
	row[ColAnnualExamDate] = daysAgo(334)
	result = EvaluateRow(row, refDate)
	assert.Empty(t, result.DueSoon)
}

func TestLooseGearBoundary(t *testing.T) {
	row := compliantRow()

	// Exactly 365 days ago: compliant, with an expiry-day notice.
	row[ColGearInspectionDate] = daysAgo(365)
	result := EvaluateRow(row, refDate)
	assert.NotContains(t, result.Issues, looseGearRule.overdueMsg)
	assert.Contains(t, result.DueSoon, "Loose gear inspection due in 0 days.")

	// 366 days ago: overdue.
	row[ColGearInspectionDate] = daysAgo(366)
	result = EvaluateRow(row, refDate)
	assert.Contains(t, result.Issues, looseGearRule.overdueMsg)
}

func TestNotesContradictYesTick(t *testing.T) {
	row := compliantRow()
	row[ColNotes] = "Some brake fade observed at low speed"

	result := EvaluateRow(row, refDate)

	assert.Equal(t, domain.StatusAttention, result.Status)
	require.Len(t, result.Attention, 1)
	assert.Equal(t, "Notes contradict ticks: Brakes operational? (Y/N): Y but notes mention fade, brake fade", result.Attention[0])
}

func TestNotesNoContradictionForNoTick(t *testing.T) {
	row := compliantRow()
	row[ColBrakes] = "N"
	row[ColNotes] = "brake fade"

	result := EvaluateRow(row, refDate)

	// The N tick is a hard issue, but the defect keywords no longer
	// contradict anything.
	assert.Equal(t, domain.StatusFail, result.Status)
	for _, a := range result.Attention {
		assert.NotContains(t, a, "Y but notes mention")
	}
}

func TestWorkaroundContradictsNoTick(t *testing.T) {
	row := compliantRow()
	row[ColBrakes] = "N"
	row[ColNotes] = "weak brake but ok now, temporary fix applied"

	result := EvaluateRow(row, refDate)

	assert.Contains(t, result.Attention,
		"Notes contradict ticks: Brakes operational? (Y/N): N but notes imply workaround/operation")
}

func TestKeywordHitsCappedAtThree(t *testing.T) {
	row := compliantRow()
	row[ColNotes] = "controls sloppy and sticky, label missing, hard to reach"

	result := EvaluateRow(row, refDate)

	require.Len(t, result.Attention, 1)
	assert.Equal(t,
		"Notes contradict ticks: Controls layout labelled & accessible? (Y/N): Y but notes mention sloppy, sticky, label missing",
		result.Attention[0])
}

func TestNightShiftVisibilityContradiction(t *testing.T) {
	row := compliantRow()
	row[ColShift] = "Night"

	result := EvaluateRow(row, refDate)

	assert.Contains(t, result.Attention,
		"Notes contradict ticks: Visibility = Y but conditions indicate low visibility (night/adverse weather).")
}

func TestAdverseWeatherVisibilityContradiction(t *testing.T) {
	row := compliantRow()
	row[ColWeather] = "Raining heavily"

	result := EvaluateRow(row, refDate)

	assert.Contains(t, result.Attention,
		"Notes contradict ticks: Visibility = Y but conditions indicate low visibility (night/adverse weather).")
}

func TestSWLMismatch(t *testing.T) {
	row := compliantRow()
	row[ColSWL] = "45"
	row[ColGearSWL] = "50"

	result := EvaluateRow(row, refDate)

	require.Equal(t, domain.StatusFail, result.Status)
	assert.Contains(t, result.Issues, "Loose gear SWL (50 t) exceeds crane SWL (45 t) - mismatch.")

	// Hook at or under crane SWL raises nothing.
	row[ColGearSWL] = "40"
	result = EvaluateRow(row, refDate)
	assert.Equal(t, domain.StatusPass, result.Status)

	// Unparseable SWL values never trigger the mismatch rule.
	row[ColGearSWL] = "heavy"
	result = EvaluateRow(row, refDate)
	assert.Empty(t, result.Issues)
}

func TestShiftAndWeatherBlank(t *testing.T) {
	row := compliantRow()
	row[ColShift] = ""
	row[ColWeather] = "nan" // sheet exports render blanks as nan

	result := EvaluateRow(row, refDate)

	assert.Contains(t, result.Attention, "Shift/Lighting not selected (Day/Evening/Night).")
	assert.Contains(t, result.Attention, "Weather conditions box is empty (e.g., Raining / Clear / Fog).")
}

func TestEvidencePrompts(t *testing.T) {
	row := compliantRow()
	row[ColCertificateNo] = ""
	row[ColExamBy] = ""
	row[ColNotes] = "see rigging plan in cabin"

	result := EvaluateRow(row, refDate)

	assert.Contains(t, result.Attention, "Certificate marked current but certificate number is blank - add ID/photo.")
	assert.Contains(t, result.Attention, "Register marked onboard - add last entry details/competent or responsible person.")
	assert.Contains(t, result.Attention, "Rigging plan onboard - add drawing ID/revision/date in notes.")
}

func TestRiggingPlanRevisionSatisfies(t *testing.T) {
	row := compliantRow()
	row[ColNotes] = "rigging plan rev C dated 2024"

	result := EvaluateRow(row, refDate)

	for _, a := range result.Attention {
		assert.NotContains(t, a, "add drawing ID/revision/date")
	}
}

func TestLooseGearCertBlankRaisesBothConditions(t *testing.T) {
	row := compliantRow()
	row[ColGearCertificateNo] = ""

	result := EvaluateRow(row, refDate)

	// Two distinct rules fire on the same gap; both messages are kept.
	assert.Contains(t, result.Attention,
		"Loose gear certificate number blank while main cert is current - add accessory cert ref.")
	assert.Contains(t, result.Attention,
		"Main certificate current but loose gear cert # blank - add accessory cert reference.")
}

func TestEvaluateRowIdempotent(t *testing.T) {
	row := compliantRow()
	row[ColBrakes] = "N"
	row[ColNotes] = "brake fade, no canopy"
	row[ColAnnualExamDate] = daysAgo(340)

	first := EvaluateRow(row, refDate)
	second := EvaluateRow(row, refDate)

	assert.Equal(t, first, second)
}

func TestEvaluateBatch(t *testing.T) {
	failing := compliantRow()
	failing[ColCraneNo] = "2"
	failing[ColBrakes] = "N"

	batch := Batch{
		Columns: RequiredColumns(),
		Rows:    []Row{compliantRow(), failing},
	}

	results, err := EvaluateBatch(batch, refDate)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].CraneNo)
	assert.Equal(t, domain.StatusPass, results[0].Status)
	assert.Equal(t, "2", results[1].CraneNo)
	assert.Equal(t, domain.StatusFail, results[1].Status)
}

func TestEvaluateBatchMissingColumns(t *testing.T) {
	cols := RequiredColumns()
	var trimmed []string
	for _, c := range cols {
		if c == ColBrakes || c == ColGearNotes {
			continue
		}
		trimmed = append(trimmed, c)
	}

	batch := Batch{Columns: trimmed, Rows: []Row{compliantRow()}}

	_, err := EvaluateBatch(batch, refDate)

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Contains(t, err.Error(), ColBrakes)
	assert.Contains(t, err.Error(), ColGearNotes)
}

func TestEvaluateBatchEmpty(t *testing.T) {
	batch := Batch{Columns: RequiredColumns()}

	results, err := EvaluateBatch(batch, refDate)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMandatoryOrderDeterministic(t *testing.T) {
	row := compliantRow()
	for _, check := range mandatoryChecks {
		row[check.Column] = "N"
	}
	// Clear note fields so only mandatory issues appear.
	result := EvaluateRow(row, refDate)

	require.Equal(t, domain.StatusFail, result.Status)
	require.Len(t, result.Issues, len(mandatoryChecks))
	for i, check := range mandatoryChecks {
		want := fmt.Sprintf("%s: NOT OK (MO32 %s).", check.Column[:len(check.Column)-len(" (Y/N)")], check.Reference)
		assert.Equal(t, want, result.Issues[i])
	}
}

// The crew-facing form ships with a pre-filled sample record; it should
// come back ATTENTION with exactly the two notes contradictions.
func TestSampleVesselRecord(t *testing.T) {
	row := Row{
		ColCraneNo:            "1",
		ColVesselName:         "MV Example",
		ColIMO:                "9526722",
		ColMakeModel:          "NMF DKII",
		ColSerialNumber:       "CRN-123",
		ColSWL:                "45",
		ColInstallDate:        "10-05-2019",
		ColProofTestDate:      "08-05-2022",
		ColAnnualExamDate:     "01-06-2025",
		ColExamBy:             "Joe Bloggs (Comp)",
		ColCertificateNo:      "AMSA365-111",
		ColCertificateCurrent: "Y",
		ColRegisterOnboard:    "Y",
		ColPreUseExam:         "Y",
		ColRiggingPlan:        "Y",
		ColControlsLabelled:   "Y",
		ColLimitSwitches:      "Y",
		ColBrakes:             "Y",
		ColVisibility:         "Y",
		ColShift:              "Night",
		ColWeather:            "Raining",
		ColWeatherProtection:  "Y",
		ColCabinAccess:        "Y",
		ColNotes:              "Controls slightly sloppy at low speed",
		ColGearSerial:         "LG-001",
		ColGearSWL:            "40",
		ColGearCertificateNo:  "LGCERT-789",
		ColGearInspectionDate: "15-06-2025",
	}

	result := EvaluateRow(row, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, domain.StatusAttention, result.Status)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.DueSoon)
	assert.Equal(t, []string{
		"Notes contradict ticks: Controls layout labelled & accessible? (Y/N): Y but notes mention sloppy",
		"Notes contradict ticks: Visibility = Y but conditions indicate low visibility (night/adverse weather).",
	}, result.Attention)
}
