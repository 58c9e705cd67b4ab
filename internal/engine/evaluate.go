package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/harborline/cranecheck/internal/domain"
)

// EvaluateRow derives the compliance verdict for one checklist row against
// the given reference date. The reference date is truncated to a UTC
// calendar date so every interval check in a batch sees the same "today".
//
// Evaluation is pure: the same row and date always produce an identical
// result, and the input row is never modified.
func EvaluateRow(row Row, today time.Time) domain.Evaluation {
	today = civil(today)
	var issues, attention, dueSoon []string

	collect := func(rule intervalRule) {
		issue, due := checkInterval(rule, row, today)
		if issue != "" {
			issues = append(issues, issue)
		}
		if due != "" {
			dueSoon = append(dueSoon, due)
		}
	}

	collect(proofTestRule)
	collect(annualExamRule)

	for _, check := range mandatoryChecks {
		switch tick := domain.ParseTriState(row[check.Column]); {
		case !tick.Answered():
			attention = append(attention, fmt.Sprintf("%s not answered (tick Y or N).", check.Column))
		case tick.IsNo():
			item := strings.Replace(check.Column, " (Y/N)", "", 1)
			issues = append(issues, fmt.Sprintf("%s: NOT OK (MO32 %s).", item, check.Reference))
		}
	}

	if isBlank(row[ColShift]) {
		attention = append(attention, "Shift/Lighting not selected (Day/Evening/Night).")
	}
	if isBlank(row[ColWeather]) {
		attention = append(attention, "Weather conditions box is empty (e.g., Raining / Clear / Fog).")
	}

	craneSWL, craneOK := ParseFloat(row[ColSWL])
	hookSWL, hookOK := ParseFloat(row[ColGearSWL])
	if craneOK && hookOK && hookSWL > craneSWL {
		issues = append(issues, fmt.Sprintf("Loose gear SWL (%s t) exceeds crane SWL (%s t) - mismatch.",
			formatTonnes(hookSWL), formatTonnes(craneSWL)))
	}

	collect(looseGearRule)

	if isYes(row[ColCertificateCurrent]) && isBlank(row[ColGearCertificateNo]) {
		attention = append(attention, "Loose gear certificate number blank while main cert is current - add accessory cert ref.")
	}

	for _, c := range noteContradictions(row) {
		attention = append(attention, "Notes contradict ticks: "+c)
	}
	attention = append(attention, evidencePrompts(row)...)

	status := domain.StatusPass
	switch {
	case len(issues) > 0:
		status = domain.StatusFail
	case len(attention) > 0 || len(dueSoon) > 0:
		status = domain.StatusAttention
	}

	return domain.Evaluation{
		CraneNo:      row[ColCraneNo],
		VesselName:   row[ColVesselName],
		IMO:          row[ColIMO],
		SerialNumber: row[ColSerialNumber],
		SWL:          row[ColSWL],
		Shift:        row[ColShift],
		Weather:      row[ColWeather],
		GearSerial:   row[ColGearSerial],
		GearSWL:      row[ColGearSWL],
		Status:       status,
		Issues:       issues,
		Attention:    attention,
		DueSoon:      dueSoon,
	}
}

// EvaluateBatch evaluates every row of a batch in order, producing exactly
// one result per input row. Before touching any row it validates the batch
// schema: a required column absent from the schema entirely is a
// configuration error naming every missing column, distinct from a column
// that is present but blank in individual records.
func EvaluateBatch(batch Batch, today time.Time) ([]domain.Evaluation, error) {
	const op = "engine.evaluate"

	present := make(map[string]bool, len(batch.Columns))
	for _, col := range batch.Columns {
		present[col] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, domain.Invalid(op, "form columns missing: "+strings.Join(missing, ", "))
	}

	results := make([]domain.Evaluation, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		results = append(results, EvaluateRow(row, today))
	}
	return results, nil
}
