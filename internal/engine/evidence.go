package engine

import "strings"

// Evidence completeness: a positive tick must be backed by a non-blank
// reference (certificate number, register entry, drawing revision). These
// never fail a record outright; they prompt the inspector to attach proof.
func evidencePrompts(row Row) []string {
	var prompts []string

	if isYes(row[ColCertificateCurrent]) && isBlank(row[ColCertificateNo]) {
		prompts = append(prompts, "Certificate marked current but certificate number is blank - add ID/photo.")
	}
	if isYes(row[ColRegisterOnboard]) && isBlank(row[ColExamBy]) {
		prompts = append(prompts, "Register marked onboard - add last entry details/competent or responsible person.")
	}
	if isYes(row[ColRiggingPlan]) {
		notes := strings.ToLower(CleanText(row[ColNotes]))
		if strings.Contains(notes, "plan") && !strings.Contains(notes, "rev") {
			prompts = append(prompts, "Rigging plan onboard - add drawing ID/revision/date in notes.")
		}
	}
	// Deliberately overlaps the loose-gear certificate attention item raised
	// during evaluation: both originate from distinct inputs in the source
	// rule set and both are kept.
	if isYes(row[ColCertificateCurrent]) && isBlank(row[ColGearCertificateNo]) {
		prompts = append(prompts, "Main certificate current but loose gear cert # blank - add accessory cert reference.")
	}
	return prompts
}
