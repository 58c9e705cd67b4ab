package engine

import (
	"fmt"
	"strings"

	"github.com/harborline/cranecheck/internal/domain"
)

// Cross-field consistency: contradictions between ticked answers and the
// free-text evidence, detected with the keyword tables in rules.go.

// notesBlob builds the combined lowercase text searched for keywords:
// general notes, loose-gear notes, and the weather description.
func notesBlob(row Row) string {
	return strings.ToLower(
		CleanText(row[ColNotes]) + " " + CleanText(row[ColGearNotes]) + " " + CleanText(row[ColWeather]),
	)
}

// noteContradictions returns one finding per mandatory field whose tick is
// at odds with the notes: "Y" with defect keywords present, or "N" with
// workaround language implying the gear is still in service. The visibility
// tick additionally contradicts a night shift or adverse weather.
func noteContradictions(row Row) []string {
	blob := notesBlob(row)
	var findings []string

	for _, rule := range riskKeywords {
		tick := domain.ParseTriState(row[rule.column])
		if !tick.Answered() {
			continue
		}
		if tick.IsYes() {
			if hits := keywordHits(blob, rule.keywords, 3); len(hits) > 0 {
				findings = append(findings, fmt.Sprintf("%s: Y but notes mention %s", rule.column, strings.Join(hits, ", ")))
			}
		}
		if tick.IsNo() && len(keywordHits(blob, workaroundKeywords, 1)) > 0 {
			findings = append(findings, fmt.Sprintf("%s: N but notes imply workaround/operation", rule.column))
		}
	}

	shift := strings.ToLower(strings.TrimSpace(CleanText(row[ColShift])))
	if isYes(row[ColVisibility]) && (shift == "night" || len(keywordHits(blob, adverseWeather, 1)) > 0) {
		findings = append(findings, "Visibility = Y but conditions indicate low visibility (night/adverse weather).")
	}
	return findings
}

// keywordHits returns up to max keywords found in the blob, in table order.
func keywordHits(blob string, keywords []string, max int) []string {
	var hits []string
	for _, w := range keywords {
		if strings.Contains(blob, w) {
			hits = append(hits, w)
			if len(hits) == max {
				break
			}
		}
	}
	return hits
}
