package engine

import (
	"fmt"
	"time"
)

// checkInterval applies one date-interval rule to a row. Exactly one of the
// returned strings is non-empty when the rule has something to say: an
// overdue message when the last event date is absent or older than
// interval+grace, or a due-soon notice when the rule is satisfied but within
// its warning threshold of expiry.
func checkInterval(rule intervalRule, row Row, today time.Time) (issue, dueSoon string) {
	last, ok := ParseDate(row[rule.column])
	if !ok || daysBetween(last, today) > rule.intervalDays+rule.graceDays {
		return rule.overdueMsg, ""
	}
	due := last.AddDate(0, 0, rule.intervalDays)
	if left := daysBetween(today, due); left <= rule.dueSoonDays {
		return "", fmt.Sprintf(rule.dueSoonFmt, left)
	}
	return "", ""
}
