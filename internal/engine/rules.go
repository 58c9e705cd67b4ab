package engine

// This file is the engine's rule table: the fixed mandatory checks with
// their MO32 references, the interval rules, and the keyword lists used by
// the cross-field consistency checks. All of it is read-only configuration;
// nothing here is mutated at runtime.

// MandatoryCheck ties a Y/N checklist column to its MO32 reference.
type MandatoryCheck struct {
	Column    string
	Reference string
}

// mandatoryChecks is the fixed, ordered table of the ten mandatory items.
// Emission order follows this table so batch output is deterministic.
var mandatoryChecks = []MandatoryCheck{
	{ColCertificateCurrent, "s.23"},
	{ColRegisterOnboard, "s.25"},
	{ColPreUseExam, "s.22(2)(c)"},
	{ColRiggingPlan, "Sch.6 Div.2 cl.1"},
	{ColLimitSwitches, "Sch.3 cl.4(3)"},
	{ColBrakes, "Sch.6 Div.3"},
	{ColControlsLabelled, "Sch.6 Div.3"},
	{ColVisibility, "Sch.6 vis."},
	{ColWeatherProtection, "Sch.6 cl.19"},
	{ColCabinAccess, "Sch.6 access"},
}

// MandatoryChecks returns a copy of the mandatory check table in emission order.
func MandatoryChecks() []MandatoryCheck {
	checks := make([]MandatoryCheck, len(mandatoryChecks))
	copy(checks, mandatoryChecks)
	return checks
}

// intervalRule describes one date-interval compliance rule. A record is
// overdue when the last event date is missing or more than interval+grace
// days old; a compliant record within dueSoonDays of expiry gets a warning.
type intervalRule struct {
	column       string
	intervalDays int
	graceDays    int
	dueSoonDays  int
	overdueMsg   string
	dueSoonFmt   string // takes the remaining day count
}

var (
	proofTestRule = intervalRule{
		column:       ColProofTestDate,
		intervalDays: 5 * 365,
		dueSoonDays:  90,
		overdueMsg:   "Overdue/missing 5-year proof test (MO32 Sch.3 2(2)(a)).",
		dueSoonFmt:   "5-year proof test due in %d days.",
	}
	annualExamRule = intervalRule{
		column:       ColAnnualExamDate,
		intervalDays: 365,
		graceDays:    31,
		dueSoonDays:  30,
		overdueMsg:   "Overdue/missing annual thorough exam (MO32 Sch.3 2(2)(b), 2(5)).",
		dueSoonFmt:   "Annual thorough exam due in %d days.",
	}
	looseGearRule = intervalRule{
		column:       ColGearInspectionDate,
		intervalDays: 365,
		dueSoonDays:  30,
		overdueMsg:   "Loose gear last inspection/proof >12 months or missing - not compliant.",
		dueSoonFmt:   "Loose gear inspection due in %d days.",
	}
)

// keywordRule associates a mandatory column with the defect keywords that
// contradict a "Y" tick when found in the notes blob.
type keywordRule struct {
	column   string
	keywords []string
}

// riskKeywords is ordered: contradiction findings are emitted in this order.
var riskKeywords = []keywordRule{
	{ColControlsLabelled, []string{"sloppy", "sticky", "not labelled", "label missing", "hard to reach", "unresponsive", "stiff"}},
	{ColBrakes, []string{"drifts", "creeps", "won't hold", "wont hold", "weak brake", "fade", "brake fade", "slips"}},
	{ColLimitSwitches, []string{"overtravel", "limit not working", "no cutout", "failsafe", "upper limit", "lower limit"}},
	{ColVisibility, []string{"blind spot", "obstructed", "poor visibility", "camera not working", "wiper", "dirty screen"}},
	{ColWeatherProtection, []string{"no canopy", "exposed", "water ingress", "leaks", "rain on controls"}},
	{ColCabinAccess, []string{"ladder loose", "handrail", "blocked", "trip hazard", "missing step"}},
	{ColRiggingPlan, []string{"no plan", "drawing missing", "outdated plan", "no rigging plan"}},
	{ColCertificateCurrent, []string{"expired", "out of date", "no certificate", "missing cert"}},
	{ColRegisterOnboard, []string{"no register", "not onboard", "out of date", "not updated"}},
}

// workaroundKeywords suggest a defect ticked "N" is being tolerated in service.
var workaroundKeywords = []string{"ok now", "temporary fix", "workaround", "still usable"}

// adverseWeather marks conditions that contradict an adequate-visibility tick.
var adverseWeather = []string{
	"rain", "raining", "storm", "storming", "hail", "fog", "mist", "spray",
	"squall", "gust", "windy", "dust", "smoke", "night", "dark", "low light", "glare",
}
