// Package engine implements the MO32 crane compliance rule engine.
//
// The engine is pure computation: it takes one checklist row (a flat mapping
// from column name to raw cell value) and a reference date, and derives a
// PASS/ATTENTION/FAIL verdict with supporting issue, attention, and due-soon
// lists. It performs no I/O and holds no mutable state; the rule tables in
// rules.go are read-only process-wide configuration.
package engine

// Checklist column names. These are the exact headers of the inspection
// form and of CSV imports; every consumer of the engine addresses cells
// through them.
const (
	ColCraneNo            = "Crane #"
	ColVesselName         = "Vessel Name"
	ColIMO                = "IMO"
	ColMakeModel          = "Crane Make/Model"
	ColSerialNumber       = "Serial Number"
	ColSWL                = "SWL (t)"
	ColInstallDate        = "Install/Commission Date"
	ColProofTestDate      = "Last 5-year Proof Test Date"
	ColAnnualExamDate     = "Last Annual Thorough Exam Date"
	ColExamBy             = "Annual Exam By (Competent/Responsible Person)"
	ColCertificateNo      = "Certificate of Test # (AMSA 365/642/etc)"
	ColCertificateCurrent = "Certificate Current? (Y/N)"
	ColRegisterOnboard    = "Register of MHE Onboard? (Y/N)"
	ColPreUseExam         = "Pre-use Visual Exam OK? (Y/N)"
	ColRiggingPlan        = "Rigging Plan/Drawings Onboard? (Y/N)"
	ColControlsLabelled   = "Controls layout labelled & accessible? (Y/N)"
	ColLimitSwitches      = "Limit switches operational? (Y/N)"
	ColBrakes             = "Brakes operational? (Y/N)"
	ColVisibility         = "Operator visibility adequate? (Y/N)"
	ColShift              = "Visibility: Shift (Day/Evening/Night)"
	ColWeather            = "Visibility: Weather conditions"
	ColWeatherProtection  = "Weather protection at winch/controls? (Y/N)"
	ColCabinAccess        = "Access/escape to cabin compliant? (Y/N)"
	ColNotes              = "Notes / Defects"
	ColGearSerial         = "Loose Gear: Hook/Block Serial Number"
	ColGearSWL            = "Loose Gear: Hook SWL (t)"
	ColGearCertificateNo  = "Loose Gear: Certificate Number"
	ColGearInspectionDate = "Loose Gear: Last Inspection/Proof Date"
	ColGearNotes          = "Loose Gear: Notes"
)

// requiredColumns is the fixed column set, in form order. A batch whose
// schema lacks any of these is rejected outright; per-record blanks are fine.
var requiredColumns = []string{
	ColCraneNo, ColVesselName, ColIMO, ColMakeModel, ColSerialNumber, ColSWL,
	ColInstallDate, ColProofTestDate, ColAnnualExamDate,
	ColExamBy, ColCertificateNo,
	ColCertificateCurrent, ColRegisterOnboard, ColPreUseExam,
	ColRiggingPlan, ColControlsLabelled,
	ColLimitSwitches, ColBrakes, ColVisibility,
	ColShift, ColWeather,
	ColWeatherProtection, ColCabinAccess, ColNotes,
	ColGearSerial, ColGearSWL, ColGearCertificateNo,
	ColGearInspectionDate, ColGearNotes,
}

// RequiredColumns returns a copy of the fixed column set in form order.
func RequiredColumns() []string {
	cols := make([]string, len(requiredColumns))
	copy(cols, requiredColumns)
	return cols
}

// Row is one checklist record: raw cell values keyed by column name.
// Missing keys and blank values both read as empty cells.
type Row map[string]string

// Batch is a set of rows sharing one column schema. Columns is the schema
// as supplied by the producer (form, CSV import, fixture); it is what the
// structural schema check validates, independent of per-row contents.
type Batch struct {
	Columns []string
	Rows    []Row
}
