// Package csvio reads and writes inspection batches and evaluation results
// in the fixed checklist CSV layout.
//
// The reader preserves the imported header as the batch schema, so the
// engine's structural column check sees exactly what the file supplied.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/harborline/cranecheck/internal/domain"
	"github.com/harborline/cranecheck/internal/engine"
)

// resultColumns is the header of the results export.
var resultColumns = []string{
	"Crane #", "Vessel Name", "IMO", "Serial Number", "SWL (t)",
	"Shift", "Weather", "Loose Gear Serial", "Loose Gear SWL (t)",
	"Status", "Issues (FAIL)", "Attention (notes/evidence)", "Due soon",
}

// ReadBatch parses an inspection CSV into a batch. The first record is the
// schema; subsequent records become rows keyed by that schema. Short rows
// are tolerated (trailing cells read as blank); schema validation itself is
// the engine's job.
func ReadBatch(r io.Reader) (engine.Batch, error) {
	const op = "csvio.read"

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return engine.Batch{}, domain.Invalid(op, "empty CSV: no header row")
	}
	if err != nil {
		return engine.Batch{}, domain.Wrap(err, domain.EINVALID, op, "malformed CSV header")
	}

	batch := engine.Batch{Columns: header}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return engine.Batch{}, domain.Wrap(err, domain.EINVALID, op, fmt.Sprintf("malformed CSV record on line %d", line))
		}
		row := make(engine.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		batch.Rows = append(batch.Rows, row)
	}
	return batch, nil
}

// WriteBatch writes a batch back out in its own column order.
func WriteBatch(w io.Writer, batch engine.Batch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(batch.Columns); err != nil {
		return err
	}
	record := make([]string, len(batch.Columns))
	for _, row := range batch.Rows {
		for i, col := range batch.Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResults writes the tabulated evaluation results, one record per
// input row in input order.
func WriteResults(w io.Writer, results []domain.Evaluation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultColumns); err != nil {
		return err
	}
	for i := range results {
		e := &results[i]
		record := []string{
			e.CraneNo, e.VesselName, e.IMO, e.SerialNumber, e.SWL,
			e.Shift, e.Weather, e.GearSerial, e.GearSWL,
			e.Status.String(), e.IssueSummary(), e.AttentionSummary(), e.DueSoonSummary(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplate writes a blank checklist CSV with crane numbers 1..cranes
// pre-filled, ready to hand to an inspector.
func WriteTemplate(w io.Writer, cranes int) error {
	cw := csv.NewWriter(w)
	cols := engine.RequiredColumns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	for n := 1; n <= cranes; n++ {
		record := make([]string, len(cols))
		record[0] = strconv.Itoa(n)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
