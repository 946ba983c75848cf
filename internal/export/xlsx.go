// Package export writes simulated schedules to spreadsheet files.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/velobank/velocity-cli/internal/engine"
)

var scheduleHeader = []string{"Month", "Payment", "Principal", "Interest", "Balance", "Chunk Applied"}

// ScheduleXLSX writes the schedule to an XLSX workbook at path, one row per
// simulated month plus a totals row.
func ScheduleXLSX(sched *engine.Schedule, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Schedule")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range scheduleHeader {
		header.AddCell().SetString(h)
	}

	for _, e := range sched.Entries {
		row := sheet.AddRow()
		row.AddCell().SetInt(e.Month)
		row.AddCell().SetFloatWithFormat(e.Payment, "0.00")
		row.AddCell().SetFloatWithFormat(e.Principal, "0.00")
		row.AddCell().SetFloatWithFormat(e.Interest, "0.00")
		row.AddCell().SetFloatWithFormat(e.Balance, "0.00")
		row.AddCell().SetFloatWithFormat(e.ChunkApplied, "0.00")
	}

	totals := sheet.AddRow()
	totals.AddCell().SetString("Totals")
	totals.AddCell().SetFloatWithFormat(sched.TotalPayments, "0.00")
	totals.AddCell().SetString("")
	totals.AddCell().SetFloatWithFormat(sched.TotalInterest, "0.00")
	totals.AddCell().SetString("")
	totals.AddCell().SetFloatWithFormat(sched.TotalChunkPayments, "0.00")

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}
