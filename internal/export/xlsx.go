package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/model"
)

func writeHeader(sheet *xlsx.Sheet, cols ...string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().Value = c
	}
}

// WriteReportXLSX writes the report view as a single summary row:
// customer count, circuit count, the three service tallies, and the
// ranked province(count) list.
func WriteReportXLSX(w io.Writer, rep engine.ReportModel) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("ReportSummary")
	if err != nil {
		return eris.Wrap(err, "export: add report sheet")
	}

	writeHeader(sheet, "Customers", "Circuits", "Data", "Broadband", "Voice", "Provinces")

	provs := make([]string, 0, len(rep.ProvinceCounts))
	for _, pc := range rep.ProvinceCounts {
		provs = append(provs, fmt.Sprintf("%s(%d)", pc.Province, pc.Count))
	}

	row := sheet.AddRow()
	row.AddCell().SetInt(rep.Customers)
	row.AddCell().SetInt(rep.Circuits)
	row.AddCell().SetInt(rep.Services.Data)
	row.AddCell().SetInt(rep.Services.Broadband)
	row.AddCell().SetInt(rep.Services.Voice)
	row.AddCell().Value = strings.Join(provs, ", ")

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write report xlsx")
	}
	return nil
}

// WriteSummaryXLSX writes one row per summary group.
func WriteSummaryXLSX(w io.Writer, rows []engine.SummaryRow) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Summary(Web)")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	writeHeader(sheet, "#", "Customer", "Province", "Type", "Circuit Count", "Circuit Numbers")

	for i, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().Value = r.Customer
		row.AddCell().Value = r.Province
		row.AddCell().Value = r.ServiceType
		row.AddCell().SetInt(r.CircuitCount)
		row.AddCell().Value = r.CircuitListText
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write summary xlsx")
	}
	return nil
}

// WriteRecordsXLSX writes one row per filtered record.
func WriteRecordsXLSX(w io.Writer, records []model.Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Compare")
	if err != nil {
		return eris.Wrap(err, "export: add records sheet")
	}

	writeHeader(sheet, "#", "Circuit", "Branch", "SLA", "Customer", "Province", "Type", "Status")

	for i, r := range records {
		row := sheet.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().Value = r.Circuit()
		row.AddCell().Value = model.Display(r.BranchName())
		row.AddCell().Value = model.Display(r.SLA)
		row.AddCell().Value = model.Display(r.Customer)
		row.AddCell().Value = model.Display(r.Province)
		row.AddCell().Value = model.Display(r.ServiceLabel())
		row.AddCell().Value = r.Status
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write records xlsx")
	}
	return nil
}
