package storage

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"provisionbot/internal/commission"
)

const (
	SheetCalculation  = "Kalkyl"
	SheetComparison   = "Jämförelse"
	SheetDistribution = "Fördelning"
)

// ReportFilename names an export taken at t.
func ReportFilename(t time.Time) string {
	return fmt.Sprintf("provisionskalkyl_%s.xlsx", t.Format("20060102_1504"))
}

// ExportCalculationToExcel renders inputs, their results, the yearly
// comparison and the per-deal distribution into an in-memory workbook.
func ExportCalculationToExcel(in commission.Inputs, results commission.Results) ([]byte, error) {
	const operation = "storage.ExportCalculationToExcel"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCalculation); err != nil {
		return nil, fmt.Errorf("%s: failed to rename sheet: %w", operation, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create style: %w", operation, err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create style: %w", operation, err)
	}

	margin := any("–")
	if m, ok := commission.ProfitMargin(results); ok {
		margin = m / 100
	}

	rows := [][]any{
		{"Förutsättningar", ""},
	}
	for _, r := range commission.Fields {
		rows = append(rows, []any{fmt.Sprintf("%s (%s)", r.Label, r.Unit), in.Get(r.Field)})
	}
	rows = append(rows,
		[]any{"", ""},
		[]any{"Resultat", ""},
		[]any{"Provision mötesbokare (per affär)", results.SetterCommission},
		[]any{"Provision säljare (per affär)", results.SalesCommission},
		[]any{"Total intäkt per affär", results.TotalRevenuePerDeal},
		[]any{"Total provisionskostnad per affär", results.TotalCommissionPerDeal},
		[]any{"Musse netto per affär", results.MusseNetPerDeal},
		[]any{"Musses årslön", results.MusseYearlyNet},
		[]any{"Musses månadslön", results.MusseMonthlyNet},
		[]any{"Vinstmarginal per affär", margin},
	)
	if err := writeRows(f, SheetCalculation, rows); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	resultsStart := len(commission.Fields) + 4
	resultsEnd := resultsStart + 6
	marginRow := resultsEnd + 1
	_ = f.SetCellStyle(SheetCalculation, "A1", "A1", bold)
	_ = f.SetCellStyle(SheetCalculation, cell(1, resultsStart-1), cell(1, resultsStart-1), bold)
	_ = f.SetCellStyle(SheetCalculation, cell(2, resultsStart), cell(2, resultsEnd), money)
	if pct, err := f.NewStyle(&excelize.Style{NumFmt: 10}); err == nil {
		_ = f.SetCellStyle(SheetCalculation, cell(2, marginRow), cell(2, marginRow), pct)
	}
	_ = f.SetColWidth(SheetCalculation, "A", "A", 38)
	_ = f.SetColWidth(SheetCalculation, "B", "B", 16)

	if _, err := f.NewSheet(SheetComparison); err != nil {
		return nil, fmt.Errorf("%s: failed to create sheet: %w", operation, err)
	}
	comparison := [][]any{{"", "Intäkt", "Kostnad", "Vinst"}}
	for _, row := range commission.Comparison(in, results) {
		comparison = append(comparison, []any{row.Name, row.Revenue, row.Cost, row.Profit})
	}
	if err := writeRows(f, SheetComparison, comparison); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	_ = f.SetCellStyle(SheetComparison, "A1", "D1", bold)
	_ = f.SetCellStyle(SheetComparison, "B2", cell(4, len(comparison)), money)

	if _, err := f.NewSheet(SheetDistribution); err != nil {
		return nil, fmt.Errorf("%s: failed to create sheet: %w", operation, err)
	}
	distribution := [][]any{{"Mottagare", "Belopp per affär"}}
	for _, slice := range commission.Distribution(results) {
		distribution = append(distribution, []any{slice.Name, slice.Value})
	}
	if err := writeRows(f, SheetDistribution, distribution); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	_ = f.SetCellStyle(SheetDistribution, "A1", "B1", bold)
	_ = f.SetCellStyle(SheetDistribution, "B2", cell(2, len(distribution)), money)

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to write workbook: %w", operation, err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			if err := f.SetCellValue(sheet, cell(c+1, r+1), value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell(c+1, r+1), err)
			}
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
