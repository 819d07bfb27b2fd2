// Package reports renders analytics summaries as spreadsheet downloads.
package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"homebudget/internal/services"
)

// ContentType is the MIME type of the workbook written by WriteSummary.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names in the exported workbook.
const (
	SheetSummary    = "Summary"
	SheetByCategory = "By category"
	SheetBySource   = "By source"
)

// Filename returns the attachment name for a summary export.
func Filename(s *services.Summary) string {
	return fmt.Sprintf("summary_%s_%s.xlsx", s.Period.Name, s.Period.From.Format("20060102"))
}

// WriteSummary writes s as an xlsx workbook with one sheet for the totals
// and one per breakdown.
func WriteSummary(w io.Writer, s *services.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}

	rows := [][]any{
		{"Period", s.Period.Name},
		{"From", s.Period.From.Format(time.RFC3339)},
		{"To", s.Period.To.Format(time.RFC3339)},
		{},
		{"Earned", s.Totals.Earned.Float64()},
		{"Spent", s.Totals.Spent.Float64()},
		{"Net", s.Totals.Net.Float64()},
		{"Expenses", s.Totals.CountExpenses},
		{"Incomes", s.Totals.CountIncomes},
		{},
		{"Current balance", s.Account.CurrentBalance.Float64()},
		{"Initial estimate", s.Account.InitialEstimate.Float64()},
		{"Lifetime spent", s.Account.LifetimeSpent.Float64()},
		{"Lifetime earned", s.Account.LifetimeEarned.Float64()},
	}
	if err := writeRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "B", "B", 28); err != nil {
		return err
	}

	categoryRows := [][]any{{"Category", "Total"}}
	for _, c := range s.ByCategory {
		categoryRows = append(categoryRows, []any{c.Category, c.Total.Float64()})
	}
	if err := addSheet(f, SheetByCategory, categoryRows); err != nil {
		return err
	}

	sourceRows := [][]any{{"Source", "Total"}}
	for _, src := range s.BySource {
		sourceRows = append(sourceRows, []any{src.Source, src.Total.Float64()})
	}
	if err := addSheet(f, SheetBySource, sourceRows); err != nil {
		return err
	}

	return f.Write(w)
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := writeRows(f, name, rows); err != nil {
		return err
	}
	return f.SetColWidth(name, "A", "A", 24)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
