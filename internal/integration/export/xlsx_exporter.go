// Package export renders budgets into downloadable documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/entity"
)

const (
	summarySheet = "Summary"
	billsSheet   = "Bills"
	cardsSheet   = "Credit Cards"
	tiersSheet   = "Weekly Tiers"
)

// XLSXExporter writes a snapshot and its tiers as an Excel workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a new workbook exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType returns the xlsx MIME type.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns "xlsx".
func (e *XLSXExporter) FileExtension() string {
	return "xlsx"
}

// Export renders one sheet each for the summary, bills, cards and tiers.
func (e *XLSXExporter) Export(snapshot entity.BudgetSnapshot, tiers []entity.WeeklyTier) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{billsSheet, cardsSheet, tiersSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	w := &sheetWriter{file: f, header: header}
	w.summary(snapshot)
	w.bills(snapshot)
	w.cards(snapshot.CreditCards)
	w.tiers(tiers)
	if w.err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", w.err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the row writers stay linear.
type sheetWriter struct {
	file   *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.file.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) headerRow(sheet string, columns ...interface{}) {
	w.row(sheet, 1, columns...)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.file.SetCellStyle(sheet, "A1", last, w.header)
}

func (w *sheetWriter) summary(s entity.BudgetSnapshot) {
	w.headerRow(summarySheet, "Metric", "Amount")
	lines := []struct {
		label string
		value interface{}
	}{
		{"Monthly income", s.MonthlyIncome.InexactFloat64()},
		{"Savings goal", s.SavingsGoal.InexactFloat64()},
		{"Total bills", s.TotalBills.InexactFloat64()},
		{"Credit card spent", s.TotalCreditCardSpent.InexactFloat64()},
		{"Bills paid by card", s.TotalCreditCardBillsPaidByCard.InexactFloat64()},
		{"Total spent", s.TotalSpent.InexactFloat64()},
		{"Discretion limit", s.DiscretionLimit.InexactFloat64()},
		{"Discretionary spent", s.DiscretionarySpent.InexactFloat64()},
		{"Discretionary left", s.DiscretionaryLeft.InexactFloat64()},
		{"Discretionary left (%)", s.DiscretionaryLeftPercentage.InexactFloat64()},
		{"Over budget", s.IsOverBudget()},
		{"Last updated", s.LastUpdated.Format("2006-01-02 15:04:05")},
	}
	for i, l := range lines {
		w.row(summarySheet, i+2, l.label, l.value)
	}
}

func (w *sheetWriter) bills(s entity.BudgetSnapshot) {
	w.headerRow(billsSheet, "Name", "Type", "Due day", "Amount", "Status", "Paid by card")
	for i, b := range s.AllBills() {
		w.row(billsSheet, i+2, b.Name, string(b.Type), b.DueDate, b.Amount.InexactFloat64(), string(b.Status), b.PaidByCreditCard)
	}
}

func (w *sheetWriter) cards(cards []entity.CreditCard) {
	w.headerRow(cardsSheet, "Name", "Limit", "Available", "Balance", "Last updated")
	for i, c := range cards {
		w.row(cardsSheet, i+2, c.Name, c.Limit.InexactFloat64(), c.Available.InexactFloat64(), c.Balance().InexactFloat64(), c.LastUpdated.Format("2006-01-02"))
	}
}

func (w *sheetWriter) tiers(tiers []entity.WeeklyTier) {
	w.headerRow(tiersSheet, "Tier", "Weekly target", "Remaining", "Per day", "Status", "Best", "Selected")
	for i, t := range tiers {
		w.row(tiersSheet, i+2, t.Label, t.Value.InexactFloat64(), t.Remaining.InexactFloat64(), t.DailyRemaining.InexactFloat64(), tierStatus(t), t.IsBest, t.Selected)
	}
}

func tierStatus(t entity.WeeklyTier) string {
	switch {
	case t.OverBudget:
		return "over budget"
	case t.GettingTight:
		return "getting tight"
	default:
		return "on track"
	}
}

var _ adapter.BudgetExporter = (*XLSXExporter)(nil)
