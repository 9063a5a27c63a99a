package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/service"
)

func TestXLSXExporter_Export(t *testing.T) {
	snapshot := entity.BudgetSnapshot{
		MonthlyIncome:   decimal.NewFromInt(3000),
		SavingsGoal:     decimal.NewFromInt(500),
		TotalBills:      decimal.NewFromInt(1250),
		DiscretionLimit: decimal.NewFromInt(1250),
		MandatoryBills: []entity.Bill{
			{Name: "Rent", Type: entity.BillTypeMandatory, DueDate: 1, Amount: decimal.NewFromInt(1200), Status: entity.BillStatusPaid},
		},
		OptionalBills: []entity.Bill{
			{Name: "Spotify", Type: entity.BillTypeOptional, DueDate: 20, Amount: decimal.NewFromInt(50), Status: entity.BillStatusUnpaid, PaidByCreditCard: true},
		},
		CreditCards: []entity.CreditCard{
			{Name: "Visa", Limit: decimal.NewFromInt(1000), Available: decimal.NewFromInt(750)},
		},
		LastUpdated: time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC),
	}
	tiers := service.GenerateTiers(decimal.NewFromInt(1000), decimal.NewFromInt(600))

	exporter := NewXLSXExporter()
	data, err := exporter.Export(snapshot, tiers)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "xlsx", exporter.FileExtension())
	assert.Contains(t, exporter.ContentType(), "spreadsheetml")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, billsSheet, cardsSheet, tiersSheet}, f.GetSheetList())

	income, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "3000", income)

	bills, err := f.GetRows(billsSheet)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, "Rent", bills[1][0])
	assert.Equal(t, "paid", bills[1][4])
	assert.Equal(t, "Spotify", bills[2][0])
	assert.Equal(t, "optional", bills[2][1])

	balance, err := f.GetCellValue(cardsSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "250", balance)

	tierRows, err := f.GetRows(tiersSheet)
	require.NoError(t, err)
	require.Len(t, tierRows, 6)
	assert.Equal(t, "Main Character Money", tierRows[1][0])
	assert.Equal(t, "250", tierRows[1][1])
}

func TestXLSXExporter_EmptyBudget(t *testing.T) {
	data, err := NewXLSXExporter().Export(entity.BudgetSnapshot{}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(billsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
