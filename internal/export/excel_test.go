package export_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/gym-crm/internal/domain/memberships"
	"github.com/Spok95/gym-crm/internal/export"
	"github.com/Spok95/gym-crm/internal/ledger"
)

func sampleEntries(today time.Time) []ledger.Entry {
	mk := func(name, phone string, days int) ledger.Entry {
		end := today.AddDate(0, 0, days)
		return ledger.Entry{
			Row: memberships.Row{
				MemberName: name,
				Phone:      phone,
				PlanName:   "Monthly",
				Price:      999,
				StartDate:  end.AddDate(0, -1, 0),
				EndDate:    end,
			},
			DaysLeft: days,
			Status:   ledger.DeriveStatus(end, today),
		}
	}
	return []ledger.Entry{
		mk("Raj Kumar", "+917000000001", -3),
		mk("Priya Sharma", "+917000000002", 5),
		mk("Amit Patel", "+917000000003", 60),
	}
}

func TestExcelWritesDocument(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := sampleEntries(today)
	path := filepath.Join(t.TempDir(), "memberships.xlsx")

	require.NoError(t, export.Excel(entries, "unit1", "Month: All, Year: All", path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := "UNIT1 Memberships"
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	require.Equal(t, []string{
		"Member Name", "Phone", "Email", "Gender", "Plan", "Price",
		"Start Date", "End Date", "Days Left", "Status", "Notes",
	}, rows[0])

	// Одна строка данных на абонемент плюс шапка.
	for i, e := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		require.Equal(t, e.MemberName, got)
	}
	empty, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", len(entries)+2))
	require.NoError(t, err)
	require.Empty(t, empty)

	// Статус пересчитан той же классификацией, что и в реестре.
	wantStatus := []string{"Expired", "Expiring Soon", "Active"}
	for i, want := range wantStatus {
		got, err := f.GetCellValue(sheet, fmt.Sprintf("J%d", i+2))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	daysLeft, err := f.GetCellValue(sheet, "I2")
	require.NoError(t, err)
	require.Equal(t, "Expired", daysLeft) // отрицательный остаток показываем словом

	price, err := f.GetCellValue(sheet, "F3")
	require.NoError(t, err)
	require.Equal(t, "₹999.00", price)

	naEmail, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	require.Equal(t, "N/A", naEmail)

	summaryRow := len(entries) + 3
	summary, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", summaryRow))
	require.NoError(t, err)
	require.Equal(t, "Summary", summary)

	total, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1))
	require.NoError(t, err)
	require.Equal(t, "Total Members: 3", total)

	filterLine, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+3))
	require.NoError(t, err)
	require.Equal(t, "Filter: Month: All, Year: All", filterLine)
}

func TestExcelNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	err := export.Excel(nil, "unit1", "Month: March, Year: 2025", path)
	require.ErrorIs(t, err, export.ErrNoData)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "no file must be created on empty export")
}

func TestExcelUnwritableDestination(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "no-such-dir", "memberships.xlsx")

	err := export.Excel(sampleEntries(today), "unit1", "Month: All, Year: All", path)
	require.Error(t, err)
	require.NotErrorIs(t, err, export.ErrNoData)
}

func TestExcelDoesNotLeaveTempFiles(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	path := filepath.Join(dir, "memberships.xlsx")

	require.NoError(t, export.Excel(sampleEntries(today), "unit1", "Month: All, Year: All", path))

	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	require.Equal(t, "memberships.xlsx", names[0].Name())
}
