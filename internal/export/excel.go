package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/gym-crm/internal/domain/memberships"
	"github.com/Spok95/gym-crm/internal/ledger"
)

// ErrNoData — по текущему фильтру выгружать нечего; файл не создаётся.
var ErrNoData = errors.New("export: no memberships match the current filters")

var headers = []any{
	"Member Name", "Phone", "Email", "Gender", "Plan", "Price",
	"Start Date", "End Date", "Days Left", "Status", "Notes",
}

var colWidths = []float64{20, 15, 25, 10, 15, 12, 12, 12, 12, 15, 30}

// Цвет ячейки статуса — та же четырёхзначная классификация, что и в реестре.
var statusColors = map[ledger.Status]string{
	ledger.StatusExpired:      "FF6B6B",
	ledger.StatusExpiringSoon: "FF6B6B",
	ledger.StatusExpiring:     "FDCB6E",
	ledger.StatusActive:       "00D9A3",
}

// Excel выгружает строки реестра в .xlsx: шапка, по строке на абонемент, блок
// итогов. Пишем во временный файл рядом с целевым и переименовываем — либо
// полный документ, либо ничего.
func Excel(entries []ledger.Entry, unit, filterDesc, path string) error {
	if len(entries) == 0 {
		return ErrNoData
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	title := strings.ToUpper(unit) + " Memberships"
	if err := f.SetSheetName(sheet, title); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	sheet = title

	border := []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"6C5CE7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	statusStyles := make(map[ledger.Status]int, len(statusColors))
	for st, color := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		})
		if err != nil {
			return fmt.Errorf("export: style: %w", err)
		}
		statusStyles[st] = id
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "K1", headerStyle); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, e := range entries {
		row := i + 2

		daysLeft := any(e.DaysLeft)
		if e.DaysLeft < 0 {
			daysLeft = "Expired"
		}
		excelRow := []any{
			e.MemberName,
			e.Phone,
			orNA(e.Email),
			orNA(e.Gender),
			e.PlanName,
			fmt.Sprintf("₹%.2f", e.Price),
			e.StartDate.Format(memberships.DateLayout),
			e.EndDate.Format(memberships.DateLayout),
			daysLeft,
			string(e.Status),
			e.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("export: cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return fmt.Errorf("export: row %d: %w", row, err)
		}
		if err := f.SetCellStyle(sheet, cell, fmt.Sprintf("K%d", row), dataStyle); err != nil {
			return fmt.Errorf("export: row style %d: %w", row, err)
		}
		statusCell := fmt.Sprintf("J%d", row)
		if err := f.SetCellStyle(sheet, statusCell, statusCell, statusStyles[e.Status]); err != nil {
			return fmt.Errorf("export: status style %d: %w", row, err)
		}
	}

	for i, w := range colWidths {
		col := string(rune('A' + i))
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("export: col width: %w", err)
		}
	}

	summaryStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	summaryRow := len(entries) + 3
	summaryCell := fmt.Sprintf("A%d", summaryRow)
	if err := f.SetCellValue(sheet, summaryCell, "Summary"); err != nil {
		return fmt.Errorf("export: summary: %w", err)
	}
	if err := f.SetCellStyle(sheet, summaryCell, summaryCell, summaryStyle); err != nil {
		return fmt.Errorf("export: summary style: %w", err)
	}
	summary := []string{
		fmt.Sprintf("Total Members: %d", len(entries)),
		fmt.Sprintf("Unit: %s", strings.ToUpper(unit)),
		fmt.Sprintf("Filter: %s", filterDesc),
		fmt.Sprintf("Exported: %s", time.Now().Format("2006-01-02 15:04:05")),
	}
	for i, line := range summary {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1+i), line); err != nil {
			return fmt.Errorf("export: summary: %w", err)
		}
	}

	return writeAtomic(f, path)
}

// writeAtomic сохраняет книгу во временный файл в каталоге назначения и
// переименовывает. Частично записанный документ наружу не попадает.
func writeAtomic(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.xlsx")
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := f.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: move into place %s: %w", path, err)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
