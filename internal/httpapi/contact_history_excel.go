package httpapi

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

// ContactHistoryExportHeader is the column layout of the audit export.
var ContactHistoryExportHeader = []string{
	"Action",
	"Changed Fields",
	"Old Unified",
	"Old Marketing",
	"Old Floating",
	"Old WhatsApp",
	"New Unified",
	"New Marketing",
	"New Floating",
	"New WhatsApp",
	"IP Address",
	"User Agent",
	"Created At",
}

// GenerateContactHistoryExport renders the audit entries as an Excel
// workbook, newest first as listed.
func GenerateContactHistoryExport(entries []*domain.ContactHistory) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so no deferred Close on the happy path

	sheetName := "Contact History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, title := range ContactHistoryExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, h := range entries {
		row := []any{
			h.Action,
			strings.Join(h.ChangedFields, ", "),
		}
		row = append(row, snapshotCells(h.OldData)...)
		row = append(row, snapshotCells(h.NewData)...)
		row = append(row, h.IPAddress, h.UserAgent, h.CreatedAt.Format("2006-01-02 15:04:05"))

		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func snapshotCells(s *domain.ContactSnapshot) []any {
	if s == nil {
		return []any{"", "", "", ""}
	}
	return []any{s.UnifiedPhone, s.MarketingPhone, s.FloatingPhone, s.FloatingWhatsapp}
}
