package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

const sheetName = "Tickets"

// ExportXLSX renders the table as an XLSX workbook with the processed-table
// columns.
func (s *Store) ExportXLSX(table domain.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	for i, h := range domain.OutputColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for r, t := range table {
		row := r + 2
		values := []any{
			t.ID,
			t.CustomerName,
			t.Email,
			t.Description,
			string(t.Status),
			domain.FormatTimestamp(t.CreatedAt, s.location),
			string(t.Category),
			t.DaysOpen,
			t.PriorityScore,
			string(t.Priority),
			t.SuggestedResponse,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "C", 18)
	_ = f.SetColWidth(sheetName, "D", "D", 60) // issue
	_ = f.SetColWidth(sheetName, "E", "J", 14)
	_ = f.SetColWidth(sheetName, "K", "K", 80) // response
	_ = f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
