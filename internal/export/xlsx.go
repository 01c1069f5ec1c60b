package export

import (
	"fmt"
	"io"

	"lead-capture/internal/models"

	"github.com/xuri/excelize/v2"
)

type XLSXEncoder struct{}

func (XLSXEncoder) Extension() string { return "xlsx" }

func (XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXEncoder) Encode(w io.Writer, leads []models.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	for i, col := range Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, col.Width); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(Columns))
	for i, h := range headers() {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return err
	}

	for i, lead := range leads {
		rec := Record(lead)
		row := make([]interface{}, len(rec))
		row[0] = lead.ID
		for j := 1; j < len(rec); j++ {
			row[j] = rec[j]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}
