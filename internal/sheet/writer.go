package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Writer saves collections as workbooks or flat CSV files.
type Writer struct {
	logger    logging.Logger
	delimiter rune
}

// NewWriter creates a Writer. A zero delimiter means ','.
func NewWriter(logger logging.Logger, delimiter rune) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{logger: logger, delimiter: delimiter}
}

// WriteFile saves c to path, as a workbook or a flat CSV depending on the
// extension.
func (w *Writer) WriteFile(path string, c *inventory.Collection) error {
	fileType, err := FileType(path)
	if err != nil {
		return err
	}
	if fileType == models.FileTypeXLSX {
		return w.WriteWorkbook(path, c)
	}
	return w.WriteCSV(path, c.Items())
}

// WriteWorkbook replaces path with a workbook holding one sheet per
// category in display order. Every sheet gets the header row, empty
// categories included.
func (w *Writer) WriteWorkbook(path string, c *inventory.Collection) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook", logging.F(logging.FieldOutputFile, path))
		}
	}()

	header := make([]interface{}, 0, len(models.Labels()))
	for _, label := range models.Labels() {
		header = append(header, label)
	}

	defaultSheet := f.GetSheetName(0)
	for i, s := range c.Sections() {
		name := s.Category().String()
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("error naming sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("error creating sheet %s: %w", name, err)
		}

		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("error writing header of %s: %w", name, err)
		}
		for j, item := range s.Items() {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			row := []interface{}{
				item.PartNumber,
				item.ManufacturerPartNumber,
				item.Description,
				item.CustomerReference,
				priceCell(item.UnitPrice),
				item.Quantity,
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("error writing %s row %d: %w", name, j+2, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	w.logger.Info("Saved workbook",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCollection, c.Name()),
		logging.F(logging.FieldCount, c.Len()))
	return nil
}

// WriteCSV replaces path with a single flat sheet of items.
func (w *Writer) WriteCSV(path string, items []models.Item) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionSheetFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldOutputFile, path))
		}
	}()

	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, rowFromItem(item))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = w.delimiter

	if len(rows) == 0 {
		// Header only.
		if err := csvWriter.Write(models.Labels()); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	w.logger.Info("Saved CSV sheet",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldDelimiter, string(w.delimiter)),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}

// priceCell returns a numeric cell value when the float keeps every digit of
// d, otherwise the decimal text.
func priceCell(d decimal.Decimal) interface{} {
	f := d.InexactFloat64()
	if decimal.NewFromFloat(f).Equal(d) {
		return f
	}
	return d.String()
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	return nil
}
