// Package sheet reads order and inventory sheets from CSV and XLSX files and
// writes collections back to them.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"
	"eip/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFileType is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Sheet is the items of one sheet. Category is set when the sheet name is a
// category name, as in saved inventory workbooks.
type Sheet struct {
	Name        string
	Category    models.Category
	HasCategory bool
	Items       []models.Item
}

// Reader decodes sheets into items.
type Reader struct {
	logger    logging.Logger
	delimiter rune
}

// NewReader creates a Reader. A zero delimiter means ','.
func NewReader(logger logging.Logger, delimiter rune) *Reader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Reader{logger: logger, delimiter: delimiter}
}

// FileType returns the normalized type of path from its extension.
func FileType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return models.FileTypeCSV, nil
	case ".xlsx":
		return models.FileTypeXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Base(path))
	}
}

// ReadFile reads every sheet of a CSV or XLSX file. Any unparsable cell
// rejects the whole file.
func (r *Reader) ReadFile(path string) ([]Sheet, error) {
	fileType, err := FileType(path)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Reading sheet file", logging.F(logging.FieldFile, path))

	if fileType == models.FileTypeXLSX {
		return r.readWorkbook(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening sheet file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	s, err := r.ReadCSV(filepath.Base(path), file)
	if err != nil {
		return nil, err
	}
	return []Sheet{s}, nil
}

// ReadCSV decodes a single CSV sheet. name is used in errors and as the
// sheet name.
func (r *Reader) ReadCSV(name string, in io.Reader) (Sheet, error) {
	cr := csv.NewReader(in)
	cr.Comma = r.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Sheet{}, &parsererror.InvalidFormatError{File: name, Msg: err.Error()}
	}

	items, err := r.decode(name, "", records)
	if err != nil {
		return Sheet{}, err
	}
	return Sheet{Name: strings.TrimSuffix(name, filepath.Ext(name)), Category: models.Other, Items: items}, nil
}

func (r *Reader) readWorkbook(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close workbook", logging.F(logging.FieldFile, path))
		}
	}()

	name := filepath.Base(path)
	var sheets []Sheet
	for _, sheetName := range f.GetSheetList() {
		records, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("error reading sheet %s: %w", sheetName, err)
		}
		if isBlankSheet(records) {
			r.logger.Debug("Skipping empty sheet", logging.F(logging.FieldSheet, sheetName))
			continue
		}

		items, err := r.decode(name, sheetName, records)
		if err != nil {
			return nil, err
		}

		s := Sheet{Name: sheetName, Category: models.Other, Items: items}
		if category, err := models.ParseCategory(sheetName); err == nil {
			s.Category = category
			s.HasCategory = true
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

func isBlankSheet(records [][]string) bool {
	for _, rec := range records {
		if !isBlank(rec) {
			return false
		}
	}
	return true
}

// decode turns raw records into items through gocsv, then converts the
// numeric columns.
func (r *Reader) decode(file, sheetName string, records [][]string) ([]models.Item, error) {
	t, err := newTable(file, sheetName, records)
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, nil
	}

	var rows []itemRow
	if err := gocsv.UnmarshalCSV(t, &rows); err != nil {
		return nil, &parsererror.InvalidFormatError{File: file, Sheet: sheetName, Msg: err.Error()}
	}

	items := make([]models.Item, 0, len(rows))
	for i, row := range rows {
		price, err := models.ParsePrice(row.UnitPrice)
		if err != nil {
			return nil, &parsererror.ParseError{
				File: file, Row: t.lines[i], Column: models.LabelUnitPrice, Value: row.UnitPrice, Err: err,
			}
		}
		qty, err := models.ParseQuantity(row.Quantity)
		if err != nil {
			return nil, &parsererror.ParseError{
				File: file, Row: t.lines[i], Column: models.LabelQuantity, Value: row.Quantity, Err: err,
			}
		}

		items = append(items, models.Item{
			PartNumber:             strings.TrimSpace(row.PartNumber),
			ManufacturerPartNumber: strings.TrimSpace(row.ManufacturerPartNumber),
			Description:            strings.TrimSpace(row.Description),
			CustomerReference:      strings.TrimSpace(row.CustomerReference),
			UnitPrice:              price,
			Quantity:               qty,
		})
	}

	r.logger.Debug("Decoded sheet",
		logging.F(logging.FieldFile, file),
		logging.F(logging.FieldSheet, sheetName),
		logging.F(logging.FieldCount, len(items)))
	return items, nil
}

// Load reads path into c. Sheets named after a category are placed there
// directly; every other sheet is classified item by item.
func (r *Reader) Load(path string, c *inventory.Collection) error {
	sheets, err := r.ReadFile(path)
	if err != nil {
		return err
	}
	for _, s := range sheets {
		if s.HasCategory {
			c.Add(s.Category, s.Items...)
			continue
		}
		c.AddClassified(s.Items...)
	}
	return nil
}
