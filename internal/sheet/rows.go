package sheet

import (
	"io"
	"strconv"
	"strings"

	"eip/internal/models"
	"eip/internal/parsererror"
)

// itemRow is one sheet line as text, before numeric conversion.
type itemRow struct {
	PartNumber             string `csv:"Part Number"`
	ManufacturerPartNumber string `csv:"Manufacturer Part Number"`
	Description            string `csv:"Description"`
	CustomerReference      string `csv:"Customer Reference"`
	UnitPrice              string `csv:"Unit Price"`
	Quantity               string `csv:"Quantity"`
}

func rowFromItem(item models.Item) itemRow {
	return itemRow{
		PartNumber:             item.PartNumber,
		ManufacturerPartNumber: item.ManufacturerPartNumber,
		Description:            item.Description,
		CustomerReference:      item.CustomerReference,
		UnitPrice:              item.UnitPrice.String(),
		Quantity:               strconv.Itoa(item.Quantity),
	}
}

// table is a header plus data rows cleaned up for decoding. lines holds the
// 1-based sheet row of each data row.
type table struct {
	header []string
	rows   [][]string
	lines  []int
	next   int
}

// newTable canonicalizes the header, drops blank rows and a trailing
// subtotal row and pads every row to the header width. It fails when a
// required column is missing.
func newTable(file, sheetName string, records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, &parsererror.InvalidFormatError{File: file, Sheet: sheetName, Msg: "sheet is empty"}
	}

	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		header[i] = canonicalLabel(cell)
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &parsererror.InvalidFormatError{File: file, Sheet: sheetName, MissingColumns: missing}
	}

	t := &table{header: header}
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		padded := make([]string, len(header))
		copy(padded, rec)
		t.rows = append(t.rows, padded)
		t.lines = append(t.lines, i+2)
	}

	if n := len(t.rows); n > 0 {
		price := t.rows[n-1][t.column(models.LabelUnitPrice)]
		if strings.EqualFold(strings.TrimSpace(price), "subtotal") {
			t.rows = t.rows[:n-1]
			t.lines = t.lines[:n-1]
		}
	}
	return t, nil
}

func (t *table) column(label string) int {
	for i, h := range t.header {
		if h == label {
			return i
		}
	}
	return -1
}

// Read and ReadAll make table a gocsv.CSVReader yielding the header first.
func (t *table) Read() ([]string, error) {
	defer func() { t.next++ }()
	switch {
	case t.next == 0:
		return t.header, nil
	case t.next <= len(t.rows):
		return t.rows[t.next-1], nil
	default:
		return nil, io.EOF
	}
}

func (t *table) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		rec, err := t.Read()
		if err == io.EOF {
			return out, nil
		}
		out = append(out, rec)
	}
}

// canonicalLabel trims a header cell, drops a byte order mark and maps
// known labels and aliases to their canonical spelling.
func canonicalLabel(cell string) string {
	cell = strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
	if strings.EqualFold(cell, models.LabelDistributorPartNumber) {
		return models.LabelPartNumber
	}
	for _, label := range models.Labels() {
		if strings.EqualFold(cell, label) {
			return label
		}
	}
	return cell
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, label := range models.Labels() {
		if !present[label] {
			missing = append(missing, label)
		}
	}
	return missing
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
