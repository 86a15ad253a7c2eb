package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eip/internal/classifier"
	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"
	"eip/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const digikeyOrder = `Index,Quantity,Digi-Key Part #,Manufacturer Part Number,Description,Customer Reference,Backorder,Unit Price,Extended Price
1,10,311-10.0KCRCT-ND,RC0805FR-0710KL,RES 10K OHM 1% 1/8W 0805,R1,0,$0.10,$1.00
2,2,497-1506-5-ND,L7805CV,IC REG LINEAR 5V 1.5A TO220AB,U1,0,"$1,000.50",$2.00
,,,,,,,,

,,,,,,,Subtotal,$3.00
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestReader_ReadCSV_DistributorExport(t *testing.T) {
	r := NewReader(logging.NewMockLogger(), ',')

	s, err := r.ReadCSV("order.csv", strings.NewReader(digikeyOrder))
	require.NoError(t, err)
	assert.Equal(t, "order", s.Name)
	assert.False(t, s.HasCategory)
	require.Len(t, s.Items, 2)

	assert.Equal(t, "311-10.0KCRCT-ND", s.Items[0].PartNumber)
	assert.Equal(t, "RES 10K OHM 1% 1/8W 0805", s.Items[0].Description)
	assert.Equal(t, 10, s.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("0.10").Equal(s.Items[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("1000.50").Equal(s.Items[1].UnitPrice))
}

func TestReader_ReadCSV_Delimiter(t *testing.T) {
	content := "Part Number;Manufacturer Part Number;Description;Customer Reference;Unit Price;Quantity\n" +
		"P1;M1;LED red;;0.2;5.0\n"

	s, err := NewReader(logging.NewMockLogger(), ';').ReadCSV("order.csv", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 5, s.Items[0].Quantity)
}

func TestReader_ReadCSV_MissingColumns(t *testing.T) {
	content := "Part Number,Description,Quantity\nP1,LED,1\n"

	_, err := NewReader(logging.NewMockLogger(), ',').ReadCSV("bad.csv", strings.NewReader(content))
	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr), "got %v", err)
	assert.Equal(t, []string{
		models.LabelManufacturerPartNumber,
		models.LabelCustomerReference,
		models.LabelUnitPrice,
	}, formatErr.MissingColumns)
}

func TestReader_ReadCSV_BadNumbers(t *testing.T) {
	tests := []struct {
		name   string
		price  string
		qty    string
		column string
	}{
		{name: "price", price: "cheap", qty: "1", column: models.LabelUnitPrice},
		{name: "quantity", price: "1.00", qty: "lots", column: models.LabelQuantity},
		{name: "fractional quantity", price: "1.00", qty: "1.5", column: models.LabelQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Join(models.Labels(), ",") + "\n" +
				"P0,M0,fine,,1.00,1\n" +
				"P1,M1,LED,," + tt.price + "," + tt.qty + "\n"

			_, err := NewReader(logging.NewMockLogger(), ',').ReadCSV("order.csv", strings.NewReader(content))
			var parseErr *parsererror.ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.Equal(t, 3, parseErr.Row)
			assert.Equal(t, tt.column, parseErr.Column)
		})
	}
}

func TestReader_ReadCSV_HeaderOnly(t *testing.T) {
	s, err := NewReader(logging.NewMockLogger(), ',').ReadCSV("empty.csv",
		strings.NewReader(strings.Join(models.Labels(), ",")+"\n"))
	require.NoError(t, err)
	assert.Empty(t, s.Items)

	_, err = NewReader(logging.NewMockLogger(), ',').ReadCSV("nothing.csv", strings.NewReader(""))
	assert.Error(t, err)
}

func TestReader_ReadFile_UnsupportedType(t *testing.T) {
	_, err := NewReader(logging.NewMockLogger(), ',').ReadFile("order.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestFileType(t *testing.T) {
	ft, err := FileType("Orders/A100.CSV")
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeCSV, ft)

	ft, err = FileType("Inventory.xlsx")
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeXLSX, ft)

	_, err = FileType("notes.xls")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestReader_ReadWorkbook_ClassifiesUnnamedSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.xlsx")

	f := excelize.NewFile()
	header := []interface{}{"Part Number", "Manufacturer Part Number", "Description", "Customer Reference", "Unit Price", "Quantity"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	row := []interface{}{"P1", "M1", "10k Resistor 1/4W", "", "$0.10", 4}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	_, err := f.NewSheet("Modules")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Modules", "A1", &header))
	row2 := []interface{}{"P2", "M2", "10k Resistor", "", 1.5, 1}
	require.NoError(t, f.SetSheetRow("Modules", "A2", &row2))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	logger := logging.NewMockLogger()
	c := inventory.NewCollection("order", classifier.NewDefault(logger), logger)
	require.NoError(t, NewReader(logger, ',').Load(path, c))

	assert.Equal(t, 1, c.Section(models.Resistors).Len())
	assert.Equal(t, 1, c.Section(models.Modules).Len(), "sheet named after a category is placed directly")
	assert.True(t, decimal.RequireFromString("0.10").Equal(c.Section(models.Resistors).Items()[0].UnitPrice))
}

func TestReader_ReadWorkbook_DropsSubtotalRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Part Number", "Manufacturer Part Number", "Description", "Customer Reference", "Unit Price", "Quantity"},
		{"P1", "M1", "10k Resistor 1/4W", "", 0.0125, 100},
		{"P2", "M2", "100nF Ceramic Capacitor", "C4", 0.35, 6},
		{"", "", "", "", "Subtotal", 3.35},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	sheets, err := NewReader(logging.NewMockLogger(), ',').ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	require.Len(t, sheets[0].Items, 2)
	assert.Equal(t, "P2", sheets[0].Items[1].PartNumber)

	total := sheets[0].Items[0].Total().Add(sheets[0].Items[1].Total())
	assert.True(t, decimal.RequireFromString("3.35").Equal(total))
}
