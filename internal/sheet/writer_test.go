package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eip/internal/classifier"
	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newCollection(name string) *inventory.Collection {
	logger := logging.NewMockLogger()
	return inventory.NewCollection(name, classifier.NewDefault(logger), logger)
}

func randomCollection(name string) *inventory.Collection {
	c := newCollection(name)
	for i, category := range models.AllCategories() {
		for j := 0; j < gofakeit.IntRange(0, 3); j++ {
			c.Add(category, models.Item{
				PartNumber:             fmt.Sprintf("P%d-%d", i, j),
				ManufacturerPartNumber: gofakeit.Numerify("MPN-####"),
				Description:            gofakeit.Sentence(4),
				CustomerReference:      gofakeit.Numerify("REF-##"),
				UnitPrice:              decimal.NewFromFloat(gofakeit.Float64Range(0, 100)).Round(int32(gofakeit.IntRange(0, 5))),
				Quantity:               gofakeit.IntRange(0, 500),
			})
		}
	}
	return c
}

func assertSameSections(t *testing.T, want, got *inventory.Collection) {
	t.Helper()
	for _, category := range models.AllCategories() {
		w := want.Section(category).Items()
		g := got.Section(category).Items()
		require.Len(t, g, len(w), category.String())
		for i := range w {
			assert.True(t, w[i].Equal(g[i]), "%s row %d: want %+v, got %+v", category, i, w[i], g[i])
		}
	}
}

func TestWorkbook_RoundTrip(t *testing.T) {
	gofakeit.Seed(11)
	dir := t.TempDir()

	for round := 0; round < 3; round++ {
		path := filepath.Join(dir, fmt.Sprintf("Inventory-%d.xlsx", round))
		want := randomCollection("Inventory")

		logger := logging.NewMockLogger()
		require.NoError(t, NewWriter(logger, ',').WriteWorkbook(path, want))

		got := newCollection("Inventory")
		require.NoError(t, NewReader(logger, ',').Load(path, got))
		assertSameSections(t, want, got)
	}
}

func TestWorkbook_EmptyCategoriesKeepHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Inventory.xlsx")
	c := newCollection("Inventory")
	c.Add(models.Relay, models.Item{PartNumber: "K1", Description: "relay", Quantity: 1})
	require.NoError(t, NewWriter(logging.NewMockLogger(), ',').WriteWorkbook(path, c))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, len(models.AllCategories()))
	for i, category := range models.AllCategories() {
		assert.Equal(t, category.String(), sheets[i])
	}

	rows, err := f.GetRows(models.Resistors.String())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Labels(), rows[0])
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Projects", "robot.csv")
	items := []models.Item{
		{PartNumber: "P1", Description: "LED red, 5mm", UnitPrice: decimal.RequireFromString("0.25"), Quantity: 10},
		{PartNumber: "P2", Description: "10k resistor", CustomerReference: "R1", UnitPrice: decimal.RequireFromString("1.5"), Quantity: 2},
	}

	w := NewWriter(logging.NewMockLogger(), ';')
	require.NoError(t, w.WriteCSV(path, items))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), strings.Join(models.Labels(), ";")))

	sheets, err := NewReader(logging.NewMockLogger(), ';').ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	require.Len(t, sheets[0].Items, 2)
	for i := range items {
		assert.True(t, items[i].Equal(sheets[0].Items[i]))
	}
}

func TestWriteCSV_KeepsSubCentPrices(t *testing.T) {
	gofakeit.Seed(5)
	path := filepath.Join(t.TempDir(), "Projects", "amp.csv")
	items := []models.Item{
		{PartNumber: "R1", Description: "10k resistor", UnitPrice: decimal.RequireFromString("0.0125"), Quantity: 100},
		{PartNumber: "R2", Description: "1k resistor", UnitPrice: decimal.RequireFromString("0.00875"), Quantity: 40},
	}
	for i := 0; i < 20; i++ {
		items = append(items, models.Item{
			PartNumber:  fmt.Sprintf("F%d", i),
			Description: gofakeit.Sentence(3),
			UnitPrice:   decimal.NewFromFloat(gofakeit.Float64Range(0, 1)).Round(5),
			Quantity:    gofakeit.IntRange(0, 1000),
		})
	}

	require.NoError(t, NewWriter(logging.NewMockLogger(), ',').WriteCSV(path, items))
	sheets, err := NewReader(logging.NewMockLogger(), ',').ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sheets[0].Items, len(items))

	want, got := decimal.Zero, decimal.Zero
	for i := range items {
		assert.True(t, items[i].Equal(sheets[0].Items[i]), "row %d: want %s, got %s", i, items[i].UnitPrice, sheets[0].Items[i].UnitPrice)
		want = want.Add(items[i].Total())
		got = got.Add(sheets[0].Items[i].Total())
	}
	assert.True(t, want.Equal(got))
	assert.True(t, decimal.RequireFromString("1.25").Equal(sheets[0].Items[0].Total()))
}

func TestWorkbook_KeepsPricePrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Inventory.xlsx")
	c := newCollection("Inventory")
	c.Add(models.Resistors,
		models.Item{PartNumber: "R1", Description: "10k resistor", UnitPrice: decimal.RequireFromString("0.0125"), Quantity: 100},
		models.Item{PartNumber: "R2", Description: "1k resistor", UnitPrice: decimal.RequireFromString("0.12345678901234567891"), Quantity: 3},
	)

	logger := logging.NewMockLogger()
	require.NoError(t, NewWriter(logger, ',').WriteWorkbook(path, c))
	got := newCollection("Inventory")
	require.NoError(t, NewReader(logger, ',').Load(path, got))
	assertSameSections(t, c, got)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	raw, err := f.GetCellValue(models.Resistors.String(), "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "0.0125", raw)
}

func TestPriceCell(t *testing.T) {
	assert.Equal(t, 0.0125, priceCell(decimal.RequireFromString("0.0125")))
	assert.Equal(t, "0.12345678901234567891", priceCell(decimal.RequireFromString("0.12345678901234567891")))
}

func TestWriteCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.csv")
	require.NoError(t, NewWriter(logging.NewMockLogger(), ',').WriteCSV(path, nil))

	sheets, err := NewReader(logging.NewMockLogger(), ',').ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, sheets[0].Items)
}

func TestWriteFile_ByExtension(t *testing.T) {
	dir := t.TempDir()
	c := newCollection("robot")
	c.AddClassified(models.Item{PartNumber: "P1", Description: "relay 5V", Quantity: 1})

	w := NewWriter(logging.NewMockLogger(), ',')
	require.NoError(t, w.WriteFile(filepath.Join(dir, "robot.xlsx"), c))
	require.NoError(t, w.WriteFile(filepath.Join(dir, "robot.csv"), c))
	assert.ErrorIs(t, w.WriteFile(filepath.Join(dir, "robot.txt"), c), ErrUnsupportedFileType)

	assert.FileExists(t, filepath.Join(dir, "robot.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "robot.csv"))
}
