package report

import (
	"encoding/json"
	"strings"
	"testing"

	"eip/internal/classifier"
	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleCollection() *inventory.Collection {
	logger := logging.NewMockLogger()
	c := inventory.NewCollection("Inventory", classifier.NewDefault(logger), logger)
	c.AddClassified(
		models.Item{PartNumber: "R1", Description: "10k resistor", Quantity: 10, UnitPrice: decimal.RequireFromString("0.10")},
		models.Item{PartNumber: "R2", Description: "1k resistor", Quantity: 5, UnitPrice: decimal.RequireFromString("0.20")},
		models.Item{PartNumber: "K1", Description: "relay 5V", Quantity: 2, UnitPrice: decimal.RequireFromString("3.00")},
	)
	return c
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleCollection())

	assert.Equal(t, "Inventory", s.Collection)
	require.Len(t, s.Categories, len(models.AllCategories()))
	assert.Equal(t, 3, s.Items)
	assert.Equal(t, 17, s.Quantity)
	assert.Equal(t, "8.00", models.FormatPrice(s.Total))

	res := s.Categories[models.Resistors]
	assert.Equal(t, 2, res.Items)
	assert.Equal(t, 15, res.Quantity)
	assert.Equal(t, "2.00", models.FormatPrice(res.Subtotal))
	assert.Equal(t, 0, s.Categories[models.Capacitors].Items)
}

func TestReportGenerator_GenerateReport_Text(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	out, err := g.GenerateReport(Summarize(sampleCollection()), "text")
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Resistors")
	assert.Contains(t, text, "Relay")
	assert.NotContains(t, text, "Capacitors")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[3], "8.00")
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	out, err := g.GenerateReport(Summarize(sampleCollection()), "json")
	require.NoError(t, err)

	var decoded struct {
		Collection string `json:"collection"`
		Total      string `json:"total"`
		Categories []struct {
			Category string `json:"category"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Inventory", decoded.Collection)
	assert.Equal(t, "8", decoded.Total)
	assert.Equal(t, "Logic Gates", decoded.Categories[models.LogicGates].Category)
}

func TestReportGenerator_GenerateReport_YAML(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	out, err := g.GenerateReport(Summarize(sampleCollection()), "yaml")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "8.00", decoded["total"])
	assert.Equal(t, 3, decoded["items"])
}

func TestReportGenerator_GenerateReport_Unsupported(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	_, err := g.GenerateReport(Summary{}, "xml")
	assert.ErrorContains(t, err, "unsupported report format")
}
