package inventory

import (
	"testing"

	"eip/internal/classifier"
	"eip/internal/logging"
	"eip/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(name string) *Collection {
	logger := logging.NewMockLogger()
	return NewCollection(name, classifier.NewDefault(logger), logger)
}

func TestNewCollection_AllSectionsPresent(t *testing.T) {
	c := newTestCollection("Inventory")
	assert.Equal(t, "Inventory", c.Name())
	assert.True(t, c.IsEmpty())

	sections := c.Sections()
	require.Len(t, sections, len(models.AllCategories()))
	for i, category := range models.AllCategories() {
		assert.Equal(t, category, sections[i].Category())
	}

	counts := c.Counts()
	assert.Len(t, counts, len(models.AllCategories()))
	assert.Equal(t, 0, counts[models.Relay])
}

func TestCollection_AddClassified(t *testing.T) {
	c := newTestCollection("Order")
	c.AddClassified(
		item("R1", "10k Resistor 1/4W", 10, "0.10"),
		item("U1", "AC/DC Converter 5V", 1, "4.00"),
		item("X1", "Heat shrink", 1, "1.00"),
	)

	assert.Equal(t, 1, c.Section(models.Resistors).Len())
	assert.Equal(t, 1, c.Section(models.ACDCConverters).Len())
	assert.Equal(t, 1, c.Section(models.Other).Len())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "6.00", models.FormatPrice(c.Subtotal()))
}

func TestCollection_AddManual(t *testing.T) {
	c := newTestCollection("Inventory")
	c.Add(models.Modules, item("R1", "10k Resistor", 1, "0.10"))

	assert.Equal(t, 1, c.Section(models.Modules).Len())
	assert.Equal(t, 0, c.Section(models.Resistors).Len())
	assert.Equal(t, models.Resistors, c.CategoryOf(item("R1", "10k Resistor", 1, "0")))

	assert.Equal(t, models.Other, c.Section(models.Category(77)).Category())
}

func TestCollection_Items_CategoryOrder(t *testing.T) {
	c := newTestCollection("Order")
	c.AddClassified(
		item("K1", "relay 5V", 1, "1"),
		item("C1", "cap 10uF", 1, "1"),
		item("R1", "res 10k", 1, "1"),
	)

	var parts []string
	for _, it := range c.Items() {
		parts = append(parts, it.PartNumber)
	}
	assert.Equal(t, []string{"R1", "C1", "K1"}, parts)
}

func TestCollection_Absorb(t *testing.T) {
	stock := newTestCollection("Inventory")
	stock.AddClassified(item("P1", "10k resistor", 3, "1.00"))

	order := newTestCollection("A100")
	order.AddClassified(
		item("P1", "10k resistor", 5, "1.50"),
		item("L1", "LED red", 2, "0.20"),
	)

	stock.Absorb(order)

	res := stock.Section(models.Resistors).Items()
	require.Len(t, res, 1)
	assert.Equal(t, 8, res[0].Quantity)
	assert.True(t, decimal.RequireFromString("1.50").Equal(res[0].UnitPrice))
	assert.Equal(t, 1, stock.Section(models.LEDs).Len())
	assert.Equal(t, 2, order.Len(), "absorbed collection is not modified")
}

func TestCollection_UpdateOrDelete(t *testing.T) {
	c := newTestCollection("Inventory")
	c.AddClassified(item("R1", "10k resistor", 3, "1.00"), item("R2", "1k resistor", 1, "0.50"))

	updated := item("R1", "10k resistor", 30, "0.90")
	require.NoError(t, c.UpdateOrDelete(updated, false))
	got, category, ok := c.Find("10k resistor")
	require.True(t, ok)
	assert.Equal(t, models.Resistors, category)
	assert.Equal(t, 30, got.Quantity)

	require.NoError(t, c.UpdateOrDelete(models.Item{Description: "1k resistor"}, true))
	assert.Equal(t, 1, c.Section(models.Resistors).Len())

	err := c.UpdateOrDelete(models.Item{Description: "1K RESISTOR"}, true)
	assert.ErrorIs(t, err, ErrItemNotFound, "description match is case-sensitive")
}

func TestCollection_UpdateOrDelete_ManualPlacement(t *testing.T) {
	c := newTestCollection("Inventory")
	c.Add(models.Modules, item("R1", "10k resistor", 3, "1.00"))

	require.NoError(t, c.UpdateOrDelete(item("R1", "10k resistor", 4, "1.00"), false))
	assert.Equal(t, 4, c.Section(models.Modules).Items()[0].Quantity)
}

func TestCollection_Replace(t *testing.T) {
	c := newTestCollection("Inventory")
	c.AddClassified(item("P1", "generic part", 1, "1.00"), item("P2", "other part", 1, "1.00"))

	require.NoError(t, c.Replace("generic part", item("P1", "red led", 1, "1.00")))
	assert.Equal(t, 1, c.Section(models.Other).Len())
	assert.Equal(t, 1, c.Section(models.LEDs).Len())

	require.NoError(t, c.Replace("other part", item("P2", "other part v2", 2, "1.00")))
	assert.Equal(t, "other part v2", c.Section(models.Other).Items()[0].Description)

	assert.ErrorIs(t, c.Replace("missing", models.Item{}), ErrItemNotFound)
}

func TestCollection_AdjustQuantity(t *testing.T) {
	c := newTestCollection("Inventory")
	c.AddClassified(item("L1", "red led", 1, "0.10"))

	got, deleted, err := c.AdjustQuantity("red led", 1)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 2, got.Quantity)

	got, _, err = c.AdjustQuantity("red led", -5)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	_, deleted, err = c.AdjustQuantity("red led", -1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, c.IsEmpty())

	_, _, err = c.AdjustQuantity("red led", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCollection_Clear(t *testing.T) {
	c := newTestCollection("Order")
	c.AddClassified(item("R1", "resistor", 1, "1"), item("C1", "capacitor", 1, "1"))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, decimal.Zero.Equal(c.Subtotal()))
}

func TestNewCollection_NilDependencies(t *testing.T) {
	c := NewCollection("x", nil, nil)
	c.AddClassified(item("R1", "resistor", 1, "1"))
	assert.Equal(t, 1, c.Section(models.Resistors).Len())
}
