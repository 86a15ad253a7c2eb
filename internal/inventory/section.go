// Package inventory holds items grouped by category: one Section per category
// inside a named Collection (the inventory, an imported order, a project).
package inventory

import (
	"slices"

	"eip/internal/models"

	"github.com/shopspring/decimal"
)

// Section is the ordered list of items of one category.
type Section struct {
	category models.Category
	items    []models.Item
}

// NewSection returns an empty section for category.
func NewSection(category models.Category) *Section {
	return &Section{category: category}
}

// Category returns the category the section holds.
func (s *Section) Category() models.Category {
	return s.category
}

// Add appends items in the given order.
func (s *Section) Add(items ...models.Item) {
	s.items = append(s.items, items...)
}

// Items returns a copy of the items in insertion order.
func (s *Section) Items() []models.Item {
	return slices.Clone(s.items)
}

// Len returns the number of rows.
func (s *Section) Len() int {
	return len(s.items)
}

// Clear removes every item.
func (s *Section) Clear() {
	s.items = nil
}

// Subtotal returns the sum of Quantity × UnitPrice over the section.
func (s *Section) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Total())
	}
	return total
}

// MergeDuplicates collapses rows sharing a PartNumber into the first of them,
// which keeps its position and its other fields. With updateTotals the kept
// row gets the summed Quantity and the highest UnitPrice of the group.
// Rows with an empty PartNumber are left alone. It returns how many rows were
// removed.
func (s *Section) MergeDuplicates(updateTotals bool) int {
	if len(s.items) < 2 {
		return 0
	}

	first := make(map[string]int, len(s.items))
	merged := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		if item.PartNumber == "" {
			merged = append(merged, item)
			continue
		}
		idx, seen := first[item.PartNumber]
		if !seen {
			first[item.PartNumber] = len(merged)
			merged = append(merged, item)
			continue
		}
		if updateTotals {
			kept := &merged[idx]
			kept.Quantity += item.Quantity
			if item.UnitPrice.GreaterThan(kept.UnitPrice) {
				kept.UnitPrice = item.UnitPrice
			}
		}
	}

	removed := len(s.items) - len(merged)
	s.items = merged
	return removed
}

// Sorted returns a copy of the items stably sorted by field.
func (s *Section) Sorted(field SortField, ascending bool) []models.Item {
	out := s.Items()
	slices.SortStableFunc(out, func(a, b models.Item) int {
		c := field.compare(a, b)
		if !ascending {
			c = -c
		}
		return c
	})
	return out
}

// find returns the index of the first item with description, or -1.
func (s *Section) find(description string) int {
	return slices.IndexFunc(s.items, func(item models.Item) bool {
		return item.Description == description
	})
}

func (s *Section) set(idx int, item models.Item) {
	s.items[idx] = item
}

func (s *Section) remove(idx int) {
	s.items = slices.Delete(s.items, idx, idx+1)
}
