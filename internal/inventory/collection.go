package inventory

import (
	"errors"
	"fmt"

	"eip/internal/classifier"
	"eip/internal/logging"
	"eip/internal/models"

	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned when no item carries the given description.
var ErrItemNotFound = errors.New("item not found")

// Collection is a named set of sections, one per category, all present from
// construction on.
type Collection struct {
	name       string
	sections   []*Section
	classifier classifier.Classifier
	logger     logging.Logger
}

// NewCollection returns an empty collection. A nil classifier selects the
// default rules.
func NewCollection(name string, c classifier.Classifier, logger logging.Logger) *Collection {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if c == nil {
		c = classifier.NewDefault(logger)
	}

	all := models.AllCategories()
	sections := make([]*Section, len(all))
	for _, category := range all {
		sections[category] = NewSection(category)
	}

	return &Collection{
		name:       name,
		sections:   sections,
		classifier: c,
		logger:     logger.WithField(logging.FieldCollection, name),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Section returns the section of category. Invalid categories map to Other.
func (c *Collection) Section(category models.Category) *Section {
	if !category.Valid() {
		category = models.Other
	}
	return c.sections[category]
}

// Sections returns every section in display order.
func (c *Collection) Sections() []*Section {
	out := make([]*Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Add places items in category without classifying them.
func (c *Collection) Add(category models.Category, items ...models.Item) {
	c.Section(category).Add(items...)
}

// AddClassified places every item in the category its description classifies
// to.
func (c *Collection) AddClassified(items ...models.Item) {
	for _, item := range items {
		c.Section(c.CategoryOf(item)).Add(item)
	}
}

// CategoryOf classifies the item's description.
func (c *Collection) CategoryOf(item models.Item) models.Category {
	return c.classifier.Classify(item.Description)
}

// MergeDuplicates merges duplicate part numbers within every section and
// returns the number of rows removed.
func (c *Collection) MergeDuplicates(updateTotals bool) int {
	removed := 0
	for _, s := range c.sections {
		removed += s.MergeDuplicates(updateTotals)
	}
	if removed > 0 {
		c.logger.Debug("Merged duplicate part numbers", logging.F(logging.FieldCount, removed))
	}
	return removed
}

// Absorb appends every non-empty section of other into the matching section
// of c and merges duplicates with totals.
func (c *Collection) Absorb(other *Collection) {
	for _, s := range other.sections {
		if s.Len() == 0 {
			continue
		}
		c.Section(s.Category()).Add(s.Items()...)
	}
	c.MergeDuplicates(true)
	c.logger.Info("Absorbed collection",
		logging.F(logging.FieldOrder, other.Name()),
		logging.F(logging.FieldCount, other.Len()))
}

// Items flattens every section in category order.
func (c *Collection) Items() []models.Item {
	var out []models.Item
	for _, s := range c.sections {
		out = append(out, s.items...)
	}
	return out
}

// Len returns the number of rows across all sections.
func (c *Collection) Len() int {
	n := 0
	for _, s := range c.sections {
		n += s.Len()
	}
	return n
}

// Subtotal sums every section subtotal.
func (c *Collection) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.sections {
		total = total.Add(s.Subtotal())
	}
	return total
}

// IsEmpty reports whether no section holds an item.
func (c *Collection) IsEmpty() bool {
	return c.Len() == 0
}

// Clear empties every section.
func (c *Collection) Clear() {
	for _, s := range c.sections {
		s.Clear()
	}
}

// Counts returns the number of rows per category, empty categories included.
func (c *Collection) Counts() map[models.Category]int {
	counts := make(map[models.Category]int, len(c.sections))
	for _, s := range c.sections {
		counts[s.Category()] = s.Len()
	}
	return counts
}

// locate finds the first item whose Description equals description. The
// section the description classifies to is searched first, then the rest in
// display order so manually placed items are reachable too.
func (c *Collection) locate(description string) (*Section, int, bool) {
	primary := c.Section(c.classifier.Classify(description))
	if idx := primary.find(description); idx >= 0 {
		return primary, idx, true
	}
	for _, s := range c.sections {
		if s == primary {
			continue
		}
		if idx := s.find(description); idx >= 0 {
			return s, idx, true
		}
	}
	return nil, -1, false
}

// Find returns the first item with description and its category.
func (c *Collection) Find(description string) (models.Item, models.Category, bool) {
	s, idx, ok := c.locate(description)
	if !ok {
		return models.Item{}, models.Other, false
	}
	return s.items[idx], s.Category(), true
}

// UpdateOrDelete overwrites, or with remove deletes, the first item whose
// Description equals item.Description.
func (c *Collection) UpdateOrDelete(item models.Item, remove bool) error {
	s, idx, ok := c.locate(item.Description)
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, item.Description)
	}

	if remove {
		s.remove(idx)
		c.logger.Info("Item deleted",
			logging.F(logging.FieldDescription, item.Description),
			logging.F(logging.FieldCategory, s.Category().String()))
		return nil
	}

	s.set(idx, item)
	c.logger.Info("Item updated",
		logging.F(logging.FieldDescription, item.Description),
		logging.F(logging.FieldCategory, s.Category().String()))
	return nil
}

// Replace swaps the item described by oldDescription for item, which is
// placed in the category its own description classifies to. When the
// category does not change the item keeps its position.
func (c *Collection) Replace(oldDescription string, item models.Item) error {
	s, idx, ok := c.locate(oldDescription)
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, oldDescription)
	}

	target := c.Section(c.CategoryOf(item))
	if target == s {
		s.set(idx, item)
	} else {
		s.remove(idx)
		target.Add(item)
	}

	c.logger.Info("Item replaced",
		logging.F(logging.FieldDescription, item.Description),
		logging.F(logging.FieldCategory, target.Category().String()))
	return nil
}

// AdjustQuantity adds delta to the quantity of the item with description.
// A decrement on an item already at zero deletes it; otherwise the quantity
// never drops below zero. It returns the updated item and whether it was
// deleted.
func (c *Collection) AdjustQuantity(description string, delta int) (models.Item, bool, error) {
	s, idx, ok := c.locate(description)
	if !ok {
		return models.Item{}, false, fmt.Errorf("%w: %q", ErrItemNotFound, description)
	}

	item := s.items[idx]
	if delta < 0 && item.Quantity <= 0 {
		s.remove(idx)
		c.logger.Info("Item deleted at zero quantity",
			logging.F(logging.FieldDescription, description))
		return item, true, nil
	}

	item.Quantity += delta
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	s.set(idx, item)
	return item, false, nil
}
