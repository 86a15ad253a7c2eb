// Package classifier assigns inventory items to component categories by
// matching their description against an ordered list of keyword rules.
package classifier

import (
	"fmt"

	"eip/internal/logging"
	"eip/internal/models"
)

// Classifier maps a free-text description to exactly one category.
type Classifier interface {
	Classify(description string) models.Category
}

// RuleClassifier evaluates rules top to bottom; the first match wins and a
// description no rule matches is Other.
type RuleClassifier struct {
	rules  []Rule
	logger logging.Logger
}

// New builds a RuleClassifier. An empty rule list selects DefaultRules.
func New(rules []Rule, logger logging.Logger) (*RuleClassifier, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	normalized := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		normalized = append(normalized, r.normalized())
	}

	return &RuleClassifier{rules: normalized, logger: logger}, nil
}

// NewDefault builds a RuleClassifier over DefaultRules.
func NewDefault(logger logging.Logger) *RuleClassifier {
	c, err := New(DefaultRules(), logger)
	if err != nil {
		// DefaultRules is static and covered by tests.
		panic(err)
	}
	return c
}

// Classify returns the category of description.
func (c *RuleClassifier) Classify(description string) models.Category {
	category, _ := c.Explain(description)
	return category
}

// Explain is Classify that also returns the 1-based index of the matching
// rule, or 0 when the description fell through to Other.
func (c *RuleClassifier) Explain(description string) (models.Category, int) {
	tokens := Tokenize(description)
	for i, r := range c.rules {
		if r.Matches(tokens) {
			c.logger.Debug("Description classified",
				logging.F(logging.FieldDescription, description),
				logging.F(logging.FieldCategory, r.Category.String()),
				logging.F(logging.FieldRule, i+1))
			return r.Category, i + 1
		}
	}

	c.logger.Debug("No rule matched, using Other",
		logging.F(logging.FieldDescription, description))
	return models.Other, 0
}

// Rules returns a copy of the normalized rules in evaluation order.
func (c *RuleClassifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
