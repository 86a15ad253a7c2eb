// Package report summarizes a collection per category.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CategorySummary is the roll-up of one section.
type CategorySummary struct {
	Category models.Category `json:"category" yaml:"category"`
	Items    int             `json:"items" yaml:"items"`
	Quantity int             `json:"quantity" yaml:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal" yaml:"subtotal"`
}

// Summary is the roll-up of a collection. Categories keep display order and
// include empty ones.
type Summary struct {
	Collection string            `json:"collection" yaml:"collection"`
	Categories []CategorySummary `json:"categories" yaml:"categories"`
	Items      int               `json:"items" yaml:"items"`
	Quantity   int               `json:"quantity" yaml:"quantity"`
	Total      decimal.Decimal   `json:"total" yaml:"total"`
}

// Summarize builds the Summary of c.
func Summarize(c *inventory.Collection) Summary {
	s := Summary{Collection: c.Name(), Total: decimal.Zero}
	for _, section := range c.Sections() {
		cs := CategorySummary{
			Category: section.Category(),
			Items:    section.Len(),
			Subtotal: section.Subtotal(),
		}
		for _, item := range section.Items() {
			cs.Quantity += item.Quantity
		}
		s.Categories = append(s.Categories, cs)
		s.Items += cs.Items
		s.Quantity += cs.Quantity
		s.Total = s.Total.Add(cs.Subtotal)
	}
	return s
}

// ReportGenerator renders summaries.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger.WithField(logging.FieldComponent, "ReportGenerator")}
}

// GenerateReport renders s as "text", "json" or "yaml". Text omits empty
// categories.
func (g *ReportGenerator) GenerateReport(s Summary, format string) ([]byte, error) {
	switch format {
	case "text", "":
		return g.generateTextReport(s)
	case "json":
		return g.generateJSONReport(s)
	case "yaml":
		return g.generateYAMLReport(s)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateTextReport(s Summary) ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\tItems\tQuantity\tSubtotal\t\n", s.Collection)
	for _, c := range s.Categories {
		if c.Items == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t\n", c.Category, c.Items, c.Quantity, models.FormatPrice(c.Subtotal))
	}
	fmt.Fprintf(tw, "Total\t%d\t%d\t%s\t\n", s.Items, s.Quantity, models.FormatPrice(s.Total))
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render text report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) generateJSONReport(s Summary) ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateYAMLReport(s Summary) ([]byte, error) {
	out, err := yaml.Marshal(yamlSummary(s))
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

// yamlSummary renders decimals as fixed strings; yaml.v3 would otherwise
// serialize the decimal struct fields.
func yamlSummary(s Summary) map[string]interface{} {
	categories := make([]map[string]interface{}, 0, len(s.Categories))
	for _, c := range s.Categories {
		categories = append(categories, map[string]interface{}{
			"category": c.Category.String(),
			"items":    c.Items,
			"quantity": c.Quantity,
			"subtotal": models.FormatPrice(c.Subtotal),
		})
	}
	return map[string]interface{}{
		"collection": s.Collection,
		"categories": categories,
		"items":      s.Items,
		"quantity":   s.Quantity,
		"total":      models.FormatPrice(s.Total),
	}
}
