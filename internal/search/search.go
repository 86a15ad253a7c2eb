// Package search finds items across the inventory, projects and past orders.
package search

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"
	"eip/internal/workspace"
)

// ErrNothingToSearch is returned when the selected section has no files.
var ErrNothingToSearch = errors.New("nothing to search")

// Section selects where to search.
type Section string

const (
	SectionInventory  Section = "inventory"
	SectionProjects   Section = "projects"
	SectionPastOrders Section = "past-orders"
	SectionAll        Section = "all"
)

// ParseSection accepts the section names case-insensitively, with a space
// or underscore in place of the dash. Empty means all.
func ParseSection(name string) (Section, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	switch Section(s) {
	case SectionInventory, SectionProjects, SectionPastOrders, SectionAll:
		return Section(s), nil
	case "":
		return SectionAll, nil
	default:
		return "", fmt.Errorf("unknown search section %q", name)
	}
}

// Query is a search request. An empty Category or "all" matches every
// category; an empty Text or "all" matches every item.
type Query struct {
	Section  Section
	Category string
	Text     string
}

// Result is a found item and where it was found.
type Result struct {
	Source   string          `json:"source" yaml:"source"`
	Category models.Category `json:"category" yaml:"category"`
	Item     models.Item     `json:"item" yaml:"item"`
}

// Library is the set of saved lists a Searcher reads.
type Library interface {
	LoadInventory() (*inventory.Collection, error)
	Projects() ([]string, error)
	OpenProject(name string) (*inventory.Collection, error)
	PastOrders() ([]string, error)
	OpenPastOrder(name string) (*inventory.Collection, error)
}

// Searcher runs queries against a Library.
type Searcher struct {
	library Library
	logger  logging.Logger
}

// NewSearcher creates a Searcher.
func NewSearcher(library Library, logger logging.Logger) *Searcher {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Searcher{library: library, logger: logger}
}

// Search returns the items matching q. An empty result is not an error.
func (s *Searcher) Search(q Query) ([]Result, error) {
	category, allCategories, err := parseCategory(q.Category)
	if err != nil {
		return nil, err
	}
	section := q.Section
	if section == "" {
		section = SectionAll
	}

	candidates, err := s.gather(section)
	if err != nil {
		return nil, err
	}

	if !allCategories {
		filtered := candidates[:0]
		for _, r := range candidates {
			if r.Category == category {
				filtered = append(filtered, r)
			}
		}
		candidates = filtered
	}

	results := matchText(candidates, q.Text)
	s.logger.Debug("Search done",
		logging.F(logging.FieldOperation, string(section)),
		logging.F(logging.FieldCount, len(results)))
	return results, nil
}

func parseCategory(name string) (models.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "all") {
		return models.Other, true, nil
	}
	c, err := models.ParseCategory(name)
	if err != nil {
		return models.Other, false, err
	}
	return c, false, nil
}

func (s *Searcher) gather(section Section) ([]Result, error) {
	switch section {
	case SectionInventory:
		results, err := s.inventory()
		if errors.Is(err, workspace.ErrNoInventory) {
			return nil, fmt.Errorf("%w: no inventory", ErrNothingToSearch)
		}
		return results, err
	case SectionProjects:
		results, err := s.files(workspace.ProjectsDir, s.library.Projects, s.library.OpenProject)
		if err == nil && len(results) == 0 {
			return nil, fmt.Errorf("%w: no projects", ErrNothingToSearch)
		}
		return results, err
	case SectionPastOrders:
		names, err := s.library.PastOrders()
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: no past orders", ErrNothingToSearch)
		}
		return s.files(workspace.PastOrdersDir, s.library.PastOrders, s.library.OpenPastOrder)
	case SectionAll:
		return s.all()
	default:
		return nil, fmt.Errorf("unknown search section %q", section)
	}
}

// all merges every source and keeps the first item of each description.
func (s *Searcher) all() ([]Result, error) {
	var merged []Result

	inv, err := s.inventory()
	if err != nil && !errors.Is(err, workspace.ErrNoInventory) {
		return nil, err
	}
	merged = append(merged, inv...)

	projects, err := s.files(workspace.ProjectsDir, s.library.Projects, s.library.OpenProject)
	if err != nil {
		return nil, err
	}
	merged = append(merged, projects...)

	orders, err := s.files(workspace.PastOrdersDir, s.library.PastOrders, s.library.OpenPastOrder)
	if err != nil {
		return nil, err
	}
	merged = append(merged, orders...)

	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: there are no files to search", ErrNothingToSearch)
	}

	seen := make(map[string]bool, len(merged))
	out := merged[:0]
	for _, r := range merged {
		if seen[r.Item.Description] {
			continue
		}
		seen[r.Item.Description] = true
		out = append(out, r)
	}
	return out, nil
}

func (s *Searcher) inventory() ([]Result, error) {
	c, err := s.library.LoadInventory()
	if err != nil {
		return nil, err
	}
	return collect(workspace.InventoryName, c), nil
}

func (s *Searcher) files(dir string, list func() ([]string, error), open func(string) (*inventory.Collection, error)) ([]Result, error) {
	names, err := list()
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, name := range names {
		c, err := open(name)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}
		results = append(results, collect(path.Join(dir, name), c)...)
	}
	return results, nil
}

// collect lists the items of c with their classified category.
func collect(source string, c *inventory.Collection) []Result {
	items := c.Items()
	results := make([]Result, 0, len(items))
	for _, item := range items {
		results = append(results, Result{Source: source, Category: c.CategoryOf(item), Item: item})
	}
	return results
}

// matchText keeps the items whose description contains a word of text,
// case-insensitively. Matches are grouped by word in text order and exact
// repeats are dropped.
func matchText(candidates []Result, text string) []Result {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "all") {
		return candidates
	}

	var out []Result
	for _, word := range strings.Split(strings.ToLower(text), " ") {
		if word == "" {
			continue
		}
		for _, r := range candidates {
			if !strings.Contains(strings.ToLower(r.Item.Description), word) {
				continue
			}
			if containsResult(out, r) {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

func containsResult(results []Result, r Result) bool {
	for _, existing := range results {
		if existing.Source == r.Source && existing.Category == r.Category && existing.Item.Equal(r.Item) {
			return true
		}
	}
	return false
}
