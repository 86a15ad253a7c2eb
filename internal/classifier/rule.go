package classifier

import (
	"fmt"
	"strings"

	"eip/internal/models"
)

// Rule assigns Category to a description whose tokens satisfy it.
//
// A rule matches when (any keyword of Any equals a token, or every keyword of
// one AllOf group equals a token) and, when set, some Require keyword equals a
// token and some token contains a RequireSubstring entry. Keywords compare by
// whole-token equality only.
type Rule struct {
	Category         models.Category `yaml:"category"`
	Any              []string        `yaml:"any,omitempty"`
	AllOf            [][]string      `yaml:"all_of,omitempty"`
	Require          []string        `yaml:"require,omitempty"`
	RequireSubstring []string        `yaml:"require_substring,omitempty"`
}

// Validate checks the rule can ever match and targets a declared category.
func (r Rule) Validate() error {
	if !r.Category.Valid() {
		return fmt.Errorf("rule targets invalid category %d", int(r.Category))
	}
	if len(r.Any) == 0 && len(r.AllOf) == 0 {
		return fmt.Errorf("rule for %s has no keywords", r.Category)
	}
	for i, group := range r.AllOf {
		if len(group) == 0 {
			return fmt.Errorf("rule for %s has empty all_of group %d", r.Category, i)
		}
	}
	return nil
}

// normalized returns a copy with every keyword lowercased and trimmed.
func (r Rule) normalized() Rule {
	out := Rule{
		Category:         r.Category,
		Any:              lowerAll(r.Any),
		Require:          lowerAll(r.Require),
		RequireSubstring: lowerAll(r.RequireSubstring),
	}
	for _, group := range r.AllOf {
		out.AllOf = append(out.AllOf, lowerAll(group))
	}
	return out
}

// Matches reports whether the tokens satisfy the rule. The rule must be
// normalized.
func (r Rule) Matches(tokens Tokens) bool {
	if !tokens.hasAny(r.Any) && !r.matchesGroup(tokens) {
		return false
	}
	if len(r.Require) > 0 && !tokens.hasAny(r.Require) {
		return false
	}
	if len(r.RequireSubstring) > 0 && !tokens.containsAny(r.RequireSubstring) {
		return false
	}
	return true
}

func (r Rule) matchesGroup(tokens Tokens) bool {
	for _, group := range r.AllOf {
		if tokens.hasAll(group) {
			return true
		}
	}
	return false
}

// String describes the rule in a compact form for logs.
func (r Rule) String() string {
	var parts []string
	if len(r.Any) > 0 {
		parts = append(parts, "any["+strings.Join(r.Any, " ")+"]")
	}
	for _, group := range r.AllOf {
		parts = append(parts, "all["+strings.Join(group, " ")+"]")
	}
	if len(r.Require) > 0 {
		parts = append(parts, "require["+strings.Join(r.Require, " ")+"]")
	}
	if len(r.RequireSubstring) > 0 {
		parts = append(parts, "substr["+strings.Join(r.RequireSubstring, " ")+"]")
	}
	return r.Category.String() + ": " + strings.Join(parts, " ")
}

func lowerAll(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(strings.TrimSpace(w)))
	}
	return out
}
