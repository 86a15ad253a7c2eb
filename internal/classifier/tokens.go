package classifier

import "strings"

// Tokens is a lowercased, whitespace-split description.
type Tokens struct {
	list []string
	set  map[string]struct{}
}

// Tokenize lowercases description and splits it on whitespace.
func Tokenize(description string) Tokens {
	list := strings.Fields(strings.ToLower(description))
	set := make(map[string]struct{}, len(list))
	for _, tok := range list {
		set[tok] = struct{}{}
	}
	return Tokens{list: list, set: set}
}

// List returns the tokens in description order.
func (t Tokens) List() []string {
	return append([]string(nil), t.list...)
}

func (t Tokens) has(word string) bool {
	_, ok := t.set[word]
	return ok
}

func (t Tokens) hasAny(words []string) bool {
	for _, w := range words {
		if t.has(w) {
			return true
		}
	}
	return false
}

func (t Tokens) hasAll(words []string) bool {
	for _, w := range words {
		if !t.has(w) {
			return false
		}
	}
	return len(words) > 0
}

func (t Tokens) containsAny(substrings []string) bool {
	for _, tok := range t.list {
		for _, sub := range substrings {
			if strings.Contains(tok, sub) {
				return true
			}
		}
	}
	return false
}
