// Package servicegroup assigns backend service categories to the fixed cards
// of the utilities page.
package servicegroup

import (
	"strings"
	"unicode/utf8"
)

// Template is one presentation slot.
type Template struct {
	// Name is the canonical category the slot is meant for.
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DefaultTemplates are the six cards of the utilities page, in display order.
var DefaultTemplates = []Template{
	{Name: "Electricity", Icon: "bolt"},
	{Name: "Water", Icon: "droplet"},
	{Name: "Waste Management", Icon: "trash"},
	{Name: "Security", Icon: "shield"},
	{Name: "Funding", Icon: "wallet"},
	{Name: "Internet", Icon: "wifi"},
}

// Matcher picks an unclaimed template for reported, or reports no match.
type Matcher func(reported string, templates []Template, claimed map[int]bool) (int, bool)

// Cascade is tried in order; the first matcher with a hit wins.
var Cascade = []Matcher{ExactMatch, SubstringMatch, SharedTokenMatch}

// Match runs the cascade for reported.
func Match(reported string, templates []Template, claimed map[int]bool) (int, bool) {
	for _, m := range Cascade {
		if i, ok := m(reported, templates, claimed); ok {
			return i, true
		}
	}
	return -1, false
}

// ExactMatch compares names case-insensitively.
func ExactMatch(reported string, templates []Template, claimed map[int]bool) (int, bool) {
	return firstUnclaimed(templates, claimed, func(name string) bool {
		return strings.EqualFold(strings.TrimSpace(reported), strings.TrimSpace(name))
	})
}

// SubstringMatch accepts containment in either direction, case-insensitively.
func SubstringMatch(reported string, templates []Template, claimed map[int]bool) (int, bool) {
	r := strings.ToLower(strings.TrimSpace(reported))
	if r == "" {
		return -1, false
	}
	return firstUnclaimed(templates, claimed, func(name string) bool {
		n := strings.ToLower(strings.TrimSpace(name))
		return n != "" && (strings.Contains(r, n) || strings.Contains(n, r))
	})
}

// SharedTokenMatch accepts any shared word longer than two characters.
func SharedTokenMatch(reported string, templates []Template, claimed map[int]bool) (int, bool) {
	words := tokens(reported)
	if len(words) == 0 {
		return -1, false
	}
	return firstUnclaimed(templates, claimed, func(name string) bool {
		for w := range tokens(name) {
			if _, ok := words[w]; ok {
				return true
			}
		}
		return false
	})
}

func firstUnclaimed(templates []Template, claimed map[int]bool, hit func(name string) bool) (int, bool) {
	for i, t := range templates {
		if claimed[i] {
			continue
		}
		if hit(t.Name) {
			return i, true
		}
	}
	return -1, false
}

func tokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if utf8.RuneCountInString(w) > 2 {
			out[w] = struct{}{}
		}
	}
	return out
}
