package servicegroup

import (
	"strings"

	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// OtherCategory groups services the backend reported without a category.
const OtherCategory = "Other"

// Assignment is the outcome for one template slot.
type Assignment struct {
	Template Template `json:"template"`

	// Title is what the card shows: the template name, or the reported
	// category when an unmatched category took over an unclaimed slot.
	Title string `json:"title"`

	// Category is the reported category bound to the slot, "" when empty.
	Category string `json:"category,omitempty"`

	// Matched is true when the category came through the cascade.
	Matched bool `json:"matched"`
}

// Assign binds categories to template slots greedily, in category order.
// Categories the cascade cannot place take over never-claimed slots in
// encounter order; any still left over are returned as overflow.
func Assign(categories []string, templates []Template) ([]Assignment, []string) {
	out := make([]Assignment, len(templates))
	for i, t := range templates {
		out[i] = Assignment{Template: t, Title: t.Name}
	}

	claimed := make(map[int]bool, len(templates))
	var unmatched []string
	for _, cat := range categories {
		i, ok := Match(cat, templates, claimed)
		if !ok {
			unmatched = append(unmatched, cat)
			continue
		}
		claimed[i] = true
		out[i].Category = cat
		out[i].Matched = true
	}

	var overflow []string
	next := 0
	for _, cat := range unmatched {
		for next < len(templates) && claimed[next] {
			next++
		}
		if next == len(templates) {
			overflow = append(overflow, cat)
			continue
		}
		claimed[next] = true
		out[next].Title = cat
		out[next].Category = cat
		next++
	}

	return out, overflow
}

// GroupByCategory groups services by category. The returned category list
// keeps the order in which each category first appears in services.
func GroupByCategory(services []zamanisdk.Service) ([]string, map[string][]zamanisdk.Service) {
	var order []string
	groups := make(map[string][]zamanisdk.Service)
	for _, s := range services {
		cat := strings.TrimSpace(s.Category)
		if cat == "" {
			cat = OtherCategory
		}
		if _, seen := groups[cat]; !seen {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], s)
	}
	return order, groups
}

// Card is a slot with the services it shows.
type Card struct {
	Assignment
	Services []zamanisdk.Service `json:"services"`
}

// Build groups services and assigns them to templates.
func Build(services []zamanisdk.Service, templates []Template) ([]Card, []string) {
	order, groups := GroupByCategory(services)
	assignments, overflow := Assign(order, templates)

	cards := make([]Card, len(assignments))
	for i, a := range assignments {
		cards[i] = Card{Assignment: a, Services: groups[a.Category]}
		if cards[i].Services == nil {
			cards[i].Services = []zamanisdk.Service{}
		}
	}
	return cards, overflow
}
