// Package rules defines the rule document model and its JSON loader.
package rules

import "fmt"

// Action determines whether a rule allows or denies matching URLs.
type Action string

const (
	ActionAllow Action = "allow"
	ActionDeny  Action = "deny"
)

// Known reports whether the action is one of the supported values.
// Rules with unknown actions are excluded from output.
func (a Action) Known() bool {
	return a == ActionAllow || a == ActionDeny
}

// Rule is a single URL pattern with an action and a grouping description.
type Rule struct {
	URL         string   `json:"url"`
	Action      Action   `json:"action"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Description string   `json:"description"`
}

// RuleSet is a named group of rules sharing one description and one output
// file.
type RuleSet struct {
	Name        string `json:"-"`
	Description string `json:"description"`
	Rules       []Rule `json:"rules"`
}

// Document is a collection of rule sets, preserving the declaration order of
// the source file.
type Document struct {
	sets  []*RuleSet
	index map[string]*RuleSet
}

// NewDocument builds a document from rule sets, keeping their order.
func NewDocument(sets []*RuleSet) (*Document, error) {
	doc := &Document{index: make(map[string]*RuleSet, len(sets))}
	for _, set := range sets {
		if err := doc.add(set); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *Document) add(set *RuleSet) error {
	if _, ok := d.index[set.Name]; ok {
		return fmt.Errorf("duplicate rule set: %s", set.Name)
	}
	d.sets = append(d.sets, set)
	d.index[set.Name] = set
	return nil
}

// Sets returns the rule sets in declaration order.
func (d *Document) Sets() []*RuleSet {
	return d.sets
}

// Get finds a rule set by name.
func (d *Document) Get(name string) (*RuleSet, bool) {
	set, ok := d.index[name]
	return set, ok
}

// Len returns the number of rule sets.
func (d *Document) Len() int {
	return len(d.sets)
}
