// Package render turns rule sets into AdGuard Home filter-list blocks.
//
// Each rule becomes one line of AdGuard filter syntax: a "@@" prefix for
// allow rules, "||<url>^" for the pattern, and "$"-prefixed modifiers joined
// by commas. Lines are grouped under comment banners keyed by the rule's
// description.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/rules"
)

const timeLayout = "02-01-2006 15:04:05"

// Renderer formats rule sets into output blocks. The zero value is usable;
// Now defaults to time.Now.
type Renderer struct {
	// Source is written into the "# Source:" header line of every block.
	Source string

	// Now returns the generation time. Tests inject a fixed clock here;
	// the timestamp header is the only non-deterministic output.
	Now func() time.Time
}

// Block is one rule set rendered to output lines.
type Block struct {
	Name  string
	Lines []string
}

// SkippedRule identifies a rule that was dropped because its action is not a
// recognized value.
type SkippedRule struct {
	Set    string
	Index  int
	URL    string
	Action rules.Action
}

// Render produces the block for one rule set, together with any rules that
// were skipped for an unrecognized action. Skipped rules never raise an
// error; callers decide whether to surface them.
func (r *Renderer) Render(set *rules.RuleSet) (Block, []SkippedRule) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	t := now()

	lines := []string{
		"# " + set.Description,
		fmt.Sprintf("# Time generated: %s %s", t.Format(timeLayout), zoneName(t)),
		"# Source: " + r.Source,
		"",
	}

	var skipped []SkippedRule
	var groups groupList
	for i, rule := range set.Rules {
		line, ok := Line(rule)
		if !ok {
			skipped = append(skipped, SkippedRule{Set: set.Name, Index: i, URL: rule.URL, Action: rule.Action})
			continue
		}
		groups.add(rule.Description, line)
	}

	for _, desc := range groups.order {
		lines = append(lines, "# "+desc)
		lines = append(lines, groups.lines[desc]...)
		lines = append(lines, "")
	}

	return Block{Name: set.Name, Lines: lines}, skipped
}

// Line renders a single rule. ok is false when the rule's action is not a
// known value, in which case the rule must be excluded from output.
func Line(r rules.Rule) (line string, ok bool) {
	var prefix string
	switch r.Action {
	case rules.ActionAllow:
		prefix = "@@"
	case rules.ActionDeny:
	default:
		return "", false
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("||")
	b.WriteString(r.URL)
	b.WriteString("^")
	for i, m := range r.Modifiers {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("$")
		b.WriteString(m)
	}
	return b.String(), true
}

// zoneName returns the short name of the time's zone, truncated at the first
// space for zones whose display name carries extra detail.
func zoneName(t time.Time) string {
	name, _ := t.Zone()
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[:i]
	}
	return name
}

// groupList keeps rendered lines keyed by description, preserving the
// first-seen order of distinct descriptions.
type groupList struct {
	order []string
	lines map[string][]string
}

func (g *groupList) add(desc, line string) {
	if g.lines == nil {
		g.lines = make(map[string][]string)
	}
	if _, ok := g.lines[desc]; !ok {
		g.order = append(g.order, desc)
	}
	g.lines[desc] = append(g.lines[desc], line)
}
