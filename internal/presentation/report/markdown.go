// Package report renders exported machines as Markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/export"
)

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func stateName(states []domain.State, ref domain.StateRef) string {
	if id, ok := ref.In(states); ok {
		return states[id].Name
	}
	return "_unresolved_"
}

// Markdown summarises one export: states, transitions and the boilerplate
// sections present for each state.
func Markdown(res *export.Result) string {
	m := res.Machine
	states := m.States()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", m.Name)
	fmt.Fprintf(&sb, "- **Format:** `%s`\n", res.Format)
	fmt.Fprintf(&sb, "- **Location:** `%s`\n", res.Location)
	if initial, ok := m.InitialState(); ok {
		fmt.Fprintf(&sb, "- **Initial state:** %s\n", initial.Name)
	}
	suspend := domain.NotSuspensible
	if m.IsSuspensible() {
		suspend = stateName(states, m.SuspendState())
	}
	fmt.Fprintf(&sb, "- **Suspend state:** %s\n", suspend)
	if sections := res.Boilerplate.Sections(); len(sections) > 0 {
		fmt.Fprintf(&sb, "- **Machine boilerplate:** %s\n", strings.Join(sections, ", "))
	}

	sb.WriteString("\n## States\n\n")
	sb.WriteString("| # | State | Transitions | Boilerplate |\n")
	sb.WriteString("|---|-------|-------------|-------------|\n")
	for i, s := range states {
		n := len(m.TransitionsFrom(domain.StateID(i)))
		fmt.Fprintf(&sb, "| %d | %s | %d | %s |\n", i, cell(s.Name), n, strings.Join(nonEmpty(res.StateBoilerplate[s.Name]), ", "))
	}

	sb.WriteString("\n## Transitions\n\n")
	transitions := m.Transitions()
	if len(transitions) == 0 {
		sb.WriteString("_None._\n")
		return sb.String()
	}
	sb.WriteString("| From | Guard | To |\n")
	sb.WriteString("|------|-------|----|\n")
	for _, t := range transitions {
		fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", cell(stateName(states, domain.Ref(t.Source))), cell(t.Expression), cell(stateName(states, t.Target)))
	}
	return sb.String()
}

// nonEmpty lists the sections holding text.
func nonEmpty(bp domain.Boilerplate) []string {
	var out []string
	for _, name := range bp.Sections() {
		if strings.TrimSpace(bp[name]) != "" {
			out = append(out, name)
		}
	}
	return out
}
