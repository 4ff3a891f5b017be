package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// MissingNode receives every transition whose target does not resolve.
// It contains a hyphen, which sanitized state names never do.
const MissingNode = "unresolved-target"

// GraphOverlay contains extra state data to visualize on the graph.
type GraphOverlay struct {
	Highlighted []string
	Current     string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a machine.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Suspend state: {{Hexagon}}
// - Default: [Rectangle]
// Transitions are labelled with their guard; unresolved targets point to a
// single MissingNode.
// It also applies overlay styles (Highlighted/Current) if provided.
func GenerateMermaid(m domain.SuspensibleFSM, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	states := m.States()
	suspend, suspensible := m.SuspendState().In(states)
	dangling := false

	for i, s := range states {
		id := domain.StateID(i)
		safeID := sanitizeMermaidID(s.Name)

		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case suspensible && id == suspend:
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, s.Name, closer)

		for _, t := range m.TransitionsFrom(id) {
			safeTo := MissingNode
			if to, ok := t.Target.In(states); ok {
				safeTo = sanitizeMermaidID(states[to].Name)
			} else {
				dangling = true
			}

			arrow := "-->"
			if t.Expression != "" {
				// Escape double quotes in condition for Mermaid label
				safeCondition := strings.ReplaceAll(t.Expression, "\"", "'")
				arrow = fmt.Sprintf("-- \"%s\" -->", safeCondition)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID, arrow, safeTo)
		}
	}

	if dangling {
		fmt.Fprintf(&sb, "    %s>\"unresolved\"]\n", MissingNode)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef highlighted fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Highlighted {
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s highlighted;\n", safeID)
			}
		}

		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
