package machine

import (
	"fmt"

	"github.com/enetx/g"
)

// ToDOT generates a DOT language string representation of the machine for visualization.
func (m *Machine[S, T, C]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph Machine {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	if m.initial.IsSome() {
		b.WriteString("  __start [shape=point, style=invis];\n")
		b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", label(m.initial.Some())))
	}

	var edges g.Slice[g.Pair[S, S]]
	grouped := g.NewMap[g.Pair[S, S], g.Slice[g.String]]()
	guarded := g.NewSet[g.Pair[S, S]]()
	referenced := g.NewSet[S]()

	for _, from := range m.order {
		sc := m.states[from]
		for _, trigger := range sc.triggers {
			for _, spec := range sc.Transitions(trigger) {
				key := g.Pair[S, S]{Key: from, Value: spec.target}
				if _, ok := grouped[key]; !ok {
					edges.Push(key)
				}

				text := label(trigger)
				if spec.Guarded() {
					text += " (guarded)"
					guarded.Insert(key)
				}

				grouped[key] = append(grouped[key], text)
				referenced.Insert(spec.target)
			}
		}
	}

	for _, state := range m.order {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", label(state)))

		isInitial := m.initial.IsSome() && m.initial.Some() == state

		switch {
		case m.current.IsSome() && m.current.Some() == state:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case !isInitial && !referenced.Contains(state):
			attrs.Push("fillcolor=\"#f4a6a6\"", "tooltip=\"orphaned\"")
		case m.states[state].triggers.Empty():
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", label(state), attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, key := range edges {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\" {} \"", grouped[key].Join("\\n")))

		if guarded.Contains(key) {
			attrs.Push("style=dashed", "color=red", "arrowhead=odiamond")
		}

		b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", label(key.Key), label(key.Value), attrs.Join(", ")))
	}

	b.WriteString("\n  subgraph cluster_legend {\n")
	b.WriteString("    label = \"Legend\";\n")
	b.WriteString("    style = dashed;\n")
	b.WriteString(`    key [label=<
      <table border="0" cellpadding="4" cellspacing="0" cellborder="0">
        <tr><td align="right">●</td><td>Regular state</td></tr>
        <tr><td align="right"><font color="green">◎</font></td><td>Current state</td></tr>
        <tr><td align="right"><font color="gray">◎</font></td><td>Final state</td></tr>
        <tr><td align="right"><font color="#f4a6a6">●</font></td><td>Orphaned state</td></tr>
        <tr><td align="right"><font color="red">→</font></td><td>Guarded transition</td></tr>
      </table>
    >, shape=none];`)

	b.WriteString("  }\n")
	b.WriteString("}\n")

	return b.String()
}

func label(v any) g.String { return g.String(fmt.Sprint(v)) }
