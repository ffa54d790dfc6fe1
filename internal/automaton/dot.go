package automaton

import (
	"fmt"
	"io"
)

// ExportDOT prints a Graphviz representation of any machine to w. The
// graph is the byte-level view seen through the capability interface:
// ε edges of an NFA are folded into their closures.
func ExportDOT(w io.Writer, m Automaton) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")

	start := m.Start()
	visited := map[State]bool{start: true}
	queue := []State{start}
	var succ []State

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		shape := "circle"
		if m.IsAccept(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    q%d [shape=%s];\n", s, shape)

		bytesTo := map[State][]byte{}
		var order []State
		for b := 0; b < 256; b++ {
			succ = m.Step(succ[:0], s, byte(b))
			for _, t := range succ {
				if bytesTo[t] == nil {
					order = append(order, t)
				}
				bytesTo[t] = append(bytesTo[t], byte(b))
			}
		}
		for _, t := range order {
			fmt.Fprintf(w, "    q%d -> q%d [label=\"%s\"];\n", s, t, spanLabel(bytesTo[t]))
			if !visited[t] {
				visited[t] = true
				queue = append(queue, t)
			}
		}
	}

	fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", start)
	fmt.Fprintln(w, "}")
}

// spanLabel renders a sorted byte list as comma-separated ranges.
func spanLabel(bs []byte) string {
	label := ""
	for i := 0; i < len(bs); {
		j := i
		for j+1 < len(bs) && bs[j+1] == bs[j]+1 {
			j++
		}
		if label != "" {
			label += ","
		}
		if i == j {
			label += dotByte(bs[i])
		} else {
			label += dotByte(bs[i]) + "-" + dotByte(bs[j])
		}
		i = j + 1
	}
	return label
}

func dotByte(b byte) string {
	switch {
	case b == '"':
		return `\"`
	case b == '\\':
		return `\\`
	case b > 0x20 && b < 0x7f:
		return string(rune(b))
	default:
		return fmt.Sprintf(`\\x%02x`, b)
	}
}
