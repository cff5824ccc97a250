package service

import (
	"fmt"
	"strings"

	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
)

const noChanges = "No structural changes"

// Summarize describes how enhanced differs from original in node ids and
// edge count, e.g. "Added 2 nodes, Added 1 connection".
func Summarize(original, enhanced domain.DiagramSpec) string {
	before := original.NodeIDs()
	after := enhanced.NodeIDs()

	added := 0
	for id := range after {
		if _, ok := before[id]; !ok {
			added++
		}
	}
	removed := 0
	for id := range before {
		if _, ok := after[id]; !ok {
			removed++
		}
	}
	edgeDelta := len(enhanced.Edges) - len(original.Edges)

	var parts []string
	if added > 0 {
		parts = append(parts, clause("Added", added, "node"))
	}
	if removed > 0 {
		parts = append(parts, clause("Removed", removed, "node"))
	}
	switch {
	case edgeDelta > 0:
		parts = append(parts, clause("Added", edgeDelta, "connection"))
	case edgeDelta < 0:
		parts = append(parts, clause("Removed", -edgeDelta, "connection"))
	}

	if len(parts) == 0 {
		return noChanges
	}
	return strings.Join(parts, ", ")
}

func clause(verb string, n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%s %d %s", verb, n, noun)
}

func countAdded(original, enhanced domain.DiagramSpec) int {
	before := original.NodeIDs()
	n := 0
	for id := range enhanced.NodeIDs() {
		if _, ok := before[id]; !ok {
			n++
		}
	}
	return n
}
