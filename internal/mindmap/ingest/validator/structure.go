package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
)

// StructureError reports graph-level problems that the schema cannot
// express: duplicate node ids, edges pointing at unknown nodes, and cycles.
type StructureError struct {
	Problems []string
}

func (e *StructureError) Error() string {
	return "invalid diagram structure: " + strings.Join(e.Problems, "; ")
}

// CheckStructure verifies node id uniqueness, edge referential integrity and
// that the directed edge set is acyclic.
func CheckStructure(spec domain.DiagramSpec) error {
	var problems []string

	ids := make(map[string]bool, len(spec.Nodes))
	for _, n := range spec.Nodes {
		if ids[n.ID] {
			problems = append(problems, fmt.Sprintf("duplicate node id %q", n.ID))
			continue
		}
		ids[n.ID] = true
	}

	for i, e := range spec.Edges {
		if !ids[e.Source] {
			problems = append(problems, fmt.Sprintf("edge %d references unknown source %q", i, e.Source))
		}
		if !ids[e.Target] {
			problems = append(problems, fmt.Sprintf("edge %d references unknown target %q", i, e.Target))
		}
	}

	if len(problems) > 0 {
		return &StructureError{Problems: problems}
	}

	if cyc := cycleMembers(spec, ids); len(cyc) > 0 {
		return &StructureError{Problems: []string{
			fmt.Sprintf("edges form a cycle through %s", strings.Join(cyc, ", ")),
		}}
	}
	return nil
}

// cycleMembers runs Kahn's algorithm and returns the sorted ids left with a
// non-zero in-degree, which are exactly the nodes on or behind a cycle.
func cycleMembers(spec domain.DiagramSpec, ids map[string]bool) []string {
	inDegree := make(map[string]int, len(ids))
	out := make(map[string][]string, len(ids))
	for id := range ids {
		inDegree[id] = 0
	}
	for _, e := range spec.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
		inDegree[e.Target]++
	}

	queue := make([]string, 0, len(ids))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range out[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited == len(ids) {
		return nil
	}
	var left []string
	for id, deg := range inDegree {
		if deg > 0 {
			left = append(left, id)
		}
	}
	sort.Strings(left)
	return left
}
