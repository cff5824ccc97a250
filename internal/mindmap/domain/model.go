package domain

// Node is a single concept in the mind map. ID is unique within a spec.
type Node struct {
	ID          string   `json:"id" binding:"required"`
	Label       string   `json:"label"`
	Description *string  `json:"description,omitempty"`
	Kind        NodeKind `json:"type" binding:"omitempty,oneof=central primary secondary default"`
	Icon        *string  `json:"icon,omitempty"`
}

// Edge connects two nodes by id. References are checked by the validator,
// not by this type.
type Edge struct {
	Source string    `json:"source" binding:"required"`
	Target string    `json:"target" binding:"required"`
	Label  *string   `json:"label,omitempty"`
	Style  EdgeStyle `json:"style" binding:"omitempty,oneof=solid dashed dotted"`
}

// DiagramSpec is the structured mind map passed between operations.
type DiagramSpec struct {
	Title        string  `json:"title"`
	CentralTopic string  `json:"central_topic"`
	Nodes        []Node  `json:"nodes" binding:"required,dive"`
	Edges        []Edge  `json:"edges" binding:"required,dive"`
	Summary      *string `json:"summary,omitempty"`
}

// WithDefaults returns a copy with the documented defaults applied:
// node type "default", edge style "solid", and non-nil node/edge slices.
func (s DiagramSpec) WithDefaults() DiagramSpec {
	out := s.Clone()
	for i := range out.Nodes {
		if out.Nodes[i].Kind == "" {
			out.Nodes[i].Kind = NodeDefault
		}
	}
	for i := range out.Edges {
		if out.Edges[i].Style == "" {
			out.Edges[i].Style = EdgeSolid
		}
	}
	return out
}

// Clone returns a deep copy so callers never share slices or pointers.
func (s DiagramSpec) Clone() DiagramSpec {
	out := DiagramSpec{
		Title:        s.Title,
		CentralTopic: s.CentralTopic,
		Nodes:        make([]Node, len(s.Nodes)),
		Edges:        make([]Edge, len(s.Edges)),
		Summary:      cloneString(s.Summary),
	}
	for i, n := range s.Nodes {
		n.Description = cloneString(n.Description)
		n.Icon = cloneString(n.Icon)
		out.Nodes[i] = n
	}
	for i, e := range s.Edges {
		e.Label = cloneString(e.Label)
		out.Edges[i] = e
	}
	return out
}

// NodeIDs returns the set of node ids in the spec.
func (s DiagramSpec) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr is a small helper for building optional string fields.
func Ptr(s string) *string { return &s }
