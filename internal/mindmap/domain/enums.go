package domain

type NodeKind string

const (
	NodeCentral   NodeKind = "central"
	NodePrimary   NodeKind = "primary"
	NodeSecondary NodeKind = "secondary"
	NodeDefault   NodeKind = "default"
)

type EdgeStyle string

const (
	EdgeSolid  EdgeStyle = "solid"
	EdgeDashed EdgeStyle = "dashed"
	EdgeDotted EdgeStyle = "dotted"
)

// EnhanceMode controls how an existing map is modified.
type EnhanceMode string

const (
	ModeExpand   EnhanceMode = "expand"
	ModeRefine   EnhanceMode = "refine"
	ModeFocus    EnhanceMode = "focus"
	ModeSimplify EnhanceMode = "simplify"
)

func (m EnhanceMode) Valid() bool {
	switch m {
	case ModeExpand, ModeRefine, ModeFocus, ModeSimplify:
		return true
	}
	return false
}
