package effects

// Shadow is one node of a shadow effect tree: a tree isomorphic, node for
// node, to the expression it was inferred from, carrying the effect
// computed for the corresponding node. Produced fresh per inference call
// and consumed read-only by the monadic rewriter.
type Shadow struct {
	Eff      Effect
	Children []*Shadow
}

// NewShadow builds a shadow node.
func NewShadow(eff Effect, children ...*Shadow) *Shadow {
	return &Shadow{Eff: eff, Children: children}
}

// Child returns the i-th child, or nil when out of range. Out-of-range
// access indicates a shape mismatch the caller must report.
func (s *Shadow) Child(i int) *Shadow {
	if s == nil || i < 0 || i >= len(s.Children) {
		return nil
	}
	return s.Children[i]
}

// Arity returns the child count.
func (s *Shadow) Arity() int {
	if s == nil {
		return 0
	}
	return len(s.Children)
}
