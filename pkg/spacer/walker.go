package spacer

// Walker collects spacer targets from a tree.
type Walker struct {
	kinds KindSet
	opts  Options
}

// NewWalker returns a walker that inspects nodes whose kind is in kinds.
func NewWalker(kinds KindSet, opts Options) *Walker {
	return &Walker{kinds: kinds, opts: opts}
}

// Kinds returns the inspected kinds.
func (w *Walker) Kinds() KindSet {
	return w.kinds
}

// Collect walks root in pre-order and returns the union of the boundary
// lines of every inspected node.
func (w *Walker) Collect(root Node, lines []string) *TargetSet {
	targets := &TargetSet{}
	if root == nil {
		return targets
	}
	w.visit(root, lines, targets)
	return targets
}

func (w *Walker) visit(node Node, lines []string, targets *TargetSet) {
	if w.kinds.Has(node.Kind()) {
		targets.Add(BoundaryLines(node, lines, w.opts)...)
	}
	for _, child := range node.Children() {
		w.visit(child, lines, targets)
	}
}
