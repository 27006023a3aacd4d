package spacer

import "strings"

// Kind classifies a tree node for boundary checking.
type Kind uint8

// Node kinds. Everything that is not a block construct is KindOther.
const (
	KindOther Kind = iota
	KindConditional
	KindForLoop
	KindWhileLoop
	KindResourceScope
	KindAsyncFor
	KindAsyncResourceScope
	KindExceptionTry
	KindExceptionHandler
	KindPatternMatch

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindOther:              "other",
	KindConditional:        "conditional",
	KindForLoop:            "for-loop",
	KindWhileLoop:          "while-loop",
	KindResourceScope:      "resource-scope",
	KindAsyncFor:           "async-for",
	KindAsyncResourceScope: "async-resource-scope",
	KindExceptionTry:       "exception-try",
	KindExceptionHandler:   "exception-handler-clause",
	KindPatternMatch:       "pattern-match",
}

// String returns the kind's name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// KindSet is an immutable set of kinds.
type KindSet uint16

// NewKindSet returns a set holding kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var set KindSet
	for _, k := range kinds {
		set = set.With(k)
	}
	return set
}

// With returns a copy of the set that also holds k.
func (s KindSet) With(k Kind) KindSet {
	if k >= kindCount {
		return s
	}
	return s | 1<<k
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return k < kindCount && s&(1<<k) != 0
}

// Kinds returns the members in declaration order.
func (s KindSet) Kinds() []Kind {
	var kinds []Kind
	for k := range kindCount {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String returns the members as a comma separated list.
func (s KindSet) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Capabilities describes the grammar features a parser supports.
// It is probed once when a walker is configured.
type Capabilities struct {
	// PatternMatch is true when the grammar has pattern-match blocks.
	PatternMatch bool
}

// InspectedKinds returns the block kinds that require a trailing blank line.
func InspectedKinds(caps Capabilities) KindSet {
	set := NewKindSet(
		KindConditional,
		KindForLoop,
		KindWhileLoop,
		KindResourceScope,
		KindAsyncFor,
		KindAsyncResourceScope,
		KindExceptionTry,
		KindExceptionHandler,
	)
	if caps.PatternMatch {
		set = set.With(KindPatternMatch)
	}
	return set
}
