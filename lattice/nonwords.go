// ABOUTME: NonwordSet of output symbols treated as non-word labels, plus the line
// ABOUTME: parser that loads one from a flat list file (one label per line).
package lattice

import "sort"

// NonwordSet is an immutable set of output symbols designated as non-word
// labels (silence, pause, epsilon markers). A nil *NonwordSet is the distinct
// "absent" state: classification then treats every edge as word-bearing. An
// empty set is not absent.
type NonwordSet struct {
	labels map[string]struct{}
}

// NewNonwordSet builds a set from the given labels, collapsing duplicates.
func NewNonwordSet(labels []string) *NonwordSet {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return &NonwordSet{labels: set}
}

// Contains reports whether the symbol is a non-word label. A nil set
// contains nothing.
func (s *NonwordSet) Contains(symbol string) bool {
	if s == nil {
		return false
	}
	_, ok := s.labels[symbol]
	return ok
}

// Len returns the number of distinct labels. A nil set has length zero.
func (s *NonwordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.labels)
}

// Labels returns the labels in sorted order.
func (s *NonwordSet) Labels() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.labels))
	for l := range s.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// SetParser collects file lines into a NonwordSet, applying an optional
// transform to each line. Unlike the lattice parser, blank lines are NOT
// skipped: an empty line becomes a literal empty-string entry. That mirrors
// the historical loader behavior; filter blanks through the transform's
// caller if unwanted.
type SetParser struct {
	labels    []string
	transform LabelTransform
}

// NewSetParser returns a SetParser applying the given transform to every
// line. Pass nil for identity.
func NewSetParser(transform LabelTransform) *SetParser {
	return &SetParser{transform: transform}
}

// HandleLine collects one line as a label.
func (p *SetParser) HandleLine(line string) error {
	if p.transform != nil {
		line = p.transform(line)
	}
	p.labels = append(p.labels, line)
	return nil
}

// Complete returns the collected labels as an immutable set.
func (p *SetParser) Complete() *NonwordSet {
	return NewNonwordSet(p.labels)
}

// Reset discards all collected labels.
func (p *SetParser) Reset() {
	p.labels = nil
}
