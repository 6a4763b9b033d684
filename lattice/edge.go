// ABOUTME: Edge value type for a single lattice transition with weight-based ordering.
// ABOUTME: Edge identity deliberately excludes the weight from equality and hashing.
package lattice

import "fmt"

// Edge is one transition in a word/phone lattice: a directed arc from Start to
// End that outputs OutputSymbol with the given Weight (typically a negative
// log probability). Edges are constructed once per matched file line and never
// mutated afterwards.
type Edge struct {
	Start        int
	End          int
	OutputSymbol string
	Weight       float64
}

// EdgeKey is the identity of an Edge: endpoints and output symbol, weight
// excluded. Two edges differing only by weight are the same logical
// transition for deduplication and lookup purposes.
type EdgeKey struct {
	Start        int
	End          int
	OutputSymbol string
}

// Key returns the edge's identity.
func (e Edge) Key() EdgeKey {
	return EdgeKey{Start: e.Start, End: e.End, OutputSymbol: e.OutputSymbol}
}

// Equal reports whether two edges are the same logical transition.
// Weight is not compared.
func (e Edge) Equal(other Edge) bool {
	return e.Key() == other.Key()
}

// Less orders edges by ascending weight only.
func (e Edge) Less(other Edge) bool {
	return e.Weight < other.Weight
}

func (e Edge) String() string {
	return fmt.Sprintf("Edge[start=%d, end=%d, outputSymbol=%s, weight=%g]",
		e.Start, e.End, e.OutputSymbol, e.Weight)
}

// ByWeight sorts a slice of edges by ascending weight.
type ByWeight []*Edge

func (s ByWeight) Len() int           { return len(s) }
func (s ByWeight) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s ByWeight) Less(i, j int) bool { return s[i].Weight < s[j].Weight }
