// ABOUTME: Tests for DOT serialization: state-type driven attributes, edge styling,
// ABOUTME: determinism, and failure on malformed lattices.
package render

import (
	"strings"
	"testing"

	"github.com/2389-research/latviz/lattice"
	"github.com/2389-research/latviz/settings"
)

// viewerLattice builds 0 --sil--> 1 --word--> 2 --</s>--> 3, with 1 --sil--> 4 --sil--> 2.
func viewerLattice(t *testing.T) *lattice.Graph {
	t.Helper()
	g := lattice.NewGraph()
	g.AddEdge(lattice.Edge{Start: 0, End: 1, OutputSymbol: "sil", Weight: 0.5})
	g.AddEdge(lattice.Edge{Start: 1, End: 2, OutputSymbol: "word", Weight: 1.0})
	g.AddEdge(lattice.Edge{Start: 2, End: 3, OutputSymbol: lattice.FinalLabel, Weight: 0.0})
	g.AddEdge(lattice.Edge{Start: 1, End: 4, OutputSymbol: "sil", Weight: 0.2})
	g.AddEdge(lattice.Edge{Start: 4, End: 2, OutputSymbol: "sil", Weight: 0.3})
	return g
}

func TestToDOTStateStyling(t *testing.T) {
	g := viewerLattice(t)
	nonwords := lattice.NewNonwordSet([]string{"sil"})
	cfg := settings.Default().Render

	out, err := ToDOT(g, nonwords, cfg)
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"digraph header", "digraph lattice {"},
		{"rankdir", "rankdir=LR"},
		{"initial state box", "shape=box"},
		{"initial color", "fillcolor=cyan"},
		{"final state star", "shape=star"},
		{"final color", "fillcolor=magenta"},
		{"goal color", "fillcolor=red"},
		{"intermediate hexagon", "shape=hexagon"},
		{"intermediate color", "fillcolor=green"},
		{"edge with label", `label="word"`},
		{"non-word edge dashed", "style=dashed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.want) {
				t.Errorf("DOT output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestToDOTDeterministic(t *testing.T) {
	g := viewerLattice(t)
	nonwords := lattice.NewNonwordSet([]string{"sil"})
	cfg := settings.Default().Render

	first, err := ToDOT(g, nonwords, cfg)
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ToDOT(g, nonwords, cfg)
		if err != nil {
			t.Fatalf("ToDOT error: %v", err)
		}
		if again != first {
			t.Fatalf("ToDOT output not deterministic on run %d", i)
		}
	}
}

func TestToDOTAbsentNonwords(t *testing.T) {
	g := viewerLattice(t)
	cfg := settings.Default().Render

	out, err := ToDOT(g, nil, cfg)
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}
	// Without a non-word set nothing is dashed and no hexagon appears.
	if strings.Contains(out, "style=dashed") {
		t.Errorf("absent nonwords should not produce dashed edges")
	}
	if strings.Contains(out, "shape=hexagon") {
		t.Errorf("absent nonwords should not produce intermediate states")
	}
}

func TestToDOTMalformedLattice(t *testing.T) {
	g := lattice.NewGraph()
	g.AddEdge(lattice.Edge{Start: 0, End: 1, OutputSymbol: "word"})

	// State 1 is a dead end with a configured non-word set.
	_, err := ToDOT(g, lattice.NewNonwordSet([]string{"sil"}), settings.Default().Render)
	if err == nil {
		t.Fatalf("ToDOT of malformed lattice = nil error")
	}
}

func TestToDOTNilGraph(t *testing.T) {
	if _, err := ToDOT(nil, nil, settings.Default().Render); err == nil {
		t.Errorf("ToDOT(nil) = nil error")
	}
}

func TestQuoteValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`with"quote`, `"with\"quote"`},
		{`back\slash`, `"back\\slash"`},
		{"</s>", `"</s>"`},
	}
	for _, tt := range tests {
		if got := quoteValue(tt.in); got != tt.want {
			t.Errorf("quoteValue(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
