// ABOUTME: Handler tests for the viewer server using httptest: state listings, DOT
// ABOUTME: output, summaries, and error statuses for missing or malformed lattices.
package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389-research/latviz/lattice"
	"github.com/2389-research/latviz/settings"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Config{Settings: settings.Default()})
}

func loadTestLattice(t *testing.T, s *Server) {
	t.Helper()
	g := lattice.NewGraph()
	g.AddEdge(lattice.Edge{Start: 0, End: 1, OutputSymbol: "sil", Weight: 0.5})
	g.AddEdge(lattice.Edge{Start: 1, End: 2, OutputSymbol: "word", Weight: 1.0})
	g.AddEdge(lattice.Edge{Start: 2, End: 3, OutputSymbol: lattice.FinalLabel, Weight: 0.0})
	s.SetLattice("/data/test.lat", g, lattice.NewNonwordSet([]string{"sil"}))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, testServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStatesListing(t *testing.T) {
	s := testServer(t)
	loadTestLattice(t, s)

	rec := get(t, s, "/states")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var rows []stateRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	types := map[int]string{}
	for _, row := range rows {
		types[row.ID] = row.Type
	}
	want := map[int]string{0: "INITIAL", 1: "GOAL", 2: "GOAL", 3: "FINAL"}
	for id, typ := range want {
		if types[id] != typ {
			t.Errorf("state %d type = %q, want %q", id, types[id], typ)
		}
	}
}

func TestStatesNoLattice(t *testing.T) {
	rec := get(t, testServer(t), "/states")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGraphDOT(t *testing.T) {
	s := testServer(t)
	loadTestLattice(t, s)

	rec := get(t, s, "/graph.dot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "digraph lattice {") {
		t.Errorf("body does not look like DOT: %s", rec.Body.String())
	}
}

func TestGraphSummary(t *testing.T) {
	s := testServer(t)
	loadTestLattice(t, s)

	rec := get(t, s, "/graph")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if summary["vertices"].(float64) != 4 {
		t.Errorf("vertices = %v, want 4", summary["vertices"])
	}
	if summary["edges"].(float64) != 3 {
		t.Errorf("edges = %v, want 3", summary["edges"])
	}
	if summary["source"] != "/data/test.lat" {
		t.Errorf("source = %v", summary["source"])
	}
}

func TestGraphDOTMalformedLattice(t *testing.T) {
	s := testServer(t)
	g := lattice.NewGraph()
	g.AddEdge(lattice.Edge{Start: 0, End: 1, OutputSymbol: "word"})
	// Dead-end state 1 with a configured non-word set cannot be classified.
	s.SetLattice("bad.lat", g, lattice.NewNonwordSet([]string{"sil"}))

	rec := get(t, s, "/graph.dot")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestSetLatticeSwaps(t *testing.T) {
	s := testServer(t)
	loadTestLattice(t, s)

	replacement := lattice.NewGraph()
	replacement.AddEdge(lattice.Edge{Start: 7, End: 8, OutputSymbol: "x"})
	s.SetLattice("other.lat", replacement, nil)

	source, g, nonwords := s.Lattice()
	if source != "other.lat" {
		t.Errorf("source = %q", source)
	}
	if g.VertexCount() != 2 {
		t.Errorf("VertexCount = %d, want 2", g.VertexCount())
	}
	if nonwords != nil {
		t.Errorf("nonwords should be replaced along with the graph")
	}
}
