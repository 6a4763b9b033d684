// ABOUTME: Serializes a lattice graph to DOT text with node shapes, colors, and sizes
// ABOUTME: driven by the state classifier and edge styling driven by weights and non-words.
package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/2389-research/latviz/lattice"
	"github.com/2389-research/latviz/settings"
)

// shapes per state type, transliterating the historical viewer geometry:
// rectangle for initial, star for final, ellipse for goal, hexagon for
// intermediate states.
const (
	shapeInitial      = "box"
	shapeFinal        = "star"
	shapeGoal         = "ellipse"
	shapeIntermediate = "hexagon"
)

// ToDOT serializes the lattice into deterministic DOT digraph text. Node
// order is ascending by state ID and edge order follows Graph.Edges. Fails
// when any state cannot be classified (a topologically malformed lattice).
func ToDOT(g *lattice.Graph, nonwords *lattice.NonwordSet, cfg settings.Render) (string, error) {
	if g == nil {
		return "", fmt.Errorf("cannot render nil graph")
	}

	var buf strings.Builder
	buf.WriteString("digraph lattice {\n")
	if cfg.RankDir != "" {
		fmt.Fprintf(&buf, "  graph [rankdir=%s]\n", cfg.RankDir)
	}
	buf.WriteString("  node [style=filled]\n\n")

	for _, state := range g.Vertices() {
		attrs, err := nodeAttrs(state, g, nonwords, cfg)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "  %d [%s]\n", state, formatAttrs(attrs))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -> %d [%s]\n", e.Start, e.End, formatAttrs(edgeAttrs(e, nonwords, cfg)))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// nodeAttrs derives the DOT attributes for one state from its classification
// and out-degree.
func nodeAttrs(state int, g *lattice.Graph, nonwords *lattice.NonwordSet, cfg settings.Render) (map[string]string, error) {
	stateType, err := lattice.Classify(state, g, nonwords)
	if err != nil {
		return nil, err
	}

	attrs := map[string]string{
		"shape":     shapeForType(stateType),
		"fillcolor": colorForType(stateType, cfg.Colors),
	}

	// Node size grows with out-degree, floored at the configured minimum;
	// DOT widths are in inches, historical sizes were in points.
	size := float64(len(g.OutEdges(state))+1) * cfg.StateSizeMultiplier
	if size < float64(cfg.MinStateSize) {
		size = float64(cfg.MinStateSize)
	}
	attrs["width"] = fmt.Sprintf("%.2f", size/72.0)

	if stateType == lattice.StateGoal || stateType == lattice.StateFinal {
		attrs["fontname"] = "Helvetica-Bold"
	}
	return attrs, nil
}

// edgeAttrs derives the DOT attributes for one transition. Weights are
// negative log probabilities, so the pen width scales with the implied
// probability; non-word edges are dashed with a plain label font.
func edgeAttrs(e *lattice.Edge, nonwords *lattice.NonwordSet, cfg settings.Render) map[string]string {
	probability := math.Pow(10, -e.Weight)
	penwidth := probability * cfg.WeightFactor

	attrs := map[string]string{
		"label":    quoteValue(e.OutputSymbol),
		"penwidth": fmt.Sprintf("%.3f", penwidth),
	}
	if nonwords.Contains(e.OutputSymbol) {
		attrs["style"] = "dashed"
	} else {
		attrs["fontname"] = "Helvetica-Bold"
	}
	return attrs
}

func shapeForType(t lattice.StateType) string {
	switch t {
	case lattice.StateInitial:
		return shapeInitial
	case lattice.StateFinal:
		return shapeFinal
	case lattice.StateIntermediate:
		return shapeIntermediate
	default:
		return shapeGoal
	}
}

func colorForType(t lattice.StateType, colors settings.Colors) string {
	switch t {
	case lattice.StateInitial:
		return colors.Initial
	case lattice.StateFinal:
		return colors.Final
	case lattice.StateIntermediate:
		return colors.Intermediate
	default:
		return colors.Goal
	}
}

// formatAttrs renders an attribute map as "k1=v1, k2=v2" with keys sorted for
// deterministic output. Label values arrive pre-quoted.
func formatAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, attrs[k]))
	}
	return strings.Join(parts, ", ")
}

// quoteValue double-quotes a DOT attribute value, escaping embedded quotes
// and backslashes.
func quoteValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
