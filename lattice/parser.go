// ABOUTME: Regex-driven line parser that accumulates lattice FST file lines into a Graph.
// ABOUTME: Matches edge lines and bare terminal-state lines; anything else non-blank is a format error.
package lattice

import (
	"regexp"
	"strconv"
	"strings"
)

// edgeLinePattern matches one lattice transition:
// start state, end state, input symbol (discarded), output symbol, optional weight.
var edgeLinePattern = regexp.MustCompile(`^\s*([0-9]+)\s+([0-9]+)\s+(\S+)\s+(\S+)(?:\s+(-?[0-9]*\.?[0-9]+))?\s*$`)

// terminalLinePattern matches a bare terminal-state declarator: a single
// integer with no transition.
var terminalLinePattern = regexp.MustCompile(`^\s*([0-9]+)\s*$`)

// LabelTransform converts a raw output symbol into its stored form, e.g. case
// normalization. A nil transform leaves symbols unchanged.
type LabelTransform func(string) string

// LowerCase is a LabelTransform that lower-cases output symbols.
func LowerCase(s string) string { return strings.ToLower(s) }

// Parser accumulates lattice file lines into a directed multigraph. One
// Parser instance serves one file at a time; call Reset between sequential
// uses or drive it through a Reader, which isolates files itself. Not safe
// for concurrent use.
type Parser struct {
	graph     *Graph
	transform LabelTransform
}

// NewParser returns a Parser applying the given label transform to every
// output symbol. Pass nil to keep symbols as written.
func NewParser(transform LabelTransform) *Parser {
	return &Parser{graph: NewGraph(), transform: transform}
}

// HandleLine consumes one newline-stripped file line. Edge lines grow the
// graph, terminal and blank lines are tolerated without effect, and any other
// content yields a *ParseError.
func (p *Parser) HandleLine(line string) error {
	if m := edgeLinePattern.FindStringSubmatch(line); m != nil {
		return p.handleEdge(m)
	}
	if terminalLinePattern.MatchString(line) {
		return nil
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}
	return newParseError("file format error: %s", line)
}

// handleEdge converts a matched edge line into an Edge and adds it to the
// graph. Numeric conversions are defensive: the pattern only admits digits,
// but a failure still surfaces as a format error rather than a panic.
func (p *Parser) handleEdge(m []string) error {
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return newParseError("bad start state %q: %v", m[1], err)
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return newParseError("bad end state %q: %v", m[2], err)
	}

	symbol := m[4]
	if p.transform != nil {
		symbol = p.transform(symbol)
	}

	weight := 0.0
	if m[5] != "" {
		weight, err = strconv.ParseFloat(m[5], 64)
		if err != nil {
			return newParseError("bad weight %q: %v", m[5], err)
		}
	}

	p.graph.AddVertex(start)
	p.graph.AddVertex(end)
	p.graph.AddEdge(Edge{Start: start, End: end, OutputSymbol: symbol, Weight: weight})
	return nil
}

// Complete returns the accumulated graph. The parser is not reset; the same
// graph keeps growing if more lines are handled afterwards.
func (p *Parser) Complete() *Graph {
	return p.graph
}

// Reset discards the accumulated graph and starts a fresh, empty one.
func (p *Parser) Reset() {
	p.graph = NewGraph()
}
