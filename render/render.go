// ABOUTME: Renders lattice graphs to DOT text or to SVG/PNG by piping the DOT
// ABOUTME: serialization through the graphviz dot command.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/2389-research/latviz/lattice"
	"github.com/2389-research/latviz/settings"
)

// Render produces output from a lattice in the given format. "dot" returns
// the DOT text directly; "svg" and "png" shell out to graphviz.
func Render(ctx context.Context, g *lattice.Graph, nonwords *lattice.NonwordSet, cfg settings.Render, format string) ([]byte, error) {
	dotText, err := ToDOT(g, nonwords, cfg)
	if err != nil {
		return nil, err
	}
	return RenderDOTSource(ctx, dotText, format)
}

// RenderDOTSource renders already-serialized DOT text to the given format.
// For "dot" it returns the input unchanged.
func RenderDOTSource(ctx context.Context, dotText string, format string) ([]byte, error) {
	if dotText == "" {
		return nil, fmt.Errorf("cannot render empty DOT text")
	}

	switch format {
	case "dot":
		return []byte(dotText), nil
	case "svg", "png":
		return renderWithGraphviz(ctx, dotText, format)
	default:
		return nil, fmt.Errorf("unsupported format %q: supported formats are dot, svg, png", format)
	}
}

// GraphvizAvailable reports whether the graphviz dot command is on PATH.
func GraphvizAvailable() bool {
	_, err := exec.LookPath("dot")
	return err == nil
}

// renderWithGraphviz pipes DOT text through the graphviz dot command.
func renderWithGraphviz(ctx context.Context, dotText string, format string) ([]byte, error) {
	if !GraphvizAvailable() {
		return nil, fmt.Errorf("graphviz dot command not found: install graphviz to render %s output", format)
	}

	cmd := exec.CommandContext(ctx, "dot", "-T"+format)
	cmd.Stdin = strings.NewReader(dotText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("graphviz dot command failed: %w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
