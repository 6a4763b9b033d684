// ABOUTME: CLI entrypoint for the latviz lattice viewer with summary, export, and
// ABOUTME: serve modes; maps I/O and format failures to distinct sysexits codes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/2389-research/latviz/lattice"
	"github.com/2389-research/latviz/render"
	"github.com/2389-research/latviz/settings"
	"github.com/2389-research/latviz/web"
)

var version = "dev"

// sysexits-style process exit codes; the historical tool used the same split
// between usage, data, and I/O failures.
const (
	exitOK      = 0
	exitUsage   = 64
	exitDataErr = 65
	exitIOErr   = 74
)

// config holds all CLI configuration parsed from flags and the positional
// lattice path.
type config struct {
	latticePath  string
	nonwordsPath string
	settingsPath string
	outPath      string
	format       string
	serve        bool
	addr         string
	watch        bool
	showVersion  bool
}

func main() {
	cfg, code := parseFlags(os.Args[1:], os.Stderr)
	if code >= 0 {
		os.Exit(code)
	}
	os.Exit(run(cfg, os.Stdout, os.Stderr))
}

// parseFlags parses the command line. The returned code is -1 when execution
// should continue, otherwise the process exit code.
func parseFlags(args []string, stderr io.Writer) (config, int) {
	var cfg config

	fs := flag.NewFlagSet("latviz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.nonwordsPath, "nonwords", "", "Non-word label list file (one label per line)")
	fs.StringVar(&cfg.settingsPath, "settings", "", "YAML settings file")
	fs.StringVar(&cfg.outPath, "o", "", "Write rendered output to this file")
	fs.StringVar(&cfg.format, "format", "dot", "Output format: dot, svg, png")
	fs.BoolVar(&cfg.serve, "serve", false, "Start the HTTP viewer server")
	fs.StringVar(&cfg.addr, "addr", "127.0.0.1:8321", "Viewer server listen address")
	fs.BoolVar(&cfg.watch, "watch", false, "Reload the lattice when the file changes (with -serve)")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: latviz [flags] <lattice file or directory>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, exitOK
		}
		return cfg, exitUsage
	}

	if cfg.showVersion {
		fmt.Fprintf(stderr, "latviz %s\n", version)
		return cfg, exitOK
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, exitUsage
	}
	cfg.latticePath = fs.Arg(0)
	return cfg, -1
}

// run executes the selected mode and returns the process exit code.
func run(cfg config, stdout, stderr io.Writer) int {
	s, err := settings.Load(cfg.settingsPath)
	if err != nil {
		fmt.Fprintf(stderr, "latviz: %v\n", err)
		return exitFor(err)
	}

	var transform lattice.LabelTransform
	if s.LowercaseLabels {
		transform = lattice.LowerCase
	}

	nonwordsPath := cfg.nonwordsPath
	if nonwordsPath == "" {
		nonwordsPath = s.NonwordsFile
	}
	var nonwords *lattice.NonwordSet
	if nonwordsPath != "" {
		nonwords, err = lattice.ReadNonwordFile(nonwordsPath, transform)
		if err != nil {
			fmt.Fprintf(stderr, "latviz: reading non-word list: %v\n", err)
			return exitFor(err)
		}
	}

	graphs, err := lattice.ParseLatticePath(cfg.latticePath, transform, nil)
	if err != nil {
		fmt.Fprintf(stderr, "latviz: %v\n", err)
		return exitFor(err)
	}

	if cfg.serve {
		return serve(cfg, s, graphs, nonwords, transform, stderr)
	}
	if cfg.outPath != "" {
		return export(cfg, s, graphs, nonwords, stderr)
	}
	return summarize(graphs, nonwords, stdout, stderr)
}

// summarize prints per-file state and edge counts with a classification
// breakdown.
func summarize(graphs map[string]*lattice.Graph, nonwords *lattice.NonwordSet, stdout, stderr io.Writer) int {
	for _, path := range sortedPaths(graphs) {
		g := graphs[path]

		counts := map[lattice.StateType]int{}
		for _, state := range g.Vertices() {
			stateType, err := lattice.Classify(state, g, nonwords)
			if err != nil {
				fmt.Fprintf(stderr, "latviz: %s: %v\n", path, err)
				return exitDataErr
			}
			counts[stateType]++
		}

		fmt.Fprintf(stdout, "%s: %d states, %d edges (INITIAL %d, FINAL %d, GOAL %d, INTERMEDIATE %d)\n",
			path, g.VertexCount(), g.EdgeCount(),
			counts[lattice.StateInitial], counts[lattice.StateFinal],
			counts[lattice.StateGoal], counts[lattice.StateIntermediate])
	}
	return exitOK
}

// export renders a single lattice to the requested output file.
func export(cfg config, s settings.Settings, graphs map[string]*lattice.Graph, nonwords *lattice.NonwordSet, stderr io.Writer) int {
	if len(graphs) != 1 {
		fmt.Fprintf(stderr, "latviz: -o needs a single lattice file, got %d\n", len(graphs))
		return exitUsage
	}

	g := graphs[sortedPaths(graphs)[0]]
	out, err := render.Render(context.Background(), g, nonwords, s.Render, cfg.format)
	if err != nil {
		fmt.Fprintf(stderr, "latviz: %v\n", err)
		return exitFor(err)
	}
	if err := os.WriteFile(cfg.outPath, out, 0o644); err != nil {
		fmt.Fprintf(stderr, "latviz: writing %s: %v\n", cfg.outPath, err)
		return exitIOErr
	}
	return exitOK
}

// serve starts the HTTP viewer on a single lattice, optionally watching it
// for changes.
func serve(cfg config, s settings.Settings, graphs map[string]*lattice.Graph, nonwords *lattice.NonwordSet, transform lattice.LabelTransform, stderr io.Writer) int {
	if len(graphs) != 1 {
		fmt.Fprintf(stderr, "latviz: -serve needs a single lattice file, got %d\n", len(graphs))
		return exitUsage
	}
	source := sortedPaths(graphs)[0]

	server := web.NewServer(web.Config{Addr: cfg.addr, Settings: s})
	server.SetLattice(source, graphs[source], nonwords)

	if cfg.watch {
		watcher, err := web.NewWatcher(server, source, transform)
		if err != nil {
			fmt.Fprintf(stderr, "latviz: %v\n", err)
			return exitIOErr
		}
		defer watcher.Close()
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(stderr, "latviz: %v\n", err)
		return exitIOErr
	}
	return exitOK
}

// exitFor maps the error taxonomy to process exit codes: lattice format and
// classification errors are data errors, everything else is I/O.
func exitFor(err error) int {
	var pe *lattice.ParseError
	if errors.As(err, &pe) {
		return exitDataErr
	}
	var mse *lattice.MalformedStateError
	if errors.As(err, &mse) {
		return exitDataErr
	}
	var se *settings.ParseError
	if errors.As(err, &se) {
		return exitDataErr
	}
	return exitIOErr
}

func sortedPaths(graphs map[string]*lattice.Graph) []string {
	paths := make([]string, 0, len(graphs))
	for p := range graphs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
