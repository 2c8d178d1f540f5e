package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/dusk-indust/gedgraph/internal/config"
	"github.com/dusk-indust/gedgraph/internal/gedcom"
	"github.com/dusk-indust/gedgraph/internal/graph"
	"github.com/dusk-indust/gedgraph/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot     string
	Charset         string
	ReplaceXrefs    bool
	ContinueOnError bool
	Verbose         bool
	ServeMCP        bool
	MCPAddr         string
	Force           bool
	Version         bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("gedgraph", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the project directory")
	fs.StringVar(&flags.Charset, "charset", "", "force a character set by name, bypassing detection")
	fs.BoolVar(&flags.ReplaceXrefs, "replace-xrefs", false, "rewrite every cross-reference id on load")
	fs.BoolVar(&flags.ContinueOnError, "continue-on-error", false, "keep parsing past malformed lines")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server for assistant integration")
	fs.StringVar(&flags.MCPAddr, "mcp-addr", "localhost:8722", "listen address for the MCP server")
	fs.BoolVar(&flags.Force, "force", false, "overwrite existing files during init")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts := mergeOptions(cfg, flags)

	if flags.ServeMCP {
		return runServe(flags.ProjectRoot, flags.MCPAddr)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("usage: gedgraph [flags] <command | file.ged ...>")
	}

	switch rest[0] {
	case "init":
		return runInit(flags.ProjectRoot, flags.Force)
	case "export":
		return runExport(opts, rest[1:])
	case "diagram":
		return runDiagram(flags.ProjectRoot)
	case "lookup":
		return runLookup(flags.ProjectRoot, rest[1:])
	default:
		return runParse(opts, flags.Verbose || cfg.Verbose, rest)
	}
}

// mergeOptions layers command-line flags over the project config. Flags win
// when set.
func mergeOptions(cfg *config.ProjectConfig, flags cliFlags) gedcom.Options {
	opts := cfg.Options()
	if flags.Charset != "" {
		opts.Charset = flags.Charset
	}
	if flags.ReplaceXrefs {
		opts.ReplaceXRefs = true
	}
	if flags.ContinueOnError {
		opts.ContinueOnError = true
	}
	return opts
}

// runServe starts the MCP server until interrupted.
func runServe(projectRoot, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := mcptools.NewGenealogyService(graph.NewMemStore())
	svc.SetProjectRoot(projectRoot)

	fmt.Fprintf(os.Stderr, "gedgraph MCP server listening on %s\n", addr)
	return mcptools.RunMCPServer(ctx, svc, addr)
}
