package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docnav/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	File string `arg:"" optional:"" help:"Sidebar specification to build (defaults to sidebars.file from the configuration)"`
}

// Run executes the build command.
func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadedConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	plan := planFor(cfg, b.File)
	res, err := pipeline.NewRunner(nil).Build(ctx, plan)
	if err != nil {
		return err
	}

	categories, docs := res.Sidebar.Counts()
	_, _ = fmt.Fprintf(g.Stdout, "Built %d sidebar(s) from %s: %d categories, %d documents\n",
		len(res.Sidebar.Sections), plan.SpecFile, categories, docs)
	if len(res.Exported) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "No export targets configured")
	}
	for _, t := range res.Exported {
		_, _ = fmt.Fprintf(g.Stdout, "Wrote %s: %s\n", t.Name, t.Path)
	}
	return nil
}
