package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/report"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	File   string `arg:"" optional:"" help:"Sidebar specification to validate (defaults to sidebars.file from the configuration)"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

// Run executes the validate command.
func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadedConfig()
	if err != nil {
		return err
	}

	plan := planFor(cfg, v.File)
	res, err := pipeline.NewRunner(nil).Check(context.Background(), plan)
	if err != nil {
		return err
	}

	if err := report.NewFormatter(v.Format).Format(g.Stdout, res.Report); err != nil {
		return errors.InternalError("formatting output", err)
	}
	if vs := res.Report.Violations; len(vs) > 0 {
		return errors.SpecInvalid(plan.SpecFile, len(vs), fmt.Errorf("%d violation(s) found", len(vs)))
	}
	return nil
}

// planFor resolves the run plan, letting an explicit file override the
// configured one. The format of an override is inferred from its extension.
func planFor(cfg *config.Config, file string) *pipeline.Plan {
	if file == "" {
		return pipeline.PlanFromConfig(cfg)
	}
	override := *cfg
	override.Sidebars.File = file
	override.Sidebars.Format = ""
	return pipeline.PlanFromConfig(&override)
}
