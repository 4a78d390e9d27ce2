package commands

import (
	"io"
	"os"

	"git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/export"
	"git.home.luguber.info/inful/docnav/internal/outline"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/specload"
)

// ImportOutlineCmd implements the 'import-outline' command.
type ImportOutlineCmd struct {
	File   string `arg:"" help:"Markdown outline to convert" type:"existingfile"`
	Output string `short:"o" help:"Write the YAML specification to this file instead of stdout"`
	Name   string `short:"n" help:"Sidebar name for lists before the first heading (defaults to sidebars.default_name)"`
}

// Run executes the import-outline command.
func (c *ImportOutlineCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadedConfig()
	if err != nil {
		return err
	}
	name := c.Name
	if name == "" {
		name = cfg.Sidebars.DefaultName
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return errors.SpecLoadFailed(c.File, err)
	}
	spec, err := outline.Parse(data, name)
	if err != nil {
		return errors.SpecLoadFailed(c.File, err)
	}

	sb, err := sidebar.Build(spec, pipeline.BuildOptions(cfg.Sidebars)...)
	if err != nil {
		return errors.SpecInvalid(c.File, 1, err)
	}

	if c.Output == "" {
		return specload.Write(g.Stdout, sb)
	}
	if err := export.WriteFile(c.Output, func(w io.Writer) error { return specload.Write(w, sb) }); err != nil {
		return errors.ExportFailed("yaml", c.Output, err)
	}
	return nil
}
