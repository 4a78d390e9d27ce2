package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	_, _ = fmt.Fprintln(g.Stdout, "Initializing docnav project")
	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		_, _ = fmt.Fprintln(g.Stdout, "Initialization failed")
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to write configuration")
	}
	_, _ = fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}
