package main

import (
	"log/slog"

	"git.home.luguber.info/inful/docnav/cmd/docnav/commands"
	"git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal()

	parser := kong.Parse(cli,
		kong.Name("docnav"),
		kong.Description("Build and validate documentation sidebar navigation trees."),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
		kong.UsageOnError(),
	)

	err := parser.Run(global, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
