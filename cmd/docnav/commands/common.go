package commands

import (
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/errors"
	"github.com/alecthomas/kong"
)

// DefaultConfigFile is the configuration path used when -c is not given.
const DefaultConfigFile = "docnav.yaml"

// Global carries state shared by all commands.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal returns a Global writing to the process streams.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docnav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate      ValidateCmd      `cmd:"" help:"Validate the sidebar specification and report every violation"`
	Build         BuildCmd         `cmd:"" help:"Build the sidebar tree and write configured exports"`
	Init          InitCmd          `cmd:"" help:"Initialize a new configuration file"`
	Watch         WatchCmd         `cmd:"" help:"Rebuild exports whenever the sidebar specification changes"`
	ImportOutline ImportOutlineCmd `cmd:"" name:"import-outline" help:"Convert a Markdown outline into a YAML sidebar specification"`

	cfg    *config.Config
	cfgErr error
}

// AfterApply runs after flag parsing; loads configuration and sets up
// logging once. Configuration errors are reported by the commands that
// need a configuration, so init still works with a broken file.
func (c *CLI) AfterApply(g *Global) error {
	c.cfg, c.cfgErr = loadConfig(c.Config)

	logging := config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatText}
	if c.cfgErr == nil {
		logging = c.cfg.Logging
	}
	level := logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(g.Stderr, logging.Format, level))
	return nil
}

func newLogger(w io.Writer, format config.LogFormat, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LoadedConfig returns the configuration read in AfterApply.
func (c *CLI) LoadedConfig() (*config.Config, error) {
	if c.cfg == nil && c.cfgErr == nil {
		c.cfg, c.cfgErr = loadConfig(c.Config)
	}
	return c.cfg, c.cfgErr
}

// loadConfig reads path. A missing file is fine when it is the default
// path; the built-in defaults are used instead.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		return cfg, nil
	case stderrors.Is(err, config.ErrConfigNotFound) && path == DefaultConfigFile:
		return config.Default(config.DefaultSidebarFile), nil
	case stderrors.Is(err, config.ErrConfigNotFound):
		return nil, errors.ConfigNotFound(path)
	default:
		return nil, errors.ConfigInvalid(err)
	}
}
