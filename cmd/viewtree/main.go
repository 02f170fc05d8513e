package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewtree/internal/config"
	vterrors "github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/view"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╻ ╻╻┏━╸╻ ╻╺┳╸┏━┓┏━╸┏━╸
  ┃┏┛┃┣╸ ┃╻┃ ┃ ┣┳┛┣╸ ┣╸
  ┗┛ ╹┗━╸┗┻┛ ╹ ╹┗╸┗━╸┗━╸
`

// cli holds state shared by all commands.
type cli struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
	color  bool
}

func main() {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "viewtree",
		Short: "Lifecycle propagation and list reconciliation for view trees",
		Long: `viewtree mounts component trees into a host document and keeps
lifecycle callbacks in sync as nodes are attached, moved and removed.

Commands:
  • demo     run scripted scenarios and print lifecycle traces
  • render   print the markup a scenario produces
  • serve    inspect a live tree in the browser
  • journal  browse recorded event sessions`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file (default: viewtree.json or viewtree.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		demoCmd(c),
		renderCmd(c),
		serveCmd(c),
		journalCmd(c),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		vterrors.PrintError(err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger before any command runs.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	c.color = !c.noColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	if !c.color {
		vterrors.DisableColors()
	}

	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		c.cfg.Log.Level = c.logLevel
		if err := c.cfg.Validate(); err != nil {
			return err
		}
	}

	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.cfg.SlogLevel(),
	}))
	slog.SetDefault(c.logger)
	return nil
}

// engineOptions returns the engine options implied by the configuration.
func (c *cli) engineOptions(extra ...view.Option) []view.Option {
	opts := []view.Option{
		view.WithLogger(c.logger),
		view.WithShadowBoundaries(c.cfg.Engine.ShadowBoundaries),
	}
	return append(opts, extra...)
}

// printBanner prints the viewtree banner.
func (c *cli) printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func (c *cli) success(format string, args ...any) {
	fmt.Printf("%s %s\n", c.paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func (c *cli) info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (c *cli) warn(format string, args ...any) {
	fmt.Printf("%s %s\n", c.paint("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}

func (c *cli) paint(code, text string) string {
	if !c.color {
		return text
	}
	return code + text + "\033[0m"
}
