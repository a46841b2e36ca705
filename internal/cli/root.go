// Package cli wires the lazytree command line: an interactive tree browser
// on a terminal, and a scriptable dump command for pipes.
package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/lazytree/internal/cache"
	"github.com/rshade/lazytree/internal/config"
	"github.com/rshade/lazytree/internal/engine"
	"github.com/rshade/lazytree/internal/provider"
	"github.com/rshade/lazytree/internal/tree"
	"github.com/rshade/lazytree/internal/tui"
)

// rootOptions carries the resolved flag values shared by the commands.
type rootOptions struct {
	configPath  string
	path        string
	demo        bool
	plain       bool
	cacheTTL    time.Duration
	staleWindow time.Duration
	logLevel    string
	logFile     string

	cfg config.Config
}

// NewRootCmd creates the lazytree root command.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lazytree",
		Short: "Browse large hierarchies with on-demand loading",
		Long: "lazytree browses hierarchical data sets whose children are fetched lazily,\n" +
			"cached with a TTL, and refetched per-node on staleness or explicit retry.",
		Version: version,
		Example: "  lazytree --path /var/log\n  lazytree --demo\n  lazytree dump --depth 2 --output ndjson",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			// Flags beat env and file when set.
			if !cmd.Flags().Changed("cache-ttl") {
				opts.cacheTTL = cfg.CacheTTL()
			}
			if !cmd.Flags().Changed("stale-window") {
				opts.staleWindow = cfg.StaleWindow()
			}
			if opts.cacheTTL <= 0 {
				return fmt.Errorf("cache-ttl must be positive, got %s", opts.cacheTTL)
			}
			if opts.staleWindow <= 0 {
				return fmt.Errorf("stale-window must be positive, got %s", opts.staleWindow)
			}
			if !cmd.Flags().Changed("log-level") {
				opts.logLevel = cfg.Logging.Level
			}
			if opts.logFile == "" {
				opts.logFile = cfg.Logging.File
			}
			return config.InitLogger(opts.logLevel, opts.logFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $HOME/.lazytree/config.yaml)")
	pf.StringVar(&opts.path, "path", ".", "directory to browse")
	pf.BoolVar(&opts.demo, "demo", false, "browse the built-in demo data set instead of a directory")
	pf.DurationVar(&opts.cacheTTL, "cache-ttl", cache.DefaultTTL, "children cache entry lifetime")
	pf.DurationVar(&opts.staleWindow, "stale-window", engine.DefaultStaleWindow,
		"how long a fetched node stays fresh on re-expansion")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "also write logs to this file")

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable the interactive browser")

	cmd.AddCommand(newDumpCmd(opts))
	return cmd
}

// buildController assembles the provider, cache, and controller from the
// resolved options.
func buildController(opts *rootOptions) (*engine.Controller, string, error) {
	var (
		prov  engine.Provider
		title string
	)
	if opts.demo {
		prov = provider.Demo()
		title = "demo"
	} else {
		fsProv, err := provider.NewFS(opts.path)
		if err != nil {
			return nil, "", err
		}
		prov = fsProv
		title = opts.path
	}

	ctl := engine.NewController(prov,
		engine.WithCache(cache.NewStore[[]tree.Node](opts.cacheTTL)),
		engine.WithStaleWindow(opts.staleWindow),
		engine.WithLogger(config.GetLogger()),
	)
	return ctl, title, nil
}

func runBrowse(cmd *cobra.Command, opts *rootOptions) error {
	ctl, title, err := buildController(opts)
	if err != nil {
		return err
	}

	if tui.DetectOutputMode(opts.plain) != tui.OutputModeInteractive {
		// Not a terminal: behave like a one-level dump.
		return dumpTree(cmd, ctl, 1, outputJSON)
	}

	model := tui.NewBrowseModel(cmd.Context(), ctl, title)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
