// Kabin - records a screenshot for every click and key press, labelled with
// the focused window, to build activity datasets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kabin/internal/config"
	"kabin/internal/logger"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kabin: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	dir        string
	headless   bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "kabin",
		Short:         "Capture a labelled screenshot for every click and key press",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMgr, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			cfg := cfgMgr.Get()
			logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

			a, err := newApp(cfgMgr, opts.dir)
			if err != nil {
				return err
			}
			if opts.headless {
				return a.runHeadless()
			}
			return a.runService()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config.json (default: per-user config directory)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "save directory for this run (not persisted)")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "record until interrupted without a tray icon")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func loadConfig(path string) (*config.Manager, error) {
	var (
		m   *config.Manager
		err error
	)
	if path != "" {
		m = config.NewManagerAt(path)
	} else if m, err = config.NewManager(); err != nil {
		return nil, fmt.Errorf("initialize config: %w", err)
	}
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return m, nil
}
