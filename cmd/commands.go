package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kabin/internal/dataset"
)

// dirArg returns the directory argument, falling back to the configured one
func dirArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	path, _ := cmd.Flags().GetString("config")
	cfgMgr, err := loadConfig(path)
	if err != nil {
		return "", err
	}
	dir := cfgMgr.Get().Directory
	if dir == "" {
		return "", fmt.Errorf("no directory given and none configured")
	}
	return dir, nil
}

func newParseCmd() *cobra.Command {
	var (
		formatFlag string
		noHeader   bool
		phash      bool
	)

	cmd := &cobra.Command{
		Use:   "parse [dir]",
		Short: "Parse capture file names into timestamp, key and window records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(cmd, args)
			if err != nil {
				return err
			}

			res, err := dataset.Scan(dir, dataset.ScanOptions{PerceptualHash: phash})
			if err != nil {
				return err
			}

			errs := cmd.ErrOrStderr()
			for _, s := range res.Skipped {
				fmt.Fprintf(errs, "warning: %v\n", s.Err)
			}

			return dataset.Write(cmd.OutOrStdout(), res.Records, !noHeader, strings.ToLower(formatFlag))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", "tsv", "output format (tsv|json)")
	flags.BoolVar(&noHeader, "no-header", false, "omit the tsv header row")
	flags.BoolVar(&phash, "phash", false, "add a perceptual hash of each image")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Delete every .png file in the capture directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(cmd, args)
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to delete captures in %s without --yes", dir)
			}
			if _, err := os.Stat(dir); err != nil {
				return err
			}

			n, err := dataset.Clean(dir)
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d file(s) from %s\n", n, dir)
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kabin version %s\n", version)
		},
	}
}
