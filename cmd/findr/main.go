// Package main implements findr, a find-style search for filesystem entries.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/findr/internal/config"
	"github.com/taigrr/findr/internal/output"
)

var configPath string

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findr [path...]",
		Short: "Find filesystem entries by name and type",
		Long: `findr walks each path in turn and prints every entry whose name
matches one of the --name patterns and whose type is one of the
--type values. With no patterns or no types, that group matches
everything. Unreadable directories are reported on stderr and the
walk carries on.

A path named serve must follow -- (or be spelled ./serve) so it is not
taken for the serve command.`,
		Example: `findr . -n '\.go$' -t f
findr src test -t d
findr -t d -- serve
findr --format print0 -n '\.log$' | xargs -0 wc -l`,
		Args: cobra.ArbitraryArgs,
		RunE: runFind,
	}

	flags := cmd.Flags()
	flags.StringArrayP(config.KeyName, "n", nil, "name pattern (regular expression, repeatable)")
	flags.StringSliceP(config.KeyType, "t", nil, "entry type: d, f or l (repeatable, comma separated)")
	flags.Int(config.KeyMaxDepth, -1, "descend at most N levels below each path (-1 for no limit)")
	flags.String(config.KeyFormat, string(output.Plain), "output format: plain, print0 or yaml")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&configPath, "config", "", "config file (default: findr.yaml)")
	persistent.String(config.KeyLogLevel, "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newServeCmd())
	return cmd
}

// loadConfig merges the config file, environment and flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	printer := output.New(cmd.OutOrStdout(), format)

	stats, err := find(cmd.Context(), cfg.Params(args), logger,
		printer.Print, output.Reporter(cmd.ErrOrStderr(), "findr"))
	if closeErr := printer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if stats.Errors > 0 {
		return fmt.Errorf("%d path(s) could not be read", stats.Errors)
	}
	return nil
}
