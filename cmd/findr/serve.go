package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/findr/internal/types"
)

var (
	baseDir     string
	serveLogger = slog.Default()
	// serveDefaults holds the configured names, types and max depth, used
	// when a tool call leaves them unset.
	serveDefaults = types.FindParams{MaxDepth: -1}
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the find tool over MCP",
		Long: `serve runs a Model Context Protocol (MCP) server on stdio that
exposes a single "find" tool. Searches are confined to dir, which
defaults to the current directory.`,
		Example: `findr serve ~/src`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	baseDir = absDir
	serveLogger = logger
	serveDefaults = cfg.Params(nil)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "findr",
		Version: version,
	}, nil)

	registerTools(server)

	logger.Info("serving find tool", "dir", baseDir)
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}
