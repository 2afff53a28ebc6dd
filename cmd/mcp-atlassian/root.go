package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/atlmcp/mcp-atlassian/internal/atlassian"
	"github.com/atlmcp/mcp-atlassian/internal/config"
	"github.com/atlmcp/mcp-atlassian/internal/confluence"
	"github.com/atlmcp/mcp-atlassian/internal/jira"
	mcpserver "github.com/atlmcp/mcp-atlassian/internal/mcp"
	"github.com/atlmcp/mcp-atlassian/pkg/logging"
)

// version is stamped at build time via -ldflags.
var version = "0.1.0"

var (
	flagConfig    string
	flagEnvFile   string
	flagTransport string
	flagListen    string
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "mcp-atlassian",
	Short: "MCP server for Atlassian Confluence and Jira",
	Long: `mcp-atlassian exposes Confluence and Jira Server/Data Center REST APIs
as Model Context Protocol tools and resources.

Credentials come from CONFLUENCE_URL/CONFLUENCE_API_TOKEN and
JIRA_URL/JIRA_API_TOKEN, a config file, or ~/.netrc. At least one backend
must be configured.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to configuration directory or file")
	rootCmd.Flags().StringVar(&flagEnvFile, "env-file", "", "load environment variables from this file before reading config")
	rootCmd.Flags().StringVar(&flagTransport, "transport", "", "transport to serve on: stdio or sse (default stdio)")
	rootCmd.Flags().StringVar(&flagListen, "listen", "", "address for the sse transport (default :8093)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, or error")
	rootCmd.Version = version
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", flagEnvFile, err)
		}
	} else {
		// A local .env is optional.
		_ = godotenv.Load()
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagLogLevel != "" {
		cfg.Server.LogLevel = flagLogLevel
	}
	if flagTransport != "" {
		cfg.Server.Transport = flagTransport
	}
	if flagListen != "" {
		cfg.Server.Listen = flagListen
	}

	logger := logging.New(cfg.Server.LogLevel)

	deps := mcpserver.Dependencies{Logger: logger}

	if cfg.Confluence.Configured() {
		client, err := atlassian.NewClient(cfg.Confluence.URL, cfg.Confluence.APIToken, logger)
		if err != nil {
			return fmt.Errorf("confluence client: %w", err)
		}
		deps.Confluence = confluence.NewService(client)
	}

	if cfg.Jira.Configured() {
		client, err := atlassian.NewClient(cfg.Jira.URL, cfg.Jira.APIToken, logger)
		if err != nil {
			return fmt.Errorf("jira client: %w", err)
		}
		deps.Jira = jira.NewService(client)
	}

	logger.Info("starting mcp-atlassian",
		"version", version,
		"transport", cfg.Server.Transport,
		"confluence", cfg.Confluence.Configured(),
		"jira", cfg.Jira.Configured(),
	)

	srv := mcpserver.NewServer(version, deps)
	mcpserver.RegisterResources(ctx, srv, deps)

	switch cfg.Server.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(ctx, srv, logger)
	case "sse":
		return mcpserver.ServeSSE(ctx, srv, cfg.Server.Listen, logger)
	default:
		return fmt.Errorf("unknown transport %q: expected stdio or sse", cfg.Server.Transport)
	}
}
