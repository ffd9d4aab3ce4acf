package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/sectors/internal/console"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
)

var BuildVersion = "dev"

var (
	configPath string
	apiURL     string
	token      string
	timeout    time.Duration
	logFile    string
	logLevel   string
)

// rootCmd opens the interactive sector console.
var rootCmd = &cobra.Command{
	Use:   "sectorctl",
	Short: "Manage sectors from the terminal",
	Long: `sectorctl talks to the sectors API.

Run without a subcommand to open the interactive console:
  a        add a sector
  e/enter  edit the selected sector
  d        delete the selected sector
  r        reload the list
  q        quit`,
	SilenceUsage: true,
	RunE:         runConsole,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", console.DefaultConfigPath(), "path to the YAML config file")
	pf.StringVar(&apiURL, "api-url", "", "base URL of the sectors API")
	pf.StringVar(&token, "token", "", "bearer token sent with every request")
	pf.DurationVar(&timeout, "timeout", 0, "per-request timeout")
	pf.StringVar(&logFile, "log-file", "", "file the console logs to")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd, tokenCmd)
	rootCmd.Version = BuildVersion
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers command line flags over the environment and config file.
func loadConfig(cmd *cobra.Command) (console.Config, error) {
	cfg, err := console.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("token") {
		cfg.Token = token
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	return cfg, cfg.Validate()
}

// openLogger logs to cfg.LogFile, since stdout belongs to the terminal UI.
func openLogger(cfg console.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slogx.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slogx.New(slogx.Config{
		Service: "sectorctl",
		Version: BuildVersion,
		Level:   cfg.LogLevel,
		Format:  "text",
		Output:  f,
	})
	return logger, func() { _ = f.Close() }, nil
}

func runConsole(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("console starting", "api_url", cfg.APIURL)

	model := console.New(cfg.Client(),
		console.WithLogger(logger),
		console.WithContext(cmd.Context()),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		logger.Error("console exited with error", "error", err)
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
