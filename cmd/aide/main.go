// aide is a personal terminal assistant: an agentic task runner plus
// conversational helpers, backed by Gemini.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"aide/internal/config"
	"aide/internal/console"
	"aide/internal/llm"
	"aide/internal/logging"
)

var version = "0.3.0"

var (
	flagVerbose bool
	flagConfig  string
)

// Shared per-invocation state, initialized in PersistentPreRunE.
var (
	cfg     *config.Config
	cfgPath string
	ui      *console.Console
)

var rootCmd = &cobra.Command{
	Use:   "aide [request...]",
	Short: "personal terminal assistant",
	Long: `aide is a personal terminal assistant. It runs multi-step tasks on
your machine with your confirmation, searches the web, keeps reminders,
and chats.

Free text that matches no subcommand is routed automatically:

  aide what's eating my disk space
  aide remind me to stretch at 16:00`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runFreeText(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.config/aide/config.yaml)")
}

func initApp() error {
	if err := logging.Init(flagVerbose); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	var err error
	cfgPath = flagConfig
	if cfgPath == "" {
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	ui = console.New(cfg.Theme)
	return nil
}

// newLLM resolves the API key and builds the Gemini client.
func newLLM(ctx context.Context) (llm.Client, error) {
	key, err := config.ResolveAPIKey(cfg, cfgPath)
	if err != nil {
		return nil, err
	}
	return llm.NewGemini(ctx, key, cfg.Model)
}

// dataPath returns a file location inside the aide config directory.
func dataPath(name string) (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logging.Sync()
	if err != nil {
		if ui != nil {
			ui.Errorf("%v", err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
