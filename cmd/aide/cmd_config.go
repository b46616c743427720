package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aide/internal/config"
	"aide/internal/console"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "configuration and credentials",
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "store the Gemini API key in the OS keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(ui.Out(), "Gemini API key: ")
		key, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(ui.Out())
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		trimmed := strings.TrimSpace(string(key))
		if trimmed == "" {
			return fmt.Errorf("empty key")
		}
		if err := config.StoreAPIKey(trimmed); err != nil {
			return err
		}
		ui.Say("API key stored in the system keyring.")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "print the active configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(ui.Out(), "config file:     %s\n", cfgPath)
		fmt.Fprintf(ui.Out(), "model:           %s\n", cfg.Model)
		fmt.Fprintf(ui.Out(), "theme:           %s\n", cfg.Theme)
		fmt.Fprintf(ui.Out(), "context window:  %d tokens\n", cfg.ContextWindow)
		fmt.Fprintf(ui.Out(), "command timeout: %ds\n", cfg.CommandTimeoutSeconds)
		fmt.Fprintf(ui.Out(), "max steps:       %d\n", cfg.MaxSteps)

		if os.Getenv(config.EnvAPIKey) != "" {
			fmt.Fprintf(ui.Out(), "api key:         from %s\n", config.EnvAPIKey)
		} else if _, err := config.ResolveAPIKey(cfg, cfgPath); err == nil {
			fmt.Fprintln(ui.Out(), "api key:         keyring")
		} else {
			fmt.Fprintln(ui.Out(), "api key:         not configured")
		}
		return nil
	},
}

var configThemeCmd = &cobra.Command{
	Use:   "theme <name>",
	Short: "set the console theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		valid := false
		for _, t := range console.ThemeNames() {
			if t == name {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown theme %q (themes: %s)", name, strings.Join(console.ThemeNames(), ", "))
		}
		cfg.Theme = name
		if err := cfg.Save(cfgPath); err != nil {
			return err
		}
		ui = console.New(name)
		ui.Say("theme set to " + name)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the aide version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(ui.Out(), "aide %s\n", version)
	},
}

func init() {
	configCmd.AddCommand(configSetKeyCmd, configShowCmd, configThemeCmd)
	rootCmd.AddCommand(configCmd, versionCmd)
}
