package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aide/internal/assist"
	"aide/internal/history"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "chat with history context",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), strings.Join(args, " "))
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <topic...>",
	Short: "explain a concept or command",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant(cmd.Context())
		if err != nil {
			return err
		}
		reply, err := a.Explain(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		ui.Markdown(reply)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <description...>",
	Short: "generate code or text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant(cmd.Context())
		if err != nil {
			return err
		}
		reply, err := a.Generate(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		ui.Markdown(reply)
		return nil
	},
}

var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "say hello",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant(cmd.Context())
		if err != nil {
			return err
		}
		ui.Say(a.Greet(cmd.Context(), time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd, explainCmd, generateCmd, greetCmd)
}

func newAssistant(ctx context.Context) (*assist.Assistant, error) {
	model, err := newLLM(ctx)
	if err != nil {
		return nil, err
	}
	histPath, err := dataPath("history.json")
	if err != nil {
		return nil, err
	}
	return &assist.Assistant{LLM: model, History: history.Open(histPath)}, nil
}

func runChat(ctx context.Context, message string) error {
	a, err := newAssistant(ctx)
	if err != nil {
		return err
	}
	reply, err := a.Chat(ctx, message)
	if err != nil {
		return err
	}
	ui.Markdown(reply)
	return nil
}
