package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"aide/internal/search"
)

var flagCommunity bool

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "search the web and synthesize an answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	searchCmd.Flags().BoolVar(&flagCommunity, "community", false, "prefer forums and discussion sites")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(ctx context.Context, query string) error {
	model, err := newLLM(ctx)
	if err != nil {
		return err
	}

	ui.Info("searching: %s", query)
	answer, err := search.New(model).Run(ctx, query, search.Options{
		Community: flagCommunity,
		Depth:     search.UserDepth,
	})
	if err != nil {
		return err
	}
	ui.Markdown(answer)
	return nil
}
