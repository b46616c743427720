package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aide/internal/remind"
)

var rememberCmd = &cobra.Command{
	Use:   "remember",
	Short: "manage reminders",
}

var rememberAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "save a reminder, schedule words included",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := newLLM(cmd.Context())
		if err != nil {
			return err
		}
		msg, err := addReminder(cmd.Context(), model, strings.Join(args, " "))
		if err != nil {
			return err
		}
		ui.Say(msg)
		return nil
	},
}

var rememberLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "list pending reminders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		pending, err := store.Pending()
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			ui.Info("no pending reminders")
			return nil
		}
		for i, r := range pending {
			when := "unscheduled"
			if r.Due != nil {
				when = r.Due.Format("Mon 2006-01-02 15:04")
			}
			fmt.Fprintf(ui.Out(), "%2d. %s  (%s)\n", i+1, r.Text, when)
		}
		return nil
	},
}

var rememberDoneCmd = &cobra.Command{
	Use:   "done <n>",
	Short: "mark a reminder as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveReminder(args[0], "completed", (*remind.Store).Done)
	},
}

var rememberRmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveReminder(args[0], "deleted", (*remind.Store).Remove)
	},
}

var rememberWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "run in the foreground and notify when reminders come due",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		dbPath, err := dataPath("reminders.db")
		if err != nil {
			return err
		}
		ui.Info("watching reminders; Ctrl-C to stop")
		err = remind.NewWatcher(store, dbPath).Run(cmd.Context())
		if err != nil && cmd.Context().Err() != nil {
			return nil // clean shutdown
		}
		return err
	},
}

func init() {
	rememberCmd.AddCommand(rememberAddCmd, rememberLsCmd, rememberDoneCmd, rememberRmCmd, rememberWatchCmd)
	rootCmd.AddCommand(rememberCmd)
}

func openStore() (*remind.Store, error) {
	dbPath, err := dataPath("reminders.db")
	if err != nil {
		return nil, err
	}
	return remind.Open(dbPath)
}

func resolveReminder(arg, verb string, op func(*remind.Store, int) (*remind.Reminder, error)) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("not a reminder number: %s", arg)
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := op(store, n)
	if err != nil {
		return err
	}
	ui.Say(fmt.Sprintf("%s: %s", verb, r.Text))
	return nil
}
