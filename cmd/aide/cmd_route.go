package main

import (
	"context"

	"aide/internal/assist"
)

// runFreeText routes bare arguments to the right verb via the model.
func runFreeText(ctx context.Context, text string) error {
	a, err := newAssistant(ctx)
	if err != nil {
		return err
	}

	route := a.RouteText(ctx, text)

	switch route.Verb {
	case assist.VerbDo:
		return runDo(ctx, route.Arg)
	case assist.VerbSearch:
		return runSearch(ctx, route.Arg)
	case assist.VerbRemember:
		msg, err := addReminder(ctx, a.LLM, route.Arg)
		if err != nil {
			return err
		}
		ui.Say(msg)
		return nil
	case assist.VerbGenerate:
		reply, err := a.Generate(ctx, route.Arg)
		if err != nil {
			return err
		}
		ui.Markdown(reply)
		return nil
	case assist.VerbExplain:
		reply, err := a.Explain(ctx, route.Arg)
		if err != nil {
			return err
		}
		ui.Markdown(reply)
		return nil
	default:
		reply, err := a.Chat(ctx, route.Arg)
		if err != nil {
			return err
		}
		ui.Markdown(reply)
		return nil
	}
}
