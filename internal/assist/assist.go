// Package assist implements the conversational verbs: chat, explain,
// generate, greet, and the free-text command router.
package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aide/internal/agent"
	"aide/internal/history"
	"aide/internal/llm"
)

// historyBudget caps how many tokens of past conversation feed a chat turn.
const historyBudget = 4000

// Assistant bundles the reasoning client with the conversation log.
type Assistant struct {
	LLM     llm.Client
	History *history.Log
}

// Chat answers a message with recent history as context and records both
// halves of the exchange.
func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	var b strings.Builder
	if a.History != nil {
		for _, e := range a.History.Recent(historyBudget, agent.DefaultEstimate) {
			fmt.Fprintf(&b, "%s: %s\n", e.Role, e.Content)
		}
	}

	system := "You are aide, a friendly and capable personal terminal assistant. " +
		"Answer naturally and concisely in markdown."
	prompt := message
	if b.Len() > 0 {
		prompt = fmt.Sprintf("Recent conversation:\n%s\nuser: %s", b.String(), message)
	}

	reply, err := a.LLM.Generate(ctx, system, prompt)
	if err != nil {
		return "", err
	}

	if a.History != nil {
		a.History.Append(history.RoleUser, message)
		a.History.Append(history.RoleAssistant, reply)
		_ = a.History.Save()
	}
	return reply, nil
}

// Explain produces a didactic explanation of a topic.
func (a *Assistant) Explain(ctx context.Context, topic string) (string, error) {
	system := "You explain technical topics clearly for a terminal user. " +
		"Use short sections, concrete examples, and markdown."
	return a.LLM.Generate(ctx, system, "Explain: "+topic)
}

// Generate produces content (code, text, config) from a description.
func (a *Assistant) Generate(ctx context.Context, description string) (string, error) {
	system := "You generate exactly what was asked for: code, text, or " +
		"configuration. Markdown with fenced code blocks; minimal commentary."
	return a.LLM.Generate(ctx, system, description)
}

// Greet returns a time-of-day greeting. Model failures fall back to a
// static line so the command never errors out.
func (a *Assistant) Greet(ctx context.Context, now time.Time) string {
	part := "day"
	switch h := now.Hour(); {
	case h < 6:
		part = "night"
	case h < 12:
		part = "morning"
	case h < 18:
		part = "afternoon"
	default:
		part = "evening"
	}

	system := "You are aide, a friendly personal terminal assistant."
	prompt := fmt.Sprintf("Greet the user briefly. It is currently %s time (%s).",
		part, now.Format("15:04"))

	reply, err := a.LLM.Generate(ctx, system, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		return fmt.Sprintf("Good %s! What can I do for you?", part)
	}
	return reply
}
