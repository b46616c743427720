package assist

import (
	"context"
	"encoding/json"
	"strings"
)

// Verbs the router can choose from.
const (
	VerbDo       = "do"
	VerbSearch   = "search"
	VerbRemember = "remember_add"
	VerbGenerate = "generate"
	VerbExplain  = "explain"
	VerbChat     = "chat"
)

// Route is a routed free-text command.
type Route struct {
	Verb string `json:"command"`
	Arg  string `json:"argument"`
}

const routeSystem = `You route a user's free-text request to one command.
Reply with exactly one JSON object: {"command": "<verb>", "argument": "<the request, cleaned up>"}
Verbs:
- do: a task to perform on this machine (files, processes, installs)
- search: a question needing current information from the web
- remember_add: a reminder or note to keep
- generate: a request to produce code, text, or configuration
- explain: a request to explain a concept or command
- chat: everything else (conversation, opinions, small talk)`

// RouteText asks the model which verb fits the request. Any parse problem
// falls back to chat, which can handle arbitrary text.
func (a *Assistant) RouteText(ctx context.Context, text string) Route {
	fallback := Route{Verb: VerbChat, Arg: text}

	raw, err := a.LLM.Generate(ctx, routeSystem, text)
	if err != nil {
		return fallback
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return fallback
	}

	var r Route
	if err := json.Unmarshal([]byte(raw[start:end+1]), &r); err != nil {
		return fallback
	}

	switch r.Verb {
	case VerbDo, VerbSearch, VerbRemember, VerbGenerate, VerbExplain, VerbChat:
	default:
		return fallback
	}
	if strings.TrimSpace(r.Arg) == "" {
		r.Arg = text
	}
	return r
}
