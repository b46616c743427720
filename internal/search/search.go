// Package search implements the web research collaborator: engine query,
// result ranking, concurrent page fetch, and LLM synthesis.
package search

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aide/internal/llm"
	"aide/internal/logging"
)

const (
	// Pages fed into synthesis: the agent tool keeps context lean, the
	// user-facing command digs deeper.
	AgentDepth = 3
	UserDepth  = 7

	fetchTimeout = 15 * time.Second
	pageCharCap  = 6000
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
}

// Result is one ranked search hit.
type Result struct {
	Title string
	URL   string
	Score float64
}

// Client runs the search pipeline.
type Client struct {
	http *http.Client
	llm  llm.Client
	log  *zap.Logger
}

// New builds a search client on top of the reasoning service.
func New(model llm.Client) *Client {
	return &Client{
		http: &http.Client{Timeout: fetchTimeout},
		llm:  model,
		log:  logging.L().Named("search"),
	}
}

// Options tune one search run.
type Options struct {
	// Community biases ranking toward forums and discussion sites.
	Community bool
	// Depth is how many pages to fetch and synthesize from.
	Depth int
}

// Run searches the web and synthesizes an answer. The returned string is
// markdown from the model.
func (c *Client) Run(ctx context.Context, query string, opts Options) (string, error) {
	if opts.Depth <= 0 {
		opts.Depth = AgentDepth
	}

	results, err := c.engineSearch(ctx, query)
	if err != nil {
		return "", fmt.Errorf("searching: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no search results for %q", query)
	}

	ranked := rank(results, query, opts.Community)
	if len(ranked) > opts.Depth {
		ranked = ranked[:opts.Depth]
	}

	pages := c.fetchAll(ctx, ranked)
	if len(pages) == 0 {
		return "", fmt.Errorf("could not fetch any result page for %q", query)
	}

	return c.synthesize(ctx, query, pages)
}

// engineSearch queries DuckDuckGo's HTML endpoint, falling back to Google
// when it yields nothing.
func (c *Client) engineSearch(ctx context.Context, query string) ([]Result, error) {
	results, err := c.searchDuckDuckGo(ctx, query)
	if err == nil && len(results) > 0 {
		return results, nil
	}
	if err != nil {
		c.log.Debug("duckduckgo search failed, falling back", zap.Error(err))
	}
	return c.searchGoogle(ctx, query)
}

// page pairs a fetched result with its extracted text.
type page struct {
	Result
	Text string
}

// fetchAll downloads the ranked pages concurrently. Individual failures
// are dropped; whatever arrives feeds synthesis.
func (c *Client) fetchAll(ctx context.Context, ranked []Result) []page {
	pages := make([]page, len(ranked))
	var g errgroup.Group
	g.SetLimit(4)

	for i, r := range ranked {
		g.Go(func() error {
			text, err := c.fetchText(ctx, r.URL)
			if err != nil {
				c.log.Debug("page fetch failed",
					zap.String("url", r.URL), zap.Error(err))
				return nil
			}
			pages[i] = page{Result: r, Text: text}
			return nil
		})
	}
	_ = g.Wait()

	out := pages[:0]
	for _, p := range pages {
		if p.Text != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Client) synthesize(ctx context.Context, query string, pages []page) (string, error) {
	var b strings.Builder
	for i, p := range pages {
		fmt.Fprintf(&b, "Source %d: %s (%s)\n%s\n\n", i+1, p.Title, p.URL, p.Text)
	}

	system := "You answer questions from fetched web pages. " +
		"Be concise, cite sources by number, and say so when the sources disagree or do not answer the question. " +
		"Reply in markdown."
	prompt := fmt.Sprintf("Question: %s\n\n%sAnswer the question from these sources.", query, b.String())

	answer, err := c.llm.Generate(ctx, system, prompt)
	if err != nil {
		return "", fmt.Errorf("synthesizing answer: %w", err)
	}
	return answer, nil
}

func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}
