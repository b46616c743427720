package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// searchDuckDuckGo scrapes the no-JS HTML endpoint.
func (c *Client) searchDuckDuckGo(ctx context.Context, query string) ([]Result, error) {
	endpoint := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)
	doc, err := c.getDocument(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return parseDuckDuckGo(doc), nil
}

func parseDuckDuckGo(doc *html.Node) []Result {
	var results []Result
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" || !hasClass(n, "result__a") {
			return
		}
		href := attr(n, "href")
		title := strings.TrimSpace(textContent(n))
		if href == "" || title == "" {
			return
		}
		// DDG wraps targets in a redirect (uddg query param).
		if u, err := url.Parse(href); err == nil {
			if real := u.Query().Get("uddg"); real != "" {
				href = real
			}
		}
		results = append(results, Result{Title: title, URL: href})
	})
	return results
}

// searchGoogle scrapes the classic results page as a fallback.
func (c *Client) searchGoogle(ctx context.Context, query string) ([]Result, error) {
	endpoint := "https://www.google.com/search?q=" + url.QueryEscape(query)
	doc, err := c.getDocument(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return parseGoogle(doc), nil
}

func parseGoogle(doc *html.Node) []Result {
	var results []Result
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := attr(n, "href")
		if !strings.HasPrefix(href, "/url?q=") {
			return
		}
		if u, err := url.Parse(href); err == nil {
			href = u.Query().Get("q")
		}
		if href == "" || strings.Contains(href, "google.com") {
			return
		}
		// The h3 inside the anchor is the result title.
		var title string
		walk(n, func(h *html.Node) {
			if h.Type == html.ElementNode && h.Data == "h3" && title == "" {
				title = strings.TrimSpace(textContent(h))
			}
		})
		if title == "" {
			return
		}
		results = append(results, Result{Title: title, URL: href})
	})
	return results
}

func (c *Client) getDocument(ctx context.Context, endpoint string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", randomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned %s", resp.Status)
	}
	return html.Parse(io.LimitReader(resp.Body, 2<<20))
}

// walk visits every node depth-first.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}
