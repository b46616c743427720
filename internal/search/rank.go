package search

import (
	"net/url"
	"sort"
	"strings"
)

// trustedDomains get a ranking boost: documentation and reference sites
// that tend to answer technical questions directly.
var trustedDomains = map[string]float64{
	"stackoverflow.com":  3.0,
	"superuser.com":      2.5,
	"unix.stackexchange": 2.5,
	"askubuntu.com":      2.5,
	"github.com":         2.0,
	"wikipedia.org":      2.0,
	"archlinux.org":      2.0,
	"kernel.org":         1.5,
	"mozilla.org":        1.5,
	"go.dev":             2.0,
	"python.org":         1.5,
}

// communityDomains are boosted only in community mode, where the user asked
// for opinions and discussion rather than reference answers.
var communityDomains = map[string]float64{
	"reddit.com":           3.0,
	"news.ycombinator.com": 2.5,
	"lobste.rs":            2.0,
	"discourse.":           1.5,
	"forum.":               1.5,
}

// blacklistedDomains never make it into the fetch set.
var blacklistedDomains = []string{
	"pinterest.",
	"quora.com",
	"facebook.com",
	"instagram.com",
	"tiktok.com",
}

// rank scores and orders results: domain reputation plus query-term overlap
// in the title. Blacklisted hosts and duplicate URLs are dropped.
func rank(results []Result, query string, community bool) []Result {
	terms := strings.Fields(strings.ToLower(query))
	seen := make(map[string]bool)

	var ranked []Result
	for _, r := range results {
		host := hostOf(r.URL)
		if host == "" || blacklisted(host) || seen[r.URL] {
			continue
		}
		seen[r.URL] = true

		score := 1.0
		for domain, boost := range trustedDomains {
			if strings.Contains(host, domain) {
				score += boost
			}
		}
		if community {
			for domain, boost := range communityDomains {
				if strings.Contains(host, domain) || strings.Contains(r.URL, domain) {
					score += boost
				}
			}
		}

		title := strings.ToLower(r.Title)
		for _, t := range terms {
			if strings.Contains(title, t) {
				score += 0.5
			}
		}

		r.Score = score
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func blacklisted(host string) bool {
	for _, b := range blacklistedDomains {
		if strings.Contains(host, b) {
			return true
		}
	}
	return false
}
