package tool

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ragmesh/ragmesh/core"
)

const defaultDuckDuckGoEndpoint = "https://lite.duckduckgo.com/lite/"

// SearchResult is one parsed web search hit.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// DuckDuckGoOptions configure the web search tool.
type DuckDuckGoOptions struct {
	// HTTPClient used for requests. Defaults to a client with a 15s timeout.
	HTTPClient *http.Client
	// Endpoint overrides the DuckDuckGo lite URL (tests point this at a fake).
	Endpoint string
	// MaxResults caps how many hits are rendered into the observation.
	MaxResults int
}

// DuckDuckGoTool performs web searches against DuckDuckGo's lite HTML
// interface. The lite page is stable enough to scrape with a pair of
// regexes and needs no API key.
//
// Provider failures (network errors, non-200 statuses, empty result pages)
// are returned as descriptive result strings, never as errors: the agent
// decides in natural language whether to rephrase, retry or give up.
type DuckDuckGoTool struct {
	client     *http.Client
	endpoint   string
	maxResults int
}

// NewDuckDuckGoTool constructs the web search tool.
func NewDuckDuckGoTool(optFns ...func(o *DuckDuckGoOptions)) *DuckDuckGoTool {
	opts := DuckDuckGoOptions{
		Endpoint:   defaultDuckDuckGoEndpoint,
		MaxResults: 10,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &DuckDuckGoTool{
		client:     opts.HTTPClient,
		endpoint:   opts.Endpoint,
		maxResults: opts.MaxResults,
	}
}

// Name implements Tool.
func (t *DuckDuckGoTool) Name() string { return "web_search" }

// Description implements Tool.
func (t *DuckDuckGoTool) Description() string {
	return "Performs a web search for your query and returns a list of the top search results."
}

// Parameters implements Tool.
func (t *DuckDuckGoTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query to perform",
			},
		},
		"required": []string{"query"},
	}
}

// Call implements Tool. The result is always a string.
func (t *DuckDuckGoTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return nil, NewToolError(t.Name(), "query must be a non-empty string", "VALIDATION_ERROR")
	}

	logger := toolCtx.Logger()
	start := time.Now()

	results, err := t.search(toolCtx, query)
	if err != nil {
		logger.Warn("tool.web_search.provider_error", "query", query, "error", err.Error())
		return fmt.Sprintf("Error performing web search for %q: %v", query, err), nil
	}

	logger.Info("tool.web_search.done",
		"query", query,
		"results", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if len(results) == 0 {
		return fmt.Sprintf("No results found for query %q. Try a less restrictive or shorter query.", query), nil
	}
	return formatResults(results), nil
}

// search posts the query to the lite endpoint and parses the HTML response.
// A 429 is retried with doubling delays, bounded by the request context.
func (t *DuckDuckGoTool) search(toolCtx *core.ToolContext, query string) ([]SearchResult, error) {
	ctx := toolCtx.Context()

	formData := url.Values{}
	formData.Set("q", query)

	var resp *http.Response
	delay := time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(formData.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err = t.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	results := parseLiteResults(string(body))
	if len(results) > t.maxResults {
		results = results[:t.maxResults]
	}
	return results, nil
}

var (
	ddgLinkPattern    = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	ddgLinkPatternAlt = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	ddgSnippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// parseLiteResults extracts search results from the DuckDuckGo lite HTML.
// The lite page pairs result links with snippet table cells positionally.
func parseLiteResults(html string) []SearchResult {
	matches := ddgLinkPattern.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = ddgLinkPatternAlt.FindAllStringSubmatch(html, -1)
	}
	snippetMatches := ddgSnippetPattern.FindAllStringSubmatch(html, -1)

	var results []SearchResult
	for i, match := range matches {
		if len(match) < 3 {
			continue
		}
		r := SearchResult{
			URL:   strings.TrimSpace(match[1]),
			Title: unescapeHTML(strings.TrimSpace(match[2])),
		}
		if i < len(snippetMatches) && len(snippetMatches[i]) > 1 {
			snippet := htmlTagPattern.ReplaceAllString(snippetMatches[i][1], "")
			r.Snippet = unescapeHTML(strings.TrimSpace(snippet))
		}
		if r.URL != "" && r.Title != "" {
			results = append(results, r)
		}
	}
	return results
}

func unescapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&#39;", "'",
		"&nbsp;", " ",
	)
	return replacer.Replace(s)
}

// formatResults renders hits as the markdown block the agent observes.
func formatResults(results []SearchResult) string {
	var b strings.Builder
	b.WriteString("## Search Results\n")
	for _, r := range results {
		fmt.Fprintf(&b, "\n[%s](%s)\n%s\n", r.Title, r.URL, r.Snippet)
	}
	return b.String()
}
