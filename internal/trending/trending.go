// Package trending scrapes the public model library for popular model names.
package trending

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Defaults for the public Ollama library listing.
const (
	DefaultURL     = "https://ollama.com/library?sort=popular"
	DefaultLimit   = 8
	DefaultTimeout = 5 * time.Second
)

// Fallback is returned when the listing cannot be fetched or yields nothing.
var Fallback = []string{"llama3.2", "mistral", "qwen2.5:0.5b", "gemma2", "phi3", "deepseek-coder-v2"}

const libraryPrefix = "/library/"

// Scraper fetches popular model names.
type Scraper struct {
	url    string
	limit  int
	client *http.Client
	log    zerolog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

func WithURL(u string) Option { return func(s *Scraper) { s.url = u } }

func WithLimit(n int) Option { return func(s *Scraper) { s.limit = n } }

func WithTimeout(d time.Duration) Option { return func(s *Scraper) { s.client.Timeout = d } }

func WithLogger(l zerolog.Logger) Option { return func(s *Scraper) { s.log = l } }

// New constructs a Scraper with the package defaults.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		url:    DefaultURL,
		limit:  DefaultLimit,
		client: &http.Client{Timeout: DefaultTimeout},
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limit <= 0 {
		s.limit = DefaultLimit
	}
	return s
}

// Popular returns up to limit model names in listing order. Any network or
// parse failure, or an empty listing, yields a copy of Fallback.
func (s *Scraper) Popular(ctx context.Context) []string {
	names, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("url", s.url).Msg("failed to fetch trending models")
	}
	if len(names) == 0 {
		return append([]string(nil), Fallback...)
	}
	return names
}

func (s *Scraper) fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("listing http error: %s", resp.Status)
	}
	return ParseLibrary(io.LimitReader(resp.Body, 8<<20), s.limit)
}

// ParseLibrary extracts model names from anchors of the form
// href="/library/<name>", deduplicated in document order, up to limit.
func ParseLibrary(r io.Reader, limit int) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	var names []string
	seen := map[string]bool{}
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			if name, ok := libraryName(n); ok && !seen[name] {
				seen[name] = true
				names = append(names, name)
				if len(names) >= limit {
					return false
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)
	return names, nil
}

func libraryName(n *html.Node) (string, bool) {
	for _, a := range n.Attr {
		if a.Key != "href" || !strings.HasPrefix(a.Val, libraryPrefix) {
			continue
		}
		name := strings.TrimPrefix(a.Val, libraryPrefix)
		if name == "" || name == "library" || strings.ContainsAny(name, "/\"") {
			return "", false
		}
		return name, true
	}
	return "", false
}
