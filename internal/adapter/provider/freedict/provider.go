package freedict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/k3a/html2text"
	"github.com/sethvargo/go-retry"

	"github.com/heartmarshall/vocabmeanings/internal/provider"
)

const (
	DefaultBaseURL     = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoff     = time.Second
)

// errNotFound marks a definitive 404. It never leaves the package.
var errNotFound = errors.New("word not found")

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	backoff     time.Duration
	log         *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.httpClient.Timeout = d }
}

// WithMaxAttempts sets the total number of attempts per word, including
// the first. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(p *Provider) {
		if n >= 1 {
			p.maxAttempts = n
		}
	}
}

// WithBackoff sets the constant delay between attempts. Non-positive
// values are ignored.
func WithBackoff(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.backoff = d
		}
	}
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
		log:         logger.With("adapter", "freedict"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger, opts ...Option) *Provider {
	return NewProvider(logger, append([]Option{WithBaseURL(baseURL)}, opts...)...)
}

// FetchEntry fetches a dictionary entry for the given word.
// Returns nil, nil if the word is not found (HTTP 404); a 404 is never
// retried. Every other failure is retried with a constant backoff until the
// attempts run out, then the last failure is returned.
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	var (
		result  *provider.DictionaryResult
		attempt int
	)

	b := retry.WithMaxRetries(uint64(p.maxAttempts-1), retry.NewConstant(p.backoff))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++

		res, err := p.fetchOnce(ctx, reqURL)
		switch {
		case err == nil:
			result = res
			return nil
		case errors.Is(err, errNotFound):
			result = nil
			return nil
		case ctx.Err() != nil:
			return err
		}

		p.log.WarnContext(ctx, "freedict attempt failed",
			slog.String("word", word),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.maxAttempts),
			slog.String("error", err.Error()),
		)
		return retry.RetryableError(err)
	})
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed",
			slog.String("word", word),
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("freedict: %s: %w", word, err)
	}

	if result == nil {
		p.log.DebugContext(ctx, "freedict not found", slog.String("word", word))
		return nil, nil
	}

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("attempts", attempt),
		slog.Int("senses", len(result.Senses)),
	)

	return result, nil
}

// fetchOnce performs a single request. A 404 returns errNotFound.
func (p *Provider) fetchOnce(ctx context.Context, reqURL string) (*provider.DictionaryResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errNotFound
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return mapAPIResponse(entries), nil
}

// mapAPIResponse converts the API entries into a provider.DictionaryResult.
// Multiple entries (different etymologies) are merged: senses concatenated
// in response order.
func mapAPIResponse(entries []apiEntry) *provider.DictionaryResult {
	result := &provider.DictionaryResult{
		Senses: []provider.SenseResult{},
	}

	if len(entries) == 0 {
		return result
	}

	result.Word = entries[0].Word

	for i, entry := range entries {
		for j, meaning := range entry.Meanings {
			for k, def := range meaning.Definitions {
				text := cleanDefinition(def.Definition)
				if i == 0 && j == 0 && k == 0 {
					result.Primary = text
				}
				if text == "" {
					continue
				}
				result.Senses = append(result.Senses, provider.SenseResult{
					Definition:   text,
					PartOfSpeech: meaning.PartOfSpeech,
				})
			}
		}
	}

	return result
}

// cleanDefinition strips markup and decodes entities.
func cleanDefinition(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html2text.HTML2Text(s))
}
