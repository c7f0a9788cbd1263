package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/mmcdole/stacks/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Stacks/1.0"
)

// Default Open Library endpoints
const (
	DefaultBaseURL   = "https://openlibrary.org"
	DefaultCoversURL = "https://covers.openlibrary.org"
)

// ClientConfig configures a Client
type ClientConfig struct {
	BaseURL           string
	CoversURL         string
	Timeout           time.Duration
	RequestsPerSecond float64 // <= 0 disables limiting
}

// Client implements domain.CatalogRepository for the Open Library
// subjects API
type Client struct {
	baseURL    string
	coversURL  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new Open Library client
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CoversURL == "" {
		cfg.CoversURL = DefaultCoversURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		coversURL: cfg.CoversURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// SubjectURL returns the subjects endpoint for subject
func (c *Client) SubjectURL(subject string) string {
	return fmt.Sprintf("%s/subjects/%s.json", c.baseURL, url.PathEscape(subject))
}

// FetchSubject reads up to limit works filed under subject
func (c *Client) FetchSubject(ctx context.Context, subject string, limit int) ([]domain.Work, error) {
	return c.FetchURL(ctx, c.SubjectURL(subject), limit)
}

// FetchURL reads works from a subjects endpoint URL
func (c *Client) FetchURL(ctx context.Context, rawURL string, limit int) ([]domain.Work, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url: %v", domain.ErrCatalogFetch, err)
	}
	if limit > 0 {
		q := u.Query()
		q.Set("limit", strconv.Itoa(limit))
		u.RawQuery = q.Encode()
	}

	body, err := c.doRequest(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var resp SubjectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("catalog parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrCatalogFetch, err)
	}

	works := MapWorks(resp.Works, c.coversURL)
	if limit > 0 && len(works) > limit {
		works = works[:limit]
	}
	c.logger.Debug("fetched works", "url", u.String(), "count", len(works))
	return works, nil
}

// doRequest performs a rate-limited GET
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrCatalogFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrCatalogFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrCatalogFetch, resp.StatusCode)
	}

	return body, nil
}
