package covers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	searchBaseURL = "https://openlibrary.org/search.json"
	coverBaseURL  = "https://covers.openlibrary.org/b/id"

	searchLimit = 5

	// Covers are book jackets, not wall art. Anything larger is suspect.
	maxImageBytes = 10 << 20
)

// Client provides access to the Open Library search and covers APIs.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger

	// Overridable in tests.
	searchURL string
	coverURL  string
}

// NewClient creates a new Open Library client.
// Rate limited to stay well under the documented courtesy limits.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// 1 request per second, burst of 3.
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:      logger,
		searchURL:   searchBaseURL,
		coverURL:    coverBaseURL,
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Title   string `json:"title"`
	CoverID int64  `json:"cover_i"`
}

// FindCoverURL searches Open Library for the book and returns the URL of its
// large cover image. Returns ErrNoCover when no result carries cover art.
func (c *Client) FindCoverURL(ctx context.Context, title, author string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("title", title)
	if author != "" {
		params.Set("author", author)
	}
	params.Set("fields", "title,cover_i")
	params.Set("limit", fmt.Sprintf("%d", searchLimit))

	searchURL := c.searchURL + "?" + params.Encode()

	c.logger.Debug("searching Open Library",
		"title", title,
		"author", author,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	// First hit with cover art wins; results arrive relevance-ordered.
	for _, doc := range searchResp.Docs {
		if doc.CoverID != 0 {
			return fmt.Sprintf("%s/%d-M.jpg", c.coverURL, doc.CoverID), nil
		}
	}

	return "", ErrNoCover
}

// DownloadImage fetches a cover image, capped at maxImageBytes.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}
