// Package covers resolves book cover art from Open Library.
// Lookups are cached on disk so repeated reviews of the same book never
// re-query the API, and each cover carries a BlurHash placeholder for
// clients to render while the image loads.
package covers

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoCover means the lookup succeeded but no cover art exists for the book.
var ErrNoCover = errors.New("no cover found")

// Cover is resolved cover art for a book.
type Cover struct {
	URL      string `json:"url"`
	Blurhash string `json:"blurhash,omitempty"`
}

// Service resolves covers through a cache-then-API pipeline.
type Service struct {
	client *Client
	cache  *Cache
	logger *slog.Logger
}

// NewService creates a cover service with an on-disk cache at cachePath.
func NewService(cachePath string, logger *slog.Logger) (*Service, error) {
	cache, err := OpenCache(cachePath)
	if err != nil {
		return nil, err
	}

	return &Service{
		client: NewClient(logger),
		cache:  cache,
		logger: logger,
	}, nil
}

// Close releases the cache database.
func (s *Service) Close() error {
	return s.cache.Close()
}

// Lookup resolves cover art for a title/author pair.
//
// Misses are cached too, so a book with no cover art costs one API round
// trip, not one per review. Returns ErrNoCover when nothing is available.
func (s *Service) Lookup(ctx context.Context, title, author string) (*Cover, error) {
	if cover, ok, err := s.cache.get(title, author); err != nil {
		s.logger.Warn("cover cache read failed", "title", title, "error", err)
	} else if ok {
		if cover.URL == "" {
			return nil, ErrNoCover
		}
		return cover, nil
	}

	coverURL, err := s.client.FindCoverURL(ctx, title, author)
	if errors.Is(err, ErrNoCover) {
		if cacheErr := s.cache.put(title, author, &Cover{}); cacheErr != nil {
			s.logger.Warn("cover cache write failed", "title", title, "error", cacheErr)
		}
		return nil, ErrNoCover
	}
	if err != nil {
		return nil, err
	}

	cover := &Cover{URL: coverURL}

	// The BlurHash is a nice-to-have; a cover without one is still a cover.
	if data, err := s.client.DownloadImage(ctx, coverURL); err != nil {
		s.logger.Warn("cover download failed", "url", coverURL, "error", err)
	} else if hash, err := ComputeBlurHash(data); err != nil {
		s.logger.Warn("blurhash computation failed", "url", coverURL, "error", err)
	} else {
		cover.Blurhash = hash
	}

	if err := s.cache.put(title, author, cover); err != nil {
		s.logger.Warn("cover cache write failed", "title", title, "error", err)
	}

	return cover, nil
}
