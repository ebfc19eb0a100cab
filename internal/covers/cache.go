package covers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// cacheTTL bounds how long a lookup result lives. Cover art for a book
// rarely changes, but a miss today may be a hit next month.
const cacheTTL = 30 * 24 * time.Hour

// Cache is an on-disk cover lookup cache backed by Badger.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cover cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// cacheKey normalizes a title/author pair into a lookup key.
func cacheKey(title, author string) []byte {
	return []byte("cover:" + strings.ToLower(strings.TrimSpace(title)) +
		"|" + strings.ToLower(strings.TrimSpace(author)))
}

// get retrieves a cached cover. The second return reports a cache hit; a hit
// with an empty URL records a known miss upstream.
func (c *Cache) get(title, author string) (*Cover, bool, error) {
	var cover Cover

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(title, author))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cover)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &cover, true, nil
}

// put stores a cover (or a known miss, as a zero Cover) with a TTL.
func (c *Cache) put(title, author string, cover *Cover) error {
	data, err := json.Marshal(cover)
	if err != nil {
		return fmt.Errorf("marshal cover: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(cacheKey(title, author), data).WithTTL(cacheTTL)
		return txn.SetEntry(entry)
	})
}
