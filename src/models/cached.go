package models

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Protocol-Lattice/go-stylist/src/cache"
)

// CachedModel wraps a Model and caches Generate responses by prompt hash.
// With a FilePath set, the cache survives process restarts, which makes
// replayed runs free.
type CachedModel struct {
	Model    Model
	Cache    *cache.ResponseCache
	FilePath string
}

// NewCachedModel creates a caching wrapper. filePath may be empty for a
// purely in-memory cache.
func NewCachedModel(model Model, size int, ttl time.Duration, filePath string) *CachedModel {
	c := &CachedModel{
		Model:    model,
		Cache:    cache.NewResponseCache(size, ttl),
		FilePath: filePath,
	}
	if filePath != "" {
		c.load()
	}
	return c
}

func (c *CachedModel) load() {
	f, err := os.Open(c.FilePath)
	if err != nil {
		return // ignore errors (file not found, etc)
	}
	defer f.Close()

	var dump map[string]cache.Entry
	if err := json.NewDecoder(f).Decode(&dump); err == nil {
		c.Cache.Restore(dump)
	}
}

func (c *CachedModel) save() {
	if c.FilePath == "" {
		return
	}
	dump := c.Cache.Dump()

	// Atomic write: write to temp, then rename
	tmp := c.FilePath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return
	}

	if err := json.NewEncoder(f).Encode(dump); err != nil {
		f.Close()
		os.Remove(tmp)
		return
	}
	f.Close()
	os.Rename(tmp, c.FilePath)
}

// Generate checks the cache before calling the underlying model.
func (c *CachedModel) Generate(ctx context.Context, prompt string) (string, error) {
	key := cache.HashKey(prompt)
	if cached, ok := c.Cache.Get(key); ok {
		return cached, nil
	}

	res, err := c.Model.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.Cache.Put(key, res)
	c.save()
	return res, nil
}

// TryWrapCached checks env vars and wraps the model if caching is enabled.
// STYLIST_CACHE_SIZE turns it on; STYLIST_CACHE_TTL (seconds) and
// STYLIST_CACHE_PATH tune it.
func TryWrapCached(model Model) Model {
	sizeStr := os.Getenv("STYLIST_CACHE_SIZE")
	if sizeStr == "" {
		return model
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		return model
	}

	ttl := 300 * time.Second // default 5 mins
	if ttlStr := os.Getenv("STYLIST_CACHE_TTL"); ttlStr != "" {
		if sec, err := strconv.Atoi(ttlStr); err == nil && sec > 0 {
			ttl = time.Duration(sec) * time.Second
		}
	}

	path := os.Getenv("STYLIST_CACHE_PATH")
	if path == "" {
		path = ".stylist_cache.json"
	}

	log.Printf("[models] response cache enabled: size=%d ttl=%s path=%s", size, ttl, path)
	return NewCachedModel(model, size, ttl, path)
}

var _ Model = (*CachedModel)(nil)
