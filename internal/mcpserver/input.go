package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/restdoc/binder"
	"github.com/erraggy/restdoc/generator"
	"github.com/erraggy/restdoc/internal/options"
)

// modelInput represents the three ways a Source Model can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type modelInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Source Model file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a Source Model document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline Source Model document content (JSON or YAML)"`
}

// generateSettings are the generation options shared by every tool.
type generateSettings struct {
	Title              string `json:"title,omitempty"               jsonschema:"Document title (default: REST API)"`
	Version            string `json:"version,omitempty"             jsonschema:"Document version (default: 1.0)"`
	CollisionStrategy  string `json:"collision_strategy,omitempty"  jsonschema:"Path collision strategy: accept-left, accept-right or fail"`
	SchemaNaming       string `json:"schema_naming,omitempty"       jsonschema:"Schema naming strategy: simple, qualified or dotted"`
	GenericNaming      string `json:"generic_naming,omitempty"      jsonschema:"Generic instance naming: underscore, of, for or flattened"`
	DuplicatePolicy    string `json:"duplicate_policy,omitempty"    jsonschema:"Duplicate path parameter policy: exclude or suffix"`
	FlattenInheritance bool   `json:"flatten_inheritance,omitempty" jsonschema:"Copy supertype properties instead of using allOf"`
	ImplicitPaths      bool   `json:"implicit_paths,omitempty"      jsonschema:"Mount verb methods without a path at their method name"`
	AllSchemas         bool   `json:"all_schemas,omitempty"         jsonschema:"Emit schemas for every data class, not only reachable ones"`
	NoSecurity         bool   `json:"no_security,omitempty"         jsonschema:"Omit the global bearer security scheme"`
}

// options converts settings into generator options, filling unset
// strategies from the server configuration.
func (s generateSettings) options() []generator.Option {
	opts := []generator.Option{
		generator.WithConcurrency(cfg.Concurrency),
		generator.WithFlattenInheritance(s.FlattenInheritance),
		generator.WithImplicitPaths(s.ImplicitPaths),
		generator.WithAllSchemas(s.AllSchemas),
		generator.WithSecurity(!s.NoSecurity),
	}
	if s.Title != "" {
		opts = append(opts, generator.WithTitle(s.Title))
	}
	if s.Version != "" {
		opts = append(opts, generator.WithVersion(s.Version))
	}

	collisions := s.CollisionStrategy
	if collisions == "" {
		collisions = cfg.CollisionStrategy
	}
	opts = append(opts, generator.WithCollisionStrategy(collisions))

	naming := s.SchemaNaming
	if naming == "" {
		naming = cfg.NamingStrategy
	}
	opts = append(opts, generator.WithSchemaNaming(naming), generator.WithGenericNaming(s.GenericNaming))

	if s.DuplicatePolicy != "" {
		opts = append(opts, generator.WithDuplicatePolicy(binder.DuplicatePolicy(s.DuplicatePolicy)))
	}
	return opts
}

// cacheEntry holds a cached generation result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *generator.Result
	insertAt  time.Time
	expiresAt time.Time
}

// resultCacheStore provides a session-scoped cache of generation results.
// Results are never mutated after generation, so they are shared between
// calls. File inputs are keyed by (absolutePath, modTime), content inputs
// by a SHA-256 hash and URL inputs by URL; every key also covers the
// settings.
type resultCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var resultCache = &resultCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *resultCacheStore) get(key string) *generator.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result, evicting the least recently used entry if at
// capacity.
func (c *resultCacheStore) putWithTTL(key string, result *generator.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *resultCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *resultCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *resultCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *resultCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input and settings.
// An empty key means the input cannot be cached.
func makeCacheKey(m modelInput, s generateSettings) string {
	var source string
	switch {
	case m.File != "":
		absPath, err := filepath.Abs(m.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		source = fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case m.Content != "":
		h := sha256.Sum256([]byte(m.Content))
		source = "content:" + hex.EncodeToString(h[:])
	case m.URL != "":
		source = "url:" + m.URL
	default:
		return ""
	}
	h := sha256.Sum256(fmt.Appendf(nil, "%#v|%s|%s|%d", s, cfg.CollisionStrategy, cfg.NamingStrategy, cfg.Concurrency))
	return source + "|" + hex.EncodeToString(h[:8])
}

// generate runs the pipeline on whichever input was provided, using the
// cache when enabled.
func (m modelInput) generate(ctx context.Context, s generateSettings) (*generator.Result, error) {
	if count := options.CountSources(m.File != "", m.URL != "", m.Content != ""); count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if m.Content != "" && int64(len(m.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RESTDOC_MAX_INLINE_SIZE to increase",
			len(m.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(m, s)
		switch {
		case m.File != "":
			ttl = cfg.CacheFileTTL
		case m.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := resultCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := s.options()
	switch {
	case m.File != "":
		opts = append(opts, generator.WithFilePath(m.File))
	case m.URL != "":
		data, err := fetchModel(ctx, m.URL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, generator.WithBytes(data))
	default:
		opts = append(opts, generator.WithBytes([]byte(m.Content)))
	}

	result, err := generator.GenerateContext(ctx, opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		resultCache.putWithTTL(key, result, ttl)
	}
	return result, nil
}
