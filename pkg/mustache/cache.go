package mustache

import (
	"container/list"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the template cache
type CacheConfig struct {
	// MaxSize is the maximum number of templates to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached templates. 0 means no expiration.
	TTL time.Duration
}

// TemplateCache provides caching for compiled templates
type TemplateCache struct {
	mu     sync.RWMutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key      string
	template *Template
	expiry   time.Time
	element  *list.Element
}

// NewTemplateCache creates a new template cache with the global configuration
func NewTemplateCache() *TemplateCache {
	config := GetGlobalConfig()
	return NewTemplateCacheWithConfig(CacheConfig{
		MaxSize: config.CacheMaxSize,
		TTL:     config.CacheTTL,
	})
}

// NewTemplateCacheWithConfig creates a new template cache with the given configuration
func NewTemplateCacheWithConfig(config CacheConfig) *TemplateCache {
	return &TemplateCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Get retrieves a template from the cache
func (tc *TemplateCache) Get(key string) (*Template, bool) {
	tc.mu.RLock()
	entry, exists := tc.cache[key]
	tc.mu.RUnlock()

	if !exists {
		return nil, false
	}

	// Check expiry
	if tc.config.TTL > 0 && time.Now().After(entry.expiry) {
		tc.Remove(key)
		return nil, false
	}

	// Move to front of LRU
	tc.mu.Lock()
	tc.lru.MoveToFront(entry.element)
	tc.mu.Unlock()

	return entry.template, true
}

// Set adds a template to the cache
func (tc *TemplateCache) Set(key string, template *Template) {
	// Check if caching is disabled
	if tc.config.MaxSize == 0 {
		return
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	// Check if key already exists
	if existing, exists := tc.cache[key]; exists {
		existing.template = template
		if tc.config.TTL > 0 {
			existing.expiry = time.Now().Add(tc.config.TTL)
		}
		tc.lru.MoveToFront(existing.element)
		return
	}

	// Check if we need to evict
	if tc.lru.Len() >= tc.config.MaxSize {
		// Evict least recently used
		oldest := tc.lru.Back()
		if oldest != nil {
			oldEntry := oldest.Value.(*cacheEntry)
			delete(tc.cache, oldEntry.key)
			tc.lru.Remove(oldest)
		}
	}

	// Create new entry
	expiry := time.Time{}
	if tc.config.TTL > 0 {
		expiry = time.Now().Add(tc.config.TTL)
	}

	entry := &cacheEntry{
		key:      key,
		template: template,
		expiry:   expiry,
	}

	// Add to LRU list
	entry.element = tc.lru.PushFront(entry)

	// Add to cache map
	tc.cache[key] = entry
}

// Remove removes a template from the cache
func (tc *TemplateCache) Remove(key string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	entry, exists := tc.cache[key]
	if !exists {
		return
	}

	delete(tc.cache, key)
	tc.lru.Remove(entry.element)
}

// Clear removes all templates from the cache
func (tc *TemplateCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.cache = make(map[string]*cacheEntry)
	tc.lru = list.New()
}

// Size returns the current number of cached templates
func (tc *TemplateCache) Size() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.cache)
}

// defaultCache is a global cache instance for convenience
var defaultCache = NewTemplateCache()
