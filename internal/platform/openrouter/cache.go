package openrouter

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// ResponseCache memoizes completed exchanges by deterministic key. The
// default implementation expires entries by TTL on read; it carries no size
// bound, so under high request diversity it grows until Clear is called. An
// implementation with a capacity bound (e.g. LRU) can be swapped in through
// this interface.
type ResponseCache interface {
	// Get returns the cached response for key, or false on a miss or an
	// expired entry.
	Get(key string) (*Response, bool)

	// Set stores a response under key with the current timestamp.
	Set(key string, resp *Response)

	// Clear empties the store.
	Clear()
}

// cacheKey derives a deterministic key from the semantically relevant parts
// of a request. encoding/json sorts map keys, so equal inputs produce equal
// keys regardless of parameter insertion order.
func cacheKey(messages []ChatMessage, model string, params ModelParameters) (string, error) {
	key, err := json.Marshal(struct {
		Messages []ChatMessage   `json:"messages"`
		Model    string          `json:"model"`
		Params   ModelParameters `json:"params"`
	}{messages, model, params})
	if err != nil {
		return "", fmt.Errorf("failed to derive cache key: %w", err)
	}
	return string(key), nil
}

// cacheItem pairs a response with its storage time. Items never leave the
// cache; callers only see the response.
type cacheItem struct {
	response  *Response
	timestamp time.Time
}

// ttlCache is the default ResponseCache. Safe for concurrent use.
type ttlCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]cacheItem
	now   func() time.Time
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{
		ttl:   ttl,
		items: make(map[string]cacheItem),
		now:   time.Now,
	}
}

func (c *ttlCache) Get(key string) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}

	if c.now().Sub(item.timestamp) >= c.ttl {
		delete(c.items, key)
		return nil, false
	}

	return item.response, true
}

func (c *ttlCache) Set(key string, resp *Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{response: resp, timestamp: c.now()}
}

func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem)
}
