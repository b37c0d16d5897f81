package apicache

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTTL is how long a response stays fresh
const DefaultTTL = 30 * time.Second

// Cache stores response bodies by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte, ttl time.Duration)
	Delete(key string)
	InvalidatePrefix(prefix string) int
}

var _ Cache = (*TTLCache)(nil)

// Stats are cumulative counters of a TTLCache
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Expired int64 `json:"expired"`
	Entries int   `json:"entries"`
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// TTLCache is an in-memory Cache whose entries expire after their TTL. Expired
// entries are removed lazily when read.
type TTLCache struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	entries map[string]entry
	stats   Stats
}

// New creates a TTLCache. A nil clock uses the real clock.
func New(clock clockwork.Clock) *TTLCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TTLCache{
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get returns a fresh value for key
func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.stats.Expired++
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.value, true
}

// Put stores value for ttl. A non-positive ttl uses DefaultTTL.
func (c *TTLCache) Put(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: stored, expiresAt: c.clock.Now().Add(ttl)}
}

// Delete removes one key
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix removes every key containing the path prefix and returns how many
// were removed. Keys are full URLs, so prefix is matched against the key's path.
func (c *TTLCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(keyPath(key), prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stats returns a snapshot of the counters
func (c *TTLCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// Key builds the cache key of a GET request from its URL and query parameters.
// Parameters are sorted so equivalent requests share a key.
func Key(rawURL string, params url.Values) string {
	if len(params) == 0 {
		return rawURL
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(rawURL)
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	for _, k := range keys {
		vals := append([]string(nil), params[k]...)
		sort.Strings(vals)
		for _, v := range vals {
			b.WriteString(sep)
			b.WriteString(url.QueryEscape(k))
			b.WriteString("=")
			b.WriteString(url.QueryEscape(v))
			sep = "&"
		}
	}
	return b.String()
}

func keyPath(key string) string {
	u, err := url.Parse(key)
	if err != nil {
		return key
	}
	return u.Path
}
