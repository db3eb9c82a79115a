package routing

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"go.uber.org/zap"
)

type routeCacheKey struct {
	from, to string
	mode     pkg.TransportMode
}

type routeCacheEntry struct {
	links []da.Link
	found bool
}

// RoutingEngine owns the link set and answers single-mode shortest route queries over it.
// Loading takes the write lock, queries take the read lock, so concurrent queries are safe
// and never observe a half-finished load.
type RoutingEngine struct {
	mu    sync.RWMutex
	links []da.Link

	cities   CityLookup
	filter   CandidateFilter
	strategy SearchStrategy
	logger   *zap.Logger

	obsMu     sync.Mutex
	observers []RouteRequestObserver

	cache *lru.Cache[routeCacheKey, routeCacheEntry]
}

func NewRoutingEngine(cities CityLookup, logger *zap.Logger) *RoutingEngine {
	return &RoutingEngine{
		links:     make([]da.Link, 0),
		cities:    cities,
		strategy:  LINEAR_SCAN,
		logger:    logger,
		observers: make([]RouteRequestObserver, 0),
	}
}

// SetCandidateFilter. nil restores the default candidate set (every city touched by a link of the queried mode).
func (re *RoutingEngine) SetCandidateFilter(filter CandidateFilter) {
	re.mu.Lock()
	defer re.mu.Unlock()
	re.filter = filter
	re.purgeCache()
}

func (re *RoutingEngine) SetSearchStrategy(strategy SearchStrategy) {
	re.mu.Lock()
	defer re.mu.Unlock()
	re.strategy = strategy
	re.purgeCache()
}

func (re *RoutingEngine) GetSearchStrategy() SearchStrategy {
	re.mu.RLock()
	defer re.mu.RUnlock()
	return re.strategy
}

// EnableCache keeps the results of the last size distinct queries. The cache is purged whenever links change.
func (re *RoutingEngine) EnableCache(size int) error {
	cache, err := lru.New[routeCacheKey, routeCacheEntry](size)
	if err != nil {
		return err
	}
	re.mu.Lock()
	defer re.mu.Unlock()
	re.cache = cache
	return nil
}

// purgeCache. caller must hold the write lock
func (re *RoutingEngine) purgeCache() {
	if re.cache != nil {
		re.cache.Purge()
	}
}

func (re *RoutingEngine) Count() int {
	re.mu.RLock()
	defer re.mu.RUnlock()
	return len(re.links)
}

// Links returns a copy of the link set in insertion order.
func (re *RoutingEngine) Links() []da.Link {
	re.mu.RLock()
	defer re.mu.RUnlock()
	out := make([]da.Link, len(re.links))
	copy(out, re.links)
	return out
}

func (re *RoutingEngine) AddLink(link da.Link) {
	re.mu.Lock()
	defer re.mu.Unlock()
	re.links = append(re.links, link)
	re.purgeCache()
}
