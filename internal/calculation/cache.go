package calculation

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rgehrsitz/sgplan/internal/domain"
)

// cacheNamespace scopes the name-based projection keys.
var cacheNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("sgplan/projection"))

// DefaultCacheSize is the number of projections kept by NewProjectionCache.
const DefaultCacheSize = 64

// ProjectionCache memoizes RunProjection by a hash of its inputs. It is safe
// for concurrent use. Cached results are shared and must not be modified.
type ProjectionCache struct {
	engine  *CalculationEngine
	maxSize int

	mu      sync.RWMutex
	entries map[uuid.UUID]*domain.ProjectionResult
	order   []uuid.UUID
	hits    int
	misses  int
}

// NewProjectionCache wraps an engine with a bounded memo.
func NewProjectionCache(engine *CalculationEngine, maxSize int) *ProjectionCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &ProjectionCache{
		engine:  engine,
		maxSize: maxSize,
		entries: make(map[uuid.UUID]*domain.ProjectionResult),
	}
}

// ProjectionKey derives a deterministic key from the snapshot and settings.
func ProjectionKey(snapshot *domain.FinancialSnapshot, settings domain.ProjectionSettings) (uuid.UUID, error) {
	payload, err := json.Marshal(struct {
		Snapshot *domain.FinancialSnapshot `json:"snapshot"`
		Settings domain.ProjectionSettings `json:"settings"`
	}{snapshot, settings})
	if err != nil {
		return uuid.Nil, newCalculationError("projection cache", "encode inputs", err)
	}
	return uuid.NewSHA1(cacheNamespace, payload), nil
}

// RunProjection returns a cached result for identical inputs or runs the engine.
func (pc *ProjectionCache) RunProjection(ctx context.Context, snapshot *domain.FinancialSnapshot, settings domain.ProjectionSettings) (*domain.ProjectionResult, error) {
	key, err := ProjectionKey(snapshot, settings)
	if err != nil {
		return nil, err
	}

	pc.mu.RLock()
	cached, ok := pc.entries[key]
	pc.mu.RUnlock()
	if ok {
		pc.mu.Lock()
		pc.hits++
		pc.mu.Unlock()
		pc.engine.Logger.Debugf("projection cache hit %s", key)
		return cached, nil
	}

	result, err := pc.engine.RunProjection(ctx, snapshot, settings)
	if err != nil {
		return nil, err
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.misses++
	if _, exists := pc.entries[key]; !exists {
		if len(pc.order) >= pc.maxSize {
			oldest := pc.order[0]
			pc.order = pc.order[1:]
			delete(pc.entries, oldest)
		}
		pc.order = append(pc.order, key)
		pc.entries[key] = result
	}
	return result, nil
}

// Stats reports cache hits, misses and current size.
func (pc *ProjectionCache) Stats() (hits, misses, size int) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.hits, pc.misses, len(pc.entries)
}

// Clear drops every cached projection.
func (pc *ProjectionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.entries = make(map[uuid.UUID]*domain.ProjectionResult)
	pc.order = nil
}
