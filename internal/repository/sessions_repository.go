package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/Tesseract-Nexus/go-shared/cache"
	"admin-bff-service/internal/session"
	"admin-bff-service/internal/uploader"
)

// Cache TTL constants
const (
	SessionTTL       = 2 * time.Hour    // Abandoned drafts expire
	BatchTTL         = 30 * time.Minute // Upload batch records for inspection
	CategoryCacheTTL = 30 * time.Minute // Categories rarely change
	SettingsCacheTTL = 5 * time.Minute  // Storefront settings cache
)

// SessionsRepository stores edit sessions and upload batches in Redis. When
// Redis is not configured it falls back to an in-process map, which is enough
// for a single replica and for tests.
type SessionsRepository struct {
	redis *redis.Client
	cache *cache.CacheLayer

	mu       sync.RWMutex
	sessions map[string]*session.EditSession
	batches  map[string]*uploader.Batch
}

func NewSessionsRepository(redisClient *redis.Client) *SessionsRepository {
	repo := &SessionsRepository{
		redis:    redisClient,
		sessions: make(map[string]*session.EditSession),
		batches:  make(map[string]*uploader.Batch),
	}

	// Initialize CacheLayer with the existing Redis client
	if redisClient != nil {
		cacheConfig := cache.CacheConfig{
			L1Enabled:  true,
			L1MaxItems: 2000,
			L1TTL:      30 * time.Second,
			DefaultTTL: SettingsCacheTTL,
			KeyPrefix:  "tesseract:admin-bff:",
		}
		repo.cache = cache.NewCacheLayerFromClient(redisClient, cacheConfig)
	}

	return repo
}

func sessionKey(tenantID, id string) string {
	return fmt.Sprintf("session:%s:%s", tenantID, id)
}

func batchKey(tenantID, batchID string) string {
	return fmt.Sprintf("batch:%s:%s", tenantID, batchID)
}

// GetSession loads an edit session by its key (product id or draft session
// id), returning nil when none exists
func (r *SessionsRepository) GetSession(ctx context.Context, tenantID, id string) (*session.EditSession, error) {
	key := sessionKey(tenantID, id)

	if r.redis == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.sessions[key], nil
	}

	data, err := r.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess session.EditSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// SaveSession persists an edit session with a sliding TTL
func (r *SessionsRepository) SaveSession(ctx context.Context, sess *session.EditSession) error {
	key := sessionKey(sess.TenantID, sess.Key())

	if r.redis == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.sessions[key] = sess
		return nil
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.redis.Set(ctx, key, data, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteSession removes an edit session after the draft is committed or discarded
func (r *SessionsRepository) DeleteSession(ctx context.Context, tenantID, id string) error {
	key := sessionKey(tenantID, id)

	if r.redis == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.sessions, key)
		return nil
	}

	return r.redis.Del(ctx, key).Err()
}

// GetBatch loads an upload batch record, returning nil when none exists
func (r *SessionsRepository) GetBatch(ctx context.Context, tenantID, batchID string) (*uploader.Batch, error) {
	key := batchKey(tenantID, batchID)

	if r.redis == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.batches[key], nil
	}

	data, err := r.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	var batch uploader.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}
	return &batch, nil
}

// SaveBatch persists an upload batch record for later inspection
func (r *SessionsRepository) SaveBatch(ctx context.Context, tenantID string, batch *uploader.Batch) error {
	key := batchKey(tenantID, batch.ID)

	if r.redis == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.batches[key] = batch
		return nil
	}

	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}
	if err := r.redis.Set(ctx, key, data, BatchTTL).Err(); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	return nil
}

// DeleteBatch dismisses an upload batch record
func (r *SessionsRepository) DeleteBatch(ctx context.Context, tenantID, batchID string) error {
	key := batchKey(tenantID, batchID)

	if r.redis == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.batches, key)
		return nil
	}

	return r.redis.Del(ctx, key).Err()
}

// GetOrSetCached wraps CacheLayer.GetOrSetJSON for read-through caching of
// proxied lookups (categories, storefront settings). When no cache is
// configured the fetch runs directly.
func (r *SessionsRepository) GetOrSetCached(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() (interface{}, error)) error {
	if r.cache == nil {
		value, err := fetch()
		if err != nil {
			return err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dest)
	}
	return r.cache.GetOrSetJSON(ctx, key, dest, ttl, fetch)
}

// InvalidateCategoryCaches invalidates category option caches for a tenant
func (r *SessionsRepository) InvalidateCategoryCaches(ctx context.Context, tenantID string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.DeletePattern(ctx, fmt.Sprintf("categories:%s:*", tenantID))
}

// InvalidateSettingsCache invalidates the cached settings for a storefront
func (r *SessionsRepository) InvalidateSettingsCache(ctx context.Context, storefrontID string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, fmt.Sprintf("settings:%s", storefrontID))
}
