package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

const keyPrefix = "ugym:feed:"

// Client は *redis.Client のうちキャッシュが使う操作だけを切り出したもの。
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedListingRepository は承認済みフィードを variant 単位で Redis にキャッシュする。
// Redis 障害時はログを出して下位リポジトリへ素通しする。
type CachedListingRepository struct {
	inner  application.ListingRepository
	client Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedListingRepository(inner application.ListingRepository, client Client, ttl time.Duration, logger *log.Logger) *CachedListingRepository {
	return &CachedListingRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

// NewClient は REDIS_URL 形式の接続文字列からクライアントを生成し疎通確認する。
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *CachedListingRepository) FindByVariant(ctx context.Context, variant domain.Variant) ([]domain.Listing, error) {
	key := feedKey(variant)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var listings []domain.Listing
		if jsonErr := json.Unmarshal(raw, &listings); jsonErr == nil {
			return listings, nil
		}
		r.logf("feed cache decode failed key=%s", key)
	case !errors.Is(err, redis.Nil):
		r.logf("feed cache read failed key=%s err=%v", key, err)
	}

	listings, err := r.inner.FindByVariant(ctx, variant)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(listings)
	if err != nil {
		return listings, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logf("feed cache write failed key=%s err=%v", key, err)
	}
	return listings, nil
}

// FindByID は常に下位リポジトリを参照する。詳細は件数が少なくキャッシュしない。
func (r *CachedListingRepository) FindByID(ctx context.Context, variant domain.Variant, id string) (*domain.Listing, error) {
	return r.inner.FindByID(ctx, variant, id)
}

// Invalidate は管理画面の書き込み後に該当 variant のフィードを破棄する。
func (r *CachedListingRepository) Invalidate(ctx context.Context, variant domain.Variant) error {
	return r.client.Del(ctx, feedKey(variant)).Err()
}

func (r *CachedListingRepository) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

func feedKey(variant domain.Variant) string {
	return keyPrefix + string(variant)
}
