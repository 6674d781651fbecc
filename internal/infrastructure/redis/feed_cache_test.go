package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryClient struct {
	values  map[string]string
	readErr error
	deleted []string
}

func newMemoryClient() *memoryClient {
	return &memoryClient{values: map[string]string{}}
}

func (m *memoryClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.readErr != nil {
		return redis.NewStringResult("", m.readErr)
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.values, k)
		m.deleted = append(m.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type countingRepo struct {
	listings []domain.Listing
	calls    int
	err      error
}

func (c *countingRepo) FindByVariant(ctx context.Context, variant domain.Variant) ([]domain.Listing, error) {
	c.calls++
	return c.listings, c.err
}

func (c *countingRepo) FindByID(ctx context.Context, variant domain.Variant, id string) (*domain.Listing, error) {
	return nil, domain.ErrNotFound
}

func gyms() []domain.Listing {
	return []domain.Listing{
		{ID: "g1", Variant: domain.VariantGym, Name: "FitZone", Pricing: domain.SinglePrice(750), Location: domain.Location{City: "Johannesburg", Province: "Gauteng"}},
		{ID: "g2", Variant: domain.VariantGym, Name: "Iron Temple", Pricing: domain.SinglePrice(320)},
	}
}

func TestCachedListingRepository_ReadThrough(t *testing.T) {
	inner := &countingRepo{listings: gyms()}
	client := newMemoryClient()
	repo := NewCachedListingRepository(inner, client, time.Minute, nil)
	ctx := context.Background()

	first, err := repo.FindByVariant(ctx, domain.VariantGym)
	require.NoError(t, err)
	second, err := repo.FindByVariant(ctx, domain.VariantGym)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.Contains(t, client.values, "ugym:feed:gym")
}

func TestCachedListingRepository_Invalidate(t *testing.T) {
	inner := &countingRepo{listings: gyms()}
	client := newMemoryClient()
	repo := NewCachedListingRepository(inner, client, time.Minute, nil)
	ctx := context.Background()

	_, err := repo.FindByVariant(ctx, domain.VariantGym)
	require.NoError(t, err)
	require.NoError(t, repo.Invalidate(ctx, domain.VariantGym))
	_, err = repo.FindByVariant(ctx, domain.VariantGym)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, []string{"ugym:feed:gym"}, client.deleted)
}

func TestCachedListingRepository_RedisDownFallsThrough(t *testing.T) {
	inner := &countingRepo{listings: gyms()}
	client := newMemoryClient()
	client.readErr = errors.New("connection refused")
	repo := NewCachedListingRepository(inner, client, time.Minute, nil)

	got, err := repo.FindByVariant(context.Background(), domain.VariantGym)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCachedListingRepository_InnerError(t *testing.T) {
	inner := &countingRepo{err: errors.New("mongo down")}
	client := newMemoryClient()
	repo := NewCachedListingRepository(inner, client, time.Minute, nil)

	_, err := repo.FindByVariant(context.Background(), domain.VariantService)
	assert.Error(t, err)
	assert.Empty(t, client.values)
}
