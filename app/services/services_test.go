package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/app/repositories"
)

// memCache is a JSON map standing in for Redis.
type memCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	hits    int
	forgets int
}

func newMemCache() *memCache { return &memCache{items: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.items[key]
	if !ok || json.Unmarshal(raw, dest) != nil {
		return false
	}
	c.hits++
	return true
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = raw
	return nil
}

func (c *memCache) Forget(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.forgets++
	return nil
}

func seedProducts(t *testing.T, db *gorm.DB, names ...string) []models.Product {
	t.Helper()
	products := make([]models.Product, len(names))
	for i, n := range names {
		products[i] = models.Product{Name: n, Price: decimal.NewFromInt(10), Active: true}
	}
	require.NoError(t, db.Create(&products).Error)
	return products
}

func newBannerService(db *gorm.DB, cache Cache, pub ImagePublisher) *BannerService {
	return NewBannerService(
		repositories.NewBannerRepository(db),
		repositories.NewProductRepository(db),
		cache, time.Minute, pub,
	)
}
