package repository

import (
	"CasaFacil/models"
	"CasaFacil/utils"
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingCachePrefix = "properties"

// ListingCache keeps recent available-listing queries in Redis.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCache{client: client, ttl: ttl}
}

func availableKey(limit int64) string {
	return utils.GenerateQueryCacheKey(listingCachePrefix, map[string]string{
		"available": "true",
		"limit":     strconv.FormatInt(limit, 10),
	})
}

func (c *ListingCache) GetAvailable(ctx context.Context, limit int64) ([]models.Property, bool, error) {
	var props []models.Property
	found, err := utils.GetCached(ctx, c.client, availableKey(limit), &props)
	if err != nil || !found {
		return nil, false, err
	}
	return props, true, nil
}

func (c *ListingCache) SetAvailable(ctx context.Context, limit int64, props []models.Property) error {
	return utils.SetCached(ctx, c.client, availableKey(limit), props, c.ttl)
}

// Invalidate drops every cached listing query.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, listingCachePrefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
