// Package cache keeps per-user budget listings in Redis.
//
// The cache is an optimization only: every Redis failure is logged and
// treated as a miss, and callers fall back to the database.
//
// Entries are keyed by a per-user generation. Invalidate bumps the
// generation instead of deleting the entry, and a listing is stored under
// the generation observed before the database was read. A fill that races
// with a mutation therefore lands under a generation nobody reads again.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const budgetsKeyPrefix = "budgets:"

// NoGeneration is returned when the generation could not be read. Listings
// read at NoGeneration are never stored.
const NoGeneration int64 = -1

// BudgetCache stores each user's budget listing for a fixed ttl.
type BudgetCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

// NewBudgetCache returns a cache storing listings for ttl. A nil client
// yields a cache that always misses.
func NewBudgetCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *BudgetCache {
	return &BudgetCache{client: client, ttl: ttl, logger: logger}
}

func generationKey(userID string) string {
	return budgetsKeyPrefix + userID + ":gen"
}

func budgetsKey(userID string, gen int64) string {
	return budgetsKeyPrefix + userID + ":" + strconv.FormatInt(gen, 10)
}

func (c *BudgetCache) enabled() bool {
	return c != nil && c.client != nil
}

// generation reads the user's current generation; a missing key is 0.
func (c *BudgetCache) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Budgets returns the cached listing for userID, if any, together with the
// generation it was looked up at. Pass that generation to SetBudgets after
// loading the listing from the database.
func (c *BudgetCache) Budgets(ctx context.Context, userID string) ([]model.Budget, int64, bool) {
	if !c.enabled() {
		return nil, NoGeneration, false
	}

	gen, err := c.generation(ctx, userID)
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("budget cache read failed")
		return nil, NoGeneration, false
	}

	raw, err := c.client.Get(ctx, budgetsKey(userID, gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("user_id", userID).Msg("budget cache read failed")
			return nil, NoGeneration, false
		}
		return nil, gen, false
	}

	var budgets []model.Budget
	if err := json.Unmarshal(raw, &budgets); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("discarding corrupt budget cache entry")
		c.Invalidate(ctx, userID)
		return nil, NoGeneration, false
	}

	return budgets, gen, true
}

// SetBudgets stores the listing for userID under gen. Nothing is stored for
// NoGeneration.
func (c *BudgetCache) SetBudgets(ctx context.Context, userID string, gen int64, budgets []model.Budget) {
	if !c.enabled() || gen == NoGeneration {
		return
	}

	raw, err := json.Marshal(budgets)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode budgets for cache")
		return
	}

	if err := c.client.Set(ctx, budgetsKey(userID, gen), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("budget cache write failed")
	}
}

// Invalidate retires the current listing for userID by moving to the next
// generation. Called after every budget mutation.
func (c *BudgetCache) Invalidate(ctx context.Context, userID string) {
	if !c.enabled() {
		return
	}

	if err := c.client.Incr(ctx, generationKey(userID)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("budget cache invalidation failed")
	}
}
