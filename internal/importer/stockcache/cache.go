// Package stockcache resolves tickers to stock ids for the import drivers,
// hitting the database only on cache miss.
package stockcache

import (
	"context"
	"errors"

	"finsight/internal/importer/repository"

	"github.com/patrickmn/go-cache"
)

// ErrUnresolvedTicker is returned by Lookup when no stock row exists for
// the ticker; the caller skips the row and counts it.
var ErrUnresolvedTicker = errors.New("ticker does not resolve to a stock")

// Cache maps tickers to stock ids in process. Fact imports use Lookup
// (skip-on-miss); the price import uses LookupOrCreate, since price data is
// the one feed allowed to synthesize new stock rows.
type Cache struct {
	stocks *cache.Cache
	repo   repository.StocksRepository
}

// New creates an empty cache over the given stocks repository.
func New(repo repository.StocksRepository) *Cache {
	return &Cache{
		stocks: cache.New(cache.NoExpiration, 0),
		repo:   repo,
	}
}

// Lookup resolves a ticker via the cache, querying the backing store on
// miss. A ticker with no stock row yields ErrUnresolvedTicker.
func (c *Cache) Lookup(ctx context.Context, ticker string) (uint, error) {
	if id, ok := c.stocks.Get(ticker); ok {
		return id.(uint), nil
	}
	id, err := c.repo.FindIDByTicker(ctx, ticker)
	if errors.Is(err, repository.ErrStockNotFound) {
		return 0, ErrUnresolvedTicker
	}
	if err != nil {
		return 0, err
	}
	c.stocks.Set(ticker, id, cache.NoExpiration)
	return id, nil
}

// LookupOrCreate resolves a ticker, upserting the stock row (and its Korean
// display name) on cache miss.
func (c *Cache) LookupOrCreate(ctx context.Context, ticker, nameKo string) (uint, error) {
	if id, ok := c.stocks.Get(ticker); ok {
		return id.(uint), nil
	}
	id, err := c.repo.UpsertByTicker(ctx, ticker, nameKo)
	if err != nil {
		return 0, err
	}
	c.stocks.Set(ticker, id, cache.NoExpiration)
	return id, nil
}

// Preload fills the cache from the whole stocks table in one query.
func (c *Cache) Preload(ctx context.Context) error {
	stocks, err := c.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, stock := range stocks {
		c.stocks.Set(stock.Ticker, stock.ID, cache.NoExpiration)
	}
	return nil
}
