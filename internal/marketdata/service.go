package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/lzhao/talos/pkg/logger"
	"github.com/lzhao/talos/pkg/redis"
)

// Service composes the cache, the repository and the remote client
// into one lookup path: cache, then database, then remote. Repository
// and cache are optional; with neither configured every call goes to
// the remote source.
type Service struct {
	client *Client
	repo   *Repository
	cache  *redis.Cache
	logger *logger.Logger
}

// NewService creates a market data service. repo and cache may be nil.
func NewService(client *Client, repo *Repository, cache *redis.Cache, log *logger.Logger) *Service {
	return &Service{
		client: client,
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// GetDailyBars returns the daily bar series for a raw symbol over
// [from, to], ordered ascending.
func (s *Service) GetDailyBars(ctx context.Context, rawSymbol string, from, to time.Time) ([]Bar, error) {
	symbol, err := Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}

	cacheKey := redis.BarsKey(symbol.String(), from.Format("2006-01-02"), to.Format("2006-01-02"))

	if s.cache != nil {
		var bars []Bar
		if found, err := s.cache.Get(ctx, cacheKey, &bars); err == nil && found && len(bars) > 0 {
			return bars, nil
		}
	}

	if s.repo != nil {
		bars, err := s.repo.LoadRange(ctx, symbol, from, to)
		if err != nil {
			s.logger.WithError(err).Warn("Bar repository lookup failed, falling back to remote")
		} else if len(bars) > 0 {
			s.cacheBars(ctx, cacheKey, bars)
			return bars, nil
		}
	}

	bars, err := s.client.FetchDailyBars(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no daily bars for %s between %s and %s",
			symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	if s.repo != nil {
		if err := s.repo.UpsertBars(ctx, symbol, bars); err != nil {
			s.logger.WithError(err).Warn("Failed to store fetched bars")
		}
	}
	s.cacheBars(ctx, cacheKey, bars)

	return bars, nil
}

// RefreshDailyBars re-fetches from the remote source and stores the
// result, bypassing cache and repository reads.
func (s *Service) RefreshDailyBars(ctx context.Context, rawSymbol string, from, to time.Time) (int, error) {
	symbol, err := Normalize(rawSymbol)
	if err != nil {
		return 0, err
	}

	bars, err := s.client.FetchDailyBars(ctx, symbol, from, to)
	if err != nil {
		return 0, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}

	if s.repo != nil {
		if err := s.repo.UpsertBars(ctx, symbol, bars); err != nil {
			return 0, fmt.Errorf("store daily bars for %s: %w", symbol, err)
		}
	}

	if s.cache != nil {
		cacheKey := redis.BarsKey(symbol.String(), from.Format("2006-01-02"), to.Format("2006-01-02"))
		_ = s.cache.Delete(ctx, cacheKey)
	}

	return len(bars), nil
}

// GetProfile returns the company profile for a raw symbol.
func (s *Service) GetProfile(ctx context.Context, rawSymbol string) (*Profile, error) {
	symbol, err := Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}

	cacheKey := redis.ProfileKey(symbol.String())
	if s.cache != nil {
		var profile Profile
		if found, err := s.cache.Get(ctx, cacheKey, &profile); err == nil && found {
			return &profile, nil
		}
	}

	profile, err := s.client.FetchProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, profile, redis.TTLDaily)
	}

	return profile, nil
}

func (s *Service) cacheBars(ctx context.Context, key string, bars []Bar) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, bars, redis.TTLDaily); err != nil {
		s.logger.WithError(err).Warn("Failed to cache bars")
	}
}
