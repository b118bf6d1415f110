// Package mealdb is the gateway to the TheMealDB recipe API. It applies a
// time-boxed read-through cache and exponential-backoff retry to every
// upstream call, and normalizes responses so callers never see the
// upstream's null lists or numbered ingredient fields.
package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUpstream is returned once the retry budget for a remote call is
// exhausted. Handlers render a generic failure, never the transport error.
var ErrUpstream = errors.New("upstream recipe API unavailable")

// Gateway fetches recipe, category, and area data from the upstream API.
type Gateway struct {
	client  *http.Client
	baseURL string
	cache   *Cache
	logger  *slog.Logger

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep sleepFunc
}

// NewGateway creates a Gateway against baseURL using the given cache.
// Pass nil for client to use the default configured HTTP client.
func NewGateway(baseURL string, cache *Cache, client *http.Client, logger *slog.Logger) *Gateway {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Gateway{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
		logger:  logger,
		now:     time.Now,
		sleep:   sleepWithContext,
	}
}

// Featured returns the upstream's featured recipe set (empty search).
// Cached for the cache TTL.
func (g *Gateway) Featured(ctx context.Context) ([]Recipe, error) {
	if cached, ok := g.cache.Get(cacheKeyFeatured, g.now()); ok {
		return cached.([]Recipe), nil
	}

	recipes, err := g.fetchRecipes(ctx, g.endpoint("search.php", "s", ""))
	if err != nil {
		return nil, err
	}

	g.cache.Put(cacheKeyFeatured, recipes, g.now())
	return recipes, nil
}

// Search returns recipes matching query. Query-parameterized results are
// never cached.
func (g *Gateway) Search(ctx context.Context, query string) ([]Recipe, error) {
	return g.fetchRecipes(ctx, g.endpoint("search.php", "s", query))
}

// Categories returns the list of recipe category names. Cached.
func (g *Gateway) Categories(ctx context.Context) ([]string, error) {
	return g.fetchNameList(ctx, cacheKeyCategories, g.endpoint("list.php", "c", "list"), "strCategory")
}

// Areas returns the list of cuisine area names. Cached.
func (g *Gateway) Areas(ctx context.Context) ([]string, error) {
	return g.fetchNameList(ctx, cacheKeyAreas, g.endpoint("list.php", "a", "list"), "strArea")
}

// ByCategory returns the recipes filtered to one category. The upstream
// filter endpoint returns a reduced record (id, name, thumbnail).
func (g *Gateway) ByCategory(ctx context.Context, category string) ([]Recipe, error) {
	return g.fetchRecipes(ctx, g.endpoint("filter.php", "c", category))
}

// AllRecipes aggregates every category's recipes into one list. The result
// is cached as a whole; a category whose fetch fails after retries is
// logged and skipped rather than failing the aggregate.
func (g *Gateway) AllRecipes(ctx context.Context) ([]Recipe, error) {
	if cached, ok := g.cache.Get(cacheKeyAll, g.now()); ok {
		return cached.([]Recipe), nil
	}

	categories, err := g.Categories(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]Recipe, 0)
	for _, category := range categories {
		recipes, err := g.ByCategory(ctx, category)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			g.logger.Warn("skipping category after retries",
				slog.String("category", category),
				slog.String("error", err.Error()),
			)
			continue
		}
		all = append(all, recipes...)
	}

	g.cache.Put(cacheKeyAll, all, g.now())
	return all, nil
}

// fetchRecipes fetches and normalizes a recipe list endpoint.
func (g *Gateway) fetchRecipes(ctx context.Context, url string) ([]Recipe, error) {
	envelope, err := g.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}
	return normalizeMeals(envelope.Meals), nil
}

// fetchNameList fetches a cached list endpoint and projects one string field.
func (g *Gateway) fetchNameList(ctx context.Context, cacheKey, url, field string) ([]string, error) {
	if cached, ok := g.cache.Get(cacheKey, g.now()); ok {
		return cached.([]string), nil
	}

	envelope, err := g.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(envelope.Meals))
	for _, meal := range envelope.Meals {
		if name := stringField(meal, field); name != "" {
			names = append(names, name)
		}
	}

	g.cache.Put(cacheKey, names, g.now())
	return names, nil
}

// fetchWithRetry performs one GET with the retry policy: the first failure
// is followed by up to maxRetries further attempts, sleeping RetryDelay(n)
// before each. Exhaustion surfaces ErrUpstream wrapping the last error.
func (g *Gateway) fetchWithRetry(ctx context.Context, url string) (*mealsEnvelope, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := g.sleep(ctx, RetryDelay(attempt-1)); err != nil {
				return nil, err
			}
		}

		envelope, err := g.fetchOnce(ctx, url)
		if err == nil {
			return envelope, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		g.logger.Warn("upstream fetch failed",
			slog.String("url", url),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}

	return nil, fmt.Errorf("%w: %w", ErrUpstream, lastErr)
}

// fetchOnce performs a single GET and decodes the meals envelope.
// Any non-2xx status is a retryable failure.
func (g *Gateway) fetchOnce(ctx context.Context, url string) (*mealsEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var envelope mealsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &envelope, nil
}

// endpoint builds an upstream URL with a single query parameter.
func (g *Gateway) endpoint(path, param, value string) string {
	return fmt.Sprintf("%s/%s?%s=%s", g.baseURL, path, param, url.QueryEscape(value))
}
