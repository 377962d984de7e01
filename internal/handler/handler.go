// Package handler exposes the gateway's HTTP surface. Every mutation handler
// follows the same contract: bind the raw form payload, run the local
// validation mirror, reject locally invalid submissions without touching the
// backend, forward accepted payloads, and drop the declared cache keys on
// success. Read handlers consult the response cache first.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/internal/upstream"
	"github.com/Ivoox45/habitora-gateway/pkg/logger"
	"github.com/Ivoox45/habitora-gateway/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	backend *upstream.Client
	store   cache.Store
)

// Init wires the handlers to the upstream client and the response cache.
func Init(client *upstream.Client, cacheStore cache.Store) {
	backend = client
	store = cacheStore
}

// propertyID parses the :propertyId route parameter.
func propertyID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("propertyId"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pathID parses a positive integer route parameter.
func pathID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondCached serves the view from the cache when possible and fills the
// cache from the fetch callback on a miss.
func respondCached(c echo.Context, key cache.Key, fetch func(ctx context.Context) (any, error)) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	if payload, ok := store.Get(ctx, key); ok {
		prometheus.CacheHitsCounter.WithLabelValues(string(key.Kind)).Inc()
		return c.JSONBlob(http.StatusOK, payload)
	}
	prometheus.CacheMissesCounter.WithLabelValues(string(key.Kind)).Inc()

	view, err := fetch(ctx)
	if err != nil {
		return relayBackendError(c, err)
	}

	payload, err := json.Marshal(view)
	if err != nil {
		log.Error("Failed to encode view", zap.String("key", key.String()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to encode response"})
	}
	store.Set(ctx, key, payload)

	return c.JSONBlob(http.StatusOK, payload)
}

// invalidate drops the given keys from the response cache.
func invalidate(ctx context.Context, log *zap.Logger, keys ...cache.Key) {
	store.Invalidate(ctx, keys...)
	for _, key := range keys {
		prometheus.CacheInvalidationsCounter.Inc()
		log.Debug("Invalidated cached view", zap.String("key", key.String()))
	}
}

// parseRent converts an already-validated rent string.
func parseRent(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func formatUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// relayBackendError maps upstream errors onto the gateway's responses.
// Conflicts are normal rejections the caller recovers from by refetching
// candidates; anything else from the backend surfaces as a retryable failure.
func relayBackendError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	if upstream.IsConflict(err) {
		log.Warn("Backend reported availability conflict", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	var reqErr *upstream.RequestError
	if errors.As(err, &reqErr) {
		log.Warn("Backend rejected request", zap.Int("status", reqErr.Status), zap.Error(err))
		if reqErr.Status == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": reqErr.Reason})
	}

	log.Error("Backend call failed", zap.Error(err))
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "backend unavailable, please try again"})
}
