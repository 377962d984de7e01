package handler

import (
	"context"
	"net/http"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListInvoices returns the invoices of a property. Payment handling lives
// upstream; the gateway only mirrors the list and keeps it fresh after the
// finalize cascade.
func ListInvoices(c echo.Context) error {
	log := logger.FromContext(c)

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	return respondCached(c, cache.Invoices(propID), func(ctx context.Context) (any, error) {
		invoices, err := backend.ListInvoices(ctx, propID)
		if err != nil {
			return nil, err
		}
		log.Info("Invoices retrieved", zap.Uint("property_id", propID), zap.Int("count", len(invoices)))
		return echo.Map{"invoices": invoices}, nil
	})
}
