package handler

import (
	"context"
	"net/http"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/internal/contract"
	"github.com/Ivoox45/habitora-gateway/internal/upstream"
	"github.com/Ivoox45/habitora-gateway/internal/validate"
	"github.com/Ivoox45/habitora-gateway/pkg/logger"
	"github.com/Ivoox45/habitora-gateway/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantForm carries the raw tenant submission.
type TenantForm struct {
	FullName string `json:"full_name"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// validateTenantForm runs the shared primitives over a tenant submission and
// returns the sanitized upstream payload or a rejection reason.
func validateTenantForm(form TenantForm) (upstream.TenantRequest, string) {
	name := validate.SanitizeNameInput(form.FullName)
	if !validate.IsValidName(name) {
		return upstream.TenantRequest{}, "enter a valid full name"
	}
	dni := validate.SanitizeDNIInput(form.DNI)
	if !validate.IsValidDNI(dni) {
		return upstream.TenantRequest{}, "DNI must be exactly 8 digits"
	}
	email := validate.SanitizeEmailInput(form.Email)
	if !validate.IsValidEmail(email) {
		return upstream.TenantRequest{}, "enter a valid email address"
	}
	phone := validate.SanitizePhoneInput(form.Phone)
	if !validate.IsValidPhone(phone) {
		return upstream.TenantRequest{}, "phone must be exactly 9 digits"
	}
	return upstream.TenantRequest{
		FullName: name,
		DNI:      dni,
		Email:    email,
		Phone:    phone,
	}, ""
}

// ListTenants returns the tenants of a property. With ?available=true only
// tenants with no active contract are returned.
func ListTenants(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("list")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	onlyAvailable := c.QueryParam("available") == "true"
	key := cache.TenantList(propID)
	if onlyAvailable {
		key = cache.AvailableTenants(propID)
	}

	return respondCached(c, key, func(ctx context.Context) (any, error) {
		tenants, err := backend.ListTenants(ctx, propID)
		if err != nil {
			return nil, err
		}
		if onlyAvailable {
			tenants = contract.AvailableTenants(tenants)
		}
		log.Info("Tenants retrieved",
			zap.Uint("property_id", propID),
			zap.Bool("only_available", onlyAvailable),
			zap.Int("count", len(tenants)))
		return echo.Map{"tenants": tenants}, nil
	})
}

// CreateTenant validates and forwards a tenant submission.
func CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("create")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	var form TenantForm
	if err := c.Bind(&form); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req, reason := validateTenantForm(form)
	if reason != "" {
		log.Warn("Tenant submission rejected", zap.String("reason", reason))
		prometheus.RecordValidationRejection("tenant")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": reason})
	}

	tenant, err := backend.CreateTenant(c.Request().Context(), propID, req)
	if err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log,
		cache.TenantList(propID),
		cache.AvailableTenants(propID),
	)

	log.Info("Tenant created", zap.Uint("tenant_id", tenant.ID), zap.String("dni", tenant.DNI))
	return c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant validates and forwards a tenant edit.
func UpdateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("update")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	tenantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
	}

	var form TenantForm
	if err := c.Bind(&form); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req, reason := validateTenantForm(form)
	if reason != "" {
		log.Warn("Tenant edit rejected", zap.Uint("tenant_id", tenantID), zap.String("reason", reason))
		prometheus.RecordValidationRejection("tenant")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": reason})
	}

	tenant, err := backend.UpdateTenant(c.Request().Context(), propID, tenantID, req)
	if err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log,
		cache.TenantList(propID),
		cache.AvailableTenants(propID),
	)

	log.Info("Tenant updated", zap.Uint("tenant_id", tenant.ID))
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant forwards a tenant deletion.
func DeleteTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("delete")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	tenantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
	}

	if err := backend.DeleteTenant(c.Request().Context(), propID, tenantID); err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log,
		cache.TenantList(propID),
		cache.AvailableTenants(propID),
	)

	log.Info("Tenant deleted", zap.Uint("tenant_id", tenantID), zap.Uint("property_id", propID))
	return c.JSON(http.StatusOK, echo.Map{"message": "tenant deleted"})
}
