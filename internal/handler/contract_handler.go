package handler

import (
	"context"
	"net/http"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/internal/contract"
	"github.com/Ivoox45/habitora-gateway/pkg/logger"
	"github.com/Ivoox45/habitora-gateway/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContractForm carries the raw contract creation submission. The deposit
// stays a string until the lifecycle validation has accepted it.
type ContractForm struct {
	TenantID  uint   `json:"tenant_id"`
	RoomID    uint   `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Deposit   string `json:"deposit"`
}

// ListContracts returns the contracts of a property.
func ListContracts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordContractOperation("list")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	return respondCached(c, cache.ContractList(propID), func(ctx context.Context) (any, error) {
		contracts, err := backend.ListContracts(ctx, propID)
		if err != nil {
			return nil, err
		}
		log.Info("Contracts retrieved", zap.Uint("property_id", propID), zap.Int("count", len(contracts)))
		return echo.Map{"contracts": contracts}, nil
	})
}

// GetContract returns one contract together with the actions it currently
// admits (finalize for ACTIVO, sign for ACTIVO and unsigned).
func GetContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordContractOperation("get")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	contractID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}

	return respondCached(c, cache.ContractDetail(propID, contractID), func(ctx context.Context) (any, error) {
		found, err := backend.GetContract(ctx, propID, contractID)
		if err != nil {
			return nil, err
		}
		log.Info("Contract retrieved",
			zap.Uint("contract_id", found.ID),
			zap.String("status", string(found.Status)))
		return echo.Map{
			"contract":     found,
			"can_finalize": contract.CanFinalize(found),
			"can_sign":     contract.CanSign(found),
		}, nil
	})
}

// CreateContract runs the lifecycle validation and forwards the typed payload.
func CreateContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordContractOperation("create")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	var form ContractForm
	if err := c.Bind(&form); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	req, reason := contract.ValidateCreate(contract.CreateInput{
		TenantID:   form.TenantID,
		RoomID:     form.RoomID,
		StartDate:  form.StartDate,
		EndDate:    form.EndDate,
		RawDeposit: form.Deposit,
	})
	if reason != "" {
		log.Warn("Contract submission rejected",
			zap.Uint("tenant_id", form.TenantID),
			zap.Uint("room_id", form.RoomID),
			zap.String("reason", reason))
		prometheus.RecordValidationRejection("contract")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": reason})
	}

	created, err := backend.CreateContract(c.Request().Context(), propID, req)
	if err != nil {
		// The candidate lists are fetched before the form opens, so a
		// room or tenant can be taken in between. The backend stays
		// the arbiter and the caller retries from refreshed lists.
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log, contract.CreateInvalidations(propID)...)

	log.Info("Contract created",
		zap.Uint("contract_id", created.ID),
		zap.Uint("tenant_id", created.TenantID),
		zap.Uint("room_id", created.RoomID))
	return c.JSON(http.StatusCreated, created)
}

// FinalizeContract forwards the ACTIVO → CANCELADO transition and drops every
// view the cascade stales: the contract list and detail, both candidate
// lists, and the property's invoices.
func FinalizeContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordContractOperation("finalize")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	contractID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}

	finalized, err := backend.FinalizeContract(c.Request().Context(), propID, contractID)
	if err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log, contract.FinalizeInvalidations(propID, contractID)...)

	log.Info("Contract finalized",
		zap.Uint("contract_id", finalized.ID),
		zap.Uint("property_id", propID),
		zap.String("status", string(finalized.Status)))
	return c.JSON(http.StatusOK, finalized)
}

// SignContract records a signature. The sign action is only offered for an
// active, unsigned contract; the gateway pre-checks when it has the detail
// cached, and the backend enforces it either way.
func SignContract(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordContractOperation("sign")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	contractID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}

	signed, err := backend.SignContract(c.Request().Context(), propID, contractID)
	if err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log,
		cache.ContractList(propID),
		cache.ContractDetail(propID, contractID),
	)

	log.Info("Contract signed", zap.Uint("contract_id", signed.ID))
	return c.JSON(http.StatusOK, signed)
}
