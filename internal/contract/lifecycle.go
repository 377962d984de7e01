// Package contract implements the contract lifecycle rules: creation
// validation, the one-way ACTIVO → CANCELADO transition, and the cache
// cascade each mutation triggers. The backend stays the authority on
// availability; these checks exist so a bad submission is rejected before it
// ever leaves the gateway.
package contract

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/internal/domain"
)

// Rejection reasons for contract creation, checked in order with the first
// failure short-circuiting the rest.
const (
	ReasonPartiesRequired = "tenant and room are required"
	ReasonDatesRequired   = "dates are required"
	ReasonInvalidDeposit  = "enter a valid deposit amount"
	ReasonDateOrder       = "end date must be after start date"
)

// CreateInput is the raw contract creation form as submitted by the caller.
type CreateInput struct {
	TenantID   uint
	RoomID     uint
	StartDate  string
	EndDate    string
	RawDeposit string
}

// CreateRequest is the validated, typed payload ready to be forwarded to the
// backend.
type CreateRequest struct {
	TenantID  uint
	RoomID    uint
	StartDate time.Time
	EndDate   time.Time
	Deposit   float64
}

// ValidateCreate runs the ordered creation checks against the raw input. On
// acceptance it returns the typed request and an empty reason; otherwise the
// human-readable rejection reason. Validation failures never reach the
// backend.
func ValidateCreate(in CreateInput) (CreateRequest, string) {
	if in.TenantID == 0 || in.RoomID == 0 {
		return CreateRequest{}, ReasonPartiesRequired
	}
	rawStart := strings.TrimSpace(in.StartDate)
	rawEnd := strings.TrimSpace(in.EndDate)
	if rawStart == "" || rawEnd == "" {
		return CreateRequest{}, ReasonDatesRequired
	}
	start, err := time.Parse(domain.DateLayout, rawStart)
	if err != nil {
		return CreateRequest{}, ReasonDatesRequired
	}
	end, err := time.Parse(domain.DateLayout, rawEnd)
	if err != nil {
		return CreateRequest{}, ReasonDatesRequired
	}
	deposit, ok := parseDeposit(in.RawDeposit)
	if !ok {
		return CreateRequest{}, ReasonInvalidDeposit
	}
	if !end.After(start) {
		return CreateRequest{}, ReasonDateOrder
	}
	return CreateRequest{
		TenantID:  in.TenantID,
		RoomID:    in.RoomID,
		StartDate: start,
		EndDate:   end,
		Deposit:   deposit,
	}, ""
}

func parseDeposit(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	deposit, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(deposit) || math.IsInf(deposit, 0) || deposit < 0 {
		return 0, false
	}
	return deposit, true
}

// AvailableTenants filters the candidate tenants for a new contract: only
// those with no active contract are offered. The backend re-checks on submit;
// this is a presentation convenience.
func AvailableTenants(tenants []domain.Tenant) []domain.Tenant {
	candidates := make([]domain.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if t.IsAvailable() {
			candidates = append(candidates, t)
		}
	}
	return candidates
}

// AvailableRooms filters the candidate rooms for a new contract.
func AvailableRooms(rooms []domain.Room) []domain.Room {
	candidates := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsAvailable() {
			candidates = append(candidates, r)
		}
	}
	return candidates
}

// CanFinalize reports whether the contract can take the ACTIVO → CANCELADO
// transition. CANCELADO is terminal; there is no reactivation path.
func CanFinalize(c domain.Contract) bool {
	return c.IsActive()
}

// CanSign reports whether a sign action may be offered: only for an active,
// still unsigned contract. Signature presence never affects the state
// machine itself.
func CanSign(c domain.Contract) bool {
	return c.IsActive() && !c.Signed
}

// FinalizeInvalidations declares the exact set of cached views staled by
// finalizing a contract: its detail view, the property's contract list, the
// available-room and available-tenant lists (both parties are freed), and the
// property's invoices (pending ones are cancelled upstream).
func FinalizeInvalidations(propertyID, contractID uint) []cache.Key {
	return []cache.Key{
		cache.ContractList(propertyID),
		cache.ContractDetail(propertyID, contractID),
		cache.AvailableRooms(propertyID),
		cache.AvailableTenants(propertyID),
		cache.Invoices(propertyID),
	}
}

// CreateInvalidations declares the views staled by a successful creation:
// both parties drop out of the candidate lists and the first invoice is
// issued upstream.
func CreateInvalidations(propertyID uint) []cache.Key {
	return []cache.Key{
		cache.ContractList(propertyID),
		cache.AvailableRooms(propertyID),
		cache.AvailableTenants(propertyID),
		cache.Invoices(propertyID),
	}
}
