package domain

import (
	"fmt"
	"math"
	"time"
)

// Wire shapes mirror the loose JSON the backend emits. They are decoded as-is
// and converted into the typed entities through the checked constructors below
// so malformed payloads are rejected at the boundary instead of leaking into
// the rule packages.

// DateLayout is the calendar date format used on the wire (no time component).
const DateLayout = "2006-01-02"

// WireFloor is the backend representation of a floor.
type WireFloor struct {
	ID         uint       `json:"id"`
	PropertyID uint       `json:"property_id"`
	Number     int        `json:"number"`
	Rooms      []WireRoom `json:"rooms"`
}

// WireRoom is the backend representation of a room.
type WireRoom struct {
	ID      uint    `json:"id"`
	FloorID uint    `json:"floor_id"`
	Code    int     `json:"code"`
	Status  string  `json:"status"`
	Rent    float64 `json:"rent"`
}

// WireTenant is the backend representation of a tenant.
type WireTenant struct {
	ID              uint   `json:"id"`
	FullName        string `json:"full_name"`
	DNI             string `json:"dni"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ActiveContracts int    `json:"active_contracts"`
}

// WireContract is the backend representation of a contract.
type WireContract struct {
	ID         uint    `json:"id"`
	PropertyID uint    `json:"property_id"`
	TenantID   uint    `json:"tenant_id"`
	RoomID     uint    `json:"room_id"`
	Status     string  `json:"status"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Deposit    float64 `json:"deposit"`
	Signed     bool    `json:"signed"`
}

// WireInvoice is the backend representation of an invoice.
type WireInvoice struct {
	ID         uint    `json:"id"`
	ContractID uint    `json:"contract_id"`
	Period     string  `json:"period"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
}

// ParseRoomStatus converts a wire status string into a RoomStatus.
func ParseRoomStatus(s string) (RoomStatus, error) {
	switch RoomStatus(s) {
	case RoomAvailable, RoomOccupied:
		return RoomStatus(s), nil
	}
	return "", fmt.Errorf("unknown room status %q", s)
}

// ParseContractStatus converts a wire status string into a ContractStatus.
func ParseContractStatus(s string) (ContractStatus, error) {
	switch ContractStatus(s) {
	case ContractActive, ContractCancelled:
		return ContractStatus(s), nil
	}
	return "", fmt.Errorf("unknown contract status %q", s)
}

// ParseInvoiceStatus converts a wire status string into an InvoiceStatus.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case InvoicePending, InvoicePaid, InvoiceOverdue:
		return InvoiceStatus(s), nil
	}
	return "", fmt.Errorf("unknown invoice status %q", s)
}

// FloorFromWire converts a wire floor, including its rooms.
func FloorFromWire(w WireFloor) (Floor, error) {
	if w.ID == 0 {
		return Floor{}, fmt.Errorf("floor: missing id")
	}
	if w.Number <= 0 {
		return Floor{}, fmt.Errorf("floor %d: invalid floor number %d", w.ID, w.Number)
	}
	f := Floor{
		ID:         w.ID,
		PropertyID: w.PropertyID,
		Number:     w.Number,
	}
	for _, wr := range w.Rooms {
		r, err := RoomFromWire(wr)
		if err != nil {
			return Floor{}, fmt.Errorf("floor %d: %w", w.ID, err)
		}
		f.Rooms = append(f.Rooms, r)
	}
	return f, nil
}

// RoomFromWire converts a wire room, validating status and rent.
func RoomFromWire(w WireRoom) (Room, error) {
	if w.ID == 0 {
		return Room{}, fmt.Errorf("room: missing id")
	}
	status, err := ParseRoomStatus(w.Status)
	if err != nil {
		return Room{}, fmt.Errorf("room %d: %w", w.ID, err)
	}
	if math.IsNaN(w.Rent) || math.IsInf(w.Rent, 0) || w.Rent < 0 {
		return Room{}, fmt.Errorf("room %d: invalid rent %v", w.ID, w.Rent)
	}
	return Room{
		ID:      w.ID,
		FloorID: w.FloorID,
		Code:    w.Code,
		Status:  status,
		Rent:    w.Rent,
	}, nil
}

// TenantFromWire converts a wire tenant.
func TenantFromWire(w WireTenant) (Tenant, error) {
	if w.ID == 0 {
		return Tenant{}, fmt.Errorf("tenant: missing id")
	}
	if w.ActiveContracts < 0 {
		return Tenant{}, fmt.Errorf("tenant %d: negative contract count", w.ID)
	}
	return Tenant{
		ID:              w.ID,
		FullName:        w.FullName,
		DNI:             w.DNI,
		Email:           w.Email,
		Phone:           w.Phone,
		ActiveContracts: w.ActiveContracts,
	}, nil
}

// ContractFromWire converts a wire contract, validating status and dates.
func ContractFromWire(w WireContract) (Contract, error) {
	if w.ID == 0 {
		return Contract{}, fmt.Errorf("contract: missing id")
	}
	status, err := ParseContractStatus(w.Status)
	if err != nil {
		return Contract{}, fmt.Errorf("contract %d: %w", w.ID, err)
	}
	start, err := time.Parse(DateLayout, w.StartDate)
	if err != nil {
		return Contract{}, fmt.Errorf("contract %d: bad start date %q", w.ID, w.StartDate)
	}
	end, err := time.Parse(DateLayout, w.EndDate)
	if err != nil {
		return Contract{}, fmt.Errorf("contract %d: bad end date %q", w.ID, w.EndDate)
	}
	if math.IsNaN(w.Deposit) || math.IsInf(w.Deposit, 0) || w.Deposit < 0 {
		return Contract{}, fmt.Errorf("contract %d: invalid deposit %v", w.ID, w.Deposit)
	}
	return Contract{
		ID:         w.ID,
		PropertyID: w.PropertyID,
		TenantID:   w.TenantID,
		RoomID:     w.RoomID,
		Status:     status,
		StartDate:  start,
		EndDate:    end,
		Deposit:    w.Deposit,
		Signed:     w.Signed,
	}, nil
}

// InvoiceFromWire converts a wire invoice.
func InvoiceFromWire(w WireInvoice) (Invoice, error) {
	if w.ID == 0 {
		return Invoice{}, fmt.Errorf("invoice: missing id")
	}
	status, err := ParseInvoiceStatus(w.Status)
	if err != nil {
		return Invoice{}, fmt.Errorf("invoice %d: %w", w.ID, err)
	}
	return Invoice{
		ID:         w.ID,
		ContractID: w.ContractID,
		Period:     w.Period,
		Status:     status,
		Amount:     w.Amount,
	}, nil
}
