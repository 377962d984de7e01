package domain

import "time"

// RoomStatus is the occupancy state of a room as reported by the backend.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "DISPONIBLE"
	RoomOccupied  RoomStatus = "OCUPADA"
)

// ContractStatus is the lifecycle state of a rental contract.
type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVO"
	ContractCancelled ContractStatus = "CANCELADO"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDIENTE"
	InvoicePaid    InvoiceStatus = "PAGADA"
	InvoiceOverdue InvoiceStatus = "VENCIDA"
)

// RoomsPerFloor is the maximum number of rooms a floor can hold. Each floor
// reserves the code namespace [Number*100+1, Number*100+RoomsPerFloor].
const RoomsPerFloor = 8

// Floor is a numbered level of a property owning up to RoomsPerFloor rooms.
type Floor struct {
	ID         uint   `json:"id"`
	PropertyID uint   `json:"property_id"`
	Number     int    `json:"number"`
	Rooms      []Room `json:"rooms,omitempty"`
}

// CodeBase returns the lower bound of the floor's room code namespace.
func (f Floor) CodeBase() int {
	return f.Number * 100
}

// Room belongs to a floor and carries a 3-digit code unique within it.
type Room struct {
	ID      uint       `json:"id"`
	FloorID uint       `json:"floor_id"`
	Code    int        `json:"code"`
	Status  RoomStatus `json:"status"`
	Rent    float64    `json:"rent"`
}

// IsAvailable reports whether the room can be offered for a new contract.
func (r Room) IsAvailable() bool {
	return r.Status == RoomAvailable
}

// Tenant is a person that can hold rental contracts.
type Tenant struct {
	ID              uint   `json:"id"`
	FullName        string `json:"full_name"`
	DNI             string `json:"dni"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	ActiveContracts int    `json:"active_contracts"`
}

// IsAvailable reports whether the tenant can be offered for a new contract.
// A tenant with any active contract is not a candidate.
func (t Tenant) IsAvailable() bool {
	return t.ActiveContracts == 0
}

// Contract binds one tenant to one room for a date range. Contracts are never
// deleted; finalization moves them to CANCELADO, which is terminal.
type Contract struct {
	ID         uint           `json:"id"`
	PropertyID uint           `json:"property_id"`
	TenantID   uint           `json:"tenant_id"`
	RoomID     uint           `json:"room_id"`
	Status     ContractStatus `json:"status"`
	StartDate  time.Time      `json:"start_date"`
	EndDate    time.Time      `json:"end_date"`
	Deposit    float64        `json:"deposit"`
	Signed     bool           `json:"signed"`
}

// IsActive reports whether the contract is in its ACTIVO state.
func (c Contract) IsActive() bool {
	return c.Status == ContractActive
}

// Invoice is a billing document derived from a contract. Only its listing and
// the finalize cascade matter to the gateway; payment handling stays upstream.
type Invoice struct {
	ID         uint          `json:"id"`
	ContractID uint          `json:"contract_id"`
	Period     string        `json:"period"`
	Status     InvoiceStatus `json:"status"`
	Amount     float64       `json:"amount"`
}
