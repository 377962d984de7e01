package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ivoox45/habitora-gateway/internal/contract"
	"github.com/Ivoox45/habitora-gateway/internal/domain"
)

// RoomRequest is the payload for room creation and edits.
type RoomRequest struct {
	FloorID uint    `json:"floor_id"`
	Code    int     `json:"code"`
	Rent    float64 `json:"rent"`
}

// TenantRequest is the payload for tenant creation and edits.
type TenantRequest struct {
	FullName string `json:"full_name"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

type contractRequest struct {
	TenantID  uint    `json:"tenant_id"`
	RoomID    uint    `json:"room_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Deposit   float64 `json:"deposit"`
}

type floorsResponse struct {
	Floors []domain.WireFloor `json:"floors"`
}

type roomsResponse struct {
	Rooms []domain.WireRoom `json:"rooms"`
}

type tenantsResponse struct {
	Tenants []domain.WireTenant `json:"tenants"`
}

type contractsResponse struct {
	Contracts []domain.WireContract `json:"contracts"`
}

type invoicesResponse struct {
	Invoices []domain.WireInvoice `json:"invoices"`
}

// ListFloors fetches the floors of a property, rooms included.
func (c *Client) ListFloors(ctx context.Context, propertyID uint) ([]domain.Floor, error) {
	var resp floorsResponse
	path := fmt.Sprintf("/api/properties/%d/floors", propertyID)
	if err := c.do(ctx, "list_floors", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	floors := make([]domain.Floor, 0, len(resp.Floors))
	for _, w := range resp.Floors {
		floor, err := domain.FloorFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("list_floors: %w", err)
		}
		floors = append(floors, floor)
	}
	return floors, nil
}

// GetFloor fetches a single floor with its rooms.
func (c *Client) GetFloor(ctx context.Context, propertyID, floorID uint) (domain.Floor, error) {
	var w domain.WireFloor
	path := fmt.Sprintf("/api/properties/%d/floors/%d", propertyID, floorID)
	if err := c.do(ctx, "get_floor", http.MethodGet, path, nil, &w); err != nil {
		return domain.Floor{}, err
	}
	return domain.FloorFromWire(w)
}

// ListRooms fetches all rooms of a property.
func (c *Client) ListRooms(ctx context.Context, propertyID uint) ([]domain.Room, error) {
	var resp roomsResponse
	path := fmt.Sprintf("/api/properties/%d/rooms", propertyID)
	if err := c.do(ctx, "list_rooms", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	rooms := make([]domain.Room, 0, len(resp.Rooms))
	for _, w := range resp.Rooms {
		room, err := domain.RoomFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("list_rooms: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// CreateRoom submits a validated room payload.
func (c *Client) CreateRoom(ctx context.Context, propertyID uint, req RoomRequest) (domain.Room, error) {
	var w domain.WireRoom
	path := fmt.Sprintf("/api/properties/%d/rooms", propertyID)
	if err := c.do(ctx, "create_room", http.MethodPost, path, req, &w); err != nil {
		return domain.Room{}, err
	}
	return domain.RoomFromWire(w)
}

// UpdateRoom submits a validated room edit.
func (c *Client) UpdateRoom(ctx context.Context, propertyID, roomID uint, req RoomRequest) (domain.Room, error) {
	var w domain.WireRoom
	path := fmt.Sprintf("/api/properties/%d/rooms/%d", propertyID, roomID)
	if err := c.do(ctx, "update_room", http.MethodPut, path, req, &w); err != nil {
		return domain.Room{}, err
	}
	return domain.RoomFromWire(w)
}

// DeleteRoom removes a room.
func (c *Client) DeleteRoom(ctx context.Context, propertyID, roomID uint) error {
	path := fmt.Sprintf("/api/properties/%d/rooms/%d", propertyID, roomID)
	return c.do(ctx, "delete_room", http.MethodDelete, path, nil, nil)
}

// ListTenants fetches all tenants of a property.
func (c *Client) ListTenants(ctx context.Context, propertyID uint) ([]domain.Tenant, error) {
	var resp tenantsResponse
	path := fmt.Sprintf("/api/properties/%d/tenants", propertyID)
	if err := c.do(ctx, "list_tenants", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	tenants := make([]domain.Tenant, 0, len(resp.Tenants))
	for _, w := range resp.Tenants {
		tenant, err := domain.TenantFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("list_tenants: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}

// CreateTenant submits a validated tenant payload.
func (c *Client) CreateTenant(ctx context.Context, propertyID uint, req TenantRequest) (domain.Tenant, error) {
	var w domain.WireTenant
	path := fmt.Sprintf("/api/properties/%d/tenants", propertyID)
	if err := c.do(ctx, "create_tenant", http.MethodPost, path, req, &w); err != nil {
		return domain.Tenant{}, err
	}
	return domain.TenantFromWire(w)
}

// UpdateTenant submits a validated tenant edit.
func (c *Client) UpdateTenant(ctx context.Context, propertyID, tenantID uint, req TenantRequest) (domain.Tenant, error) {
	var w domain.WireTenant
	path := fmt.Sprintf("/api/properties/%d/tenants/%d", propertyID, tenantID)
	if err := c.do(ctx, "update_tenant", http.MethodPut, path, req, &w); err != nil {
		return domain.Tenant{}, err
	}
	return domain.TenantFromWire(w)
}

// DeleteTenant removes a tenant.
func (c *Client) DeleteTenant(ctx context.Context, propertyID, tenantID uint) error {
	path := fmt.Sprintf("/api/properties/%d/tenants/%d", propertyID, tenantID)
	return c.do(ctx, "delete_tenant", http.MethodDelete, path, nil, nil)
}

// ListContracts fetches all contracts of a property.
func (c *Client) ListContracts(ctx context.Context, propertyID uint) ([]domain.Contract, error) {
	var resp contractsResponse
	path := fmt.Sprintf("/api/properties/%d/contracts", propertyID)
	if err := c.do(ctx, "list_contracts", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	contracts := make([]domain.Contract, 0, len(resp.Contracts))
	for _, w := range resp.Contracts {
		parsed, err := domain.ContractFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("list_contracts: %w", err)
		}
		contracts = append(contracts, parsed)
	}
	return contracts, nil
}

// GetContract fetches one contract.
func (c *Client) GetContract(ctx context.Context, propertyID, contractID uint) (domain.Contract, error) {
	var w domain.WireContract
	path := fmt.Sprintf("/api/properties/%d/contracts/%d", propertyID, contractID)
	if err := c.do(ctx, "get_contract", http.MethodGet, path, nil, &w); err != nil {
		return domain.Contract{}, err
	}
	return domain.ContractFromWire(w)
}

// CreateContract submits a validated contract creation request.
func (c *Client) CreateContract(ctx context.Context, propertyID uint, req contract.CreateRequest) (domain.Contract, error) {
	payload := contractRequest{
		TenantID:  req.TenantID,
		RoomID:    req.RoomID,
		StartDate: req.StartDate.Format(domain.DateLayout),
		EndDate:   req.EndDate.Format(domain.DateLayout),
		Deposit:   req.Deposit,
	}
	var w domain.WireContract
	path := fmt.Sprintf("/api/properties/%d/contracts", propertyID)
	if err := c.do(ctx, "create_contract", http.MethodPost, path, payload, &w); err != nil {
		return domain.Contract{}, err
	}
	return domain.ContractFromWire(w)
}

// FinalizeContract asks the backend to take the contract to CANCELADO. The
// backend frees the room and tenant and cancels pending invoices as one unit.
func (c *Client) FinalizeContract(ctx context.Context, propertyID, contractID uint) (domain.Contract, error) {
	var w domain.WireContract
	path := fmt.Sprintf("/api/properties/%d/contracts/%d/finalize", propertyID, contractID)
	if err := c.do(ctx, "finalize_contract", http.MethodPost, path, nil, &w); err != nil {
		return domain.Contract{}, err
	}
	return domain.ContractFromWire(w)
}

// SignContract records the signature on an active, unsigned contract.
func (c *Client) SignContract(ctx context.Context, propertyID, contractID uint) (domain.Contract, error) {
	var w domain.WireContract
	path := fmt.Sprintf("/api/properties/%d/contracts/%d/sign", propertyID, contractID)
	if err := c.do(ctx, "sign_contract", http.MethodPost, path, nil, &w); err != nil {
		return domain.Contract{}, err
	}
	return domain.ContractFromWire(w)
}

// ListInvoices fetches all invoices of a property.
func (c *Client) ListInvoices(ctx context.Context, propertyID uint) ([]domain.Invoice, error) {
	var resp invoicesResponse
	path := fmt.Sprintf("/api/properties/%d/invoices", propertyID)
	if err := c.do(ctx, "list_invoices", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, 0, len(resp.Invoices))
	for _, w := range resp.Invoices {
		invoice, err := domain.InvoiceFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("list_invoices: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}
