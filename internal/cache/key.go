// Package cache provides the typed invalidation keys and the response cache
// the gateway keeps in front of the backend. Which keys a mutation stales is
// declared by the rule packages; this package only stores and drops entries.
package cache

import "fmt"

// Kind enumerates every cached view the gateway knows about. Keeping the set
// closed lets the finalize cascade be checked exhaustively instead of being
// spread over ad hoc strings.
type Kind string

const (
	KindContractList     Kind = "contracts"
	KindContractDetail   Kind = "contract"
	KindAvailableRooms   Kind = "available-rooms"
	KindAvailableTenants Kind = "available-tenants"
	KindInvoices         Kind = "invoices"
	KindFloorList        Kind = "floors"
	KindRoomList         Kind = "rooms"
	KindTenantList       Kind = "tenants"
)

// Key identifies one cached view. All views are scoped to a property;
// ContractDetail additionally carries the contract id.
type Key struct {
	Kind       Kind
	PropertyID uint
	ContractID uint
}

// String renders the canonical cache key.
func (k Key) String() string {
	if k.Kind == KindContractDetail {
		return fmt.Sprintf("property:%d:%s:%d", k.PropertyID, k.Kind, k.ContractID)
	}
	return fmt.Sprintf("property:%d:%s", k.PropertyID, k.Kind)
}

// ContractList keys the contract list of a property.
func ContractList(propertyID uint) Key {
	return Key{Kind: KindContractList, PropertyID: propertyID}
}

// ContractDetail keys the detail view of one contract.
func ContractDetail(propertyID, contractID uint) Key {
	return Key{Kind: KindContractDetail, PropertyID: propertyID, ContractID: contractID}
}

// AvailableRooms keys the list of rooms open for a new contract.
func AvailableRooms(propertyID uint) Key {
	return Key{Kind: KindAvailableRooms, PropertyID: propertyID}
}

// AvailableTenants keys the list of tenants open for a new contract.
func AvailableTenants(propertyID uint) Key {
	return Key{Kind: KindAvailableTenants, PropertyID: propertyID}
}

// Invoices keys the invoice list of a property.
func Invoices(propertyID uint) Key {
	return Key{Kind: KindInvoices, PropertyID: propertyID}
}

// FloorList keys the floor list of a property.
func FloorList(propertyID uint) Key {
	return Key{Kind: KindFloorList, PropertyID: propertyID}
}

// RoomList keys the full room list of a property.
func RoomList(propertyID uint) Key {
	return Key{Kind: KindRoomList, PropertyID: propertyID}
}

// TenantList keys the full tenant list of a property.
func TenantList(propertyID uint) Key {
	return Key{Kind: KindTenantList, PropertyID: propertyID}
}
