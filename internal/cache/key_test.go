package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "property:7:contracts", ContractList(7).String())
	assert.Equal(t, "property:7:contract:42", ContractDetail(7, 42).String())
	assert.Equal(t, "property:7:available-rooms", AvailableRooms(7).String())
	assert.Equal(t, "property:7:available-tenants", AvailableTenants(7).String())
	assert.Equal(t, "property:7:invoices", Invoices(7).String())
	assert.Equal(t, "property:7:floors", FloorList(7).String())
	assert.Equal(t, "property:7:rooms", RoomList(7).String())
	assert.Equal(t, "property:7:tenants", TenantList(7).String())
}

func TestKeysAreDistinct(t *testing.T) {
	keys := []Key{
		ContractList(7),
		ContractDetail(7, 42),
		ContractDetail(7, 43),
		ContractDetail(8, 42),
		AvailableRooms(7),
		AvailableTenants(7),
		Invoices(7),
		FloorList(7),
		RoomList(7),
		TenantList(7),
		ContractList(8),
	}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		assert.False(t, seen[key.String()], "duplicate key %s", key)
		seen[key.String()] = true
	}
}
