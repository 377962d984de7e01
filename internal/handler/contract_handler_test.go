package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/internal/domain"
)

func activeWireContract() domain.WireContract {
	return domain.WireContract{
		ID:         42,
		PropertyID: 7,
		TenantID:   3,
		RoomID:     12,
		Status:     "ACTIVO",
		StartDate:  "2026-01-01",
		EndDate:    "2026-12-31",
		Deposit:    600,
	}
}

func TestCreateContract(t *testing.T) {
	t.Run("missing parties rejected before anything else", func(t *testing.T) {
		backendCalls := 0
		setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			backendCalls++
		}))

		c, rec := request(http.MethodPost, "/api/properties/7/contracts",
			`{"tenant_id":0,"room_id":12,"start_date":"2026-01-01","end_date":"2026-12-31","deposit":"600"}`,
			map[string]string{"propertyId": "7"})

		require.NoError(t, CreateContract(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "tenant and room are required")
		assert.Equal(t, 0, backendCalls)
	})

	t.Run("negative deposit rejected locally", func(t *testing.T) {
		setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		c, rec := request(http.MethodPost, "/api/properties/7/contracts",
			`{"tenant_id":3,"room_id":12,"start_date":"2026-01-01","end_date":"2026-12-31","deposit":"-5"}`,
			map[string]string{"propertyId": "7"})

		require.NoError(t, CreateContract(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "deposit")
	})

	t.Run("valid submission forwarded and candidate views staled", func(t *testing.T) {
		store := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/properties/7/contracts", r.URL.Path)
			json.NewEncoder(w).Encode(activeWireContract())
		}))
		store.Set(context.Background(), cache.AvailableRooms(7), []byte(`stale`))
		store.Set(context.Background(), cache.AvailableTenants(7), []byte(`stale`))

		c, rec := request(http.MethodPost, "/api/properties/7/contracts",
			`{"tenant_id":3,"room_id":12,"start_date":"2026-01-01","end_date":"2026-12-31","deposit":"600"}`,
			map[string]string{"propertyId": "7"})

		require.NoError(t, CreateContract(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		_, ok := store.Get(context.Background(), cache.AvailableRooms(7))
		assert.False(t, ok)
		_, ok = store.Get(context.Background(), cache.AvailableTenants(7))
		assert.False(t, ok)
	})

	t.Run("late availability conflict relays as 409", func(t *testing.T) {
		setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "tenant already has an active contract"})
		}))

		c, rec := request(http.MethodPost, "/api/properties/7/contracts",
			`{"tenant_id":3,"room_id":12,"start_date":"2026-01-01","end_date":"2026-12-31","deposit":"600"}`,
			map[string]string{"propertyId": "7"})

		require.NoError(t, CreateContract(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestFinalizeContract(t *testing.T) {
	cancelled := activeWireContract()
	cancelled.Status = "CANCELADO"

	store := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties/7/contracts/42/finalize", r.URL.Path)
		json.NewEncoder(w).Encode(cancelled)
	}))

	cascade := []cache.Key{
		cache.ContractList(7),
		cache.ContractDetail(7, 42),
		cache.AvailableRooms(7),
		cache.AvailableTenants(7),
		cache.Invoices(7),
	}
	for _, key := range cascade {
		store.Set(context.Background(), key, []byte(`stale`))
	}
	// Views outside the cascade must survive.
	store.Set(context.Background(), cache.FloorList(7), []byte(`keep`))
	store.Set(context.Background(), cache.ContractDetail(7, 43), []byte(`keep`))
	store.Set(context.Background(), cache.Invoices(8), []byte(`keep`))

	c, rec := request(http.MethodPost, "/api/properties/7/contracts/42/finalize", "",
		map[string]string{"propertyId": "7", "id": "42"})

	require.NoError(t, FinalizeContract(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CANCELADO")

	for _, key := range cascade {
		_, ok := store.Get(context.Background(), key)
		assert.False(t, ok, "cascade key %s must be dropped", key)
	}
	for _, key := range []cache.Key{cache.FloorList(7), cache.ContractDetail(7, 43), cache.Invoices(8)} {
		_, ok := store.Get(context.Background(), key)
		assert.True(t, ok, "unrelated key %s must survive", key)
	}
}

func TestGetContractActions(t *testing.T) {
	setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(activeWireContract())
	}))

	c, rec := request(http.MethodGet, "/api/properties/7/contracts/42", "",
		map[string]string{"propertyId": "7", "id": "42"})

	require.NoError(t, GetContract(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CanFinalize bool `json:"can_finalize"`
		CanSign     bool `json:"can_sign"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.CanFinalize)
	assert.True(t, resp.CanSign, "active and unsigned")
}

func TestListTenantsAvailableFilter(t *testing.T) {
	setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"tenants": []domain.WireTenant{
				{ID: 1, FullName: "Ana Quispe", DNI: "12345678", Email: "ana@example.com", ActiveContracts: 0},
				{ID: 2, FullName: "Luis Rojas", DNI: "87654321", Email: "luis@example.com", ActiveContracts: 1},
			},
		})
	}))

	c, rec := request(http.MethodGet, "/api/properties/7/tenants?available=true", "",
		map[string]string{"propertyId": "7"})
	require.NoError(t, ListTenants(c))

	var resp struct {
		Tenants []domain.Tenant `json:"tenants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tenants, 1)
	assert.Equal(t, uint(1), resp.Tenants[0].ID)
}

func TestCreateTenantValidation(t *testing.T) {
	t.Run("bad DNI rejected locally", func(t *testing.T) {
		backendCalls := 0
		setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			backendCalls++
		}))

		c, rec := request(http.MethodPost, "/api/properties/7/tenants",
			`{"full_name":"Ana Quispe","dni":"1234567","email":"ana@example.com"}`,
			map[string]string{"propertyId": "7"})

		require.NoError(t, CreateTenant(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, 0, backendCalls)
	})

	t.Run("sanitized payload is what travels upstream", func(t *testing.T) {
		var received map[string]any
		setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			json.NewEncoder(w).Encode(domain.WireTenant{ID: 9, FullName: "Ana Quispe", DNI: "12345678", Email: "ana@example.com"})
		}))

		c, rec := request(http.MethodPost, "/api/properties/7/tenants",
			`{"full_name":"Ana Quispe","dni":"12.345.678","email":" ana@example.com ","phone":"987 654 321"}`,
			map[string]string{"propertyId": "7"})

		require.NoError(t, CreateTenant(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "12345678", received["dni"])
		assert.Equal(t, "ana@example.com", received["email"])
		assert.Equal(t, "987654321", received["phone"])
	})
}
