package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivoox45/habitora-gateway/internal/contract"
	"github.com/Ivoox45/habitora-gateway/internal/domain"
	"github.com/Ivoox45/habitora-gateway/pkg/config"
	"github.com/Ivoox45/habitora-gateway/prometheus"
)

func TestMain(m *testing.M) {
	cfg, _ := config.Load()
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func newTestClient(baseURL string) *Client {
	return NewClient(&config.UpstreamConfig{
		BaseURL:      baseURL,
		Timeout:      2 * time.Second,
		ServiceToken: "test-token",
	})
}

func TestListRooms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties/7/rooms", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"rooms": []map[string]any{
				{"id": 1, "floor_id": 2, "code": 201, "status": "OCUPADA", "rent": 450},
				{"id": 2, "floor_id": 2, "code": 202, "status": "DISPONIBLE", "rent": 500},
			},
		})
	}))
	defer server.Close()

	rooms, err := newTestClient(server.URL).ListRooms(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, domain.RoomOccupied, rooms[0].Status)
	assert.Equal(t, 202, rooms[1].Code)
}

func TestListRoomsRejectsMalformedWirePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"rooms": []map[string]any{
				{"id": 1, "floor_id": 2, "code": 201, "status": "LIBRE", "rent": 450},
			},
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListRooms(context.Background(), 7)
	assert.Error(t, err, "unknown status must not cross the boundary")
}

func TestConflictMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "room no longer available"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreateContract(context.Background(), 7, contract.CreateRequest{
		TenantID:  3,
		RoomID:    12,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Deposit:   600,
	})

	require.Error(t, err)
	assert.True(t, IsConflict(err), "409 is a normal rejection, not a failure")
	assert.Contains(t, err.Error(), "room no longer available")
}

func TestBackendErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListInvoices(context.Background(), 7)
	require.Error(t, err)
	assert.False(t, IsConflict(err))
	assert.False(t, IsRequestError(err))
}

func TestNotFoundMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "contract not found"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetContract(context.Background(), 7, 99)
	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.False(t, IsConflict(err))
}

func TestCreateContractPayload(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(domain.WireContract{
			ID:         42,
			PropertyID: 7,
			TenantID:   3,
			RoomID:     12,
			Status:     "ACTIVO",
			StartDate:  "2026-01-01",
			EndDate:    "2026-12-31",
			Deposit:    600,
		})
	}))
	defer server.Close()

	created, err := newTestClient(server.URL).CreateContract(context.Background(), 7, contract.CreateRequest{
		TenantID:  3,
		RoomID:    12,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Deposit:   600,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-01", received["start_date"], "dates travel as calendar dates")
	assert.Equal(t, "2026-12-31", received["end_date"])
	assert.Equal(t, 600.0, received["deposit"])
	assert.Equal(t, uint(42), created.ID)
	assert.True(t, created.IsActive())
}

func TestFinalizeContractPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/properties/7/contracts/42/finalize", r.URL.Path)
		json.NewEncoder(w).Encode(domain.WireContract{
			ID:         42,
			PropertyID: 7,
			TenantID:   3,
			RoomID:     12,
			Status:     "CANCELADO",
			StartDate:  "2026-01-01",
			EndDate:    "2026-12-31",
		})
	}))
	defer server.Close()

	finalized, err := newTestClient(server.URL).FinalizeContract(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractCancelled, finalized.Status)
}
