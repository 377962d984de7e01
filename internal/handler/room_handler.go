package handler

import (
	"context"
	"net/http"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/internal/contract"
	"github.com/Ivoox45/habitora-gateway/internal/domain"
	"github.com/Ivoox45/habitora-gateway/internal/roomcode"
	"github.com/Ivoox45/habitora-gateway/internal/upstream"
	"github.com/Ivoox45/habitora-gateway/pkg/logger"
	"github.com/Ivoox45/habitora-gateway/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RoomForm carries the raw room submission exactly as typed into the form.
// Code and rent stay strings until the allocator has accepted them.
type RoomForm struct {
	FloorID uint   `json:"floor_id"`
	Code    string `json:"code"`
	Rent    string `json:"rent"`
}

// ListFloors returns the floors of a property with their rooms.
func ListFloors(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRoomOperation("list_floors")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	return respondCached(c, cache.FloorList(propID), func(ctx context.Context) (any, error) {
		floors, err := backend.ListFloors(ctx, propID)
		if err != nil {
			return nil, err
		}
		log.Info("Floors retrieved", zap.Uint("property_id", propID), zap.Int("count", len(floors)))
		return echo.Map{"floors": floors}, nil
	})
}

// AvailableRoomCodes returns the unused codes of a floor's namespace. With
// ?room_id= the room's own code is re-admitted so an edit form can keep it.
func AvailableRoomCodes(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRoomOperation("available_codes")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	floorID, ok := pathID(c, "floorId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}

	floor, err := backend.GetFloor(c.Request().Context(), propID, floorID)
	if err != nil {
		return relayBackendError(c, err)
	}

	var codes []int
	if rawRoomID := c.QueryParam("room_id"); rawRoomID != "" {
		room, found := findRoom(floor, rawRoomID)
		if !found {
			log.Warn("Room not on floor", zap.Uint("floor_id", floorID), zap.String("room_id", rawRoomID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found on this floor"})
		}
		codes = roomcode.AvailableCodesForEditing(floor, room)
	} else {
		codes = roomcode.AvailableCodesForFloor(floor)
	}

	log.Info("Room codes computed",
		zap.Uint("property_id", propID),
		zap.Uint("floor_id", floorID),
		zap.Int("floor_number", floor.Number),
		zap.Int("available", len(codes)))

	// An empty slice is a valid answer: a full floor simply has no codes
	// left and the client disables creation.
	return c.JSON(http.StatusOK, echo.Map{
		"floor_number": floor.Number,
		"codes":        codes,
	})
}

// ListRooms returns the rooms of a property. With ?status=DISPONIBLE only the
// candidate rooms for a new contract are returned.
func ListRooms(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRoomOperation("list")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	onlyAvailable := c.QueryParam("status") == string(domain.RoomAvailable)
	key := cache.RoomList(propID)
	if onlyAvailable {
		key = cache.AvailableRooms(propID)
	}

	return respondCached(c, key, func(ctx context.Context) (any, error) {
		rooms, err := backend.ListRooms(ctx, propID)
		if err != nil {
			return nil, err
		}
		if onlyAvailable {
			rooms = contract.AvailableRooms(rooms)
		}
		log.Info("Rooms retrieved",
			zap.Uint("property_id", propID),
			zap.Bool("only_available", onlyAvailable),
			zap.Int("count", len(rooms)))
		return echo.Map{"rooms": rooms}, nil
	})
}

// CreateRoom validates a room submission against its floor and forwards it.
func CreateRoom(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRoomOperation("create")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	var form RoomForm
	if err := c.Bind(&form); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if form.FloorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "floor is required"})
	}

	// The floor snapshot drives the local uniqueness check. The backend
	// re-validates on commit, so a stale snapshot surfaces as a conflict,
	// never as a silent double allocation.
	floor, err := backend.GetFloor(c.Request().Context(), propID, form.FloorID)
	if err != nil {
		return relayBackendError(c, err)
	}

	code, reason := roomcode.ValidateNewRoom(floor, form.Code, form.Rent)
	if reason != "" {
		log.Warn("Room submission rejected",
			zap.Uint("floor_id", form.FloorID),
			zap.String("code", form.Code),
			zap.String("reason", reason))
		prometheus.RecordValidationRejection("room")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": reason})
	}

	rent, _ := parseRent(form.Rent)
	room, err := backend.CreateRoom(c.Request().Context(), propID, upstream.RoomRequest{
		FloorID: form.FloorID,
		Code:    code,
		Rent:    rent,
	})
	if err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log,
		cache.FloorList(propID),
		cache.RoomList(propID),
		cache.AvailableRooms(propID),
	)

	log.Info("Room created",
		zap.Uint("room_id", room.ID),
		zap.Int("code", room.Code),
		zap.Uint("floor_id", room.FloorID))
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom validates a room edit, keeping the room's own code legal.
func UpdateRoom(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRoomOperation("update")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	var form RoomForm
	if err := c.Bind(&form); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if form.FloorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "floor is required"})
	}

	floor, err := backend.GetFloor(c.Request().Context(), propID, form.FloorID)
	if err != nil {
		return relayBackendError(c, err)
	}

	var room domain.Room
	found := false
	for _, r := range floor.Rooms {
		if r.ID == roomID {
			room = r
			found = true
			break
		}
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found on this floor"})
	}

	code, reason := roomcode.ValidateRoomEdit(floor, room, form.Code, form.Rent)
	if reason != "" {
		log.Warn("Room edit rejected",
			zap.Uint("room_id", roomID),
			zap.String("code", form.Code),
			zap.String("reason", reason))
		prometheus.RecordValidationRejection("room")
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": reason})
	}

	rent, _ := parseRent(form.Rent)
	updated, err := backend.UpdateRoom(c.Request().Context(), propID, roomID, upstream.RoomRequest{
		FloorID: form.FloorID,
		Code:    code,
		Rent:    rent,
	})
	if err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log,
		cache.FloorList(propID),
		cache.RoomList(propID),
		cache.AvailableRooms(propID),
	)

	log.Info("Room updated", zap.Uint("room_id", updated.ID), zap.Int("code", updated.Code))
	return c.JSON(http.StatusOK, updated)
}

// DeleteRoom forwards a room deletion and drops the stale room views.
func DeleteRoom(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRoomOperation("delete")

	propID, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	if err := backend.DeleteRoom(c.Request().Context(), propID, roomID); err != nil {
		return relayBackendError(c, err)
	}

	invalidate(c.Request().Context(), log,
		cache.FloorList(propID),
		cache.RoomList(propID),
		cache.AvailableRooms(propID),
	)

	log.Info("Room deleted", zap.Uint("room_id", roomID), zap.Uint("property_id", propID))
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted"})
}

func findRoom(floor domain.Floor, rawRoomID string) (domain.Room, bool) {
	for _, r := range floor.Rooms {
		if rawRoomID == formatUint(r.ID) {
			return r, true
		}
	}
	return domain.Room{}, false
}
