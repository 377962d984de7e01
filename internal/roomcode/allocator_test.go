package roomcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivoox45/habitora-gateway/internal/domain"
)

func floorWithCodes(number int, codes ...int) domain.Floor {
	floor := domain.Floor{ID: 1, PropertyID: 7, Number: number}
	for i, code := range codes {
		floor.Rooms = append(floor.Rooms, domain.Room{
			ID:      uint(i + 1),
			FloorID: floor.ID,
			Code:    code,
			Status:  domain.RoomAvailable,
			Rent:    400,
		})
	}
	return floor
}

func TestAvailableCodesForFloor(t *testing.T) {
	t.Run("empty floor offers the full namespace", func(t *testing.T) {
		codes := AvailableCodesForFloor(floorWithCodes(3))
		assert.Equal(t, []int{301, 302, 303, 304, 305, 306, 307, 308}, codes)
	})

	t.Run("used codes are excluded, order stays ascending", func(t *testing.T) {
		codes := AvailableCodesForFloor(floorWithCodes(2, 201, 202))
		assert.Equal(t, []int{203, 204, 205, 206, 207, 208}, codes)
	})

	t.Run("always 8-k codes inside the namespace", func(t *testing.T) {
		floor := floorWithCodes(5, 505, 501, 508)
		codes := AvailableCodesForFloor(floor)
		require.Len(t, codes, domain.RoomsPerFloor-len(floor.Rooms))
		for _, code := range codes {
			assert.GreaterOrEqual(t, code, 501)
			assert.LessOrEqual(t, code, 508)
			for _, room := range floor.Rooms {
				assert.NotEqual(t, room.Code, code)
			}
		}
	})

	t.Run("full floor has no codes", func(t *testing.T) {
		floor := floorWithCodes(1, 101, 102, 103, 104, 105, 106, 107, 108)
		assert.Empty(t, AvailableCodesForFloor(floor))
	})
}

func TestAvailableCodesForEditing(t *testing.T) {
	t.Run("room's own code is re-admitted", func(t *testing.T) {
		floor := floorWithCodes(2, 201, 202)
		room := floor.Rooms[0] // code 201, otherwise "taken" by itself
		codes := AvailableCodesForEditing(floor, room)
		assert.Equal(t, []int{201, 203, 204, 205, 206, 207, 208}, codes)
	})

	t.Run("re-admitted even on a full floor", func(t *testing.T) {
		floor := floorWithCodes(1, 101, 102, 103, 104, 105, 106, 107, 108)
		codes := AvailableCodesForEditing(floor, floor.Rooms[3])
		assert.Equal(t, []int{104}, codes)
	})
}

func TestParseRoomCode(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"203", 203, true},
		{" 203 ", 203, true},
		{"abc", 0, false},
		{"", 0, false},
		{"12.5", 0, false},
	}
	for _, tc := range cases {
		code, ok := ParseRoomCode(tc.raw)
		assert.Equal(t, tc.ok, ok, "input %q", tc.raw)
		assert.Equal(t, tc.want, code, "input %q", tc.raw)
	}
}

func TestValidateRent(t *testing.T) {
	assert.False(t, ValidateRent("-1"))
	assert.True(t, ValidateRent("0"))
	assert.True(t, ValidateRent("12.50"))
	assert.False(t, ValidateRent("abc"))
	assert.False(t, ValidateRent(""))
	assert.False(t, ValidateRent("NaN"))
	assert.False(t, ValidateRent("Inf"))
}

func TestValidateNewRoom(t *testing.T) {
	floor := floorWithCodes(2, 201, 202)

	t.Run("accepts a free code with valid rent", func(t *testing.T) {
		code, reason := ValidateNewRoom(floor, "203", "500.00")
		assert.Empty(t, reason)
		assert.Equal(t, 203, code)
	})

	t.Run("rejects an unparsable code", func(t *testing.T) {
		_, reason := ValidateNewRoom(floor, "abc", "500")
		assert.Equal(t, ReasonInvalidCode, reason)
	})

	t.Run("rejects a code outside the floor range", func(t *testing.T) {
		_, reason := ValidateNewRoom(floor, "301", "500")
		assert.Equal(t, ReasonCodeRange, reason)
	})

	t.Run("rejects a taken code", func(t *testing.T) {
		_, reason := ValidateNewRoom(floor, "201", "500")
		assert.Equal(t, ReasonCodeTaken, reason)
	})

	t.Run("rejects an invalid rent", func(t *testing.T) {
		_, reason := ValidateNewRoom(floor, "203", "-5")
		assert.Equal(t, ReasonInvalidRent, reason)
	})

	t.Run("rejects creation on a full floor", func(t *testing.T) {
		full := floorWithCodes(1, 101, 102, 103, 104, 105, 106, 107, 108)
		_, reason := ValidateNewRoom(full, "101", "500")
		assert.Equal(t, ReasonFloorFull, reason)
	})
}

func TestValidateRoomEdit(t *testing.T) {
	floor := floorWithCodes(2, 201, 202)

	t.Run("keeping the same code is legal", func(t *testing.T) {
		code, reason := ValidateRoomEdit(floor, floor.Rooms[0], "201", "450")
		assert.Empty(t, reason)
		assert.Equal(t, 201, code)
	})

	t.Run("another room's code is still taken", func(t *testing.T) {
		_, reason := ValidateRoomEdit(floor, floor.Rooms[0], "202", "450")
		assert.Equal(t, ReasonCodeTaken, reason)
	})
}
