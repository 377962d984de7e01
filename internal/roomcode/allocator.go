// Package roomcode computes and validates room codes within a floor's
// reserved namespace. A floor numbered n owns the codes n*100+1 through
// n*100+8; codes never collide across floors by construction.
package roomcode

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Ivoox45/habitora-gateway/internal/domain"
)

// Rejection reasons surfaced to the caller on a failed room submission. These
// are user-facing messages, never process-fatal errors.
const (
	ReasonInvalidCode = "enter a valid room code"
	ReasonCodeRange   = "room code is outside the floor's range"
	ReasonCodeTaken   = "room code is already in use on this floor"
	ReasonInvalidRent = "enter a valid rent amount"
	ReasonFloorFull   = "this floor has no room codes left"
)

// AvailableCodesForFloor returns the unused codes of the floor's namespace in
// ascending order. A floor already holding eight rooms yields an empty slice;
// the caller is expected to disable creation rather than error.
func AvailableCodesForFloor(floor domain.Floor) []int {
	used := make(map[int]bool, len(floor.Rooms))
	for _, r := range floor.Rooms {
		used[r.Code] = true
	}
	base := floor.CodeBase()
	codes := make([]int, 0, domain.RoomsPerFloor)
	for slot := 1; slot <= domain.RoomsPerFloor; slot++ {
		if code := base + slot; !used[code] {
			codes = append(codes, code)
		}
	}
	return codes
}

// AvailableCodesForEditing returns the available codes of the room's floor
// with the room's own current code re-admitted: keeping the same code is
// always a legal edit.
func AvailableCodesForEditing(floor domain.Floor, room domain.Room) []int {
	codes := AvailableCodesForFloor(floor)
	for _, c := range codes {
		if c == room.Code {
			return codes
		}
	}
	codes = append(codes, room.Code)
	sort.Ints(codes)
	return codes
}

// ParseRoomCode converts raw form input into an integer code. The second
// return value is false for anything that does not parse to a finite integer;
// callers must treat that as invalid input, not as a crash.
func ParseRoomCode(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	code, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return code, true
}

// ValidateRent reports whether raw parses to a finite decimal >= 0.
func ValidateRent(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	rent, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return false
	}
	if math.IsNaN(rent) || math.IsInf(rent, 0) {
		return false
	}
	return rent >= 0
}

// ValidateNewRoom checks a proposed code/rent pair against the floor. It
// returns the parsed code and an empty reason on acceptance, or a
// human-readable rejection reason.
func ValidateNewRoom(floor domain.Floor, rawCode, rawRent string) (int, string) {
	available := AvailableCodesForFloor(floor)
	if len(available) == 0 {
		return 0, ReasonFloorFull
	}
	return validateAgainst(available, floor, rawCode, rawRent)
}

// ValidateRoomEdit is ValidateNewRoom with the room's own code considered
// available, so re-submitting an unchanged code passes.
func ValidateRoomEdit(floor domain.Floor, room domain.Room, rawCode, rawRent string) (int, string) {
	return validateAgainst(AvailableCodesForEditing(floor, room), floor, rawCode, rawRent)
}

func validateAgainst(available []int, floor domain.Floor, rawCode, rawRent string) (int, string) {
	code, ok := ParseRoomCode(rawCode)
	if !ok {
		return 0, ReasonInvalidCode
	}
	base := floor.CodeBase()
	if code < base+1 || code > base+domain.RoomsPerFloor {
		return 0, ReasonCodeRange
	}
	free := false
	for _, c := range available {
		if c == code {
			free = true
			break
		}
	}
	if !free {
		return 0, ReasonCodeTaken
	}
	if !ValidateRent(rawRent) {
		return 0, ReasonInvalidRent
	}
	return code, ""
}
