package domain

import "errors"

// Request errors reported back to the offending connection only. None of
// these are fatal to other rooms or the process.
var (
	ErrRoomNotFound  = errors.New("room does not exist")
	ErrRoomFull      = errors.New("game room is full")
	ErrSymbolInvalid = errors.New("invalid symbol")
	ErrNotSeated     = errors.New("not a participant of this room")
	ErrUnknownRoom   = errors.New("room no longer accepts choices")
)

// ErrorKind returns the stable wire identifier for a request error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrSymbolInvalid):
		return "symbol_invalid"
	case errors.Is(err, ErrNotSeated):
		return "not_seated"
	case errors.Is(err, ErrUnknownRoom):
		return "unknown_room"
	default:
		return "internal"
	}
}
