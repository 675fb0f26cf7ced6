package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Rule/engine layer.
	ErrBadRequest   = "E_BAD_REQUEST"
	ErrNoFunds      = "E_NO_FUNDS"
	ErrOverweight   = "E_OVERWEIGHT"
	ErrNoResource   = "E_NO_RESOURCE"
	ErrNotFound     = "E_NOT_FOUND"
	ErrConflict     = "E_CONFLICT"
	ErrNoPermission = "E_NO_PERMISSION"
	ErrInternal     = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrNoFunds:         {},
	ErrOverweight:      {},
	ErrNoResource:      {},
	ErrNotFound:        {},
	ErrConflict:        {},
	ErrNoPermission:    {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
