package protocol

// Error codes carried in explicit error events. Most validation failures are
// dropped silently; only voice-call errors reach the sender.
const (
	ErrCallNotFound = "E_CALL_NOT_FOUND"
	ErrNoActiveHost = "E_NO_ACTIVE_HOST"
	ErrInternal     = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrCallNotFound: {},
	ErrNoActiveHost: {},
	ErrInternal:     {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
