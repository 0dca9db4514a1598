// File: internal/services/conversation/types.go
package conversation

// SessionState tracks the conversation lifecycle. Mutations are rejected
// until the initial load has completed.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateLoading
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
