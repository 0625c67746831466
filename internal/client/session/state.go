package session

// State is where the session is in its lifecycle.
//
//	pending       → authenticated   rehydration succeeded
//	pending       → anonymous       no persisted token, or rehydration failed
//	anonymous     → authenticated   Login
//	authenticated → anonymous       Logout
//	authenticated → authenticated   Login again (overwrites)
//
// A new Store starts pending. Pending must be gated like anonymous.
type State int

const (
	StatePending State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
