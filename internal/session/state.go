package session

// State describes where a session is in its command cycle. Transitions are
// driven by discrete commands (Fetch, CloneSelected), never by polling.
type State int

const (
	// StateUnauthenticated means no usable credential has been resolved,
	// or the last fetch was rejected and the credential was discarded.
	StateUnauthenticated State = iota

	// StateFetching means a catalog fetch is in flight.
	StateFetching

	// StateIdle means a catalog is loaded and commands may be issued.
	StateIdle

	// StateCloning means a clone batch is in flight.
	StateCloning
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateFetching:
		return "fetching"
	case StateIdle:
		return "idle"
	case StateCloning:
		return "cloning"
	default:
		return "unknown"
	}
}
