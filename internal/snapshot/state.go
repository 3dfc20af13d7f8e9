package snapshot

// State is the lifecycle position of a Store.
type State int

const (
	// StateEmpty means no snapshot has been published.
	StateEmpty State = iota
	// StateBuilding means a build is in flight. A previously published
	// snapshot, if any, is still served by Current.
	StateBuilding
	// StateReady means a snapshot is published and no build is running.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
