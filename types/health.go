package types

// Link is the liveness state reported for a coordinator.
type Link string

const (
	LinkUp   Link = "up"
	LinkDown Link = "down"
)

// ComponentStatus is one coordinator's last known state.
type ComponentStatus struct {
	Name  string
	Link  Link
	TSms  int64  // time of last change
	Error string // short error code when down
}
