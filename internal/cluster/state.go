package cluster

// State is a stage of a k-means run.
type State int

const (
	StateInitialized State = iota
	StateAssigning
	StateUpdating
	StateConverged
	StateMaxIterReached
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateAssigning:
		return "assigning"
	case StateUpdating:
		return "updating"
	case StateConverged:
		return "converged"
	case StateMaxIterReached:
		return "max_iter_reached"
	default:
		return "unknown"
	}
}
