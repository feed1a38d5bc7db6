package link

// State is the lifecycle state of a managed link.
type State uint8

const (
	// StatePending marks a link that was discovered but not yet matched
	// against configuration.
	StatePending State = iota
	// StateUnmanaged marks a link no configuration matches.
	StateUnmanaged
	// StateConfiguring marks a link whose down/configure/up sequence is
	// in flight.
	StateConfiguring
	// StateConfigured marks a link whose configuration sequence
	// completed.
	StateConfigured
	// StateFailed marks a link whose configuration attempt failed.
	StateFailed
	// StateLingering marks a link removed from management while requests
	// may still be in flight.
	StateLingering
)

// Terminal reports whether the link's current sequence is over. In-flight
// completions for a terminal link are discarded; only a fresh
// configuration attempt leaves StateFailed.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateLingering
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateUnmanaged:
		return "unmanaged"
	case StateConfiguring:
		return "configuring"
	case StateConfigured:
		return "configured"
	case StateFailed:
		return "failed"
	case StateLingering:
		return "lingering"
	default:
		return "unknown"
	}
}
