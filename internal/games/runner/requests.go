package runner

// Handle identifies a host-side object (segment layer, hint marker) the
// simulation asked the host to create.
type Handle uint64

// RequestKind enumerates what the simulation asks its host to do.
type RequestKind int

const (
	RequestSpawnSegment RequestKind = iota
	RequestSpawnMarker
	RequestDestroy
	RequestEnableCollision
	RequestSetVelocityX
	RequestSetVelocityY
	RequestPlayTransition
	RequestDebugOverlay
)

// String returns a short name for logs.
func (k RequestKind) String() string {
	switch k {
	case RequestSpawnSegment:
		return "spawn-segment"
	case RequestSpawnMarker:
		return "spawn-marker"
	case RequestDestroy:
		return "destroy"
	case RequestEnableCollision:
		return "enable-collision"
	case RequestSetVelocityX:
		return "set-velocity-x"
	case RequestSetVelocityY:
		return "set-velocity-y"
	case RequestPlayTransition:
		return "play-transition"
	case RequestDebugOverlay:
		return "debug-overlay"
	default:
		return "unknown"
	}
}

// Transition describes an eased property animation for the host.
type Transition struct {
	Property string  // "y" or "alpha"
	Target   float64 // Final value
	Duration float64 // Milliseconds
	Delay    float64 // Milliseconds
	Ease     string
}

// Request is one host instruction produced during a tick.
// Only the fields relevant to Kind are set.
type Request struct {
	Kind       RequestKind
	Handle     Handle
	Key        string  // Template key for spawn-segment
	X, Y       float64 // Placement for spawns
	Value      float64 // Velocity for set-velocity-*
	TileMin    int     // Collision tile index range
	TileMax    int
	Transition Transition
}

// Outbox collects requests and allocates handles.
type Outbox struct {
	pending []Request
	next    Handle
}

// NewHandle allocates a fresh handle. Handles are never reused within a
// simulation, even across restarts.
func (o *Outbox) NewHandle() Handle {
	o.next++
	return o.next
}

// Emit appends a request.
func (o *Outbox) Emit(r Request) {
	o.pending = append(o.pending, r)
}

// Pending returns the queued requests without draining them.
func (o *Outbox) Pending() []Request {
	return o.pending
}

// Drain returns the queued requests and empties the outbox.
func (o *Outbox) Drain() []Request {
	out := o.pending
	o.pending = nil
	return out
}
