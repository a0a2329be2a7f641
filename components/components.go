// Package components defines ECS components for the node network.
package components

// Position is a node's world position.
type Position struct {
	X, Y, Z float32
}

// Velocity is a node's velocity in units per second.
type Velocity struct {
	X, Y, Z float32
}

// Phase is a node's lifecycle state.
type Phase uint8

const (
	// PhaseAlive nodes drift inside the soft boundary and react to the pointer.
	PhaseAlive Phase = iota
	// PhaseDying nodes are frozen in place, fading out until respawn.
	PhaseDying
)

// NodeState tracks the alive/dying lifecycle of a node. Nodes are created
// once at init and only reset in place; entities are never removed.
type NodeState struct {
	Phase Phase

	// HitAt is the simulation time of the pointer hit that started the
	// dying phase. Meaningless while alive.
	HitAt float64
}
