// Package animation drives door leaves towards their open or closed pose,
// one render frame at a time.
package animation

import (
	"math"
	"sort"
	"time"

	"github.com/piwi3910/FurniCraft/internal/geometry"
)

const (
	// OpenAngle is the swing of a fully open leaf in radians (110°).
	OpenAngle = 110 * math.Pi / 180
	// OpenInset is how far an open leaf slides towards the carcass centre, m.
	OpenInset = 0.02
	// DefaultRate is the approach rate per second.
	DefaultRate = 3.0
	// DefaultEpsilon is the distance at which a value snaps onto its target.
	DefaultEpsilon = 1e-4
)

// State is the pose of one door leaf.
type State struct {
	ID    string             `json:"id"`
	Side  geometry.HingeSide `json:"side"`
	Angle float64            `json:"angle"` // radians about the hinge axis
	Inset float64            `json:"inset"` // m along X
}

// Target returns the pose the leaf is heading for.
func Target(side geometry.HingeSide, open bool) (angle, inset float64) {
	if !open {
		return 0, 0
	}
	if side == geometry.HingeRight {
		return OpenAngle, -OpenInset
	}
	return -OpenAngle, OpenInset
}

// Animator holds the per-leaf animation state. It is not safe for
// concurrent use; call it from the render loop only.
type Animator struct {
	Rate    float64
	Epsilon float64

	open    bool
	leaves  map[string]*State
	last    time.Duration
	started bool
}

// New creates an animator with all leaves closed.
func New() *Animator {
	return &Animator{
		Rate:    DefaultRate,
		Epsilon: DefaultEpsilon,
		leaves:  map[string]*State{},
	}
}

// Sync reconciles the tracked leaves with the door parts of a freshly
// resolved geometry. Surviving leaves keep their pose, new ones start closed
// and leaves that no longer exist are dropped.
func (a *Animator) Sync(parts []geometry.RenderPart) {
	seen := map[string]bool{}
	for _, p := range parts {
		if p.Kind != geometry.KindDoor || p.Door == nil {
			continue
		}
		seen[p.ID] = true
		if s, ok := a.leaves[p.ID]; ok {
			s.Side = p.Door.Side
			continue
		}
		a.leaves[p.ID] = &State{ID: p.ID, Side: p.Door.Side}
	}
	for id := range a.leaves {
		if !seen[id] {
			delete(a.leaves, id)
		}
	}
}

// SetOpen sets the global door target.
func (a *Animator) SetOpen(open bool) { a.open = open }

// Open reports the current target.
func (a *Animator) Open() bool { return a.open }

// Advance moves the animation to the frame timestamp now. The first call
// only records the timestamp. Calls with a timestamp not after the previous
// one change nothing.
func (a *Animator) Advance(now time.Duration) {
	if !a.started {
		a.started = true
		a.last = now
		return
	}
	if now <= a.last {
		return
	}
	dt := now - a.last
	a.last = now
	a.Step(dt)
}

// Step applies one update of length dt.
func (a *Animator) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	k := a.Rate * dt.Seconds()
	if k > 1 {
		k = 1
	}
	for _, s := range a.leaves {
		ta, ti := Target(s.Side, a.open)
		s.Angle = a.approach(s.Angle, ta, k)
		s.Inset = a.approach(s.Inset, ti, k)
	}
}

func (a *Animator) approach(x, target, k float64) float64 {
	x += (target - x) * k
	if math.Abs(target-x) < a.Epsilon {
		return target
	}
	return x
}

// Settled reports whether every leaf sits exactly on its target.
func (a *Animator) Settled() bool {
	for _, s := range a.leaves {
		ta, ti := Target(s.Side, a.open)
		if s.Angle != ta || s.Inset != ti {
			return false
		}
	}
	return true
}

// State returns the pose of one leaf.
func (a *Animator) State(id string) (State, bool) {
	s, ok := a.leaves[id]
	if !ok {
		return State{}, false
	}
	return *s, true
}

// States returns a snapshot of all leaves ordered by id.
func (a *Animator) States() []State {
	out := make([]State, 0, len(a.leaves))
	for _, s := range a.leaves {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
