package engine

import (
	"fmt"

	"github.com/jakecoffman/cp/v2"
)

type BodyKind int

const (
	Dynamic BodyKind = iota
	Kinematic
	Static
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// BodyDesc describes a body before it exists in a world.
type BodyDesc struct {
	Kind        BodyKind
	Translation cp.Vector
	Rotation    float64
	// Sleeping holds a dynamic body in place until something touches it
	// or an impulse hits it. Gravity changes leave it asleep.
	Sleeping bool
}

// Body is a handle to a rigid body owned by the engine.
type Body struct {
	world     *World
	b         *cp.Body
	kind      BodyKind
	colliders []*Collider

	next    cp.Vector
	hasNext bool
	held    bool
}

func (b *Body) Kind() BodyKind { return b.kind }

func (b *Body) Translation() cp.Vector { return b.b.Position() }

func (b *Body) Rotation() float64 { return b.b.Angle() }

func (b *Body) Colliders() []*Collider { return b.colliders }

// IsSleeping reports a body that is held from creation or that the solver
// put to rest.
func (b *Body) IsSleeping() bool { return b.held || b.b.IsSleeping() }

// SetNextKinematicTranslation schedules where a kinematic body will be after
// the next step. The engine derives the body's velocity from it, so contacts
// along the way still respond.
func (b *Body) SetNextKinematicTranslation(p cp.Vector) {
	if b.kind != Kinematic {
		return
	}
	b.next = p
	b.hasNext = true
}

// SetTranslation teleports the body.
func (b *Body) SetTranslation(p cp.Vector) {
	b.b.SetPosition(p)
	b.hasNext = false
}

func (b *Body) Velocity() cp.Vector { return b.b.Velocity() }

// Mass is accumulated from collider densities. Kinematic and static bodies
// report infinity.
func (b *Body) Mass() float64 { return b.b.Mass() }

// ApplyImpulse pushes a dynamic body through its center and wakes it.
func (b *Body) ApplyImpulse(impulse cp.Vector) {
	if b.kind != Dynamic {
		return
	}
	b.Wake()
	b.b.ApplyImpulseAtWorldPoint(impulse, b.b.Position())
}

func (b *Body) Wake() {
	if b.kind != Dynamic {
		return
	}
	if b.held {
		b.held = false
		b.b.SetVelocityUpdateFunc(b.world.updateVelocity)
		b.b.SetPositionUpdateFunc(cp.BodyUpdatePosition)
	}
	b.b.Activate()
}

func (b *Body) hold() {
	b.held = true
	b.b.SetVelocityUpdateFunc(holdVelocity)
	b.b.SetPositionUpdateFunc(holdPosition)
}

// holdVelocity zeroes velocity without Activate so resting neighbours keep
// their idle time.
func holdVelocity(body *cp.Body, _ cp.Vector, _, dt float64) {
	cp.BodyUpdateVelocity(body, cp.Vector{}, 0, dt)
}

func holdPosition(body *cp.Body, _ float64) {
	cp.BodyUpdatePosition(body, 0)
}

// touchedByAwake reports whether any contact pairs b with a body that is
// neither static, asleep nor held.
func (b *Body) touchedByAwake() bool {
	touched := false
	b.b.EachArbiter(func(arb *cp.Arbiter) {
		_, other := arb.Bodies()
		if other.GetType() == cp.BODY_STATIC || other.IsSleeping() {
			return
		}
		if ob, ok := other.UserData.(*Body); ok && ob.held {
			return
		}
		touched = true
	})
	return touched
}
