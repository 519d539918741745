package engine

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/collision"
)

// World is one physics simulation.
type World struct {
	space     *cp.Space
	ground    *Body
	gravity   cp.Vector
	bodies    []*Body
	colliders []*Collider
	sleeping  bool
	time      float64
	steps     int
}

func (w *World) Gravity() cp.Vector { return w.gravity }

// SetGravity changes gravity for the next step. Sleeping and held bodies
// stay asleep.
func (w *World) SetGravity(g cp.Vector) {
	w.gravity = g
}

// updateVelocity integrates dynamic bodies under the world's gravity rather
// than the space's, since setting gravity on the space wakes every sleeper.
func (w *World) updateVelocity(body *cp.Body, _ cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, w.gravity, damping, dt)
}

// Ground is the static body free-standing colliders attach to.
func (w *World) Ground() *Body { return w.ground }

func (w *World) Bodies() []*Body { return w.bodies }

func (w *World) Colliders() []*Collider { return w.colliders }

// Time is the simulated time consumed by Step so far.
func (w *World) Time() float64 { return w.time }

func (w *World) Steps() int { return w.steps }

// CreateBody adds a body described by desc.
func (w *World) CreateBody(desc BodyDesc) *Body {
	var cb *cp.Body
	switch desc.Kind {
	case Kinematic:
		cb = cp.NewKinematicBody()
	case Static:
		cb = cp.NewStaticBody()
	default:
		cb = cp.NewBody(0, 0)
	}
	cb.SetPosition(desc.Translation)
	cb.SetAngle(desc.Rotation)
	w.space.AddBody(cb)

	b := &Body{world: w, b: cb, kind: desc.Kind}
	cb.UserData = b
	if desc.Kind == Dynamic {
		if desc.Sleeping && w.sleeping {
			b.hold()
		} else {
			cb.SetVelocityUpdateFunc(w.updateVelocity)
		}
	}
	w.bodies = append(w.bodies, b)
	return b
}

// CreateCollider attaches a collider to parent. A nil parent attaches it to
// the ground.
func (w *World) CreateCollider(desc ColliderDesc, parent *Body) *Collider {
	if parent == nil {
		parent = w.ground
	}

	shape, geom := newShape(parent.b, desc.Shape, desc.Translation)
	shape.SetElasticity(desc.Restitution)
	shape.SetFriction(desc.Friction)
	if parent.kind == Dynamic {
		density := desc.Density
		if density <= 0 {
			density = 1
		}
		shape.SetDensity(density)
	}

	c := &Collider{
		body:    parent,
		shape:   shape,
		geom:    geom,
		offset:  desc.Translation,
		group:   desc.Group,
		filter:  collision.Filter(desc.Group),
		elastic: desc.Restitution,
		enabled: true,
	}
	if desc.Disabled {
		c.enabled = false
		c.filter = disabledFilter
	}
	shape.SetFilter(c.filter)
	w.space.AddShape(shape)

	parent.colliders = append(parent.colliders, c)
	w.colliders = append(w.colliders, c)
	return c
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		if b.kind != Kinematic {
			continue
		}
		if b.hasNext {
			b.b.SetVelocityVector(b.next.Sub(b.b.Position()).Mult(1 / dt))
		} else {
			b.b.SetVelocityVector(cp.Vector{})
		}
	}

	w.space.Step(dt)

	for _, b := range w.bodies {
		if b.held && b.touchedByAwake() {
			b.Wake()
		}
	}

	for _, b := range w.bodies {
		if b.kind == Kinematic && b.hasNext {
			b.b.SetPosition(b.next)
			b.hasNext = false
		}
	}
	w.time += dt
	w.steps++
}

// Contacts reports whether the two colliders currently accept each other
// under their filters.
func Contacts(a, b *Collider) bool {
	return !a.filter.Reject(b.filter)
}
