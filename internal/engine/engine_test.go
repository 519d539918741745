package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/collision"
)

func newTestWorld(t *testing.T, gravity cp.Vector) *World {
	t.Helper()
	rt, err := Load(context.Background(), DefaultOptions())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	w, err := rt.NewWorld(gravity)
	if err != nil {
		t.Fatalf("new world failed: %v", err)
	}
	return w
}

func TestNewWorld_NotLoaded(t *testing.T) {
	var rt *Runtime
	if _, err := rt.NewWorld(cp.Vector{}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}

	if _, err := (&Runtime{}).NewWorld(cp.Vector{}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded for zero runtime, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	rt, err := Load(context.Background(), DefaultOptions())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	select {
	case <-rt.Ready():
	case <-time.After(time.Second):
		t.Fatal("runtime never became ready")
	}
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero iterations", Options{Iterations: 0}},
		{"negative sleep", Options{Iterations: 10, SleepAfter: -time.Second}},
		{"negative slop", Options{Iterations: 10, CollisionSlop: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(context.Background(), tt.opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestCreateCollider_Geometry(t *testing.T) {
	w := newTestWorld(t, cp.Vector{})
	body := w.CreateBody(BodyDesc{Kind: Dynamic, Translation: cp.Vector{X: 1, Y: 2}})

	ball := w.CreateCollider(BallCollider(0.5), body)
	if ball.Shape().Kind() != ShapeBall {
		t.Errorf("expected ball, got %s", ball.Shape().Kind())
	}
	if r := ball.Shape().(Ball).Radius; r != 0.5 {
		t.Errorf("expected radius 0.5, got %f", r)
	}

	box := w.CreateCollider(BoxCollider(0.3, 0.2), body)
	he := box.Shape().(Box).HalfExtents
	if he.X != 0.3 || he.Y != 0.2 {
		t.Errorf("expected half extents (0.3, 0.2), got %v", he)
	}

	seg := w.CreateCollider(SegmentCollider(cp.Vector{X: -1}, cp.Vector{X: 1}, 0.1), body)
	if seg.Shape().Kind() != ShapeSegment {
		t.Errorf("expected segment, got %s", seg.Shape().Kind())
	}

	if len(body.Colliders()) != 3 {
		t.Errorf("expected 3 colliders on body, got %d", len(body.Colliders()))
	}
	if got := body.Translation(); got.X != 1 || got.Y != 2 {
		t.Errorf("expected translation (1, 2), got %v", got)
	}
}

func TestHullCollider(t *testing.T) {
	desc, ok := HullCollider([]cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.5, Y: 0.5}})
	if !ok {
		t.Fatal("expected hull")
	}
	poly := desc.Shape.(ConvexPolygon)
	if len(poly.Vertices) != 4 {
		t.Errorf("expected 4 hull vertices, got %d", len(poly.Vertices))
	}

	if _, ok := HullCollider([]cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 1}}); ok {
		t.Error("expected degenerate hull to be rejected")
	}
}

func TestConvexHull_Collinear(t *testing.T) {
	hull := ConvexHull([]cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 2}})
	if len(hull) != 4 {
		t.Errorf("expected 4 corners, got %d: %v", len(hull), hull)
	}
	if a := polygonArea(hull); math.Abs(a-4) > 1e-9 {
		t.Errorf("expected area 4, got %f", a)
	}
}

func TestColliderGroups(t *testing.T) {
	w := newTestWorld(t, cp.Vector{})
	wall := BoxCollider(1, 1)
	wall.Group = collision.Walls
	pointer := BallCollider(0.5)
	pointer.Group = collision.Pointer

	wc := w.CreateCollider(wall, nil)
	pc := w.CreateCollider(pointer, w.CreateBody(BodyDesc{Kind: Kinematic}))
	oc := w.CreateCollider(BallCollider(0.5), w.CreateBody(BodyDesc{Kind: Dynamic}))

	if Contacts(wc, pc) || Contacts(pc, wc) {
		t.Error("walls and pointer must not collide")
	}
	if !Contacts(wc, oc) || !Contacts(pc, oc) || !Contacts(oc, oc) {
		t.Error("objects must collide with walls, pointer and objects")
	}
}

func TestColliderSetEnabled(t *testing.T) {
	w := newTestWorld(t, cp.Vector{})
	desc := BallCollider(0.5)
	desc.Group = collision.Pointer
	desc.Disabled = true

	pc := w.CreateCollider(desc, w.CreateBody(BodyDesc{Kind: Kinematic}))
	oc := w.CreateCollider(BallCollider(0.5), w.CreateBody(BodyDesc{Kind: Dynamic}))

	if pc.Enabled() {
		t.Fatal("expected collider to start disabled")
	}
	if Contacts(pc, oc) {
		t.Error("disabled collider must not accept contacts")
	}

	pc.SetEnabled(true)
	if !pc.Enabled() || !Contacts(pc, oc) {
		t.Error("enabled pointer collider must accept objects")
	}
}

func TestKinematicTranslation(t *testing.T) {
	w := newTestWorld(t, cp.Vector{X: 0, Y: 9.8})
	body := w.CreateBody(BodyDesc{Kind: Kinematic, Translation: cp.Vector{X: 1, Y: 1}})
	w.CreateCollider(BallCollider(0.5), body)

	target := cp.Vector{X: 3, Y: -2}
	body.SetNextKinematicTranslation(target)
	w.Step(1.0 / 60)

	got := body.Translation()
	if got.Distance(target) > 1e-9 {
		t.Errorf("expected kinematic body at %v, got %v", target, got)
	}

	w.Step(1.0 / 60)
	if again := body.Translation(); again.Distance(target) > 1e-9 {
		t.Errorf("expected body to stay at %v without a new target, got %v", target, again)
	}
}

func TestDynamicBodyFalls(t *testing.T) {
	w := newTestWorld(t, cp.Vector{X: 0, Y: 9.8})
	body := w.CreateBody(BodyDesc{Kind: Dynamic})
	w.CreateCollider(BoxCollider(0.5, 0.5), body)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}

	if y := body.Translation().Y; y < 4 || y > 5.5 {
		t.Errorf("expected a fall of about 4.9m after 1s, got %f", y)
	}
	if w.Steps() != 60 {
		t.Errorf("expected 60 steps, got %d", w.Steps())
	}
	if math.Abs(w.Time()-1) > 1e-9 {
		t.Errorf("expected 1s simulated, got %f", w.Time())
	}
}

func TestSleepingBodyIgnoresGravityChange(t *testing.T) {
	w := newTestWorld(t, cp.Vector{X: 0, Y: 9.8})
	body := w.CreateBody(BodyDesc{Kind: Dynamic, Sleeping: true})
	w.CreateCollider(BoxCollider(0.5, 0.5), body)

	if !body.IsSleeping() {
		t.Fatal("expected body to start asleep")
	}
	w.Step(1.0 / 60)
	if y := body.Translation().Y; y != 0 {
		t.Errorf("sleeping body moved to y=%f", y)
	}

	w.SetGravity(cp.Vector{X: 0, Y: -6})
	if !body.IsSleeping() {
		t.Error("gravity change must not wake the body")
	}
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}
	if p := body.Translation(); p != (cp.Vector{}) {
		t.Errorf("sleeping body moved to %v", p)
	}
}

func TestGravityChangeMovesAwakeBodies(t *testing.T) {
	w := newTestWorld(t, cp.Vector{X: 0, Y: 9.8})
	body := w.CreateBody(BodyDesc{Kind: Dynamic})
	w.CreateCollider(BallCollider(0.5), body)

	w.SetGravity(cp.Vector{X: 0, Y: -6})
	for i := 0; i < 10; i++ {
		w.Step(1.0 / 60)
	}
	if y := body.Translation().Y; y >= 0 {
		t.Errorf("expected body to rise under flipped gravity, got y=%f", y)
	}
}

func TestSleepingBodyWakesOnImpulse(t *testing.T) {
	w := newTestWorld(t, cp.Vector{X: 0, Y: 9.8})
	body := w.CreateBody(BodyDesc{Kind: Dynamic, Sleeping: true})
	w.CreateCollider(BoxCollider(0.5, 0.5), body)

	body.ApplyImpulse(cp.Vector{X: 2})
	if body.IsSleeping() {
		t.Fatal("expected impulse to wake the body")
	}
	w.Step(1.0 / 60)
	p := body.Translation()
	if p.X <= 0 {
		t.Errorf("expected body to move right, got x=%f", p.X)
	}
	w.Step(1.0 / 60)
	if body.Translation().Y <= p.Y {
		t.Error("expected woken body to fall")
	}
}

func TestSleepingBodyWakesOnContact(t *testing.T) {
	w := newTestWorld(t, cp.Vector{X: 0, Y: 9.8})
	sleeper := w.CreateBody(BodyDesc{Kind: Dynamic, Sleeping: true})
	w.CreateCollider(BoxCollider(0.5, 0.5), sleeper)
	ball := w.CreateBody(BodyDesc{Kind: Dynamic, Translation: cp.Vector{X: 0, Y: -2}})
	w.CreateCollider(BallCollider(0.5), ball)

	for i := 0; i < 120 && sleeper.IsSleeping(); i++ {
		w.Step(1.0 / 60)
	}
	if sleeper.IsSleeping() {
		t.Fatal("expected the falling ball to wake the sleeper")
	}
}

func TestSleepingNeighboursStayAsleep(t *testing.T) {
	w := newTestWorld(t, cp.Vector{X: 0, Y: 9.8})
	var bodies []*Body
	for _, x := range []float64{0, 0.9} {
		b := w.CreateBody(BodyDesc{Kind: Dynamic, Sleeping: true, Translation: cp.Vector{X: x}})
		w.CreateCollider(BoxCollider(0.5, 0.5), b)
		bodies = append(bodies, b)
	}

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}
	for i, b := range bodies {
		if !b.IsSleeping() {
			t.Errorf("body %d woke from touching another sleeper", i)
		}
	}
}

func TestSleepDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.SleepAfter = 0
	rt, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	w, err := rt.NewWorld(cp.Vector{X: 0, Y: 9.8})
	if err != nil {
		t.Fatalf("new world failed: %v", err)
	}
	body := w.CreateBody(BodyDesc{Kind: Dynamic, Sleeping: true})
	w.CreateCollider(BoxCollider(0.5, 0.5), body)

	if body.IsSleeping() {
		t.Fatal("bodies must not sleep when sleeping is disabled")
	}
	w.Step(1.0 / 60)
	w.Step(1.0 / 60)
	if body.Translation().Y <= 0 {
		t.Error("expected body to fall")
	}
}
