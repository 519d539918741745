package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/jakecoffman/cp/v2"
)

type Options struct {
	// Iterations is the number of solver iterations per step.
	Iterations int
	// SleepAfter is how long a body must stay idle before it falls asleep.
	// Zero disables sleeping.
	SleepAfter time.Duration
	// CollisionSlop is the tolerated overlap between touching shapes, in meters.
	CollisionSlop float64
}

func DefaultOptions() Options {
	return Options{
		Iterations:    10,
		SleepAfter:    500 * time.Millisecond,
		CollisionSlop: 0.01,
	}
}

func (o Options) validate() error {
	if o.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidOptions, o.Iterations)
	}
	if o.SleepAfter < 0 {
		return fmt.Errorf("%w: sleep delay must not be negative, got %s", ErrInvalidOptions, o.SleepAfter)
	}
	if o.CollisionSlop < 0 {
		return fmt.Errorf("%w: collision slop must not be negative, got %f", ErrInvalidOptions, o.CollisionSlop)
	}
	return nil
}

// Runtime is a loaded physics engine. The zero value is not loaded.
type Runtime struct {
	opts  Options
	ready chan struct{}
}

// Load prepares the engine. It completes once; worlds can be created from
// the returned runtime afterwards.
func Load(ctx context.Context, opts Options) (*Runtime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	r := &Runtime{opts: opts, ready: make(chan struct{})}
	close(r.ready)
	return r, nil
}

// Ready is closed when the runtime can create worlds.
func (r *Runtime) Ready() <-chan struct{} {
	return r.ready
}

func (r *Runtime) loaded() bool {
	if r == nil || r.ready == nil {
		return false
	}
	select {
	case <-r.ready:
		return true
	default:
		return false
	}
}

func (r *Runtime) Options() Options {
	return r.opts
}

// NewWorld creates an empty world with the given gravity.
func (r *Runtime) NewWorld(gravity cp.Vector) (*World, error) {
	if !r.loaded() {
		return nil, ErrNotLoaded
	}

	space := cp.NewSpace()
	space.Iterations = uint(r.opts.Iterations)
	space.SetGravity(gravity)
	space.SetCollisionSlop(r.opts.CollisionSlop)
	space.SleepTimeThreshold = cp.INFINITY
	if r.opts.SleepAfter > 0 {
		space.SleepTimeThreshold = r.opts.SleepAfter.Seconds()
	}

	w := &World{
		space:    space,
		gravity:  gravity,
		sleeping: r.opts.SleepAfter > 0,
	}
	w.ground = &Body{world: w, b: space.StaticBody, kind: Static}
	return w, nil
}
