package sim

import (
	"time"

	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/object"
)

// StepInfo is handed to observers after every fixed step.
type StepInfo struct {
	Step    int
	Time    float64
	World   *engine.World
	Objects []*object.PhysicsObject
}

// FrameStats describes one displayed frame.
type FrameStats struct {
	Now time.Time
	// FrameTime is the clamped wall time the frame added to the accumulator.
	FrameTime time.Duration
	Steps     int
	Alpha     float64
	SimTime   float64
}

type Observer interface {
	OnStep(info StepInfo)
	OnFrame(stats FrameStats)
}

// HeadlessConfig drives frames from a synthetic clock instead of a display.
type HeadlessConfig struct {
	FPS      float64
	Duration time.Duration
	// Jitter moves each frame but the last off its ideal time by up to half
	// this fraction of an interval.
	Jitter float64
	Seed   int64
	Start  time.Time
}

type Result struct {
	Seed    int64
	Frames  []FrameStats
	Steps   int
	SimTime float64
}
