package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

func validateHeadless(cfg HeadlessConfig) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %f", cfg.FPS)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", cfg.Duration)
	}
	if cfg.Jitter < 0 || cfg.Jitter >= 1 {
		return fmt.Errorf("jitter must be in [0, 1), got %f", cfg.Jitter)
	}
	return nil
}

// RunHeadless feeds d synthetic frames at cfg.FPS until cfg.Duration of
// wall time has been simulated. The driver's clock must start at cfg.Start.
func RunHeadless(ctx context.Context, d *Driver, cfg HeadlessConfig) (*Result, error) {
	if err := validateHeadless(cfg); err != nil {
		return nil, err
	}

	// frame i lands on Start + Duration*i/frames so the last frame ends
	// exactly at Duration whatever the rate
	frames := int(math.Ceil(cfg.Duration.Seconds()*cfg.FPS - 1e-6))
	if frames < 1 {
		frames = 1
	}
	interval := float64(cfg.Duration) / float64(frames)
	rng := rand.New(rand.NewSource(cfg.Seed))

	result := &Result{
		Seed:   cfg.Seed,
		Frames: make([]FrameStats, 0, frames),
	}

	for i := 1; i <= frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		now := cfg.Start.Add(time.Duration(int64(cfg.Duration) * int64(i) / int64(frames)))
		if cfg.Jitter > 0 && i < frames {
			now = now.Add(time.Duration((rng.Float64()*2 - 1) * cfg.Jitter * interval / 2))
		}

		stats := d.Frame(now, nil)
		result.Frames = append(result.Frames, stats)
		result.Steps += stats.Steps
	}
	result.SimTime = d.Time()

	return result, nil
}
