package sim

import (
	"context"
	"time"

	"github.com/jakecoffman/cp/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/object"
	"github.com/san-kum/glyphfall/internal/pointer"
	"github.com/san-kum/glyphfall/internal/render"
)

const scaling = 50

type event struct {
	kind string
	step int
	prev cp.Vector
	cur  cp.Vector
}

type recordingObserver struct {
	events []event
}

func (r *recordingObserver) OnStep(info StepInfo) {
	o := info.Objects[0]
	prev, _ := o.Previous()
	r.events = append(r.events, event{kind: "step", step: info.Step, prev: prev, cur: o.Body.Translation()})
}

func (r *recordingObserver) OnFrame(FrameStats) {
	r.events = append(r.events, event{kind: "frame"})
}

func newTestWorld() *engine.World {
	rt, err := engine.Load(context.Background(), engine.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	w, err := rt.NewWorld(cp.Vector{Y: 9.8})
	Expect(err).NotTo(HaveOccurred())
	return w
}

var _ = Describe("Driver", func() {
	var (
		world  *engine.World
		driver *Driver
		ball   *object.PhysicsObject
		obs    *recordingObserver
	)

	BeforeEach(func() {
		world = newTestWorld()
		driver = NewDriver(world, NewClock(DefaultTimestep, DefaultMaxFrame, epoch))

		opts := object.DefaultBallOptions(0.25)
		opts.Sleeping = false
		opts.Translation = cp.Vector{X: 2, Y: 1}
		ball = object.NewBall(world, scaling, opts)
		driver.AddObject(ball)

		obs = &recordingObserver{}
		driver.AddObserver(obs)
	})

	It("runs sixty steps for one second of frames", func() {
		now := epoch
		for i := 0; i < 60; i++ {
			now = now.Add(DefaultTimestep)
			Expect(driver.Frame(now, nil).Steps).To(Equal(1))
		}
		Expect(driver.Steps()).To(Equal(60))
		Expect(driver.Time()).To(BeNumerically("~", 1.0, 1e-6))
		Expect(world.Steps()).To(Equal(60))

		direct := newTestWorld()
		opts := object.DefaultBallOptions(0.25)
		opts.Sleeping = false
		opts.Translation = cp.Vector{X: 2, Y: 1}
		twin := object.NewBall(direct, scaling, opts)
		for i := 0; i < 60; i++ {
			direct.Step(DefaultTimestep.Seconds())
		}
		Expect(ball.Body.Translation().Y).To(BeNumerically("~", twin.Body.Translation().Y, 1e-9))
		Expect(ball.Body.Translation().Y).To(BeNumerically(">", 1))
	})

	It("runs only the clamped steps for a one second frame", func() {
		stats := driver.Frame(epoch.Add(time.Second), nil)
		Expect(stats.Steps).To(Equal(15))
		Expect(stats.FrameTime).To(Equal(DefaultMaxFrame))
	})

	It("caps a long pause at the maximum frame time", func() {
		stats := driver.Frame(epoch.Add(5*time.Second), nil)
		Expect(stats.FrameTime).To(Equal(250 * time.Millisecond))
		Expect(stats.Steps).To(Equal(15))
	})

	It("steps nothing on a short frame and still reports alpha", func() {
		stats := driver.Frame(epoch.Add(8*time.Millisecond), nil)
		Expect(stats.Steps).To(BeZero())
		Expect(stats.Alpha).To(BeNumerically("~", 0.48, 1e-6))
	})

	It("snapshots before every step and presents after the last", func() {
		start := ball.Body.Translation()
		driver.Frame(epoch.Add(100*time.Millisecond), nil)

		Expect(obs.events).NotTo(BeEmpty())
		last := obs.events[len(obs.events)-1]
		Expect(last.kind).To(Equal("frame"))

		steps := obs.events[:len(obs.events)-1]
		Expect(steps).To(HaveLen(6))
		for i, e := range steps {
			Expect(e.kind).To(Equal("step"))
			if i == 0 {
				// the first step only builds velocity, so the pose holds
				Expect(e.prev).To(Equal(start))
				continue
			}
			Expect(e.prev).To(Equal(steps[i-1].cur))
			Expect(e.prev).NotTo(Equal(e.cur), "snapshot must be the pre-step pose")
		}
	})

	It("renders the interpolated pose", func() {
		svg := render.NewSVGSurface(400, 300)
		ctx := render.NewContext(svg)

		stats := driver.Frame(epoch.Add(40*time.Millisecond), ctx)
		Expect(svg.Shapes()).To(Equal(1))

		prev, _ := ball.Previous()
		pos, _ := ball.Pose(stats.Alpha)
		Expect(pos.Y).To(BeNumerically(">=", prev.Y))
		Expect(pos.Y).To(BeNumerically("<=", ball.Body.Translation().Y))
	})

	It("steps once outside the clock", func() {
		driver.Step()
		Expect(driver.Steps()).To(Equal(1))
		Expect(driver.Clock().Accumulator()).To(BeZero())
	})

	Describe("pointer input", func() {
		var hand *pointer.Pointer

		BeforeEach(func() {
			opts := pointer.DefaultOptions()
			opts.Now = epoch
			hand = pointer.New(world, cp.Vector{X: 400, Y: 300}, scaling, opts)
			driver.SetPointerProxy(hand, scaling)
		})

		It("holds the parked position until the first input", func() {
			driver.Frame(epoch.Add(100*time.Millisecond), nil)
			Expect(hand.Position().X).To(BeNumerically("~", 8, 1e-9))
			Expect(hand.Position().Y).To(BeNumerically("~", 6, 1e-9))
		})

		It("follows the last input and enables after the delay", func() {
			driver.SetPointer(cp.Vector{X: 10, Y: 10}, false)
			driver.SetPointer(cp.Vector{X: 100, Y: 50}, false)

			driver.Frame(epoch.Add(500*time.Millisecond), nil)
			Expect(hand.Enabled()).To(BeFalse())
			Expect(hand.Position().X).To(BeNumerically("~", 2, 1e-3))
			Expect(hand.Position().Y).To(BeNumerically("~", 1, 1e-3))

			driver.Frame(epoch.Add(time.Second), nil)
			Expect(hand.Enabled()).To(BeTrue())
		})

		It("reports press changes once", func() {
			var presses []bool
			driver.OnPress(func(p bool) { presses = append(presses, p) })

			driver.SetPointer(cp.Vector{}, true)
			driver.SetPointer(cp.Vector{X: 1}, true)
			driver.SetPointer(cp.Vector{X: 2}, false)
			Expect(presses).To(Equal([]bool{true, false}))

			_, pressed := driver.PointerTarget()
			Expect(pressed).To(BeFalse())
		})
	})
})

var _ = Describe("RunHeadless", func() {
	It("simulates the requested wall time", func() {
		world := newTestWorld()
		d := NewDriver(world, NewClock(DefaultTimestep, DefaultMaxFrame, epoch))

		res, err := RunHeadless(context.Background(), d, HeadlessConfig{FPS: 30, Duration: 2 * time.Second, Start: epoch})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(HaveLen(60))
		Expect(res.Steps).To(Equal(120))
		Expect(res.SimTime).To(BeNumerically("~", 2.0, 1e-6))
	})

	It("feeds the whole duration at rates that do not divide a second", func() {
		for _, fps := range []float64{144, 7, 59.94} {
			d := NewDriver(newTestWorld(), NewClock(DefaultTimestep, DefaultMaxFrame, epoch))
			res, err := RunHeadless(context.Background(), d, HeadlessConfig{FPS: fps, Duration: time.Second, Start: epoch})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(Equal(60), "fps %v", fps)
			Expect(res.SimTime).To(BeNumerically("~", 1.0, 1e-6), "fps %v", fps)
		}
	})

	It("ends on the duration even with jitter", func() {
		d := NewDriver(newTestWorld(), NewClock(DefaultTimestep, DefaultMaxFrame, epoch))
		res, err := RunHeadless(context.Background(), d, HeadlessConfig{FPS: 60, Duration: time.Second, Jitter: 0.9, Seed: 3, Start: epoch})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(HaveLen(60))
		Expect(res.Steps).To(Equal(60))
		Expect(d.Clock().Last()).To(BeTemporally("==", epoch.Add(time.Second)))
	})

	It("rejects a bad config", func() {
		d := NewDriver(newTestWorld(), NewClock(0, 0, epoch))
		_, err := RunHeadless(context.Background(), d, HeadlessConfig{FPS: 0, Duration: time.Second})
		Expect(err).To(HaveOccurred())
		_, err = RunHeadless(context.Background(), d, HeadlessConfig{FPS: 60, Duration: time.Second, Jitter: 1})
		Expect(err).To(HaveOccurred())
	})

	It("stops on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := NewDriver(newTestWorld(), NewClock(0, 0, epoch))
		res, err := RunHeadless(ctx, d, HeadlessConfig{FPS: 60, Duration: time.Second, Start: epoch})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Frames).To(BeEmpty())
	})
})

var _ = Describe("Ensemble", func() {
	It("runs independent worlds", func() {
		build := func(seed int64) (*Driver, error) {
			defer GinkgoRecover()
			w := newTestWorld()
			d := NewDriver(w, NewClock(DefaultTimestep, DefaultMaxFrame, epoch))
			d.AddObject(object.NewBall(w, scaling, object.DefaultBallOptions(0.2)))
			return d, nil
		}

		results, err := NewEnsemble(build, 3, 10).Run(context.Background(), HeadlessConfig{
			FPS: 60, Duration: 500 * time.Millisecond, Jitter: 0.2, Start: epoch,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, r := range results {
			Expect(r.Seed).To(Equal(int64(10 + i)))
			Expect(r.Steps).To(BeNumerically(">", 0))
		}
	})
})
