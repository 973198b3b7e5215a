package trace

import (
	"context"
	"math"
	"time"

	"github.com/verte-zerg/gcdstats/internal/model"
)

type registration struct {
	id string
	fn func()
}

// Replayer plays frames back through the host interfaces the tracker reads.
type Replayer struct {
	frames    []model.Frame
	base      time.Time
	index     int
	callbacks []registration
}

// NewReplayer constructs a replayer whose clock starts at base. A zero base
// starts at the Unix epoch so trace time zero is never the zero time.
func NewReplayer(frames []model.Frame, base time.Time) *Replayer {
	if base.IsZero() {
		base = time.Unix(0, 0)
	}
	return &Replayer{frames: frames, base: base}
}

// Register subscribes fn to every frame. Registering an id again replaces it.
func (r *Replayer) Register(id string, fn func()) {
	for i := range r.callbacks {
		if r.callbacks[i].id == id {
			r.callbacks[i].fn = fn
			return
		}
	}
	r.callbacks = append(r.callbacks, registration{id: id, fn: fn})
}

// Unregister removes the callback registered under id.
func (r *Replayer) Unregister(id string) {
	for i := range r.callbacks {
		if r.callbacks[i].id == id {
			r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
			return
		}
	}
}

// Run dispatches every frame in order.
func (r *Replayer) Run(ctx context.Context) error {
	for i := range r.frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.index = i
		r.dispatch()
	}
	return nil
}

func (r *Replayer) dispatch() {
	callbacks := make([]registration, len(r.callbacks))
	copy(callbacks, r.callbacks)
	for _, cb := range callbacks {
		cb.fn()
	}
}

func (r *Replayer) current() model.Frame {
	if len(r.frames) == 0 {
		return model.Frame{}
	}
	return r.frames[r.index]
}

// InCombat implements encounter.CombatStatus.
func (r *Replayer) InCombat() bool {
	return r.current().InCombat
}

// Snapshot implements encounter.ActionState.
func (r *Replayer) Snapshot() model.Sample {
	return r.current().Sample
}

// DeltaTime implements encounter.FrameClock.
func (r *Replayer) DeltaTime() float64 {
	return r.current().Delta
}

// Now implements encounter.Clock using the trace timestamp.
func (r *Replayer) Now() time.Time {
	secs := r.current().Time
	return r.base.Add(time.Duration(math.Round(secs * float64(time.Second))))
}
