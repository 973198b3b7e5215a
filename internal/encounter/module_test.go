package encounter

import (
	"errors"
	"testing"

	"github.com/verte-zerg/gcdstats/internal/model"
)

type fakeTicks struct {
	callbacks map[string]func()
}

func (f *fakeTicks) Register(id string, fn func()) {
	if f.callbacks == nil {
		f.callbacks = map[string]func(){}
	}
	f.callbacks[id] = fn
}

func (f *fakeTicks) Unregister(id string) {
	delete(f.callbacks, id)
}

func (f *fakeTicks) tick() {
	for _, fn := range f.callbacks {
		fn()
	}
}

type fakeSaver struct {
	saved []model.Settings
	err   error
}

func (f *fakeSaver) Save(settings model.Settings) error {
	f.saved = append(f.saved, settings)
	return f.err
}

func TestModuleEnableDisable(t *testing.T) {
	settings := model.DefaultSettings()
	tr, h := newTestTracker(settings)
	ticks := &fakeTicks{}
	saver := &fakeSaver{}
	m := NewModule(tr, ticks, saver, &settings)

	if m.IsEnabled() || m.Subscribed() {
		t.Fatalf("expected module disabled by default")
	}
	if err := m.SetEnabled(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !m.IsEnabled() || !m.Subscribed() {
		t.Fatalf("expected module enabled and subscribed")
	}
	if len(saver.saved) != 1 || !saver.saved[0].EnableEncounterStats {
		t.Fatalf("expected enabled settings saved, got %+v", saver.saved)
	}

	h.inCombat = true
	ticks.tick()
	if tr.State() != Active {
		t.Fatalf("expected tick to drive the tracker")
	}

	m.Enable()
	if len(ticks.callbacks) != 1 {
		t.Fatalf("expected a single subscription, got %d", len(ticks.callbacks))
	}

	if err := m.SetEnabled(false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if m.Subscribed() || len(ticks.callbacks) != 0 {
		t.Fatalf("expected unsubscribed after disable")
	}
	if len(saver.saved) != 2 || saver.saved[1].EnableEncounterStats {
		t.Fatalf("expected disabled settings saved, got %+v", saver.saved)
	}
}

func TestModuleSetEnabledSaveError(t *testing.T) {
	settings := model.DefaultSettings()
	tr, _ := newTestTracker(settings)
	saver := &fakeSaver{err: errors.New("disk full")}
	m := NewModule(tr, &fakeTicks{}, saver, &settings)
	if err := m.SetEnabled(true); err == nil {
		t.Fatalf("expected save error")
	}
	if !m.Subscribed() {
		t.Fatalf("expected module subscribed despite save error")
	}
}
