package flechtwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(s *Scheduler, states *StateTree) []string {
	return s.Drain(states, func(id string) *Context {
		return &Context{Path: id, States: states, Scheduler: s}
	})
}

// Setting the same value twice emits exactly one change event.
func TestPropertySetIdempotent(t *testing.T) {
	p := NewProperty("n", 0)
	ch := p.Channel()
	p.Set(5)
	p.Set(5)
	assert.Len(t, ch, 1)
	assert.Equal(t, 5, p.Get())
}

func TestPropertyChannelKeepsLatest(t *testing.T) {
	p := NewProperty("n", 0)
	ch := p.Channel()
	for i := 1; i <= 100; i++ {
		p.Set(i)
	}
	last := 0
	for len(ch) > 0 {
		last = (<-ch).(int)
	}
	assert.Equal(t, 100, last)
}

func TestPropertyWithoutChannelSkipsQueueing(t *testing.T) {
	p := NewProperty("n", 0)
	p.Set(1)
	p.Set(2)
	assert.Equal(t, 2, p.Get())
}

func TestSchedulerDuplicateProperty(t *testing.T) {
	s := NewSchedulerWithClock(NewFakeClock())
	_, err := s.NewIntProperty("count", 0)
	assert.NoError(t, err)
	_, err = s.NewIntProperty("count", 1)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestDrainInvokesSubscribers(t *testing.T) {
	s := NewSchedulerWithClock(NewFakeClock())
	states := NewStateTree()
	states.Insert("/root/bar", NewState(KindProgressBar))

	p, _ := s.NewIntProperty("count", 0)
	s.Subscribe("count", func(t *StateTree, value any) string {
		t.Get("/root/bar").ProgressBar.Value.Set(value.(int))
		return "/root/bar"
	})

	p.Set(42)
	dirty := drain(s, states)
	assert.Equal(t, []string{"/root/bar"}, dirty)
	assert.Equal(t, 42, states.Get("/root/bar").ProgressBar.Value.Get())
}

func TestDrainRunsBoundCallbacksAfterSubscribers(t *testing.T) {
	s := NewSchedulerWithClock(NewFakeClock())
	states := NewStateTree()
	states.Insert("/root/bar", NewState(KindProgressBar))

	order := make([]string, 0)
	p, _ := s.NewIntProperty("count", 0)
	s.Subscribe("count", func(*StateTree, any) string {
		order = append(order, "subscriber")
		return ""
	})
	s.Bind("count", func(*Context) bool {
		order = append(order, "callback")
		return true
	})

	p.Set(1)
	drain(s, states)
	assert.Equal(t, []string{"subscriber", "callback"}, order)
}

// Mutual subscriptions must not loop: a cell already touched in a drain
// is not processed again.
func TestDrainCycleProtection(t *testing.T) {
	s := NewSchedulerWithClock(NewFakeClock())
	states := NewStateTree()

	a, _ := s.NewIntProperty("a", 0)
	b, _ := s.NewIntProperty("b", 0)
	s.Subscribe("a", func(*StateTree, any) string {
		b.Set(a.Get())
		return ""
	})
	s.Subscribe("b", func(*StateTree, any) string {
		a.Set(b.Get() + 1)
		return ""
	})

	a.Set(1)
	done := make(chan struct{})
	go func() {
		drain(s, states)
		close(done)
	}()
	select {
	case <-done:
	case <-timeout(t):
		t.Fatal("drain did not terminate")
	}
}

func TestPanickingCallbackIsCaught(t *testing.T) {
	s := NewSchedulerWithClock(NewFakeClock())
	states := NewStateTree()
	p, _ := s.NewIntProperty("boom", 0)
	s.Bind("boom", func(*Context) bool {
		panic("user error")
	})
	p.Set(1)
	assert.NotPanics(t, func() { drain(s, states) })
}
