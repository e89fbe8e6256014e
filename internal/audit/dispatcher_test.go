package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memorySink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcherDeliversQueuedEventsOnClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zerolog.Nop())

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{ActorID: uint(i), Action: "stock_adjusted"})
	}
	d.Close()

	if len(sink.events) != 10 {
		t.Fatalf("expected 10 events, got %d", len(sink.events))
	}
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{fail: true}
	d := NewDispatcher(sink, zerolog.Nop())

	d.Dispatch(Event{Action: "appointment_accepted"})
	d.Close()

	// a second Close must not panic
	d.Close()
}
