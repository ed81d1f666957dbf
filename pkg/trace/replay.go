package trace

import (
	"context"
	"sync"

	"github.com/grovetools/reorder/logging"
	"github.com/grovetools/reorder/pkg/reorder"
	"github.com/sirupsen/logrus"
)

// EventKind classifies a replay event.
type EventKind string

const (
	EventSwap     EventKind = "swap"
	EventRemove   EventKind = "remove"
	EventDragging EventKind = "dragging"
	EventReleased EventKind = "released"
	EventRejected EventKind = "rejected"
)

// Event is one observable effect of a step.
type Event struct {
	Step  int            `json:"step" yaml:"step"`
	Kind  EventKind      `json:"kind" yaml:"kind"`
	A     string         `json:"a" yaml:"a"`
	B     string         `json:"b,omitempty" yaml:"b,omitempty"`
	Ranks map[string]int `json:"ranks,omitempty" yaml:"ranks,omitempty"`
	Error string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result is the outcome of a replay.
type Result struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Events      []Event        `json:"events" yaml:"events"`
	Swaps       int            `json:"swaps" yaml:"swaps"`
	Order       []string       `json:"order" yaml:"order"`
	Ranks       map[string]int `json:"ranks" yaml:"ranks"`
	TotalHeight float64        `json:"total_height" yaml:"total_height"`
}

// Options tunes a replay.
type Options struct {
	Logger *logrus.Entry
	// OnEvent, when set, is called with every event as it is recorded.
	OnEvent func(Event)
}

// recorder collects events in step order.
type recorder struct {
	mu      sync.Mutex
	step    int
	events  []Event
	onEvent func(Event)
}

func (r *recorder) add(ev Event) {
	r.mu.Lock()
	ev.Step = r.step
	r.events = append(r.events, ev)
	r.mu.Unlock()

	if r.onEvent != nil {
		r.onEvent(ev)
	}
}

// recordingStore reports every successful mutation to the recorder.
type recordingStore struct {
	*reorder.Registry
	rec *recorder
}

func (s *recordingStore) SwapItems(idA, idB string) error {
	if err := s.Registry.SwapItems(idA, idB); err != nil {
		return err
	}
	s.rec.add(Event{Kind: EventSwap, A: idA, B: idB, Ranks: s.Registry.Ranks()})
	return nil
}

func (s *recordingStore) RemoveItem(itemID string) error {
	if err := s.Registry.RemoveItem(itemID); err != nil {
		return err
	}
	s.rec.add(Event{Kind: EventRemove, A: itemID, Ranks: s.Registry.Ranks()})
	return nil
}

// Replay mounts the trace's items on a fresh registry and applies its steps
// in order. Dragging timers only fire on `fire` steps. Step failures such as
// a rejected drag are recorded as events; only cancellation or an invalid
// trace stop the replay.
func Replay(ctx context.Context, t *Trace, opts Options) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger("trace")
	}

	rec := &recorder{onEvent: opts.OnEvent}
	registry := reorder.NewRegistry(
		reorder.WithSpacing(t.Spacing),
		reorder.WithLogger(logger),
	)
	store := &recordingStore{Registry: registry, rec: rec}
	scheduler := &reorder.ManualScheduler{}

	hook := func(itemID string, dragging bool) {
		kind := EventDragging
		if !dragging {
			kind = EventReleased
		}
		rec.add(Event{Kind: kind, A: itemID})
	}

	items := make(map[string]*reorder.Item, len(t.Items))
	for i, ti := range t.Items {
		item := reorder.NewItem(store, ti.ID, t.rankOf(i),
			reorder.WithRemovable(ti.Removable),
			reorder.WithScheduler(scheduler),
			reorder.WithItemLogger(logger),
			reorder.WithDraggingHook(hook),
		)
		item.Mount(ti.Height)
		items[ti.ID] = item
	}

	for i, step := range t.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec.mu.Lock()
		rec.step = i
		rec.mu.Unlock()

		ev := reorder.PointerEvent{PageY: step.PageY, ClientY: step.ClientY}
		item := items[step.Item]

		var err error
		switch step.Action {
		case ActionStart:
			err = item.DragStart(ev)
		case ActionDrag:
			_, err = item.Drag(ev)
		case ActionEnd:
			item.DragEnd(ev)
		case ActionUnmount:
			err = item.Unmount()
		case ActionFire:
			scheduler.Fire()
		}
		if err != nil {
			rec.add(Event{Kind: EventRejected, A: step.Item, Error: err.Error()})
		}
	}

	result := &Result{
		Name:        t.Name,
		Events:      rec.events,
		Order:       registry.Order(),
		Ranks:       registry.Ranks(),
		TotalHeight: registry.TotalHeight(),
	}
	for _, ev := range result.Events {
		if ev.Kind == EventSwap {
			result.Swaps++
		}
	}

	logger.WithFields(logrus.Fields{
		"steps": len(t.Steps),
		"swaps": result.Swaps,
	}).Debug("Replayed trace")

	return result, nil
}
