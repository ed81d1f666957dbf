package reorder

import (
	"sync"
	"time"

	"github.com/grovetools/reorder/errors"
	"github.com/grovetools/reorder/logging"
	"github.com/sirupsen/logrus"
)

// Store is the registry surface an Item depends on. *Registry implements it.
type Store interface {
	InitItem(itemID string, rank int, height float64)
	RemoveItem(itemID string) error
	SwapItems(idA, idB string) error
	Rank(itemID string) (int, bool)
	Height(itemID string) (float64, bool)
	IDAt(rank int) (string, bool)
	Spacing() float64
	Top(itemID string) (float64, error)
}

// DragArbiter is implemented by stores that allow only one drag at a time.
type DragArbiter interface {
	ClaimDrag(itemID string) error
	ReleaseDrag(itemID string)
}

// Phase is the state of an item's drag session.
type Phase int

const (
	// PhaseIdle means no drag is in progress.
	PhaseIdle Phase = iota
	// PhasePending means the drag started but no sample has calibrated the baseline yet.
	PhasePending
	// PhaseSampling means pointer samples are compared against the baseline.
	PhaseSampling
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSampling:
		return "sampling"
	default:
		return "idle"
	}
}

// PointerEvent is one pointer sample forwarded by the host.
type PointerEvent struct {
	PageY   float64
	ClientY float64
}

// Y returns PageY, falling back to ClientY when PageY is zero.
func (e PointerEvent) Y() float64 {
	if e.PageY != 0 {
		return e.PageY
	}
	return e.ClientY
}

// DraggingHook is told when the cosmetic dragging state of an item flips.
// It may be called from the scheduler's goroutine.
type DraggingHook func(itemID string, dragging bool)

// Item is the per-entry handle of a reorderable list. It registers itself with
// the Registry on Mount and converts pointer samples into swaps with the
// adjacent item.
type Item struct {
	id        string
	initOrder int
	removable bool
	store     Store
	scheduler Scheduler
	logger    *logrus.Entry
	delay     time.Duration
	hook      DraggingHook

	mu       sync.Mutex
	mounted  bool
	phase    Phase
	baseline float64
	timer    Timer
	dragging bool
	// session increments on every DragStart so a late timer callback from an
	// earlier drag can recognise itself as stale.
	session uint64
}

// ItemOption configures an Item.
type ItemOption func(*Item)

// WithRemovable controls whether Unmount removes the item from the registry.
func WithRemovable(removable bool) ItemOption {
	return func(it *Item) {
		it.removable = removable
	}
}

// WithScheduler sets the scheduler used for the dragging delay.
func WithScheduler(s Scheduler) ItemOption {
	return func(it *Item) {
		it.scheduler = s
	}
}

// WithDragDelay sets how long a drag lasts before Dragging reports true.
func WithDragDelay(d time.Duration) ItemOption {
	return func(it *Item) {
		it.delay = d
	}
}

// WithItemLogger overrides the component logger.
func WithItemLogger(logger *logrus.Entry) ItemOption {
	return func(it *Item) {
		it.logger = logger
	}
}

// WithDraggingHook installs a callback for cosmetic dragging changes.
func WithDraggingHook(h DraggingHook) ItemOption {
	return func(it *Item) {
		it.hook = h
	}
}

// NewItem creates the handle for one list entry. initOrder is the rank it
// registers with on Mount.
func NewItem(store Store, itemID string, initOrder int, opts ...ItemOption) *Item {
	it := &Item{
		id:        itemID,
		initOrder: initOrder,
		store:     store,
		scheduler: SystemScheduler{},
		delay:     DefaultDragDelay,
	}
	for _, opt := range opts {
		opt(it)
	}
	if it.logger == nil {
		it.logger = logging.NewLogger("reorder")
	}
	return it
}

// ID returns the item's id.
func (it *Item) ID() string {
	return it.id
}

// Removable reports whether Unmount deletes the registry entry.
func (it *Item) Removable() bool {
	return it.removable
}

// Mount registers the item with its measured height. Only the first call has
// an effect.
func (it *Item) Mount(height float64) {
	it.mu.Lock()
	if it.mounted {
		it.mu.Unlock()
		return
	}
	it.mounted = true
	it.mu.Unlock()

	it.store.InitItem(it.id, it.initOrder, height)
}

// Unmount ends any drag in progress and, for removable items, deletes the
// registry entry. Non-removable items stay registered.
func (it *Item) Unmount() error {
	it.mu.Lock()
	if !it.mounted {
		it.mu.Unlock()
		return nil
	}
	it.mounted = false
	active := it.phase != PhaseIdle
	it.resetLocked()
	it.mu.Unlock()

	if active {
		it.releaseDrag()
	}
	if !it.removable {
		return nil
	}
	return it.store.RemoveItem(it.id)
}

// Top returns the item's current offset within the list.
func (it *Item) Top() (float64, error) {
	return it.store.Top(it.id)
}

// Position returns the 1-based position shown to users.
func (it *Item) Position() (int, error) {
	rank, ok := it.store.Rank(it.id)
	if !ok {
		return 0, errors.ItemNotFound(it.id)
	}
	return rank + 1, nil
}

// Phase returns the state of the drag session.
func (it *Item) Phase() Phase {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.phase
}

// Dragging reports whether the drag has lasted past the dragging delay.
func (it *Item) Dragging() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.dragging
}

// DragStart begins a drag session. The next Drag sample calibrates the
// baseline. It fails when another item of the same list is being dragged.
func (it *Item) DragStart(ev PointerEvent) error {
	if arbiter, ok := it.store.(DragArbiter); ok {
		if err := arbiter.ClaimDrag(it.id); err != nil {
			return err
		}
	}

	it.mu.Lock()
	wasDragging := it.dragging
	it.resetLocked()
	it.session++
	session := it.session
	it.phase = PhasePending
	it.timer = it.scheduler.AfterFunc(it.delay, func() {
		it.markDragging(session)
	})
	it.mu.Unlock()

	if wasDragging && it.hook != nil {
		it.hook(it.id, false)
	}
	it.logger.WithFields(logrus.Fields{
		"item": it.id,
		"y":    ev.Y(),
	}).Debug("Drag started")
	return nil
}

func (it *Item) markDragging(session uint64) {
	it.mu.Lock()
	if it.session != session || it.phase == PhaseIdle {
		it.mu.Unlock()
		return
	}
	it.dragging = true
	it.timer = nil
	it.mu.Unlock()

	if it.hook != nil {
		it.hook(it.id, true)
	}
}

// Drag processes one pointer sample and reports whether it caused a swap.
// Samples outside a drag session are ignored.
func (it *Item) Drag(ev PointerEvent) (bool, error) {
	y := ev.Y()

	it.mu.Lock()
	switch it.phase {
	case PhaseIdle:
		it.mu.Unlock()
		return false, nil
	case PhasePending:
		it.baseline = y
		it.phase = PhaseSampling
		it.mu.Unlock()
		return false, nil
	}
	delta := y - it.baseline
	session := it.session
	it.mu.Unlock()

	var offset int
	switch {
	case delta > 0:
		offset = 1
	case delta < 0:
		offset = -1
	default:
		return false, nil
	}

	neighborID, ownHeight, neighborHeight, ok := it.neighbor(offset)
	if !ok {
		return false, nil
	}
	threshold := ownHeight/2 + neighborHeight/2 + it.store.Spacing()
	distance := delta
	if distance < 0 {
		distance = -distance
	}
	if distance <= threshold {
		return false, nil
	}

	if err := it.store.SwapItems(it.id, neighborID); err != nil {
		return false, err
	}
	it.logger.WithFields(logrus.Fields{
		"item":     it.id,
		"neighbor": neighborID,
		"delta":    delta,
	}).Debug("Threshold crossed")

	it.mu.Lock()
	if it.session == session && it.phase == PhaseSampling {
		it.baseline = y
	}
	it.mu.Unlock()
	return true, nil
}

// DragEnd finishes the drag session and clears the dragging state.
func (it *Item) DragEnd(ev PointerEvent) {
	it.mu.Lock()
	if it.phase == PhaseIdle && it.timer == nil && !it.dragging {
		it.mu.Unlock()
		return
	}
	wasDragging := it.dragging
	it.resetLocked()
	it.mu.Unlock()

	it.releaseDrag()
	if wasDragging && it.hook != nil {
		it.hook(it.id, false)
	}
	it.logger.WithFields(logrus.Fields{
		"item": it.id,
		"y":    ev.Y(),
	}).Debug("Drag ended")
}

// neighbor looks up the item at own rank + offset and both heights.
func (it *Item) neighbor(offset int) (id string, ownHeight, height float64, ok bool) {
	rank, ok := it.store.Rank(it.id)
	if !ok {
		return "", 0, 0, false
	}
	id, ok = it.store.IDAt(rank + offset)
	if !ok {
		return "", 0, 0, false
	}
	ownHeight, _ = it.store.Height(it.id)
	height, _ = it.store.Height(id)
	return id, ownHeight, height, true
}

func (it *Item) releaseDrag() {
	if arbiter, ok := it.store.(DragArbiter); ok {
		arbiter.ReleaseDrag(it.id)
	}
}

// resetLocked stops the timer and returns the session to idle. it.mu must be held.
func (it *Item) resetLocked() {
	if it.timer != nil {
		it.timer.Stop()
		it.timer = nil
	}
	it.dragging = false
	it.baseline = 0
	it.phase = PhaseIdle
}
