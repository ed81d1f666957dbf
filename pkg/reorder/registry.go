// Package reorder implements free-drag reordering for vertically stacked
// lists. A Registry owns the rank and height of every item in one list and
// derives layout from them; an Item is the per-entry handle that registers
// itself, reads its offset from the Registry, and turns pointer samples into
// rank swaps with its neighbours.
//
// Ranks are dense and zero-based. Heights and spacing are in whatever unit
// the host renders in (pixels, terminal rows).
package reorder

import (
	"sort"
	"sync"

	"github.com/grovetools/reorder/errors"
	"github.com/grovetools/reorder/logging"
	"github.com/sirupsen/logrus"
)

// ReorderFunc receives the rank map after every swap or removal. The map is a
// copy and may be retained by the callee.
type ReorderFunc func(ranks map[string]int)

// Registry is the single source of truth for the order and layout of one list.
// All mutation goes through InitItem, RemoveItem and SwapItems.
type Registry struct {
	mu       sync.Mutex
	rankOf   map[string]int
	heightOf map[string]float64
	spacing  float64

	onReorder ReorderFunc
	logger    *logrus.Entry

	// dragOwner is the id of the item whose drag session is active, if any.
	dragOwner string
}

// Option configures a Registry.
type Option func(*Registry)

// WithSpacing sets the fixed gap rendered between consecutive items.
func WithSpacing(spacing float64) Option {
	return func(r *Registry) {
		r.spacing = spacing
	}
}

// WithOnReorder installs the host callback invoked after every swap or removal.
func WithOnReorder(fn ReorderFunc) Option {
	return func(r *Registry) {
		r.onReorder = fn
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry for one mounted list.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rankOf:   make(map[string]int),
		heightOf: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewLogger("reorder")
	}
	return r
}

// InitItem inserts or overwrites the rank and height of itemID. The caller is
// responsible for supplying a rank that keeps the sequence dense. The reorder
// callback is not invoked.
func (r *Registry) InitItem(itemID string, rank int, height float64) {
	r.mu.Lock()
	r.rankOf[itemID] = rank
	r.heightOf[itemID] = height
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"item":   itemID,
		"rank":   rank,
		"height": height,
	}).Debug("Registered item")
}

// RemoveItem deletes itemID and closes the gap it leaves: every item ranked
// after it moves up by one.
func (r *Registry) RemoveItem(itemID string) error {
	r.mu.Lock()
	removed, ok := r.rankOf[itemID]
	if !ok {
		r.mu.Unlock()
		return errors.ItemNotFound(itemID)
	}
	delete(r.heightOf, itemID)
	delete(r.rankOf, itemID)
	for id, rank := range r.rankOf {
		if rank > removed {
			r.rankOf[id] = rank - 1
		}
	}
	if r.dragOwner == itemID {
		r.dragOwner = ""
	}
	snapshot := r.ranksLocked()
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"item": itemID,
		"rank": removed,
	}).Debug("Removed item")
	r.notify(snapshot)
	return nil
}

// SwapItems exchanges the ranks of idA and idB. No other rank or height changes.
func (r *Registry) SwapItems(idA, idB string) error {
	r.mu.Lock()
	rankA, okA := r.rankOf[idA]
	if !okA {
		r.mu.Unlock()
		return errors.ItemNotFound(idA)
	}
	rankB, okB := r.rankOf[idB]
	if !okB {
		r.mu.Unlock()
		return errors.ItemNotFound(idB)
	}
	r.rankOf[idA] = rankB
	r.rankOf[idB] = rankA
	snapshot := r.ranksLocked()
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"a":      idA,
		"b":      idB,
		"a_rank": rankB,
		"b_rank": rankA,
	}).Debug("Swapped items")
	r.notify(snapshot)
	return nil
}

func (r *Registry) notify(ranks map[string]int) {
	if r.onReorder != nil {
		r.onReorder(ranks)
	}
}

// Rank returns the current rank of itemID.
func (r *Registry) Rank(itemID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rank, ok := r.rankOf[itemID]
	return rank, ok
}

// Height returns the registered height of itemID.
func (r *Registry) Height(itemID string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.heightOf[itemID]
	return h, ok
}

// Ranks returns a copy of the rank map.
func (r *Registry) Ranks() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ranksLocked()
}

func (r *Registry) ranksLocked() map[string]int {
	out := make(map[string]int, len(r.rankOf))
	for id, rank := range r.rankOf {
		out[id] = rank
	}
	return out
}

// Heights returns a copy of the height map.
func (r *Registry) Heights() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]float64, len(r.heightOf))
	for id, h := range r.heightOf {
		out[id] = h
	}
	return out
}

// Spacing returns the gap between consecutive items.
func (r *Registry) Spacing() float64 {
	return r.spacing
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rankOf)
}

// Order returns the registered ids sorted by rank. Ties, which only occur
// when a caller broke density through InitItem, are broken by id.
func (r *Registry) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.rankOf))
	for id := range r.rankOf {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := r.rankOf[ids[i]], r.rankOf[ids[j]]
		if ri != rj {
			return ri < rj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// IDAt returns the id of the item holding rank.
func (r *Registry) IDAt(rank int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idAtLocked(rank)
}

func (r *Registry) idAtLocked(rank int) (string, bool) {
	for id, rk := range r.rankOf {
		if rk == rank {
			return id, true
		}
	}
	return "", false
}

// TotalHeight is the sum of all heights plus one spacing per gap. With no
// items registered this is -spacing; callers that size a container from it
// should clamp.
func (r *Registry) TotalHeight() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, h := range r.heightOf {
		sum += h
	}
	return sum + r.spacing*float64(len(r.heightOf)-1)
}

// Top returns the offset of itemID: the heights of every item ranked before
// it plus one spacing per preceding item.
func (r *Registry) Top(itemID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	own, ok := r.rankOf[itemID]
	if !ok {
		return 0, errors.ItemNotFound(itemID)
	}
	var top float64
	for id, rank := range r.rankOf {
		if rank < own {
			top += r.heightOf[id]
		}
	}
	return top + r.spacing*float64(own), nil
}

// ClaimDrag records itemID as the owner of the list's drag session. It fails
// while a different item owns it.
func (r *Registry) ClaimDrag(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dragOwner != "" && r.dragOwner != itemID {
		return errors.DragInProgress(itemID, r.dragOwner)
	}
	r.dragOwner = itemID
	return nil
}

// ReleaseDrag gives up itemID's ownership of the drag session.
func (r *Registry) ReleaseDrag(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dragOwner == itemID {
		r.dragOwner = ""
	}
}

// DragOwner returns the id of the item currently being dragged, if any.
func (r *Registry) DragOwner() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dragOwner, r.dragOwner != ""
}
