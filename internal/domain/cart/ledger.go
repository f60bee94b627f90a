// internal/domain/cart/ledger.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
)

// Listener is called with the lines after every mutation
type Listener func(lines []Line)

// Ledger is a keyed quantity accumulator persisted to a storage.Store on
// every mutation.
type Ledger struct {
	store storage.Store
	log   logrus.FieldLogger

	mu        sync.RWMutex
	lines     []Line
	listeners map[int]Listener
	nextID    int
}

// Open rehydrates the ledger from store. A missing, unreadable or corrupt
// value yields an empty cart.
func Open(ctx context.Context, store storage.Store, log logrus.FieldLogger) *Ledger {
	l := &Ledger{
		store:     store,
		log:       log,
		listeners: make(map[int]Listener),
	}

	raw, err := store.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return l
	case err != nil:
		log.WithError(err).Warn("Failed to read stored cart, starting empty")
		return l
	}

	var stored []Line
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.WithError(err).Warn("Discarding unparseable stored cart")
		return l
	}
	l.lines = sanitize(stored)
	return l
}

// Lines returns a copy of the current lines in insertion order
func (l *Ledger) Lines() []Line {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot()
}

// Totals summarises the current lines
func (l *Ledger) Totals() Totals {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return calculateTotals(l.lines)
}

// Add increments the line for item.ID by quantity, appending a new line if
// there is none. A zero quantity adds one. Positivity is the caller's
// concern.
func (l *Ledger) Add(ctx context.Context, item Item, quantity int) error {
	if quantity == 0 {
		quantity = 1
	}
	return l.mutate(ctx, func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == item.ID {
				lines[i].Quantity += quantity
				return lines
			}
		}
		return append(lines, Line{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Quantity: quantity,
		})
	})
}

// UpdateQuantity sets the quantity of a line. Anything below 1 removes it.
func (l *Ledger) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return l.Remove(ctx, id)
	}
	return l.mutate(ctx, func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == id {
				lines[i].Quantity = quantity
			}
		}
		return lines
	})
}

// Remove deletes the line with id. Removing an absent id is a no-op.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	return l.mutate(ctx, func(lines []Line) []Line {
		out := lines[:0]
		for _, line := range lines {
			if line.ID != id {
				out = append(out, line)
			}
		}
		return out
	})
}

// Clear empties the ledger
func (l *Ledger) Clear(ctx context.Context) error {
	return l.mutate(ctx, func([]Line) []Line {
		return nil
	})
}

// Subscribe registers fn for mutation notifications. The returned function
// unregisters it.
func (l *Ledger) Subscribe(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.listeners[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.listeners, id)
	}
}

// mutate applies fn to a private copy of the lines, keeps the result and
// persists it. A failed write is logged and returned; the in-memory change
// stands.
func (l *Ledger) mutate(ctx context.Context, fn func([]Line) []Line) error {
	l.mu.Lock()
	l.lines = fn(l.snapshot())
	if len(l.lines) == 0 {
		l.lines = nil
	}
	lines := l.snapshot()
	listeners := make([]Listener, 0, len(l.listeners))
	for _, listener := range l.listeners {
		listeners = append(listeners, listener)
	}
	err := l.persist(ctx, lines)
	l.mu.Unlock()

	for _, listener := range listeners {
		listener(lines)
	}
	return err
}

func (l *Ledger) persist(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := l.store.Set(ctx, StorageKey, string(data)); err != nil {
		l.log.WithError(err).WithField("lines", len(lines)).Error("Failed to persist cart")
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (l *Ledger) snapshot() []Line {
	if len(l.lines) == 0 {
		return nil
	}
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// sanitize restores the one-line-per-id invariant on stored data, merging
// duplicates and dropping lines without an id or a positive quantity.
func sanitize(stored []Line) []Line {
	var lines []Line
	index := make(map[string]int, len(stored))
	for _, line := range stored {
		if line.ID == "" || line.Quantity < 1 {
			continue
		}
		if i, ok := index[line.ID]; ok {
			lines[i].Quantity += line.Quantity
			continue
		}
		index[line.ID] = len(lines)
		lines = append(lines, line)
	}
	return lines
}
