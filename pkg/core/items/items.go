// Package items holds the placed merchandise of a planogram.
//
// Items are independent rectangles stored in a flat, insertion-ordered arena.
// No parent/child or "resting on" relationship is stored: whether an item sits
// on a shelf or on another item is recomputed geometrically by the placement
// engine every time it is needed.
//
// A [Store] is not safe for concurrent mutation. Callers that share one across
// goroutines must serialize access and hand the engine a snapshot from [Store.All].
package items

import (
	"github.com/google/uuid"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// Item is a placed rectangle.
//
// X is global (relative to the left edge of the whole layout). Bottom is the
// distance from the shelf floor to the item's bottom edge.
type Item struct {
	UID       string  `json:"uid" toml:"uid" bson:"uid"`
	Bin       int     `json:"bin" toml:"bin" bson:"bin"`
	X         float64 `json:"x" toml:"x" bson:"x"`
	Bottom    float64 `json:"bottom" toml:"bottom" bson:"bottom"`
	Width     float64 `json:"width" toml:"width" bson:"width"`
	Height    float64 `json:"height" toml:"height" bson:"height"`
	ProductID string  `json:"product_id,omitempty" toml:"product_id,omitempty" bson:"product_id,omitempty"`
	Label     string  `json:"label,omitempty" toml:"label,omitempty" bson:"label,omitempty"`
}

// Left returns the global X of the left edge.
func (it Item) Left() float64 { return it.X }

// Right returns the global X of the right edge.
func (it Item) Right() float64 { return it.X + it.Width }

// Top returns the floor-relative height of the top edge.
func (it Item) Top() float64 { return it.Bottom + it.Height }

// NewUID returns a fresh item identifier.
func NewUID() string { return uuid.NewString() }

// Store is an insertion-ordered set of items keyed by UID.
type Store struct {
	items []Item
	index map[string]int
}

// NewStore creates a store holding the given items in order.
// Returns INVALID_INPUT if two items share a UID or an item has none.
func NewStore(initial ...Item) (*Store, error) {
	s := &Store{index: make(map[string]int, len(initial))}
	for _, it := range initial {
		if it.UID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "item without uid")
		}
		if _, err := s.Add(it); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// All returns a snapshot of every item in insertion order.
func (s *Store) All() []Item {
	return append([]Item(nil), s.items...)
}

// Get returns the item with the given UID.
func (s *Store) Get(uid string) (Item, bool) {
	i, ok := s.index[uid]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Add appends an item, assigning a fresh UID when it has none.
func (s *Store) Add(it Item) (Item, error) {
	if err := validateFootprint(it); err != nil {
		return Item{}, err
	}
	if it.UID == "" {
		it.UID = NewUID()
	}
	if _, dup := s.index[it.UID]; dup {
		return Item{}, errors.New(errors.ErrCodeInvalidInput, "duplicate item uid %q", it.UID)
	}
	s.index[it.UID] = len(s.items)
	s.items = append(s.items, it)
	return it, nil
}

// Move repositions an existing item.
func (s *Store) Move(uid string, bin int, x, bottom float64) (Item, error) {
	i, ok := s.index[uid]
	if !ok {
		return Item{}, errors.New(errors.ErrCodeItemNotFound, "item %q not found", uid)
	}
	s.items[i].Bin = bin
	s.items[i].X = x
	s.items[i].Bottom = bottom
	return s.items[i], nil
}

// Remove deletes an item and preserves the order of the rest.
func (s *Store) Remove(uid string) error {
	i, ok := s.index[uid]
	if !ok {
		return errors.New(errors.ErrCodeItemNotFound, "item %q not found", uid)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.reindex()
	return nil
}

// RemoveBin drops every item owned by bin and shifts the items of later bins
// left by width, decrementing their bin index. It returns the removed items.
func (s *Store) RemoveBin(bin int, width float64) []Item {
	var removed []Item
	kept := s.items[:0]
	for _, it := range s.items {
		switch {
		case it.Bin == bin:
			removed = append(removed, it)
			continue
		case it.Bin > bin:
			it.Bin--
			it.X -= width
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.reindex()
	return removed
}

// ShiftFrom moves every item owned by bin index >= from by dx along X.
// Used when a bin is resized and the bins to its right move with it.
func (s *Store) ShiftFrom(from int, dx float64) {
	for i := range s.items {
		if s.items[i].Bin >= from {
			s.items[i].X += dx
		}
	}
}

func (s *Store) reindex() {
	clear(s.index)
	for i, it := range s.items {
		s.index[it.UID] = i
	}
}

func validateFootprint(it Item) error {
	if err := errors.ValidateDimension("item width", it.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("item height", it.Height); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("item x", it.X); err != nil {
		return err
	}
	return errors.ValidateCoordinate("item bottom", it.Bottom)
}
