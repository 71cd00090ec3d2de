package cart

import (
	"context"
	"errors"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
)

// ErrDifferentStore is returned when an add would mix items from two
// stores. The engine never discards the existing cart on its own; the
// caller must confirm intent and Clear first.
var ErrDifferentStore = errors.New("cart already holds items from another store")

// Line is one product entry in the cart. Price, image and stock are
// captured at add time so catalog edits do not silently change the cart.
type Line struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"quantity"`
	ImageRef       string  `json:"image"`
	OriginStoreID  string  `json:"storeId"`
	StockAtAddTime int     `json:"stockAtAddTime"`
}

// SnapshotStore persists the full line sequence across requests. Load must
// report corrupt or missing data as an empty cart, not an error.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, lines []Line) error
	Load(ctx context.Context, sessionID string) ([]Line, error)
	Delete(ctx context.Context, sessionID string) error
}

// Engine owns a session's cart lines. Nothing outside this package mutates
// lines; every mutation re-persists the snapshot.
type Engine struct {
	sessionID string
	snapshots SnapshotStore
	lines     []Line
}

// NewEngine restores the session's cart from its snapshot. A nil snapshot
// store gives a purely in-memory cart.
func NewEngine(ctx context.Context, sessionID string, snapshots SnapshotStore) *Engine {
	e := &Engine{sessionID: sessionID, snapshots: snapshots}
	if snapshots != nil {
		lines, err := snapshots.Load(ctx, sessionID)
		if err == nil {
			e.lines = lines
		}
	}
	return e
}

// Add appends product as a new line with quantity 1, or bumps the existing
// line's quantity by 1. The engine is deliberately stock-unaware: quantity
// may exceed the captured stock (the UI warns, the backend clamps).
func (e *Engine) Add(ctx context.Context, product models.Product) error {
	if len(e.lines) > 0 && e.lines[0].OriginStoreID != product.StoreID {
		return ErrDifferentStore
	}
	for i := range e.lines {
		if e.lines[i].ProductID == product.ID {
			e.lines[i].Quantity++
			return e.persist(ctx)
		}
	}
	e.lines = append(e.lines, Line{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      product.Price,
		Quantity:       1,
		ImageRef:       product.ImageRef,
		OriginStoreID:  product.StoreID,
		StockAtAddTime: product.Stock,
	})
	return e.persist(ctx)
}

// UpdateQuantity adjusts a line by delta, never below 1. Removing a line is
// a separate explicit action.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, delta int) error {
	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			q := e.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			e.lines[i].Quantity = q
			return e.persist(ctx)
		}
	}
	return nil
}

// Remove drops the line for productID, preserving the order of the rest.
func (e *Engine) Remove(ctx context.Context, productID string) error {
	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return e.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart and its persisted snapshot.
func (e *Engine) Clear(ctx context.Context) error {
	e.lines = nil
	if e.snapshots == nil {
		return nil
	}
	return e.snapshots.Delete(ctx, e.sessionID)
}

// Total is always recomputed from the current lines, never cached.
func (e *Engine) Total() float64 {
	var total float64
	for _, line := range e.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Lines returns a copy in insertion order.
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *Engine) Len() int {
	return len(e.lines)
}

// OriginStoreID is the single store every line belongs to, or "" for an
// empty cart.
func (e *Engine) OriginStoreID() string {
	if len(e.lines) == 0 {
		return ""
	}
	return e.lines[0].OriginStoreID
}

func (e *Engine) persist(ctx context.Context) error {
	if e.snapshots == nil {
		return nil
	}
	return e.snapshots.Save(ctx, e.sessionID, e.lines)
}
