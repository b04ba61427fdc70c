package plan

import (
	"context"
	"strings"
)

// postCareMarker is the provenance prefix recorded on skincare items added
// from a treatment's aftercare suggestions.
const postCareMarker = "Post care for "

// EditFields is the set of fields an in-place edit may rewrite. Id and
// addedAt are never touched by an edit.
type EditFields struct {
	Treatment     string `json:"treatment"`
	Product       string `json:"product"`
	QuantityValue string `json:"quantity_value"`
	QuantityUnit  string `json:"quantity_unit"`
	Timeline      string `json:"timeline"`
	Notes         string `json:"notes"`
}

// MarkCompleted moves an item to the Completed timeline; the item stays in
// the plan.
func (e *Editor) MarkCompleted(ctx context.Context, itemID string) error {
	return e.setTimeline(ctx, itemID, TimelineCompleted)
}

// AddAgain schedules a completed item for the next visit, keeping its
// identity: same id, same addedAt, only the timeline changes.
func (e *Editor) AddAgain(ctx context.Context, itemID string) error {
	return e.setTimeline(ctx, itemID, TimelineNextVisit)
}

func (e *Editor) setTimeline(ctx context.Context, itemID, timeline string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	next := copyItems(e.items)
	next[idx].Timeline = timeline
	return e.commit(ctx, next)
}

// CompleteAndReadd closes out an item and forks a fresh one for the next
// visit: the existing item is removed, and a new item with a new id, a new
// addedAt, cleared notes and the next-visit timeline is appended. Both
// halves land in a single commit.
func (e *Editor) CompleteAndReadd(ctx context.Context, itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	fork := e.items[idx]
	fork.ID = GenerateID()
	fork.AddedAt = timestamp()
	fork.Notes = ""
	fork.Timeline = TimelineNextVisit

	next := make([]Item, 0, len(e.items))
	next = append(next, e.items[:idx]...)
	next = append(next, e.items[idx+1:]...)
	next = append(next, fork)
	return e.commit(ctx, next)
}

// RequestRemove starts the two-phase removal of an item. Nothing is
// committed until ConfirmRemove.
func (e *Editor) RequestRemove(itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexOf(itemID) < 0 {
		return ErrItemNotFound
	}
	e.pendingRemove = itemID
	return nil
}

// CancelRemove discards a pending removal request.
func (e *Editor) CancelRemove() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingRemove = ""
}

// PendingRemove returns the id awaiting confirmation, if any.
func (e *Editor) PendingRemove() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingRemove
}

// ConfirmRemove deletes the item whose removal was requested and commits.
func (e *Editor) ConfirmRemove(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pendingRemove == "" {
		return ErrNoPendingRemove
	}
	idx := e.indexOf(e.pendingRemove)
	e.pendingRemove = ""
	if idx < 0 {
		return ErrItemNotFound
	}
	next := make([]Item, 0, len(e.items)-1)
	next = append(next, e.items[:idx]...)
	next = append(next, e.items[idx+1:]...)
	return e.commit(ctx, next)
}

// Edit rewrites an item's editable fields in place. Id and addedAt survive
// the edit unchanged; an empty treatment keeps the existing one.
func (e *Editor) Edit(ctx context.Context, itemID string, f EditFields) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	next := copyItems(e.items)
	it := &next[idx]
	if strings.TrimSpace(f.Treatment) != "" {
		it.Treatment = strings.TrimSpace(f.Treatment)
	}
	it.Product = f.Product
	it.Quantity = formatQuantity(f.QuantityValue, f.QuantityUnit)
	if f.Timeline != "" {
		it.Timeline = f.Timeline
	}
	it.Notes = f.Notes
	return e.commit(ctx, next)
}

// AddPostCareProduct adds the suggested skincare product for a treatment's
// aftercare as a new skincare item, recording its provenance in the notes.
// The action is idempotent per product name: if a skincare item with the
// same product and a post-care marker is already in the plan, nothing
// happens and no commit is issued.
func (e *Editor) AddPostCareProduct(ctx context.Context, treatment, product string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hasPostCareProduct(product) {
		return nil
	}

	item := Item{
		ID:        GenerateID(),
		AddedAt:   timestamp(),
		Treatment: TreatmentSkincare,
		Product:   product,
		Notes:     postCareMarker + treatment,
		Timeline:  TimelineSkincare,
	}
	next := append(copyItems(e.items), item)
	if err := e.commit(ctx, next); err != nil {
		return err
	}
	e.notifier.Toast("Added " + product + " to skincare")
	return nil
}

// HasPostCareProduct reports whether a post-care skincare item for the
// product is already in the plan, matched by product name plus the
// provenance marker in its notes.
func (e *Editor) HasPostCareProduct(product string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasPostCareProduct(product)
}

func (e *Editor) hasPostCareProduct(product string) bool {
	for _, it := range e.items {
		if it.IsSkincare() && it.Product == product && strings.Contains(it.Notes, postCareMarker) {
			return true
		}
	}
	return false
}
