package plan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// Field names written by a plan commit.
const (
	DiscussedItemsField = "discussed_items"
	RevisionField       = "plan_revision"
)

var (
	// ErrItemNotFound is returned when an operation names an id that is
	// not in the plan.
	ErrItemNotFound = errors.New("plan item not found")
	// ErrNoPendingRemove is returned when a removal is confirmed without a
	// prior request.
	ErrNoPendingRemove = errors.New("no removal pending")
)

// Recorder writes one field map to the external record store. The write is
// a whole-document overwrite of the named fields; two concurrent editors of
// the same patient race last-writer-wins. Each commit carries a
// monotonically increasing revision stamp so a store can start rejecting
// stale writes without an editor change.
type Recorder interface {
	UpdateRecord(ctx context.Context, patientID, sourceTable string, fields map[string]string) error
}

// Notifier receives presentation events. None of its methods return
// anything the engine depends on.
type Notifier interface {
	Toast(message string)
	Error(message string)
	Refresh(patientID string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Toast(string)   {}
func (NopNotifier) Error(string)   {}
func (NopNotifier) Refresh(string) {}

// Editor owns the in-memory plan of one open patient session. Every
// mutation applies to the list synchronously, then commits the whole list
// through the Recorder; a failed commit rolls the list back to the last
// known-good snapshot. The editor is created when the composition session
// opens and discarded when it closes.
type Editor struct {
	mu sync.Mutex

	patientID   string
	sourceTable string
	items       []Item
	revision    int64

	pendingRemove string

	recorder Recorder
	notifier Notifier
	logger   zerolog.Logger
}

// NewEditor seeds an editor with the patient's previously stored items.
func NewEditor(patientID, sourceTable string, seed []Item, revision int64, rec Recorder, n Notifier, logger zerolog.Logger) *Editor {
	if n == nil {
		n = NopNotifier{}
	}
	return &Editor{
		patientID:   patientID,
		sourceTable: sourceTable,
		items:       copyItems(seed),
		revision:    revision,
		recorder:    rec,
		notifier:    n,
		logger:      logger,
	}
}

// PatientID returns the patient this editor is bound to.
func (e *Editor) PatientID() string { return e.patientID }

// Items returns a copy of the current plan.
func (e *Editor) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyItems(e.items)
}

// Sections returns the current plan categorized for display.
func (e *Editor) Sections() []SectionGroup {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Categorize(e.items)
}

// Revision returns the last successfully committed revision stamp.
func (e *Editor) Revision() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

// commit applies next optimistically, writes the serialized plan to the
// record store and rolls back on failure. Callers hold e.mu.
func (e *Editor) commit(ctx context.Context, next []Item) error {
	prev := e.items
	e.items = next

	rev := e.revision + 1
	fields := map[string]string{
		DiscussedItemsField: EncodePlan(next),
		RevisionField:       strconv.FormatInt(rev, 10),
	}
	if err := e.recorder.UpdateRecord(ctx, e.patientID, e.sourceTable, fields); err != nil {
		e.items = prev
		e.logger.Error().Err(err).Str("patient_id", e.patientID).Msg("plan commit failed")
		e.notifier.Error("Could not save the treatment plan. Please try again.")
		return fmt.Errorf("commit plan for patient %s: %w", e.patientID, err)
	}
	e.revision = rev

	// Best-effort: listeners refresh on their own schedule, the commit
	// does not wait for them.
	go e.notifier.Refresh(e.patientID)
	return nil
}

// AddItems appends composed items to the plan in one commit. An empty batch
// is a validation no-op, not an error.
func (e *Editor) AddItems(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	next := append(copyItems(e.items), items...)
	if err := e.commit(ctx, next); err != nil {
		return err
	}
	e.notifier.Toast("Added to treatment plan")
	return nil
}

// Move reassigns an item to a target section. Moves that keep the item in
// its current section, move a skincare item anywhere but the Skincare
// section, or move a non-skincare item into it, are silently ignored with
// no commit. A legal move rewrites the item's timeline to the section name.
func (e *Editor) Move(ctx context.Context, itemID string, target Section) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	it := e.items[idx]
	if SectionOf(it) == target {
		return nil
	}
	if it.IsSkincare() && target != SectionSkincare {
		return nil
	}
	if !it.IsSkincare() && target == SectionSkincare {
		return nil
	}

	next := copyItems(e.items)
	next[idx].Timeline = string(target)
	return e.commit(ctx, next)
}

func (e *Editor) indexOf(itemID string) int {
	for i, it := range e.items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}
