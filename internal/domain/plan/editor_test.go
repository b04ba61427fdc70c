package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockRecorder struct {
	mu     sync.Mutex
	calls  []map[string]string
	tables []string
	fail   bool
}

func (m *mockRecorder) UpdateRecord(_ context.Context, patientID, sourceTable string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("record store unavailable")
	}
	m.calls = append(m.calls, fields)
	m.tables = append(m.tables, sourceTable)
	return nil
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockRecorder) last() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

type refreshNotifier struct {
	refreshed chan string
}

func newRefreshNotifier() *refreshNotifier {
	return &refreshNotifier{refreshed: make(chan string, 8)}
}
func (n *refreshNotifier) Toast(string) {}
func (n *refreshNotifier) Error(string) {}
func (n *refreshNotifier) Refresh(patientID string) {
	n.refreshed <- patientID
}

func stubIDs() func() {
	n := 0
	old := GenerateID
	GenerateID = func() string { n++; return fmt.Sprintf("item-%03d", n) }
	return func() { GenerateID = old }
}

func stubClock(at time.Time) func() {
	old := Now
	Now = func() time.Time { return at }
	return func() { Now = old }
}

func newTestEditor(seed []Item, rec *mockRecorder) *Editor {
	return NewEditor("patient-1", "patients", seed, 0, rec, NopNotifier{}, zerolog.Nop())
}

func TestCommit_SerializedFieldScenario(t *testing.T) {
	defer stubIDs()()
	defer stubClock(time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC))()

	rec := &mockRecorder{}
	ed := newTestEditor(nil, rec)

	item := Item{
		ID:        GenerateID(),
		AddedAt:   timestamp(),
		Treatment: "Neurotoxin",
		Product:   "Botox",
		Quantity:  formatQuantity("20", "Units"),
		Timeline:  TimelineNow,
	}
	if err := ed.AddItems(context.Background(), []Item{item}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, _ := json.Marshal([]Item{item})
	got := rec.last()[DiscussedItemsField]
	if got != string(want) {
		t.Errorf("serialized field mismatch:\n got %s\nwant %s", got, want)
	}
	if item.Quantity != "20 Units" {
		t.Errorf("expected quantity %q, got %q", "20 Units", item.Quantity)
	}
	if rec.last()[RevisionField] != "1" {
		t.Errorf("expected revision stamp 1, got %q", rec.last()[RevisionField])
	}
}

func TestCommit_EmptyPlanIsEmptyString(t *testing.T) {
	defer stubIDs()()
	rec := &mockRecorder{}
	seed := []Item{{ID: "a", AddedAt: "2026-01-01T00:00:00Z", Treatment: "Neurotoxin"}}
	ed := newTestEditor(seed, rec)

	if err := ed.RequestRemove("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ed.ConfirmRemove(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.last()[DiscussedItemsField]; got != "" {
		t.Errorf("expected empty string for empty plan, got %q", got)
	}
}

func TestCommit_FailureRollsBack(t *testing.T) {
	defer stubIDs()()
	rec := &mockRecorder{fail: true}
	seed := []Item{
		{ID: "a", AddedAt: "2026-01-01T00:00:00Z", Treatment: "Neurotoxin", Product: "Botox", Timeline: TimelineNow},
		{ID: "b", AddedAt: "2026-01-02T00:00:00Z", Treatment: "Skincare", Product: "SPF 50 Sunscreen", Timeline: TimelineSkincare},
	}
	ed := newTestEditor(seed, rec)
	before := ed.Items()

	err := ed.AddItems(context.Background(), []Item{{ID: "c", Treatment: "Kybella"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(ed.Items(), before) {
		t.Errorf("plan not restored after failed commit:\n got %+v\nwant %+v", ed.Items(), before)
	}
	if ed.Revision() != 0 {
		t.Errorf("revision bumped on failed commit: %d", ed.Revision())
	}
}

func TestCommit_RevisionIncrements(t *testing.T) {
	defer stubIDs()()
	rec := &mockRecorder{}
	ed := newTestEditor(nil, rec)
	for i := 1; i <= 3; i++ {
		if err := ed.AddItems(context.Background(), []Item{{ID: GenerateID(), Treatment: "Neurotoxin"}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := fmt.Sprintf("%d", i); rec.last()[RevisionField] != want {
			t.Errorf("commit %d: expected revision %s, got %s", i, want, rec.last()[RevisionField])
		}
	}
}

func TestCommit_RefreshNotificationFires(t *testing.T) {
	defer stubIDs()()
	rec := &mockRecorder{}
	notifier := newRefreshNotifier()
	ed := NewEditor("patient-7", "patients", nil, 0, rec, notifier, zerolog.Nop())

	if err := ed.AddItems(context.Background(), []Item{{ID: "x", Treatment: "Kybella"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case pid := <-notifier.refreshed:
		if pid != "patient-7" {
			t.Errorf("refreshed wrong patient: %s", pid)
		}
	case <-time.After(2 * time.Second):
		t.Error("refresh notification never fired")
	}
}

func TestAddItems_EmptyBatchIsNoOp(t *testing.T) {
	rec := &mockRecorder{}
	ed := newTestEditor(nil, rec)
	if err := ed.AddItems(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("expected no commit, got %d", rec.count())
	}
}

func TestMove_LegalMoveRewritesTimeline(t *testing.T) {
	rec := &mockRecorder{}
	seed := []Item{{ID: "a", Treatment: "Neurotoxin", Timeline: TimelineWishlist}}
	ed := newTestEditor(seed, rec)

	if err := ed.Move(context.Background(), "a", SectionNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ed.Items()[0].Timeline; got != TimelineNow {
		t.Errorf("expected timeline %q, got %q", TimelineNow, got)
	}
	if rec.count() != 1 {
		t.Errorf("expected 1 commit, got %d", rec.count())
	}
}

func TestMove_SameSectionIsNoOp(t *testing.T) {
	rec := &mockRecorder{}
	seed := []Item{{ID: "a", Treatment: "Neurotoxin", Timeline: TimelineNow}}
	ed := newTestEditor(seed, rec)

	if err := ed.Move(context.Background(), "a", SectionNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("expected no commit, got %d", rec.count())
	}
}

func TestMove_NonSkincareIntoSkincareIgnored(t *testing.T) {
	rec := &mockRecorder{}
	seed := []Item{{ID: "a", Treatment: "Neurotoxin", Timeline: TimelineNow}}
	ed := newTestEditor(seed, rec)
	before := ed.Items()

	if err := ed.Move(context.Background(), "a", SectionSkincare); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ed.Items(), before) {
		t.Error("plan changed on illegal move")
	}
	if rec.count() != 0 {
		t.Errorf("expected no commit, got %d", rec.count())
	}
}

func TestMove_SkincareOutOfSkincareIgnored(t *testing.T) {
	rec := &mockRecorder{}
	seed := []Item{{ID: "a", Treatment: "Skincare", Product: "Vitamin C Serum", Timeline: TimelineSkincare}}
	ed := newTestEditor(seed, rec)

	for _, target := range []Section{SectionNow, SectionNextVisit, SectionWishlist, SectionCompleted} {
		if err := ed.Move(context.Background(), "a", target); err != nil {
			t.Fatalf("unexpected error moving to %s: %v", target, err)
		}
	}
	if rec.count() != 0 {
		t.Errorf("expected no commits, got %d", rec.count())
	}
}

func TestMove_UnknownItem(t *testing.T) {
	rec := &mockRecorder{}
	ed := newTestEditor(nil, rec)
	if err := ed.Move(context.Background(), "ghost", SectionNow); err != ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	items := []Item{
		{ID: "a", AddedAt: "2026-01-01T00:00:00Z", Treatment: "Neurotoxin", Product: "Botox", Quantity: "20 Units", Timeline: TimelineNow},
		{ID: "b", AddedAt: "2026-01-02T00:00:00Z", Treatment: "Goal only", Interest: "Restore Volume", Findings: []string{"Thin Lips"}, Region: "Lips", Timeline: TimelineWishlist},
	}
	decoded, err := DecodePlan(EncodePlan(items))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(decoded, items) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, items)
	}

	if got, err := DecodePlan(""); err != nil || got != nil {
		t.Errorf("empty field should decode to nil, got %+v, %v", got, err)
	}
}

func TestEncodePlan_OmitsAbsentOptionals(t *testing.T) {
	got := EncodePlan([]Item{{ID: "a", AddedAt: "2026-01-01T00:00:00Z", Treatment: "Kybella"}})
	want := `[{"id":"a","addedAt":"2026-01-01T00:00:00Z","treatment":"Kybella"}]`
	if got != want {
		t.Errorf("optional fields not omitted:\n got %s\nwant %s", got, want)
	}
}
