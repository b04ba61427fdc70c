package plan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/glowdesk/glowdesk/internal/refdata"
)

// ErrNoSession is returned when an operation targets a patient with no open
// editing session.
var ErrNoSession = errors.New("no open plan session for patient")

// RecordStore is the external record store the engine persists through.
// FetchPlanField seeds a new session; UpdateRecord is the single
// field-update write a commit performs.
type RecordStore interface {
	Recorder
	FetchPlanField(ctx context.Context, patientID, sourceTable string) (field string, revision int64, err error)
}

// Service is the session registry: one Editor per patient with an open
// composition session. The editor is the sole owner of its in-memory plan;
// the registry only hands it out and tears it down.
type Service struct {
	mu      sync.Mutex
	editors map[string]*Editor

	store    RecordStore
	catalog  *refdata.Catalog
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(store RecordStore, catalog *refdata.Catalog, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		editors:  make(map[string]*Editor),
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
	}
}

// Catalog exposes the reference tables for picker endpoints.
func (svc *Service) Catalog() *refdata.Catalog { return svc.catalog }

// OpenSession creates the editing session for a patient, seeded from the
// stored record. Opening a patient that already has a session returns the
// existing editor unchanged.
func (svc *Service) OpenSession(ctx context.Context, patientID, sourceTable string) (*Editor, error) {
	svc.mu.Lock()
	if ed, ok := svc.editors[patientID]; ok {
		svc.mu.Unlock()
		return ed, nil
	}
	svc.mu.Unlock()

	field, revision, err := svc.store.FetchPlanField(ctx, patientID, sourceTable)
	if err != nil {
		return nil, fmt.Errorf("load plan for patient %s: %w", patientID, err)
	}
	items, err := DecodePlan(field)
	if err != nil {
		return nil, fmt.Errorf("decode stored plan for patient %s: %w", patientID, err)
	}

	ed := NewEditor(patientID, sourceTable, items, revision, svc.store, svc.notifier, svc.logger)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if existing, ok := svc.editors[patientID]; ok {
		return existing, nil
	}
	svc.editors[patientID] = ed
	return ed, nil
}

// Editor returns the open session for a patient.
func (svc *Service) Editor(patientID string) (*Editor, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	ed, ok := svc.editors[patientID]
	if !ok {
		return nil, ErrNoSession
	}
	return ed, nil
}

// CloseSession discards the in-memory plan for a patient. An in-flight
// commit still completes or fails against the store; its result is simply
// no longer observed.
func (svc *Service) CloseSession(patientID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.editors, patientID)
}

// AddEntryRequest carries one add operation's selections from the
// dashboard. The zero value of every field means "not selected".
type AddEntryRequest struct {
	Mode           Mode                `json:"mode"`
	Goal           string              `json:"goal,omitempty"`
	OtherGoal      string              `json:"other_goal,omitempty"`
	Findings       []string            `json:"findings,omitempty"`
	Treatments     []string            `json:"treatments,omitempty"`
	OtherTreatment string              `json:"other_treatment,omitempty"`
	Products       map[string][]string `json:"products,omitempty"`
	OtherProducts  map[string]string   `json:"other_products,omitempty"`
	QuantityValue  string              `json:"quantity_value,omitempty"`
	QuantityUnit   string              `json:"quantity_unit,omitempty"`
	Timeline       string              `json:"timeline,omitempty"`
	Recurring      string              `json:"recurring,omitempty"`
	Brand          string              `json:"brand,omitempty"`
	Notes          string              `json:"notes,omitempty"`
}

// ComposeAndAdd replays one add operation through a fresh session and
// appends the generated items to the patient's plan. It returns how many
// items were added; zero with a nil error is the validation no-op.
func (svc *Service) ComposeAndAdd(ctx context.Context, patientID string, req AddEntryRequest) (int, error) {
	ed, err := svc.Editor(patientID)
	if err != nil {
		return 0, err
	}

	s := NewSession(svc.catalog)
	s.SetMode(req.Mode)
	if req.Goal != "" {
		s.SelectGoal(req.Goal)
	}
	s.SetOtherGoal(req.OtherGoal)
	for _, f := range req.Findings {
		s.ToggleFinding(f)
	}
	if req.Mode == ModeGoal && len(req.Treatments) > 0 {
		s.ChooseTreatment(req.Treatments[len(req.Treatments)-1])
	} else {
		for _, t := range req.Treatments {
			s.ToggleTreatment(t)
		}
	}
	s.SetOtherTreatment(req.OtherTreatment)
	for t, products := range req.Products {
		for _, p := range products {
			s.SelectProduct(t, p)
		}
	}
	for t, txt := range req.OtherProducts {
		s.SetOtherProduct(t, txt)
	}
	s.SetQuantity(req.QuantityValue, req.QuantityUnit)
	s.SetTimeline(req.Timeline)
	s.SetRecurring(req.Recurring)
	s.SetBrand(req.Brand)
	s.SetNotes(req.Notes)

	items := s.BuildItems()
	if len(items) == 0 {
		return 0, nil
	}
	if err := ed.AddItems(ctx, items); err != nil {
		return 0, err
	}
	s.Reset()
	return len(items), nil
}

// PostCareSuggestion is one aftercare product with its already-in-plan flag.
type PostCareSuggestion struct {
	Product string `json:"product"`
	Added   bool   `json:"added"`
}

// PostCareSuggestions returns a treatment's aftercare content with each
// suggested product flagged when the plan already carries it.
func (svc *Service) PostCareSuggestions(patientID, treatment string) (string, []PostCareSuggestion, error) {
	ed, err := svc.Editor(patientID)
	if err != nil {
		return "", nil, err
	}
	pc, ok := svc.catalog.PostCareFor(treatment)
	if !ok {
		return "", nil, nil
	}
	suggestions := make([]PostCareSuggestion, len(pc.Products))
	for i, p := range pc.Products {
		suggestions[i] = PostCareSuggestion{Product: p, Added: ed.HasPostCareProduct(p)}
	}
	return pc.Instructions, suggestions, nil
}
