package plan

import (
	"strings"

	"github.com/glowdesk/glowdesk/internal/refdata"
)

// Mode selects which picker drives an add-entry session.
type Mode string

const (
	ModeGoal      Mode = "goal"
	ModeFinding   Mode = "finding"
	ModeTreatment Mode = "treatment"
)

// quantityUnitPlaceholder is the unit value the dashboard sends when the
// provider never opened the unit picker; it must not leak into items.
const quantityUnitPlaceholder = "Select unit"

// Session is the transient add-entry state for one add operation. It is
// never persisted. All cross-field derivation (goal and region from
// findings, candidate treatments per mode) happens here so the rules stay
// testable in one place. Mutate it only through its methods.
type Session struct {
	catalog *refdata.Catalog

	mode Mode

	goal      string // catalog goal, or OtherSentinel
	otherGoal string

	findings []string // ordered multi-select

	treatments     []string // ordered; radio semantics under ModeGoal
	otherTreatment string

	products     map[string][]string // treatment -> selected products
	otherProduct map[string]string   // treatment -> free text for the Other slot

	quantityValue string
	quantityUnit  string
	timeline      string
	recurring     string
	brand         string
	notes         string
}

// NewSession creates an empty session bound to a reference catalog.
func NewSession(catalog *refdata.Catalog) *Session {
	return &Session{
		catalog:      catalog,
		products:     make(map[string][]string),
		otherProduct: make(map[string]string),
	}
}

// Mode returns the active mode ("" before the first SetMode).
func (s *Session) Mode() Mode { return s.mode }

// SetMode activates a picker mode. Re-selecting the mode that is already
// active clears that mode's selections instead of toggling away from it;
// switching modes resets all selections.
func (s *Session) SetMode(m Mode) {
	if s.mode == m {
		s.clearSelections()
		return
	}
	s.mode = m
	s.clearSelections()
}

func (s *Session) clearSelections() {
	s.goal = ""
	s.otherGoal = ""
	s.findings = nil
	s.treatments = nil
	s.otherTreatment = ""
	s.products = make(map[string][]string)
	s.otherProduct = make(map[string]string)
}

// Reset empties the whole session, including the scratch fields, as after a
// successful add.
func (s *Session) Reset() {
	s.clearSelections()
	s.quantityValue = ""
	s.quantityUnit = ""
	s.timeline = ""
	s.recurring = ""
	s.brand = ""
	s.notes = ""
}

// SelectGoal picks the single goal for ModeGoal sessions. Choosing a
// different goal discards treatment selections that no longer apply.
func (s *Session) SelectGoal(goal string) {
	if s.goal == goal {
		return
	}
	s.goal = goal
	s.treatments = nil
	s.otherTreatment = ""
	s.products = make(map[string][]string)
	s.otherProduct = make(map[string]string)
}

// SetOtherGoal records the free-text companion for the Other goal slot.
func (s *Session) SetOtherGoal(text string) { s.otherGoal = text }

// ToggleFinding adds or removes a finding (checkbox semantics). Order of
// first selection is preserved.
func (s *Session) ToggleFinding(name string) {
	for i, f := range s.findings {
		if f == name {
			s.findings = append(s.findings[:i], s.findings[i+1:]...)
			return
		}
	}
	s.findings = append(s.findings, name)
}

// Findings returns the selected findings in selection order.
func (s *Session) Findings() []string {
	out := make([]string, len(s.findings))
	copy(out, s.findings)
	return out
}

// ChooseTreatment replaces the treatment selection (radio semantics, used
// under ModeGoal and as the primary pick under ModeTreatment).
func (s *Session) ChooseTreatment(name string) {
	s.treatments = []string{name}
}

// ToggleTreatment adds or removes a treatment (checkbox semantics, used
// under ModeFinding).
func (s *Session) ToggleTreatment(name string) {
	for i, t := range s.treatments {
		if t == name {
			s.treatments = append(s.treatments[:i], s.treatments[i+1:]...)
			delete(s.products, name)
			delete(s.otherProduct, name)
			return
		}
	}
	s.treatments = append(s.treatments, name)
}

// SetOtherTreatment records the free-text companion for the Other
// treatment slot.
func (s *Session) SetOtherTreatment(text string) { s.otherTreatment = text }

// SelectProduct records a product for a treatment. The Skincare treatment
// keeps multiple selections (toggle), every other treatment holds exactly
// one (a second selection replaces the first).
func (s *Session) SelectProduct(treatment, product string) {
	if treatment == TreatmentSkincare {
		sel := s.products[treatment]
		for i, p := range sel {
			if p == product {
				s.products[treatment] = append(sel[:i], sel[i+1:]...)
				return
			}
		}
		s.products[treatment] = append(sel, product)
		return
	}
	s.products[treatment] = []string{product}
}

// SetOtherProduct records the free-text companion for a treatment's Other
// product slot.
func (s *Session) SetOtherProduct(treatment, text string) {
	s.otherProduct[treatment] = text
}

// SetQuantity records the quantity value and unit scratch fields.
func (s *Session) SetQuantity(value, unit string) {
	s.quantityValue = value
	s.quantityUnit = unit
}

func (s *Session) SetTimeline(t string)  { s.timeline = t }
func (s *Session) SetRecurring(r string) { s.recurring = r }
func (s *Session) SetBrand(b string)     { s.brand = b }
func (s *Session) SetNotes(n string)     { s.notes = n }

// CandidateTreatments returns the treatment choices the active mode offers:
// the goal's mapped treatments under ModeGoal, the union of the selected
// findings' treatments under ModeFinding, and the full catalog otherwise.
func (s *Session) CandidateTreatments() []string {
	switch s.mode {
	case ModeGoal:
		if s.goal == "" || s.goal == OtherSentinel {
			return nil
		}
		return s.catalog.TreatmentsForGoal(s.goal)
	case ModeFinding:
		var out []string
		seen := make(map[string]bool)
		for _, name := range s.findings {
			f, ok := s.catalog.FindingByName(name)
			if !ok {
				continue
			}
			for _, t := range f.Treatments {
				if !seen[t] {
					seen[t] = true
					out = append(out, t)
				}
			}
		}
		return out
	default:
		var out []string
		for _, t := range s.catalog.Treatments() {
			out = append(out, t.Name)
		}
		return out
	}
}

// RelevantFindings returns, for ModeTreatment, the findings applicable to
// the chosen treatment.
func (s *Session) RelevantFindings() []refdata.Finding {
	if len(s.treatments) == 0 {
		return nil
	}
	return s.catalog.FindingsForTreatment(s.treatments[0])
}

// derivedInterest is the interest recorded on emitted items: the chosen
// goal (or its free-text override) under ModeGoal, else the joined distinct
// goals of the selected findings.
func (s *Session) derivedInterest() string {
	if s.mode == ModeGoal {
		if s.goal == OtherSentinel {
			return strings.TrimSpace(s.otherGoal)
		}
		return s.goal
	}
	var goals []string
	seen := make(map[string]bool)
	for _, name := range s.findings {
		f, ok := s.catalog.FindingByName(name)
		if !ok || f.Goal == "" || seen[f.Goal] {
			continue
		}
		seen[f.Goal] = true
		goals = append(goals, f.Goal)
	}
	return strings.Join(goals, ", ")
}

// derivedRegion is the single resolved region of the selected findings, or
// RegionMultiple when more than one distinct region resolves.
func (s *Session) derivedRegion() string {
	var region string
	for _, name := range s.findings {
		f, ok := s.catalog.FindingByName(name)
		if !ok || f.Region == "" {
			continue
		}
		if region == "" {
			region = f.Region
			continue
		}
		if f.Region != region {
			return RegionMultiple
		}
	}
	return region
}

// effectiveTreatments is the treatment set one add operation emits items
// for: explicit selections plus a non-empty Other free text, falling back
// to the goal-only sentinel when a goal or finding was selected without any
// treatment.
func (s *Session) effectiveTreatments() []string {
	var out []string
	for _, t := range s.treatments {
		if t == OtherSentinel {
			continue
		}
		out = append(out, t)
	}
	if txt := strings.TrimSpace(s.otherTreatment); txt != "" {
		out = append(out, txt)
	}
	if len(out) == 0 && s.hasGoalOrFinding() {
		out = append(out, TreatmentGoalOnly)
	}
	return out
}

func (s *Session) hasGoalOrFinding() bool {
	if len(s.findings) > 0 {
		return true
	}
	if s.goal == "" {
		return false
	}
	if s.goal == OtherSentinel {
		return strings.TrimSpace(s.otherGoal) != ""
	}
	return true
}

// resolvedProducts finalizes a treatment's product selections. A selected
// Other sentinel is replaced by its free-text companion, or dropped when
// that text is empty.
func (s *Session) resolvedProducts(treatment string) []string {
	var out []string
	for _, p := range s.products[treatment] {
		if p == OtherSentinel {
			if txt := strings.TrimSpace(s.otherProduct[treatment]); txt != "" {
				out = append(out, txt)
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// CanAdd reports whether the session would emit at least one item. The add
// control stays disabled while this is false.
func (s *Session) CanAdd() bool {
	return len(s.effectiveTreatments()) > 0
}

// formatQuantity renders the stored quantity string: "<value> <unit>" when
// both are present and the unit is real, else the bare value.
func formatQuantity(value, unit string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if unit == "" || unit == quantityUnitPlaceholder {
		return value
	}
	return value + " " + unit
}

// BuildItems runs the item-generation rules once, for the add-to-plan
// action. Every treatment with no resolved products emits one item; a
// treatment with resolved products emits one item per product. All items of
// one pass share interest, region, brand, quantity, recurring, notes and
// addedAt. Skincare items always get the skincare timeline; everything else
// gets the session timeline, defaulting to Wishlist. An empty effective
// treatment set yields nil.
func (s *Session) BuildItems() []Item {
	treatments := s.effectiveTreatments()
	if len(treatments) == 0 {
		return nil
	}

	interest := s.derivedInterest()
	region := s.derivedRegion()
	quantity := formatQuantity(s.quantityValue, s.quantityUnit)
	addedAt := timestamp()

	var items []Item
	emit := func(treatment, product string) {
		timeline := s.timeline
		if treatment == TreatmentSkincare {
			timeline = TimelineSkincare
		} else if timeline == "" {
			timeline = TimelineWishlist
		}
		items = append(items, Item{
			ID:        GenerateID(),
			AddedAt:   addedAt,
			Treatment: treatment,
			Product:   product,
			Interest:  interest,
			Findings:  s.Findings(),
			Region:    region,
			Brand:     s.brand,
			Quantity:  quantity,
			Recurring: s.recurring,
			Notes:     s.notes,
			Timeline:  timeline,
		})
	}

	for _, t := range treatments {
		products := s.resolvedProducts(t)
		if len(products) == 0 {
			emit(t, "")
			continue
		}
		for _, p := range products {
			emit(t, p)
		}
	}
	return items
}
