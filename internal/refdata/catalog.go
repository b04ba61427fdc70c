// Package refdata holds the static clinical reference tables the treatment
// plan composer draws from: assessment findings, aesthetic goals, the
// treatment catalog with per-treatment products and quantity presets, and
// post-care content. A Catalog is immutable after construction and safe for
// concurrent readers.
package refdata

// Finding is a single assessment observation and what it maps to.
type Finding struct {
	Name       string   `json:"name"`
	Goal       string   `json:"goal"`
	Region     string   `json:"region"`
	Treatments []string `json:"treatments"`
}

// Goal is a patient-level aesthetic objective and the treatments that
// address it.
type Goal struct {
	Name       string   `json:"name"`
	Treatments []string `json:"treatments"`
}

// Treatment is one catalog entry. Products may be empty for treatments that
// have no product/type dimension. QuantityUnit is empty when the treatment
// is not quantified in a unit (e.g. skincare products).
type Treatment struct {
	Name            string   `json:"name"`
	Products        []string `json:"products,omitempty"`
	QuantityUnit    string   `json:"quantity_unit,omitempty"`
	QuantityPresets []string `json:"quantity_presets,omitempty"`
}

// PostCare is the aftercare content attached to a treatment.
type PostCare struct {
	Instructions string   `json:"instructions"`
	Products     []string `json:"products,omitempty"`
}

// Catalog is the injectable lookup object over all reference tables.
type Catalog struct {
	goals      []Goal
	findings   []Finding
	treatments []Treatment

	goalIdx      map[string]int
	findingIdx   map[string]int
	treatmentIdx map[string]int
	postCare     map[string]PostCare
}

// New builds a Catalog from explicit tables. Inputs are copied; later
// mutation of the arguments does not affect the catalog.
func New(goals []Goal, findings []Finding, treatments []Treatment, postCare map[string]PostCare) *Catalog {
	c := &Catalog{
		goals:        make([]Goal, len(goals)),
		findings:     make([]Finding, len(findings)),
		treatments:   make([]Treatment, len(treatments)),
		goalIdx:      make(map[string]int, len(goals)),
		findingIdx:   make(map[string]int, len(findings)),
		treatmentIdx: make(map[string]int, len(treatments)),
		postCare:     make(map[string]PostCare, len(postCare)),
	}
	for i, g := range goals {
		g.Treatments = copyStrings(g.Treatments)
		c.goals[i] = g
		c.goalIdx[g.Name] = i
	}
	for i, f := range findings {
		f.Treatments = copyStrings(f.Treatments)
		c.findings[i] = f
		c.findingIdx[f.Name] = i
	}
	for i, t := range treatments {
		t.Products = copyStrings(t.Products)
		t.QuantityPresets = copyStrings(t.QuantityPresets)
		c.treatments[i] = t
		c.treatmentIdx[t.Name] = i
	}
	for name, pc := range postCare {
		pc.Products = copyStrings(pc.Products)
		c.postCare[name] = pc
	}
	return c
}

// Goals returns the goal table in catalog order.
func (c *Catalog) Goals() []Goal {
	out := make([]Goal, len(c.goals))
	for i, g := range c.goals {
		g.Treatments = copyStrings(g.Treatments)
		out[i] = g
	}
	return out
}

// Findings returns the finding table in catalog order.
func (c *Catalog) Findings() []Finding {
	out := make([]Finding, len(c.findings))
	for i, f := range c.findings {
		f.Treatments = copyStrings(f.Treatments)
		out[i] = f
	}
	return out
}

// Treatments returns the treatment catalog in catalog order.
func (c *Catalog) Treatments() []Treatment {
	out := make([]Treatment, len(c.treatments))
	for i, t := range c.treatments {
		t.Products = copyStrings(t.Products)
		t.QuantityPresets = copyStrings(t.QuantityPresets)
		out[i] = t
	}
	return out
}

// FindingByName resolves a finding to its (goal, region, treatments) triple.
func (c *Catalog) FindingByName(name string) (Finding, bool) {
	i, ok := c.findingIdx[name]
	if !ok {
		return Finding{}, false
	}
	f := c.findings[i]
	f.Treatments = copyStrings(f.Treatments)
	return f, true
}

// TreatmentByName looks up one treatment catalog entry.
func (c *Catalog) TreatmentByName(name string) (Treatment, bool) {
	i, ok := c.treatmentIdx[name]
	if !ok {
		return Treatment{}, false
	}
	t := c.treatments[i]
	t.Products = copyStrings(t.Products)
	t.QuantityPresets = copyStrings(t.QuantityPresets)
	return t, true
}

// TreatmentsForGoal returns the treatments mapped to a goal, or nil for an
// unknown goal.
func (c *Catalog) TreatmentsForGoal(goal string) []string {
	i, ok := c.goalIdx[goal]
	if !ok {
		return nil
	}
	return copyStrings(c.goals[i].Treatments)
}

// FindingsForTreatment returns, in catalog order, every finding whose
// applicable treatments include the given treatment.
func (c *Catalog) FindingsForTreatment(treatment string) []Finding {
	var out []Finding
	for _, f := range c.findings {
		for _, t := range f.Treatments {
			if t == treatment {
				f.Treatments = copyStrings(f.Treatments)
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// Products returns the product list for a treatment; nil when the treatment
// is unknown or has no products.
func (c *Catalog) Products(treatment string) []string {
	i, ok := c.treatmentIdx[treatment]
	if !ok {
		return nil
	}
	return copyStrings(c.treatments[i].Products)
}

// PostCareFor returns the aftercare content for a treatment.
func (c *Catalog) PostCareFor(treatment string) (PostCare, bool) {
	pc, ok := c.postCare[treatment]
	if !ok {
		return PostCare{}, false
	}
	pc.Products = copyStrings(pc.Products)
	return pc, true
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
