// Package plan implements the treatment plan engine: the per-patient item
// list a provider builds during a visit, its section grouping, the add-entry
// composer, and the persistence contract against the patient record store.
package plan

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Timeline values a plan item can carry. TimelineSkincare is the sentinel
// for skincare items; their section never depends on the literal value.
const (
	TimelineNow       = "Now"
	TimelineNextVisit = "Add next visit"
	TimelineWishlist  = "Wishlist"
	TimelineCompleted = "Completed"
	TimelineSkincare  = "Skincare"
)

// Reserved names woven through the catalog.
const (
	// TreatmentSkincare routes an item to the Skincare section regardless
	// of its timeline.
	TreatmentSkincare = "Skincare"
	// TreatmentGoalOnly is substituted when an entry records a goal or
	// finding with no treatment chosen yet.
	TreatmentGoalOnly = "Goal only"
	// OtherSentinel marks a free-text override slot in catalog pickers.
	OtherSentinel = "Other"
	// RegionMultiple is recorded when selected findings resolve to more
	// than one distinct region.
	RegionMultiple = "Multiple"
)

// GenerateID produces item ids. It is a package variable so tests can
// substitute a deterministic generator. Values must be unique within a
// session's lifetime; collisions are not defended against.
var GenerateID = uuid.NewString

// Now is the clock used for addedAt stamps; swappable in tests.
var Now = time.Now

// Item is one discussed or planned treatment/product for a patient.
// Optional fields are omitted, never null, in the persisted encoding.
type Item struct {
	ID        string   `json:"id"`
	AddedAt   string   `json:"addedAt"`
	Treatment string   `json:"treatment"`
	Product   string   `json:"product,omitempty"`
	Interest  string   `json:"interest,omitempty"`
	Findings  []string `json:"findings,omitempty"`
	Region    string   `json:"region,omitempty"`
	Brand     string   `json:"brand,omitempty"`
	Quantity  string   `json:"quantity,omitempty"`
	Recurring string   `json:"recurring,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Timeline  string   `json:"timeline,omitempty"`
}

// IsSkincare reports whether the item belongs to the Skincare section.
func (it Item) IsSkincare() bool { return it.Treatment == TreatmentSkincare }

// timestamp returns the addedAt stamp for items created now.
func timestamp() string {
	return Now().UTC().Format(time.RFC3339)
}

// EncodePlan serializes a whole plan for the record store: an empty plan is
// the empty string, anything else is the JSON array of items in list order.
func EncodePlan(items []Item) string {
	if len(items) == 0 {
		return ""
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// DecodePlan is the inverse of EncodePlan, used to seed an editor from a
// previously stored record.
func DecodePlan(field string) ([]Item, error) {
	if field == "" {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(field), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func copyItems(in []Item) []Item {
	out := make([]Item, len(in))
	copy(out, in)
	return out
}
