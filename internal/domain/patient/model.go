package patient

import (
	"time"

	"github.com/google/uuid"
)

// Source tables a plan record can live in. Leads that have not converted
// yet carry the same plan columns as patients.
const (
	TablePatients = "patients"
	TableLeads    = "leads"
)

// ValidTable reports whether name is a known plan record table.
func ValidTable(name string) bool {
	return name == TablePatients || name == TableLeads
}

// Record is one plan-bearing row, from either the patients or the leads
// table. DiscussedItems holds the serialized treatment plan; PlanRevision
// is stamped on every plan commit.
type Record struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`

	DiscussedItems string `json:"discussed_items,omitempty"`
	PlanRevision   int64  `json:"plan_revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
