package reconcile

import (
	"fmt"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/ledger"
	"github.com/agentstation/foodsync/pkg/notify"
)

// Result is the outcome of a Reconcile call.
type Result struct {
	// Articles are the imported articles with manual changes applied
	Articles []articles.Article

	// Ledger is the updated ledger, to be persisted by the caller
	Ledger *ledger.Ledger

	// Notifications for the operator
	Notifications notify.List

	// Stats counts what happened
	Stats Stats

	// Provenance of every final field value, nil unless enabled
	Provenance Provenance
}

// Stats counts the decisions of a Reconcile call.
type Stats struct {
	Detected  int `json:"detected" yaml:"detected"`   // New manual changes found
	Reapplied int `json:"reapplied" yaml:"reapplied"` // Remembered changes applied again
	Pinned    int `json:"pinned" yaml:"pinned"`       // Categories taken from ledger or platform
}

// HasChanges reports whether any article differs from its imported form.
func (s Stats) HasChanges() bool {
	return s.Detected+s.Reapplied+s.Pinned > 0
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d detected, %d reapplied, %d categories pinned", s.Detected, s.Reapplied, s.Pinned)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if !r.Stats.HasChanges() {
		return fmt.Sprintf("Reconciled %d articles. No manual changes applied.", len(r.Articles))
	}
	return fmt.Sprintf("Reconciled %d articles: %s.", len(r.Articles), r.Stats)
}
