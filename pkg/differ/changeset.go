// Package differ compares two exports of a supplier catalog and reports
// which articles were added, changed or removed.
package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/foodsync/pkg/articles"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an article was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an article was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an article was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Field    string     `json:"field" yaml:"field"`         // Field name (e.g., "price_net")
	OldValue string     `json:"old_value" yaml:"old_value"` // Previous value (string representation)
	NewValue string     `json:"new_value" yaml:"new_value"` // New value (string representation)
	Type     ChangeType `json:"type" yaml:"type"`
}

// Update represents a change to an article present in both exports.
type Update struct {
	OrderNumber string           `json:"order_number" yaml:"order_number"`
	Existing    articles.Article `json:"-" yaml:"-"`
	New         articles.Article `json:"-" yaml:"-"`
	Changes     []FieldChange    `json:"changes" yaml:"changes"`
}

// Changeset represents all changes between two exports.
type Changeset struct {
	Added   []articles.Article `json:"added" yaml:"added"`
	Updated []Update           `json:"updated" yaml:"updated"`
	Removed []articles.Article `json:"removed" yaml:"removed"`
	Summary Summary            `json:"summary" yaml:"summary"`
}

// Summary provides summary statistics for a changeset.
type Summary struct {
	Added        int `json:"added" yaml:"added"`
	Updated      int `json:"updated" yaml:"updated"`
	Removed      int `json:"removed" yaml:"removed"`
	TotalChanges int `json:"total_changes" yaml:"total_changes"`
}

func calculateSummary(c *Changeset) Summary {
	return Summary{
		Added:        len(c.Added),
		Updated:      len(c.Updated),
		Removed:      len(c.Removed),
		TotalChanges: len(c.Added) + len(c.Updated) + len(c.Removed),
	}
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if len(c.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(c.Added)))
	}
	if len(c.Updated) > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", len(c.Updated)))
	}
	if len(c.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(c.Removed)))
	}
	return fmt.Sprintf("Articles: %s (Total: %d changes)", strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// Print writes a detailed, human-readable view of the changeset.
func (c *Changeset) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	if len(c.Added) > 0 {
		_, _ = fmt.Fprintf(w, "\n➕ Added Articles (%d):\n", len(c.Added))
		for _, a := range c.Added {
			_, _ = fmt.Fprintf(w, "  • #%s %s (%s)\n", a.OrderNumber, a.Name, a.Unit)
		}
	}

	if len(c.Updated) > 0 {
		_, _ = fmt.Fprintf(w, "\n🔄 Updated Articles (%d):\n", len(c.Updated))
		for _, u := range c.Updated {
			_, _ = fmt.Fprintf(w, "  • #%s %s:\n", u.OrderNumber, u.New.Name)
			for _, change := range u.Changes {
				_, _ = fmt.Fprintf(w, "    - %s: %s → %s\n", change.Field, change.OldValue, change.NewValue)
			}
		}
	}

	if len(c.Removed) > 0 {
		_, _ = fmt.Fprintf(w, "\n⚠️  Removed Articles (%d):\n", len(c.Removed))
		for _, a := range c.Removed {
			_, _ = fmt.Fprintf(w, "  • #%s %s (%s)\n", a.OrderNumber, a.Name, a.Unit)
		}
	}
}

// ApplyStrategy selects which kinds of change a filtered changeset keeps.
type ApplyStrategy string

const (
	// ApplyAll keeps all changes including removals.
	ApplyAll ApplyStrategy = "all"

	// ApplyAdditive keeps additions and updates, never removals.
	ApplyAdditive ApplyStrategy = "additive"

	// ApplyUpdatesOnly keeps only updates to existing articles.
	ApplyUpdatesOnly ApplyStrategy = "updates-only"
)

// Filter returns the part of the changeset selected by strategy.
func (c *Changeset) Filter(strategy ApplyStrategy) *Changeset {
	filtered := &Changeset{}

	switch strategy {
	case ApplyAll:
		return c
	case ApplyAdditive:
		filtered.Added = c.Added
		filtered.Updated = c.Updated
	case ApplyUpdatesOnly:
		filtered.Updated = c.Updated
	}

	filtered.Summary = calculateSummary(filtered)
	return filtered
}
