package pipeline

import (
	"fmt"
	"strings"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/dedupe"
	"github.com/agentstation/foodsync/pkg/differ"
	"github.com/agentstation/foodsync/pkg/notify"
	"github.com/agentstation/foodsync/pkg/reconcile"
)

// Result is the outcome of a run.
type Result struct {
	RunID    string `json:"run_id" yaml:"run_id"`
	Supplier string `json:"supplier" yaml:"supplier"`
	CoopName string `json:"coop" yaml:"coop"`

	// ExportFile is the written CSV, relative to ExportDir.
	ExportFile string `json:"export_file" yaml:"export_file"`
	ExportDir  string `json:"export_dir" yaml:"export_dir"`
	XLSXFile   string `json:"xlsx_file,omitempty" yaml:"xlsx_file,omitempty"`

	// Baseline is the export the run compared against, empty if none.
	Baseline string `json:"baseline,omitempty" yaml:"baseline,omitempty"`

	// PlatformAvailable is false when the platform snapshot was skipped.
	PlatformAvailable bool `json:"platform_available" yaml:"platform_available"`

	Articles  []articles.Article `json:"-" yaml:"-"`
	Ignored   []articles.Article `json:"-" yaml:"-"`
	Renames   []dedupe.Rename    `json:"renames" yaml:"renames"`
	Reconcile reconcile.Stats    `json:"reconcile" yaml:"reconcile"`
	// Overrides lists the fields whose imported value was replaced.
	Overrides     reconcile.Provenance `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Changes       *differ.Changeset    `json:"changes" yaml:"changes"`
	Notifications notify.List          `json:"notifications" yaml:"notifications"`

	// Message is the composed operator message.
	Message string `json:"message" yaml:"message"`
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	parts := []string{
		fmt.Sprintf("%d articles exported to %s", len(r.Articles), r.ExportFile),
	}
	if len(r.Ignored) > 0 {
		parts = append(parts, fmt.Sprintf("%d ignored", len(r.Ignored)))
	}
	if len(r.Renames) > 0 {
		parts = append(parts, fmt.Sprintf("%d renamed", len(r.Renames)))
	}
	parts = append(parts, r.Reconcile.String())
	if r.Changes != nil {
		parts = append(parts, r.Changes.String())
	}
	return strings.Join(parts, "; ")
}
