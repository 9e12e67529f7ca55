package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/foodsync/pkg/articles"
)

// Source names where a final field value came from.
type Source string

// Value sources.
const (
	SourceImported Source = "imported" // The supplier catalog
	SourcePlatform Source = "platform" // The ordering platform, newly detected or pinned
	SourceLedger   Source = "ledger"   // A remembered manual change
)

// String returns the string representation of a source.
func (s Source) String() string {
	return string(s)
}

// Decision records how one field of one article was settled.
type Decision struct {
	Field    articles.Field `json:"field" yaml:"field"`
	Source   Source         `json:"source" yaml:"source"`
	Previous string         `json:"previous" yaml:"previous"` // Imported value
	Value    string         `json:"value" yaml:"value"`       // Final value
}

// Changed reports whether the decision replaced the imported value.
func (d Decision) Changed() bool {
	return d.Source != SourceImported
}

// Provenance maps order numbers to the decisions made for their fields.
type Provenance map[string][]Decision

func (p Provenance) add(orderNumber string, d Decision) {
	p[orderNumber] = append(p[orderNumber], d)
}

// Get returns the decision for one field of an order number.
func (p Provenance) Get(orderNumber string, f articles.Field) (Decision, bool) {
	for _, d := range p[orderNumber] {
		if d.Field == f {
			return d, true
		}
	}
	return Decision{}, false
}

// Changed returns only the decisions that replaced an imported value.
func (p Provenance) Changed() Provenance {
	out := make(Provenance)
	for order, decisions := range p {
		for _, d := range decisions {
			if d.Changed() {
				out.add(order, d)
			}
		}
	}
	return out
}

// String formats the provenance as a readable report.
func (p Provenance) String() string {
	orders := make([]string, 0, len(p))
	for order := range p {
		orders = append(orders, order)
	}
	sort.Strings(orders)

	var sb strings.Builder
	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")
	for _, order := range orders {
		fmt.Fprintf(&sb, "#%s:\n", order)
		for _, d := range p[order] {
			fmt.Fprintf(&sb, "  %s: %q -> %q (%s)\n", d.Field, d.Previous, d.Value, d.Source)
		}
	}
	return sb.String()
}
