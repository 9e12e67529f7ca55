// Package ledger keeps the per-supplier record of manual changes made on the
// ordering platform, and persists it inside the shared configuration
// document.
//
// A ledger entry pairs the automated value that was replaced with the value
// an operator set by hand. As long as the automated source keeps producing
// the replaced value, the manual value is reapplied on every run.
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Change is one remembered manual edit.
type Change struct {
	Replaced Value `json:"replaced" yaml:"replaced"` // Automated value at detection time
	Manual   Value `json:"manual" yaml:"manual"`     // Value observed on the platform
}

// Value is a ledger value. It decodes from JSON strings and numbers so that
// documents written by older tooling load unchanged.
type Value string

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = ""
	case string:
		*v = Value(t)
	case float64:
		*v = Value(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*v = Value(strconv.FormatBool(t))
	default:
		return fmt.Errorf("unsupported ledger value %s", string(data))
	}
	return nil
}

// Entry is a flattened view of one ledger record.
type Entry struct {
	OrderNumber string         `json:"order_number" yaml:"order_number"`
	Field       articles.Field `json:"field" yaml:"field"`
	Replaced    string         `json:"replaced" yaml:"replaced"`
	Manual      string         `json:"manual" yaml:"manual"`
}

// Ledger maps order numbers to the manual changes of their fields.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	changes map[string]map[articles.Field]Change
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{changes: make(map[string]map[articles.Field]Change)}
}

// Get returns the change recorded for an order number and field.
func (l *Ledger) Get(orderNumber string, field articles.Field) (Change, bool) {
	fields, ok := l.changes[orderNumber]
	if !ok {
		return Change{}, false
	}
	c, ok := fields[field]
	return c, ok
}

// Set records a change, replacing any previous one for the same field.
func (l *Ledger) Set(orderNumber string, field articles.Field, c Change) {
	fields, ok := l.changes[orderNumber]
	if !ok {
		fields = make(map[articles.Field]Change)
		l.changes[orderNumber] = fields
	}
	fields[field] = c
}

// Delete removes the change for one field and reports whether it existed.
func (l *Ledger) Delete(orderNumber string, field articles.Field) bool {
	fields, ok := l.changes[orderNumber]
	if !ok {
		return false
	}
	if _, ok := fields[field]; !ok {
		return false
	}
	delete(fields, field)
	if len(fields) == 0 {
		delete(l.changes, orderNumber)
	}
	return true
}

// DeleteArticle removes all changes of an order number and returns how
// many were removed.
func (l *Ledger) DeleteArticle(orderNumber string) int {
	n := len(l.changes[orderNumber])
	delete(l.changes, orderNumber)
	return n
}

// Len returns the number of recorded field changes.
func (l *Ledger) Len() int {
	n := 0
	for _, fields := range l.changes {
		n += len(fields)
	}
	return n
}

// OrderNumbers returns the order numbers with at least one change, sorted.
func (l *Ledger) OrderNumbers() []string {
	out := make([]string, 0, len(l.changes))
	for order := range l.changes {
		out = append(out, order)
	}
	sort.Strings(out)
	return out
}

// Entries returns all changes sorted by order number and field.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, l.Len())
	for _, order := range l.OrderNumbers() {
		fields := l.changes[order]
		keys := make([]articles.Field, 0, len(fields))
		for f := range fields {
			keys = append(keys, f)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, f := range keys {
			c := fields[f]
			out = append(out, Entry{OrderNumber: order, Field: f, Replaced: string(c.Replaced), Manual: string(c.Manual)})
		}
	}
	return out
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	out := New()
	for order, fields := range l.changes {
		copied := make(map[articles.Field]Change, len(fields))
		for f, c := range fields {
			copied[f] = c
		}
		out.changes[order] = copied
	}
	return out
}

// MarshalJSON writes the ledger as
// {"<order>": {"<field>": {"replaced": ..., "manual": ...}}}.
// Category entries are written as a plain string holding the manual value,
// the form every earlier version of the document used.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	doc := make(map[string]map[string]any, len(l.changes))
	for order, fields := range l.changes {
		out := make(map[string]any, len(fields))
		for f, c := range fields {
			if f == articles.FieldCategory {
				out[f.String()] = string(c.Manual)
				continue
			}
			out[f.String()] = c
		}
		doc[order] = out
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads the format written by MarshalJSON. Unknown field
// names are a configuration error.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var doc map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.NewConfigError("ledger", "manual changes must map order numbers to field objects", err)
	}

	l.changes = make(map[string]map[articles.Field]Change, len(doc))
	for order, fields := range doc {
		for name, raw := range fields {
			f, err := articles.ParseField(name)
			if err != nil {
				return errors.NewConfigError("ledger", fmt.Sprintf("article %s: unknown field %q", order, name), err)
			}
			c, err := decodeChange(f, raw)
			if err != nil {
				return errors.NewConfigError("ledger", fmt.Sprintf("article %s: field %s", order, name), err)
			}
			l.Set(order, f, c)
		}
	}
	return nil
}

func decodeChange(f articles.Field, raw json.RawMessage) (Change, error) {
	if f == articles.FieldCategory {
		var plain Value
		if err := json.Unmarshal(raw, &plain); err == nil {
			return Change{Manual: plain}, nil
		}
	}
	var c Change
	if err := json.Unmarshal(raw, &c); err != nil {
		return Change{}, err
	}
	return c, nil
}
