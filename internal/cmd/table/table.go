// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/agentstation/foodsync/pkg/dedupe"
	"github.com/agentstation/foodsync/pkg/differ"
	"github.com/agentstation/foodsync/pkg/ledger"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// LedgerToTableData converts ledger entries to table format.
func LedgerToTableData(entries []ledger.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.OrderNumber, e.Field.String(), orDash(e.Replaced), orDash(e.Manual)})
	}
	return Data{
		Headers: []string{"Order Number", "Field", "Replaced", "Manual"},
		Rows:    rows,
	}
}

// RenamesToTableData converts renames to table format.
func RenamesToTableData(renames []dedupe.Rename) Data {
	rows := make([][]string, 0, len(renames))
	for _, r := range renames {
		rows = append(rows, []string{strconv.Itoa(r.Index + 1), r.OrderNumber, r.From, r.To, r.Pass.String()})
	}
	return Data{
		Headers:         []string{"Row", "Order Number", "From", "To", "Rule"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// ChangesetToTableData converts a changeset to one row per changed article.
func ChangesetToTableData(c *differ.Changeset) Data {
	var rows [][]string
	if c != nil {
		for _, a := range c.Added {
			rows = append(rows, []string{"added", a.OrderNumber, a.Name, "-"})
		}
		for _, u := range c.Updated {
			for _, fc := range u.Changes {
				rows = append(rows, []string{"updated", u.OrderNumber, u.New.Name, fc.Field + ": " + orDash(fc.OldValue) + " -> " + orDash(fc.NewValue)})
			}
		}
		for _, a := range c.Removed {
			rows = append(rows, []string{"removed", a.OrderNumber, a.Name, "-"})
		}
	}
	return Data{
		Headers: []string{"Change", "Order Number", "Name", "Detail"},
		Rows:    rows,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
