package exports

import (
	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/notify"
)

// Baseline is the export of the previous run, the reference for detecting
// manual changes.
type Baseline struct {
	// File is the export name, empty when there is none.
	File string

	// Recorded is true when File was taken from the ledger rather than
	// guessed from the directory listing.
	Recorded bool

	Articles []articles.Article
}

// Baseline loads the previous export. The file recorded in the ledger is
// used when it still exists; otherwise the newest file of the directory is
// assumed and a notification says so. Without any export the baseline is
// empty, which is not an error.
func (d *Dir) Baseline(recorded string) (Baseline, notify.List, error) {
	var notes notify.List

	if recorded != "" && d.Exists(recorded) {
		list, err := d.Read(recorded)
		if err != nil {
			return Baseline{}, notes, err
		}
		return Baseline{File: recorded, Recorded: true, Articles: list}, notes, nil
	}

	latest, ok, err := d.Latest()
	if err != nil {
		return Baseline{}, notes, err
	}
	if !ok {
		notes = notes.Add(notify.KindNoBaseline, "", "No previous CSV found for comparison.")
		return Baseline{}, notes, nil
	}

	notes = notes.Add(notify.KindAssumedBaseline, "", "It was assumed '%s' was the last CSV imported into Foodsoft.", latest)
	list, err := d.Read(latest)
	if err != nil {
		return Baseline{}, notes, err
	}
	return Baseline{File: latest, Articles: list}, notes, nil
}
