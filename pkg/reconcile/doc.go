//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/foodsync --repository.default-branch master --repository.path /pkg/reconcile

// Package reconcile keeps manual edits made on the ordering platform alive
// across automated re-imports of a supplier catalog.
//
// Every imported article is compared field by field with two counterparts
// of the same order number: the article as it currently exists on the
// platform, and the article as the previous run exported it. When the
// automated source reproduced last run's value but the platform holds a
// different one, somebody edited the article by hand; the edit is kept and
// remembered in the ledger. On later runs the remembered edit is reapplied
// for as long as the source keeps producing the value it replaced.
//
// Categories are platform-managed: an article's category is always pinned
// to the ledger override or the platform value.
//
// Example:
//
//	r, err := reconcile.New(reconcile.WithFieldNames(cfg.CompareFields...))
//	if err != nil {
//	    return err
//	}
//	result, err := r.Reconcile(ctx, reconcile.Input{
//	    Imported: imported,
//	    Platform: platform,
//	    PriorRun: prior,
//	    Ledger:   segment.ManualChanges,
//	})
package reconcile
