package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/foodsync/internal/exports"
	"github.com/agentstation/foodsync/internal/foodsoft"
	"github.com/agentstation/foodsync/internal/matcher"
	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/dedupe"
	"github.com/agentstation/foodsync/pkg/differ"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/ledger"
	"github.com/agentstation/foodsync/pkg/logging"
	"github.com/agentstation/foodsync/pkg/notify"
	"github.com/agentstation/foodsync/pkg/reconcile"
	"github.com/agentstation/foodsync/pkg/report"
	"github.com/agentstation/foodsync/pkg/validate"
)

// NewRunner creates a Runner for the given platform configuration. When
// the configuration has a URL, platform articles are fetched with a
// Foodsoft client.
func NewRunner(platformCfg foodsoft.Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		platformCfg: platformCfg,
		now:         time.Now,
		newID:       uuid.NewString,
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.platform == nil && platformCfg.Configured() {
		r.platform = foodsoft.NewClient(platformCfg, foodsoft.WithLogger(r.logger))
	}
	return r
}

// Run executes one run.
//
// The ledger is saved right after reconciliation, whatever happens
// afterwards, and again once the export file name is known.
func (r *Runner) Run(ctx context.Context, opts *Options) (*Result, error) {
	if opts == nil {
		opts = Defaults()
	}
	if err := validate.Config("pipeline", opts); err != nil {
		return nil, err
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	runID := r.newID()
	ctx = logging.WithLogger(ctx, r.logger)
	ctx = logging.WithSupplier(ctx, opts.Supplier)
	ctx = logging.WithRun(ctx, runID)
	log := logging.FromContext(ctx)
	now := r.now()

	result := &Result{
		RunID:    runID,
		Supplier: opts.Supplier,
		CoopName: r.platformCfg.CoopName(),
	}
	var notes notify.List

	imported, err := exports.ReadFile(opts.Input)
	if err != nil {
		return nil, err
	}
	articles.KeepOrigUnits(imported)
	ignoredCategories, err := markIgnored(imported, opts.IgnoreCategories)
	if err != nil {
		return nil, errors.NewConfigError("pipeline", "invalid ignored category pattern", err)
	}
	log.Info().Int("articles", len(imported)).Str("input", opts.Input).Msg("Read supplier catalog")

	store := ledger.NewStore(opts.LedgerPath)
	segment, err := store.Load(opts.Supplier)
	if err != nil {
		return nil, err
	}

	dir := exports.NewDir(opts.OutputDir, result.CoopName, opts.Supplier)
	result.ExportDir = dir.Path()
	baseline, baselineNotes, err := dir.Baseline(segment.LastExport)
	if err != nil {
		return nil, err
	}
	notes = notes.Append(baselineNotes)
	result.Baseline = baseline.File

	platform, available, platformNotes, err := r.fetchPlatform(ctx, opts.SupplierID)
	if err != nil {
		return nil, err
	}
	notes = notes.Append(platformNotes)
	result.PlatformAvailable = available

	reconcileOpts := []reconcile.Option{
		reconcile.WithCategoryPinning(opts.PinCategories),
		reconcile.WithProvenance(true),
		reconcile.WithLogger(log),
	}
	if len(opts.CompareFields) > 0 {
		reconcileOpts = append(reconcileOpts, reconcile.WithFieldNames(opts.CompareFields...))
	}
	reconciler, err := reconcile.New(reconcileOpts...)
	if err != nil {
		return nil, err
	}
	reconciled, err := reconciler.Reconcile(ctx, reconcile.Input{
		Imported: imported,
		Platform: platform,
		PriorRun: baseline.Articles,
		Ledger:   segment.ManualChanges,
	})
	if err != nil {
		return nil, err
	}
	notes = notes.Append(reconciled.Notifications)
	result.Reconcile = reconciled.Stats
	result.Overrides = reconciled.Provenance.Changed()

	segment.ManualChanges = reconciled.Ledger
	segment.LastRun = now
	segment.LastRunID = runID
	if err := store.Save(segment); err != nil {
		return nil, err
	}

	active := articles.RemoveIgnored(reconciled.Articles)
	result.Ignored = articles.Ignored(reconciled.Articles)
	// Validation rewrites delimiters in names, so it runs before names
	// are made unique.
	notes = notes.Append(validate.Articles(active))
	result.Renames = dedupe.Resolve(active)
	result.Articles = active
	result.Changes = differ.New().Articles(baseline.Articles, active)

	name, err := dir.Write(active, now)
	if err != nil {
		return nil, err
	}
	result.ExportFile = name
	log.Info().Str("file", dir.File(name)).Int("articles", len(active)).Msg("Wrote export")

	if opts.XLSX {
		xlsxName := strings.TrimSuffix(name, exports.Extension) + exports.XLSXExtension
		if err := exports.WriteXLSX(dir.File(xlsxName), active); err != nil {
			return nil, err
		}
		result.XLSXFile = xlsxName
	}

	segment.LastExport = name
	if err := store.Save(segment); err != nil {
		return nil, err
	}

	result.Notifications = notes
	result.Message = report.Compose(report.Data{
		Supplier:          opts.Supplier,
		SupplierID:        opts.SupplierID,
		PlatformURL:       r.platformCfg.BaseURL(),
		ExportFile:        name,
		Categories:        categoriesOf(active),
		IgnoredCategories: ignoredCategories,
		IgnoredArticles:   result.Ignored,
		Renames:           result.Renames,
		Changes:           result.Changes,
		Notifications:     notes,
	})

	log.Info().
		Int("detected", result.Reconcile.Detected).
		Int("reapplied", result.Reconcile.Reapplied).
		Int("renamed", len(result.Renames)).
		Int("notifications", len(notes)).
		Msg("Run complete")

	return result, nil
}

// fetchPlatform returns the platform articles of the supplier. Connectivity
// problems degrade the run to an empty snapshot with a notification.
func (r *Runner) fetchPlatform(ctx context.Context, supplierID int) ([]articles.Article, bool, notify.List, error) {
	var notes notify.List

	switch {
	case r.platform == nil:
		notes = notes.Add(notify.KindPlatform, "", "No Foodsoft URL configured, manual changes on the platform could not be checked.")
		return nil, false, notes, nil
	case supplierID == 0:
		notes = notes.Add(notify.KindPlatform, "", "No Foodsoft supplier ID given, manual changes on the platform could not be checked.")
		return nil, false, notes, nil
	}

	ctx = logging.WithPlatform(ctx, r.platformCfg.BaseURL())
	log := logging.FromContext(ctx)

	list, err := r.platform.Articles(ctx, supplierID)
	if err == nil {
		return list, true, notes, nil
	}
	if errors.IsConnectivityError(err) || errors.IsNotFound(err) {
		log.Warn().Err(err).Int("supplier_id", supplierID).Msg("Platform articles unavailable, continuing without them")
		notes = notes.Add(notify.KindPlatform, "", "Could not fetch articles from Foodsoft (%v), manual changes on the platform could not be checked.", err)
		return nil, false, notes, nil
	}
	return nil, false, notes, fmt.Errorf("fetching platform articles: %w", err)
}

// markIgnored flags articles whose category matches one of the patterns
// and returns those categories in order of first appearance.
func markIgnored(list []articles.Article, patterns []string) ([]*articles.Category, error) {
	set, err := matcher.NewSet(patterns...)
	if err != nil || len(set) == 0 {
		return nil, err
	}

	var hit []string
	seen := make(map[string]bool)
	for i := range list {
		category := list[i].Category
		if !set.Match(category) {
			continue
		}
		list[i].Ignore = true
		if key := dedupe.Key(category); !seen[key] {
			seen[key] = true
			hit = append(hit, category)
		}
	}
	return numbered(hit), nil
}

// categoriesOf lists the distinct categories of list in order of first
// appearance.
func categoriesOf(list []articles.Article) []*articles.Category {
	var names []string
	seen := make(map[string]bool)
	for _, a := range list {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		names = append(names, a.Category)
	}
	return numbered(names)
}

func numbered(names []string) []*articles.Category {
	out := make([]*articles.Category, len(names))
	for i, name := range names {
		out[i] = articles.NewCategory(i+1, name)
	}
	return out
}
