package reconcile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/ledger"
	"github.com/agentstation/foodsync/pkg/logging"
	"github.com/agentstation/foodsync/pkg/notify"
)

const (
	manualChangeFormat = "Keeping manual change of article %s: %s -> %s"
	unknownFieldFormat = "Invalid string type for article attribute (look in config file?): %s"
)

// Input holds the three article sets and the ledger of one supplier.
type Input struct {
	// Imported is the freshly read supplier catalog.
	Imported []articles.Article

	// Platform is the current article list on the ordering platform.
	// Empty when the platform was unreachable.
	Platform []articles.Article

	// PriorRun is the article list the previous run exported.
	PriorRun []articles.Article

	// Ledger holds the remembered manual changes. It is not modified.
	Ledger *ledger.Ledger
}

// Reconciler applies the manual-change rules to imported articles.
// A Reconciler holds no per-run state and may be reused.
type Reconciler struct {
	fields        []articles.Field
	pinCategories bool
	tracking      bool
	logger        *zerolog.Logger

	// notifications from construction, repeated on every result
	pending notify.List
}

// New creates a Reconciler comparing the default fields.
func New(opts ...Option) (*Reconciler, error) {
	r := &Reconciler{
		pinCategories: true,
	}
	for _, f := range articles.DefaultCompareFields() {
		r.addField(f)
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Fields returns the compared fields.
func (r *Reconciler) Fields() []articles.Field {
	out := make([]articles.Field, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r *Reconciler) addField(f articles.Field) {
	if f == articles.FieldCategory {
		return
	}
	for _, existing := range r.fields {
		if existing == f {
			return
		}
	}
	r.fields = append(r.fields, f)
}

// Reconcile runs the manual-change rules over in.Imported.
//
// The returned articles are copies and the returned ledger is a modified
// clone of in.Ledger; the inputs are left untouched. Persisting the ledger
// is the caller's job.
func (r *Reconciler) Reconcile(ctx context.Context, in Input) (*Result, error) {
	log := r.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}

	book := ledger.New()
	if in.Ledger != nil {
		book = in.Ledger.Clone()
	}

	run := &pass{
		out:      articles.Clone(in.Imported),
		book:     book,
		notes:    append(notify.List(nil), r.pending...),
		platform: in.Platform,
		prior:    in.PriorRun,
		pIndex:   articles.NewIndex(in.Platform),
		rIndex:   articles.NewIndex(in.PriorRun),
		log:      log,
	}
	if r.tracking {
		run.prov = make(Provenance)
	}

	for i := range run.out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reconciling articles: %w", errors.ErrCanceled)
		}

		a := &run.out[i]
		platform := run.pIndex.Lookup(run.platform, a.OrderNumber)
		prior := run.rIndex.Lookup(run.prior, a.OrderNumber)

		for _, f := range r.fields {
			run.compare(a, platform, prior, f)
		}
		if r.pinCategories {
			run.pinCategory(a, platform)
		}
	}

	log.Debug().
		Int("articles", len(run.out)).
		Int("detected", run.stats.Detected).
		Int("reapplied", run.stats.Reapplied).
		Int("pinned", run.stats.Pinned).
		Msg("Reconciled manual changes")

	return &Result{
		Articles:      run.out,
		Ledger:        run.book,
		Notifications: run.notes,
		Stats:         run.stats,
		Provenance:    run.prov,
	}, nil
}

// pass is the state of one Reconcile call.
type pass struct {
	out      []articles.Article
	book     *ledger.Ledger
	notes    notify.List
	stats    Stats
	prov     Provenance
	platform []articles.Article
	prior    []articles.Article
	pIndex   articles.Index
	rIndex   articles.Index
	log      *zerolog.Logger
}

// compare applies the detection and reapply rules to one field.
func (p *pass) compare(a, platform, prior *articles.Article, f articles.Field) {
	imported := f.Get(a)

	if platform != nil && prior != nil {
		manual := f.Get(platform)
		if !f.Equal(imported, manual) && f.Equal(imported, f.Get(prior)) {
			if p.set(a, f, manual) {
				p.book.Set(a.OrderNumber, f, ledger.Change{Replaced: ledger.Value(imported), Manual: ledger.Value(manual)})
				p.notes = p.notes.Add(notify.KindManualChange, a.OrderNumber, manualChangeFormat, f, imported, manual)
				p.stats.Detected++
				p.track(a.OrderNumber, f, SourcePlatform, imported, manual)
				return
			}
		}
	}

	if c, ok := p.book.Get(a.OrderNumber, f); ok && f.Equal(string(c.Replaced), imported) {
		if p.set(a, f, string(c.Manual)) {
			p.stats.Reapplied++
			p.track(a.OrderNumber, f, SourceLedger, imported, string(c.Manual))
			return
		}
	}

	p.track(a.OrderNumber, f, SourceImported, imported, imported)
}

// pinCategory keeps the category under platform control.
func (p *pass) pinCategory(a, platform *articles.Article) {
	imported := a.Category

	if c, ok := p.book.Get(a.OrderNumber, articles.FieldCategory); ok {
		a.Category = string(c.Manual)
		p.stats.Pinned++
		p.track(a.OrderNumber, articles.FieldCategory, SourceLedger, imported, a.Category)
		return
	}

	if platform != nil {
		a.Category = platform.Category
		p.book.Set(a.OrderNumber, articles.FieldCategory, ledger.Change{
			Replaced: ledger.Value(imported),
			Manual:   ledger.Value(platform.Category),
		})
		p.stats.Pinned++
		p.track(a.OrderNumber, articles.FieldCategory, SourcePlatform, imported, a.Category)
		return
	}

	p.track(a.OrderNumber, articles.FieldCategory, SourceImported, imported, imported)
}

// set assigns value and reports success. A value that does not parse for
// the field is logged and the imported value kept.
func (p *pass) set(a *articles.Article, f articles.Field, value string) bool {
	if err := f.Set(a, value); err != nil {
		p.log.Warn().
			Err(err).
			Str("order_number", a.OrderNumber).
			Stringer("field", f).
			Msg("Ignoring unusable manual value")
		return false
	}
	return true
}

func (p *pass) track(orderNumber string, f articles.Field, source Source, previous, value string) {
	if p.prov == nil {
		return
	}
	p.prov.add(orderNumber, Decision{Field: f, Source: source, Previous: previous, Value: value})
}
