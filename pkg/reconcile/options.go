package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/notify"
)

// Option configures a Reconciler.
type Option func(*Reconciler) error

// WithFields sets the fields compared for manual changes. The category
// field is accepted and skipped; categories are handled by pinning.
func WithFields(fields ...articles.Field) Option {
	return func(r *Reconciler) error {
		r.fields = r.fields[:0]
		for _, f := range fields {
			if !f.Valid() {
				r.pending = r.pending.Add(notify.KindUnknownField, "", unknownFieldFormat, f.String())
				continue
			}
			r.addField(f)
		}
		return nil
	}
}

// WithFieldNames sets the compared fields by their ledger names, as found
// in configuration files. Unknown names do not fail construction; each one
// becomes a notification on every result.
func WithFieldNames(names ...string) Option {
	return func(r *Reconciler) error {
		r.fields = r.fields[:0]
		for _, name := range names {
			f, err := articles.ParseField(name)
			if err != nil {
				r.pending = r.pending.Add(notify.KindUnknownField, "", unknownFieldFormat, name)
				continue
			}
			r.addField(f)
		}
		return nil
	}
}

// WithCategoryPinning enables or disables category pinning. Enabled by default.
func WithCategoryPinning(enabled bool) Option {
	return func(r *Reconciler) error {
		r.pinCategories = enabled
		return nil
	}
}

// WithLogger sets the logger. Without it the logger from the context of
// each Reconcile call is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) error {
		r.logger = logger
		return nil
	}
}

// WithProvenance enables recording where every final field value came from.
func WithProvenance(enabled bool) Option {
	return func(r *Reconciler) error {
		r.tracking = enabled
		return nil
	}
}
