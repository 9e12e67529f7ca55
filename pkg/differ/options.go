package differ

import "github.com/agentstation/foodsync/pkg/articles"

// Option is a functional option for configuring a Differ.
type Option func(*Differ)

// WithIgnoredFields sets fields to ignore during comparison.
func WithIgnoredFields(fields ...articles.Field) Option {
	return func(d *Differ) {
		for _, f := range fields {
			d.ignoreFields[f] = true
		}
	}
}

// WithAvailability enables reporting availability flips as changes.
func WithAvailability(enabled bool) Option {
	return func(d *Differ) {
		d.availability = enabled
	}
}
