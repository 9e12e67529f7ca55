package articles

import (
	"github.com/shopspring/decimal"
)

// Article represents one catalog entry of a supplier.
type Article struct {
	// Identity
	OrderNumber string `json:"order_number" yaml:"order_number"` // Supplier-assigned, not unique across duplicate lines

	// Descriptive fields
	Name         string `json:"name" yaml:"name"`
	Note         string `json:"note,omitempty" yaml:"note,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Origin       string `json:"origin,omitempty" yaml:"origin,omitempty"`
	Unit         string `json:"unit" yaml:"unit"`

	// Pricing
	PriceNet     decimal.Decimal `json:"price_net" yaml:"price_net"`
	VAT          decimal.Decimal `json:"vat" yaml:"vat"` // Percentage
	Deposit      decimal.Decimal `json:"deposit" yaml:"deposit"`
	UnitQuantity decimal.Decimal `json:"unit_quantity" yaml:"unit_quantity"`

	// Platform managed
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`
	Available bool   `json:"available" yaml:"available"`

	// Working state, never exported
	Ignore   bool   `json:"-" yaml:"-"` // Excludes the article from the export
	OrigUnit string `json:"-" yaml:"-"` // Unprocessed unit, used only to tell duplicates apart
	Scratch  string `json:"-" yaml:"-"` // Free for algorithm-local data
}

// Option configures an Article built with New.
type Option func(*Article)

// New creates an article with the platform defaults: available, one unit per
// bundle, no VAT and no deposit.
func New(orderNumber, name, unit string, priceNet decimal.Decimal, opts ...Option) Article {
	a := Article{
		OrderNumber:  orderNumber,
		Name:         name,
		Unit:         unit,
		PriceNet:     priceNet,
		VAT:          decimal.Zero,
		Deposit:      decimal.Zero,
		UnitQuantity: decimal.NewFromInt(1),
		Available:    true,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// WithNote sets the note.
func WithNote(note string) Option {
	return func(a *Article) { a.Note = note }
}

// WithManufacturer sets the manufacturer.
func WithManufacturer(manufacturer string) Option {
	return func(a *Article) { a.Manufacturer = manufacturer }
}

// WithOrigin sets the origin.
func WithOrigin(origin string) Option {
	return func(a *Article) { a.Origin = origin }
}

// WithVAT sets the VAT percentage.
func WithVAT(vat decimal.Decimal) Option {
	return func(a *Article) { a.VAT = vat }
}

// WithDeposit sets the deposit.
func WithDeposit(deposit decimal.Decimal) Option {
	return func(a *Article) { a.Deposit = deposit }
}

// WithUnitQuantity sets the number of units per bundle.
func WithUnitQuantity(quantity decimal.Decimal) Option {
	return func(a *Article) { a.UnitQuantity = quantity }
}

// WithCategory sets the category name.
func WithCategory(category string) Option {
	return func(a *Article) { a.Category = category }
}

// WithAvailable sets the availability flag.
func WithAvailable(available bool) Option {
	return func(a *Article) { a.Available = available }
}

// WithOrigUnit sets the unprocessed unit used for duplicate resolution.
func WithOrigUnit(origUnit string) Option {
	return func(a *Article) { a.OrigUnit = origUnit }
}

// WithIgnore marks the article as excluded from the export.
func WithIgnore(ignore bool) Option {
	return func(a *Article) { a.Ignore = ignore }
}

// KeepOrigUnits records the unit of every article as its OrigUnit unless
// one is already set. Call it on freshly decoded supplier data, before the
// unit can be replaced by a platform value.
func KeepOrigUnits(list []Article) {
	for i := range list {
		if list[i].OrigUnit == "" {
			list[i].OrigUnit = list[i].Unit
		}
	}
}

// RemoveIgnored returns the articles that are not marked as ignored.
// The input slice is not modified.
func RemoveIgnored(list []Article) []Article {
	kept := make([]Article, 0, len(list))
	for _, a := range list {
		if !a.Ignore {
			kept = append(kept, a)
		}
	}
	return kept
}

// Ignored returns the articles that are marked as ignored.
func Ignored(list []Article) []Article {
	var ignored []Article
	for _, a := range list {
		if a.Ignore {
			ignored = append(ignored, a)
		}
	}
	return ignored
}

// Index maps order numbers to the position of their first occurrence.
type Index map[string]int

// NewIndex builds an index over list. Later duplicates of an order number
// are not indexed.
func NewIndex(list []Article) Index {
	idx := make(Index, len(list))
	for i, a := range list {
		if _, exists := idx[a.OrderNumber]; !exists {
			idx[a.OrderNumber] = i
		}
	}
	return idx
}

// Lookup returns the first article in list with the given order number, or
// nil. The index must have been built from list.
func (idx Index) Lookup(list []Article, orderNumber string) *Article {
	i, ok := idx[orderNumber]
	if !ok {
		return nil
	}
	return &list[i]
}

// Clone returns a copy of list.
func Clone(list []Article) []Article {
	if list == nil {
		return nil
	}
	out := make([]Article, len(list))
	copy(out, list)
	return out
}
