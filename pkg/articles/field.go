package articles

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/foodsync/pkg/errors"
)

// Field identifies one comparable attribute of an Article.
type Field int

// Comparable article fields. The names match the keys used in the
// persisted manual changes ledger.
const (
	FieldName Field = iota
	FieldNote
	FieldManufacturer
	FieldOrigin
	FieldUnit
	FieldPriceNet
	FieldVAT
	FieldDeposit
	FieldUnitQuantity
	FieldCategory
)

// accessor reads and writes one field of an article in its string form.
type accessor struct {
	name    string
	decimal bool
	get     func(*Article) string
	set     func(*Article, string) error
}

var accessors = [...]accessor{
	FieldName: {
		name: "name",
		get:  func(a *Article) string { return a.Name },
		set:  func(a *Article, v string) error { a.Name = v; return nil },
	},
	FieldNote: {
		name: "note",
		get:  func(a *Article) string { return a.Note },
		set:  func(a *Article, v string) error { a.Note = v; return nil },
	},
	FieldManufacturer: {
		name: "manufacturer",
		get:  func(a *Article) string { return a.Manufacturer },
		set:  func(a *Article, v string) error { a.Manufacturer = v; return nil },
	},
	FieldOrigin: {
		name: "origin",
		get:  func(a *Article) string { return a.Origin },
		set:  func(a *Article, v string) error { a.Origin = v; return nil },
	},
	FieldUnit: {
		name: "unit",
		get:  func(a *Article) string { return a.Unit },
		set:  func(a *Article, v string) error { a.Unit = v; return nil },
	},
	FieldPriceNet: {
		name:    "price_net",
		decimal: true,
		get:     func(a *Article) string { return a.PriceNet.String() },
		set:     decimalSetter("price_net", func(a *Article, d decimal.Decimal) { a.PriceNet = d }),
	},
	FieldVAT: {
		name:    "vat",
		decimal: true,
		get:     func(a *Article) string { return a.VAT.String() },
		set:     decimalSetter("vat", func(a *Article, d decimal.Decimal) { a.VAT = d }),
	},
	FieldDeposit: {
		name:    "deposit",
		decimal: true,
		get:     func(a *Article) string { return a.Deposit.String() },
		set:     decimalSetter("deposit", func(a *Article, d decimal.Decimal) { a.Deposit = d }),
	},
	FieldUnitQuantity: {
		name:    "unit_quantity",
		decimal: true,
		get:     func(a *Article) string { return a.UnitQuantity.String() },
		set:     decimalSetter("unit_quantity", func(a *Article, d decimal.Decimal) { a.UnitQuantity = d }),
	},
	FieldCategory: {
		name: "category",
		get:  func(a *Article) string { return a.Category },
		set:  func(a *Article, v string) error { a.Category = v; return nil },
	},
}

func decimalSetter(name string, assign func(*Article, decimal.Decimal)) func(*Article, string) error {
	return func(a *Article, v string) error {
		d, err := ParseDecimal(v)
		if err != nil {
			return errors.NewValidationError(name, v, err.Error())
		}
		assign(a, d)
		return nil
	}
}

// AllFields lists every comparable field in column order.
func AllFields() []Field {
	fields := make([]Field, len(accessors))
	for i := range accessors {
		fields[i] = Field(i)
	}
	return fields
}

// DefaultCompareFields are the fields compared for manual changes unless
// configured otherwise.
func DefaultCompareFields() []Field {
	return []Field{FieldName, FieldNote, FieldManufacturer, FieldOrigin, FieldUnit, FieldPriceNet}
}

// ParseField resolves a ledger/config field name.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, acc := range accessors {
		if acc.name == key {
			return Field(i), nil
		}
	}
	return 0, errors.NewValidationError("field", name, fmt.Sprintf("unknown article field %q", name))
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < len(accessors)
}

// String returns the ledger name of the field.
func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return accessors[f].name
}

// IsDecimal reports whether the field holds a decimal number.
func (f Field) IsDecimal() bool {
	return f.Valid() && accessors[f].decimal
}

// Get returns the field value of a in string form.
func (f Field) Get(a *Article) string {
	return accessors[f].get(a)
}

// Set parses value and assigns it to the field of a.
func (f Field) Set(a *Article, value string) error {
	return accessors[f].set(a, value)
}

// Equal compares two string forms of the field. Decimal fields compare by
// numeric value so that "12" equals "12.00"; unparsable decimals fall back
// to string comparison.
func (f Field) Equal(x, y string) bool {
	if !f.IsDecimal() {
		return x == y
	}
	dx, errX := ParseDecimal(x)
	dy, errY := ParseDecimal(y)
	if errX != nil || errY != nil {
		return x == y
	}
	return dx.Equal(dy)
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid field %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
