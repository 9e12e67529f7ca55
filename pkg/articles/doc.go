// Package articles defines the in-memory representation of a supplier
// catalog entry as it is exchanged with the Foodsoft ordering platform.
//
// An Article is built fresh on every run from the supplier import. Snapshots
// of the platform and of the previous run are decoded into the same type and
// compared field by field through the closed Field set, so every comparison
// the reconciler performs is checked at compile time.
//
// Example usage:
//
//	a := articles.New("4711", "Hafermilch", "1 l", decimal.RequireFromString("1.49"),
//	    articles.WithManufacturer("Oatly"),
//	    articles.WithVAT(decimal.NewFromInt(7)),
//	)
//	price := articles.FieldPriceNet.Get(&a) // "1.49"
package articles
