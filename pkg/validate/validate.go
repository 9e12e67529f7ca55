// Package validate enforces the limits the ordering platform puts on
// exported article fields.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/notify"
)

// Field labels used in notifications.
const (
	LabelOrderNumber  = "order number"
	LabelName         = "name"
	LabelNote         = "note"
	LabelManufacturer = "manufacturer"
	LabelOrigin       = "origin"
	LabelUnit         = "unit"
)

const overlongFormat = "Overlong article %s (%d characters) of article #%s (%s) registered, shortened to %d characters."

// unlimited fields are checked by the platform itself.
var unlimited = map[string]bool{
	LabelName: true,
	LabelUnit: true,
}

// String returns value adjusted for export as the given field of a.
//
// Every field except name and unit is limited to constants.MaxFieldLength
// characters; longer values are cut and end in constants.TruncationMarker.
// The CSV delimiter ';' is replaced by ',' in all fields.
func String(value, field string, a *articles.Article) (string, notify.List) {
	var notes notify.List

	if !unlimited[field] {
		if n := utf8.RuneCountInString(value); n > constants.MaxFieldLength {
			runes := []rune(value)
			keep := constants.MaxFieldLength - utf8.RuneCountInString(constants.TruncationMarker)
			value = string(runes[:keep]) + constants.TruncationMarker
			notes = notes.Add(notify.KindTruncated, a.OrderNumber, overlongFormat,
				field, n, a.OrderNumber, a.Name, utf8.RuneCountInString(value))
		}
	}

	return strings.ReplaceAll(value, ";", ","), notes
}

// Article validates the text fields of a in place and returns the
// notifications produced. Notifications name the article as it was before
// any adjustment.
func Article(a *articles.Article) notify.List {
	ref := *a
	var notes notify.List

	for _, f := range []struct {
		label string
		value *string
	}{
		{LabelOrderNumber, &a.OrderNumber},
		{LabelName, &a.Name},
		{LabelNote, &a.Note},
		{LabelManufacturer, &a.Manufacturer},
		{LabelOrigin, &a.Origin},
		{LabelUnit, &a.Unit},
	} {
		adjusted, n := String(*f.value, f.label, &ref)
		*f.value = adjusted
		notes = notes.Append(n)
	}
	// OrigUnit ends up in names built by duplicate resolution.
	a.OrigUnit = strings.ReplaceAll(a.OrigUnit, ";", ",")
	return notes
}

// Articles validates every article of list in place.
func Articles(list []articles.Article) notify.List {
	var notes notify.List
	for i := range list {
		notes = notes.Append(Article(&list[i]))
	}
	return notes
}
