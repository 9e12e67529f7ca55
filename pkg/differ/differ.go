package differ

import (
	"sort"
	"strconv"

	"github.com/agentstation/foodsync/pkg/articles"
)

// Differ detects changes between two article lists.
type Differ struct {
	ignoreFields map[articles.Field]bool
	availability bool
}

// New creates a Differ that compares every article field and availability.
func New(opts ...Option) *Differ {
	d := &Differ{
		ignoreFields: make(map[articles.Field]bool),
		availability: true,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Articles compares two article lists keyed by order number. Only the
// first article with a given order number takes part in the comparison.
func (diff *Differ) Articles(existing, updated []articles.Article) *Changeset {
	changeset := &Changeset{
		Added:   []articles.Article{},
		Updated: []Update{},
		Removed: []articles.Article{},
	}

	existingIndex := articles.NewIndex(existing)
	updatedIndex := articles.NewIndex(updated)

	// Find added and updated articles
	for i, a := range updated {
		if updatedIndex[a.OrderNumber] != i {
			continue
		}
		if old := existingIndex.Lookup(existing, a.OrderNumber); old != nil {
			if update := diff.article(*old, a); update != nil {
				changeset.Updated = append(changeset.Updated, *update)
			}
		} else {
			changeset.Added = append(changeset.Added, a)
		}
	}

	// Find removed articles
	for i, a := range existing {
		if existingIndex[a.OrderNumber] != i {
			continue
		}
		if _, exists := updatedIndex[a.OrderNumber]; !exists {
			changeset.Removed = append(changeset.Removed, a)
		}
	}

	sortChangeset(changeset)
	changeset.Summary = calculateSummary(changeset)

	return changeset
}

// article compares two versions of an article and returns an update if
// they differ.
func (diff *Differ) article(existing, updated articles.Article) *Update {
	var changes []FieldChange

	for _, f := range articles.AllFields() {
		if diff.ignoreFields[f] {
			continue
		}
		oldValue, newValue := f.Get(&existing), f.Get(&updated)
		if f.Equal(oldValue, newValue) {
			continue
		}
		changes = append(changes, FieldChange{
			Field:    f.String(),
			OldValue: oldValue,
			NewValue: newValue,
			Type:     ChangeTypeUpdate,
		})
	}

	if diff.availability && existing.Available != updated.Available {
		changes = append(changes, FieldChange{
			Field:    "available",
			OldValue: strconv.FormatBool(existing.Available),
			NewValue: strconv.FormatBool(updated.Available),
			Type:     ChangeTypeUpdate,
		})
	}

	if len(changes) == 0 {
		return nil
	}

	return &Update{
		OrderNumber: updated.OrderNumber,
		Existing:    existing,
		New:         updated,
		Changes:     changes,
	}
}

func sortChangeset(c *Changeset) {
	sort.SliceStable(c.Added, func(i, j int) bool {
		return c.Added[i].OrderNumber < c.Added[j].OrderNumber
	})
	sort.SliceStable(c.Updated, func(i, j int) bool {
		return c.Updated[i].OrderNumber < c.Updated[j].OrderNumber
	})
	sort.SliceStable(c.Removed, func(i, j int) bool {
		return c.Removed[i].OrderNumber < c.Removed[j].OrderNumber
	})
}
