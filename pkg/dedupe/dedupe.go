// Package dedupe gives every article of an export a name that is unique
// within the export and that a person can still tell apart on a printed
// order list.
//
// Foodsoft rejects uploads with duplicate article names. Names are compared
// after Unicode case folding and removal of all whitespace, so "Rote Linsen"
// and "rotelinsen" collide. Colliding articles are told apart by, in this
// order, their original unit, their manufacturer, their origin, and finally a
// running number.
package dedupe

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/agentstation/foodsync/pkg/articles"
)

// Pass identifies the rule that produced a rename.
type Pass int

// Passes in the order they run.
const (
	PassUnit Pass = iota + 1
	PassManufacturer
	PassOrigin
	PassNumber
)

// String returns the name of the pass.
func (p Pass) String() string {
	switch p {
	case PassUnit:
		return "unit"
	case PassManufacturer:
		return "manufacturer"
	case PassOrigin:
		return "origin"
	case PassNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Rename records one applied name change.
type Rename struct {
	Index       int    `json:"index" yaml:"index"` // Position in the resolved slice
	OrderNumber string `json:"order_number" yaml:"order_number"`
	From        string `json:"from" yaml:"from"`
	To          string `json:"to" yaml:"to"`
	Pass        Pass   `json:"pass" yaml:"pass"`
}

// discriminator selects the attribute a pass uses and how it is rendered
// as a suffix.
type discriminator struct {
	pass   Pass
	value  func(*articles.Article) string
	prefix string
}

var discriminators = []discriminator{
	{pass: PassUnit, value: func(a *articles.Article) string { return a.OrigUnit }},
	{pass: PassManufacturer, value: func(a *articles.Article) string { return a.Manufacturer }, prefix: "von "},
	{pass: PassOrigin, value: func(a *articles.Article) string { return a.Origin }, prefix: "aus "},
}

// Resolve renames colliding articles in place and returns the renames in
// the order they were applied. Callers pass only articles that will be
// exported; ignored articles must be removed beforehand.
func Resolve(list []articles.Article) []Rename {
	k := newKeyer()
	var renames []Rename

	for _, d := range discriminators {
		renames = append(renames, k.apply(list, k.discriminate(list, d), d.pass)...)
	}
	renames = append(renames, k.apply(list, k.number(list), PassNumber)...)

	return renames
}

// Duplicates returns the groups of indices whose names still collide.
// Groups are ordered by their first index.
func Duplicates(list []articles.Article) [][]int {
	k := newKeyer()
	var dups [][]int
	for _, group := range k.groups(list) {
		if len(group) > 1 {
			dups = append(dups, group)
		}
	}
	return dups
}

// Key returns the comparison key of a name: case folded, all whitespace
// removed.
func Key(name string) string {
	return newKeyer().key(name)
}

type keyer struct {
	caser cases.Caser
}

func newKeyer() *keyer {
	return &keyer{caser: cases.Fold()}
}

func (k *keyer) key(s string) string {
	folded := k.caser.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}

// groups partitions the indices of list by name key, keeping input order
// inside each group.
func (k *keyer) groups(list []articles.Article) [][]int {
	byKey := make(map[string][]int)
	var order []string
	for i := range list {
		key := k.key(list[i].Name)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], i)
	}

	out := make([][]int, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}

// discriminate computes the new names for one attribute pass. A member is
// renamed only if its attribute is set and not shared by the whole group.
func (k *keyer) discriminate(list []articles.Article, d discriminator) map[int]string {
	names := make(map[int]string)
	for _, group := range k.groups(list) {
		if len(group) < 2 {
			continue
		}

		counts := make(map[string]int, len(group))
		for _, i := range group {
			counts[k.key(d.value(&list[i]))]++
		}

		for _, i := range group {
			value := d.value(&list[i])
			if value == "" {
				continue
			}
			if counts[k.key(value)] == len(group) {
				continue
			}
			names[i] = list[i].Name + suffix(d.prefix+value)
		}
	}
	return names
}

// number appends the 1-based position within the group to every member of
// a group that still collides. If that would recreate a name already in
// use, numbering continues after the group size until a free name is found.
func (k *keyer) number(list []articles.Article) map[int]string {
	groups := k.groups(list)

	taken := make(map[string]bool, len(list))
	for _, group := range groups {
		if len(group) == 1 {
			taken[k.key(list[group[0]].Name)] = true
		}
	}

	names := make(map[int]string)
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		spare := len(group)
		for pos, i := range group {
			name := list[i].Name + suffix(strconv.Itoa(pos+1))
			for taken[k.key(name)] {
				spare++
				name = list[i].Name + suffix(strconv.Itoa(spare))
			}
			taken[k.key(name)] = true
			names[i] = name
		}
	}
	return names
}

// apply writes the computed names and reports them in index order.
func (k *keyer) apply(list []articles.Article, names map[int]string, pass Pass) []Rename {
	if len(names) == 0 {
		return nil
	}

	indices := make([]int, 0, len(names))
	for i := range names {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	renames := make([]Rename, 0, len(indices))
	for _, i := range indices {
		renames = append(renames, Rename{
			Index:       i,
			OrderNumber: list[i].OrderNumber,
			From:        list[i].Name,
			To:          names[i],
			Pass:        pass,
		})
		list[i].Name = names[i]
	}
	return renames
}

func suffix(s string) string {
	return " (" + s + ")"
}
