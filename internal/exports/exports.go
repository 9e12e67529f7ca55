// Package exports manages the output directory of generated article CSVs:
// output/<foodcoop>/<supplier>/<supplier><YYYY-MM-DD>_<N>.csv
package exports

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/articles/csvcodec"
	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Extension of export files.
const Extension = ".csv"

// Dir is the export directory of one supplier of one cooperative.
//
// Numbering only protects against overwriting earlier exports on the same
// machine; concurrent writers for the same supplier are not supported.
type Dir struct {
	root     string
	coop     string
	supplier string
}

// NewDir returns the export directory below root.
func NewDir(root, coop, supplier string) *Dir {
	return &Dir{root: root, coop: coop, supplier: supplier}
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return filepath.Join(d.root, d.coop, d.supplier)
}

// File returns the path of a file in the directory.
func (d *Dir) File(name string) string {
	return filepath.Join(d.Path(), name)
}

// List returns the export files in the directory, oldest first. Files are
// ordered by name, with the run number compared numerically so that _10
// follows _9. A missing directory yields an empty list.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.Path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("list", d.Path(), err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), Extension) {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool { return lessName(names[i], names[j]) })
	return names, nil
}

// Latest returns the newest export file name.
func (d *Dir) Latest() (string, bool, error) {
	names, err := d.List()
	if err != nil || len(names) == 0 {
		return "", false, err
	}
	return names[len(names)-1], true, nil
}

// Exists reports whether a file of the directory exists.
func (d *Dir) Exists(name string) bool {
	info, err := os.Stat(d.File(name))
	return err == nil && info.Mode().IsRegular()
}

// NextName returns the first unused file name for the given day.
func (d *Dir) NextName(day time.Time) string {
	base := d.supplier + day.Format(constants.TimeFormatFilename)
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s_%d%s", base, n, Extension)
		if _, err := os.Stat(d.File(name)); os.IsNotExist(err) {
			return name
		}
	}
}

// Write encodes list into a new export file for the given day and returns
// its name. An existing file is never overwritten.
func (d *Dir) Write(list []articles.Article, day time.Time) (string, error) {
	if err := os.MkdirAll(d.Path(), constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", d.Path(), err)
	}

	for {
		name := d.NextName(day)
		path := d.File(name)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePermissions)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errors.WrapIO("create", path, err)
		}

		if err := csvcodec.Write(file, list); err != nil {
			_ = file.Close()
			_ = os.Remove(path)
			return "", err
		}
		if err := file.Close(); err != nil {
			_ = os.Remove(path)
			return "", errors.WrapIO("close", path, err)
		}
		return name, nil
	}
}

// Read decodes an export file of the directory.
func (d *Dir) Read(name string) ([]articles.Article, error) {
	return ReadFile(d.File(name))
}

// ReadFile decodes a CSV or XLSX article file.
func ReadFile(path string) ([]articles.Article, error) {
	if strings.EqualFold(filepath.Ext(path), XLSXExtension) {
		return ReadXLSX(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = file.Close() }()

	list, err := csvcodec.Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return list, nil
}

// lessName orders export names by prefix, then by run number.
func lessName(a, b string) bool {
	pa, na := splitName(a)
	pb, nb := splitName(b)
	if pa != pb {
		return pa < pb
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

// splitName splits "<prefix>_<n>.csv" into prefix and n. Names without a
// run number get -1.
func splitName(name string) (string, int) {
	stem := strings.TrimSuffix(name, Extension)
	i := strings.LastIndexByte(stem, '_')
	if i < 0 {
		return stem, -1
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil {
		return stem, -1
	}
	return stem[:i], n
}
