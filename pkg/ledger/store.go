package ledger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Keys of a supplier segment in the configuration document.
const (
	KeyManualChanges = "manual changes"
	KeyLastExport    = "last export"
	KeyLastRun       = "last run"
	KeyLastRunID     = "last run id"
)

// Segment is the part of the configuration document that belongs to one
// supplier. Keys other than the ones this package manages are kept as-is.
type Segment struct {
	Supplier string

	// ManualChanges is the supplier's ledger.
	ManualChanges *Ledger

	// LastExport is the file name of the CSV written by the last run.
	LastExport string

	// LastRun is when the last run committed.
	LastRun time.Time

	// LastRunID identifies the last run in logs.
	LastRunID string

	extra map[string]json.RawMessage
}

// NewSegment creates an empty segment for a supplier.
func NewSegment(supplier string) *Segment {
	return &Segment{
		Supplier:      supplier,
		ManualChanges: New(),
		extra:         make(map[string]json.RawMessage),
	}
}

// Extra returns a key of the segment that this package does not manage.
func (s *Segment) Extra(key string) (json.RawMessage, bool) {
	raw, ok := s.extra[key]
	return raw, ok
}

// Store reads and writes the configuration document: one JSON object keyed
// by supplier name.
//
// The document is read in full and written back in full. Saves are atomic
// (write to a temporary file, then rename) but there is no locking: only
// one process may run for a given document at a time.
type Store struct {
	path string
}

// NewStore creates a store for the document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Suppliers returns the supplier names present in the document.
func (s *Store) Suppliers() ([]string, error) {
	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the segment of a supplier. A missing document or a missing
// supplier yields an empty segment; a malformed document is an error.
func (s *Store) Load(supplier string) (*Segment, error) {
	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	seg := NewSegment(supplier)
	raw, ok := doc[supplier]
	if !ok {
		return seg, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.NewConfigError("ledger", "segment of supplier "+supplier+" is not an object", err)
	}

	for key, value := range fields {
		switch key {
		case KeyManualChanges:
			if err := json.Unmarshal(value, seg.ManualChanges); err != nil {
				return nil, err
			}
		case KeyLastExport:
			if err := json.Unmarshal(value, &seg.LastExport); err != nil {
				return nil, errors.NewConfigError("ledger", KeyLastExport+" must be a string", err)
			}
		case KeyLastRun:
			if err := json.Unmarshal(value, &seg.LastRun); err != nil {
				return nil, errors.NewConfigError("ledger", KeyLastRun+" must be an RFC 3339 time", err)
			}
		case KeyLastRunID:
			if err := json.Unmarshal(value, &seg.LastRunID); err != nil {
				return nil, errors.NewConfigError("ledger", KeyLastRunID+" must be a string", err)
			}
		default:
			seg.extra[key] = value
		}
	}
	return seg, nil
}

// Save writes the segment back into the document, leaving the segments of
// other suppliers untouched.
func (s *Store) Save(seg *Segment) error {
	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	fields := make(map[string]any, len(seg.extra)+4)
	for key, value := range seg.extra {
		fields[key] = value
	}
	changes := seg.ManualChanges
	if changes == nil {
		changes = New()
	}
	fields[KeyManualChanges] = changes
	if seg.LastExport != "" {
		fields[KeyLastExport] = seg.LastExport
	}
	if !seg.LastRun.IsZero() {
		fields[KeyLastRun] = seg.LastRun.UTC()
	}
	if seg.LastRunID != "" {
		fields[KeyLastRunID] = seg.LastRunID
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return errors.WrapParse("json", s.path, err)
	}
	doc[seg.Supplier] = raw

	return s.writeDocument(doc)
}

func (s *Store) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]json.RawMessage), nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConfigError("ledger", s.path+" is not a JSON object", err)
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}
	return doc, nil
}

func (s *Store) writeDocument(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.WrapParse("json", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".config_*.json")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", tempPath, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", tempPath, err)
	}

	// Atomically move temp file to final location
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("rename", s.path, err)
	}
	return nil
}
