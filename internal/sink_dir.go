package internal

import (
	"errors"
	"os"
	"path/filepath"
)

// DirSink writes artifacts as JSON files into a directory
type DirSink struct {
	dir string
}

// NewDirSink creates a DirSink for dir
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the output directory
func (s *DirSink) Dir() string {
	return s.dir
}

// IndexPath returns the path of index.json
func (s *DirSink) IndexPath() string {
	return filepath.Join(s.dir, IndexFileName)
}

// DayPath returns the path of a day artifact
func (s *DirSink) DayPath(day string) string {
	return filepath.Join(s.dir, DayFileName(day))
}

// Reset creates the directory and removes the index and day files of an earlier run.
func (s *DirSink) Reset() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &StorageError{Path: s.dir, Op: "mkdir", Err: err}
	}

	stale, err := filepath.Glob(filepath.Join(s.dir, "day-*.json"))
	if err != nil {
		return &StorageError{Path: s.dir, Op: "glob", Err: err}
	}
	stale = append(stale, s.IndexPath())
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return &StorageError{Path: path, Op: "remove", Err: err}
		}
	}
	if len(stale) > 1 {
		LogDebug("Removed %d day file(s) from previous run", len(stale)-1)
	}
	return nil
}

// WriteDay writes day-<day>.json
func (s *DirSink) WriteDay(day *DayFile) error {
	path := s.DayPath(day.Day)
	data, err := EncodeDay(day)
	if err != nil {
		return &ExportError{Format: "json", Path: path, Err: err}
	}
	return writeFileAtomic(path, data)
}

// WriteIndex writes index.json
func (s *DirSink) WriteIndex(index *Index) error {
	path := s.IndexPath()
	data, err := EncodeIndex(index)
	if err != nil {
		return &ExportError{Format: "json", Path: path, Err: err}
	}
	return writeFileAtomic(path, data)
}

// LoadIndex reads index.json back. ErrNoIndex is returned when it does not exist.
func (s *DirSink) LoadIndex() (*Index, error) {
	data, err := s.ReadIndex()
	if err != nil {
		return nil, err
	}
	index, err := DecodeIndex(data)
	if err != nil {
		return nil, &ParseError{Source: s.IndexPath(), Key: "document", Err: err}
	}
	return index, nil
}

// ReadIndex returns the raw bytes of index.json.
func (s *DirSink) ReadIndex() ([]byte, error) {
	data, err := os.ReadFile(s.IndexPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoIndex
	}
	if err != nil {
		return nil, &StorageError{Path: s.IndexPath(), Op: "read", Err: err}
	}
	return data, nil
}

// LoadDay reads one day artifact back.
func (s *DirSink) LoadDay(day string) (*DayFile, error) {
	data, err := s.ReadDay(day)
	if err != nil {
		return nil, err
	}
	d, err := DecodeDay(data)
	if err != nil {
		return nil, &ParseError{Source: s.DayPath(day), Key: "document", Err: err}
	}
	return d, nil
}

// ReadDay returns the raw bytes of one day artifact. ErrDayNotFound is returned
// for unknown or malformed day tokens.
func (s *DirSink) ReadDay(day string) ([]byte, error) {
	if !ValidDay(day) {
		return nil, ErrDayNotFound
	}
	data, err := os.ReadFile(s.DayPath(day))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, &StorageError{Path: s.DayPath(day), Op: "read", Err: err}
	}
	return data, nil
}

// writeFileAtomic writes through a temporary file so readers never see a partial artifact.
func writeFileAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return &StorageError{Path: tmpFile, Op: "create", Err: err}
	}

	if _, err = file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return &StorageError{Path: tmpFile, Op: "write", Err: err}
	}

	if err = file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return &StorageError{Path: tmpFile, Op: "sync", Err: err}
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return &StorageError{Path: tmpFile, Op: "close", Err: err}
	}

	if err = os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return &StorageError{Path: path, Op: "rename", Err: err}
	}
	return nil
}
