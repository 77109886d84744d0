package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"studiocal/internal/calendar"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

// FileStore keeps courses as JSON arrays, one file per month:
//
//	{dir}/{year}_{month}.json         admin portal snapshot
//	{dir}/manual/{year}_{month}.json  entries added through the form
//
// Writes go through a temp file and rename so readers never see a partial
// file.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "./data"
	}
	return &FileStore{dir: dir}
}

// Dir returns the root directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func fileName(ym calendar.YearMonth) string {
	return fmt.Sprintf("%d_%d.json", ym.Year, int(ym.Month))
}

func (s *FileStore) adminPath(ym calendar.YearMonth) string {
	return filepath.Join(s.dir, fileName(ym))
}

func (s *FileStore) manualPath(ym calendar.YearMonth) string {
	return filepath.Join(s.dir, "manual", fileName(ym))
}

// LoadAdmin reads the admin snapshot for ym. A missing snapshot returns an
// error matching fs.ErrNotExist.
func (s *FileStore) LoadAdmin(ym calendar.YearMonth) ([]model.Course, error) {
	return load(s.adminPath(ym))
}

// SaveAdmin replaces the admin snapshot for ym.
func (s *FileStore) SaveAdmin(ym calendar.YearMonth, courses []model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(s.adminPath(ym), courses)
}

// LoadManual reads manual entries for ym. A missing file yields no entries.
func (s *FileStore) LoadManual(ym calendar.YearMonth) ([]model.Course, error) {
	courses, err := load(s.manualPath(ym))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return courses, err
}

// AppendManual adds entries to the end of ym's manual file.
func (s *FileStore) AppendManual(ym calendar.YearMonth, courses []model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.manualPath(ym)
	existing, err := load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	existing = append(existing, courses...)

	if err := save(path, existing); err != nil {
		return err
	}
	appLog.Info("manual entries saved", "month", ym.String(), "added", len(courses), "total", len(existing))
	return nil
}

func load(path string) ([]model.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var courses []model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}
	return courses, nil
}

func save(path string, courses []model.Course) error {
	if courses == nil {
		courses = []model.Course{}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".courses-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
