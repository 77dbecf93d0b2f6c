package cache

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DirName is the cache directory created under the user's home.
const DirName = ".gitcache"

// tempSuffix marks in-progress writes from Save.
const tempSuffix = ".gitstatus-tmp"

// ErrInvalidProject is returned for project names that cannot be used as a
// file name inside the cache directory.
var ErrInvalidProject = errors.New("invalid project name")

// ErrNotCached is returned when a project has no cache file.
var ErrNotCached = errors.New("project is not cached")

// DefaultDir returns ~/.gitcache.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Store reads and writes cache files in one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. An empty dir means DefaultDir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the cache file path for project.
func (s *Store) Path(project string) string {
	return filepath.Join(s.dir, project)
}

func validateProject(project string) error {
	if project == "" || project == "." || project == ".." ||
		strings.ContainsAny(project, `/\`) || strings.HasSuffix(project, tempSuffix) {
		return fmt.Errorf("%w: %q", ErrInvalidProject, project)
	}
	return nil
}

// Load reads the cached record for project.
//
// A missing file returns (nil, nil). So does a file that does not hold a
// complete record (fewer than four lines or a non-numeric index mtime),
// which happens when a concurrent writer is mid-write or the file was
// written by something else. Other I/O failures return an error; callers
// treat those as absent as well.
func (s *Store) Load(project string) (*Record, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path(project))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat cache file: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	r, ok := unmarshalRecord(lines)
	if !ok {
		return nil, nil
	}
	r.ModTime = info.ModTime()
	return &r, nil
}

// Save writes r as the cached record for project, creating the cache
// directory if needed. The file is written to a temporary name and renamed
// into place. r.ModTime is ignored; the file system sets it.
func (s *Store) Save(project string, r Record) error {
	if err := validateProject(project); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, project+".*"+tempSuffix)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(r.marshal()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path(project)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Remove deletes the cache file for project.
func (s *Store) Remove(project string) error {
	if err := validateProject(project); err != nil {
		return err
	}
	if err := os.Remove(s.Path(project)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotCached, project)
		}
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// Entry describes one cache file for listing.
type Entry struct {
	Project string
	Path    string
	ModTime time.Time
	Record  *Record // nil if the file does not hold a complete record
}

// Projects returns the names of all cached projects, sorted.
// A missing cache directory yields no projects.
func (s *Store) Projects() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var projects []string
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), tempSuffix) {
			continue
		}
		projects = append(projects, e.Name())
	}
	slices.Sort(projects)
	return projects, nil
}

// List loads every cached project.
func (s *Store) List() ([]Entry, error) {
	projects, err := s.Projects()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(projects))
	for _, p := range projects {
		e := Entry{Project: p, Path: s.Path(p)}
		if info, err := os.Stat(e.Path); err == nil {
			e.ModTime = info.ModTime()
		}
		// Unreadable files are listed without a record
		e.Record, _ = s.Load(p)
		entries = append(entries, e)
	}
	return entries, nil
}

// Clear removes all cache files and returns how many were removed.
func (s *Store) Clear() (int, error) {
	projects, err := s.Projects()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, p := range projects {
		if err := s.Remove(p); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
