package cache

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// Find returns cached project names matching query, best match first.
// An exact name match is returned alone; otherwise names are ranked by
// fuzzy match score.
func (s *Store) Find(query string) ([]string, error) {
	projects, err := s.Projects()
	if err != nil {
		return nil, err
	}
	if slices.Contains(projects, query) {
		return []string{query}, nil
	}

	matches := fuzzy.Find(query, projects)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Str
	}
	return names, nil
}
