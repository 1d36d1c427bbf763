package domain

import "strings"

// OwnedAssetSet keeps purchase order and never holds duplicates.
type OwnedAssetSet struct {
	ids  []string
	seen map[string]struct{}
}

func NewOwnedAssetSet(ids ...string) OwnedAssetSet {
	set := OwnedAssetSet{}
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Add reports whether id was not owned before.
func (s *OwnedAssetSet) Add(id string) bool {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return false
	}
	if s.seen == nil {
		s.seen = map[string]struct{}{}
	}
	if _, ok := s.seen[trimmed]; ok {
		return false
	}
	s.seen[trimmed] = struct{}{}
	s.ids = append(s.ids, trimmed)
	return true
}

func (s OwnedAssetSet) Has(id string) bool {
	_, ok := s.seen[strings.TrimSpace(id)]
	return ok
}

func (s OwnedAssetSet) Len() int {
	return len(s.ids)
}

func (s OwnedAssetSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
