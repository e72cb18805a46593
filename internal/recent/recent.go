// Package recent keeps the short most-recent-first history of searched cities.
package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	MaxCities  = 5
	StorageKey = "recentCities"
)

// Store is a flat key-value store holding string values.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type List []string

// Add returns a new list with city at the front. An existing entry that
// matches case-insensitively is dropped first, and the list is capped at
// MaxCities.
func (l List) Add(city string) List {
	out := make(List, 0, MaxCities)
	out = append(out, city)
	for _, c := range l {
		if strings.EqualFold(c, city) {
			continue
		}
		out = append(out, c)
	}
	if len(out) > MaxCities {
		out = out[:MaxCities]
	}
	return out
}

// normalize restores the List invariants on a value written by someone else:
// the first occurrence of a city wins, blanks are dropped, and the list is
// capped at MaxCities.
func (l List) normalize() List {
	out := List{}
	for i := len(l) - 1; i >= 0; i-- {
		if strings.TrimSpace(l[i]) == "" {
			continue
		}
		out = out.Add(l[i])
	}
	return out
}

// Load reads the persisted list. found is false when nothing was stored yet.
func Load(ctx context.Context, s Store) (l List, found bool, err error) {
	raw, ok, err := s.Get(ctx, StorageKey)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	return l.normalize(), true, nil
}

func Save(ctx context.Context, s Store, l List) error {
	if l == nil {
		l = List{}
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return s.Set(ctx, StorageKey, string(raw))
}
