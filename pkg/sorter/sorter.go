package sorter

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/siyuan-infoblox/import-order/pkg/compare"
	"github.com/siyuan-infoblox/import-order/pkg/pattern"
)

// Group is one ordered bucket of directives in the final output. Groups
// appear in ascending Order; an ungrouped-wildcard fallback produces one
// singleton Group per unmatched directive, all sharing the wildcard
// order.
type Group struct {
	Order      int
	Directives []string
}

// Sorter applies a parsed ordering table and the token comparer to a
// list of import directive paths.
type Sorter struct {
	table *pattern.Table
}

// New creates a Sorter over a validated ordering table
func New(table *pattern.Table) *Sorter {
	return &Sorter{table: table}
}

// bucketKey separates groups sharing the wildcard order: for an
// ungrouped wildcard every unmatched path keys its own singleton bucket.
type bucketKey struct {
	order     int
	singleton string
}

// Sort classifies each directive path through the table, orders the
// resulting groups, and orders directives within each group by the
// priority-aware per-segment comparison. Duplicate and blank paths are
// dropped.
func (s *Sorter) Sort(paths []string) []Group {
	seen := make(map[string]bool)
	buckets := make(map[bucketKey][]string)

	ungroupedFallback := !s.table.GroupUnmatched()
	for _, raw := range paths {
		path := strings.TrimSpace(raw)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		order, _ := s.table.Classify(path)

		key := bucketKey{order: order}
		if ungroupedFallback && order == s.table.WildcardOrder() {
			key.singleton = path
		}
		buckets[key] = append(buckets[key], path)
	}

	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].order != keys[j].order {
			return keys[i].order < keys[j].order
		}
		return ComparePaths(keys[i].singleton, keys[j].singleton) < 0
	})

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		directives := buckets[key]
		sort.Slice(directives, func(i, j int) bool {
			return ComparePaths(directives[i], directives[j]) < 0
		})
		groups = append(groups, Group{Order: key.order, Directives: directives})
	}

	log.Debug().
		Int("directives", len(seen)).
		Int("groups", len(groups)).
		Msg("sorted directives")

	return groups
}

// ComparePaths orders two dotted directive paths segment by segment. The
// root segment uses the priority-aware comparer; deeper segments use the
// base comparison. A path that is a strict prefix of another sorts first.
func ComparePaths(a, b string) int {
	as := strings.Split(a, pattern.Delimiter)
	bs := strings.Split(b, pattern.Delimiter)

	for i := 0; i < len(as) && i < len(bs); i++ {
		ta := compare.Token{Text: as[i], Root: i == 0}
		tb := compare.Token{Text: bs[i], Root: i == 0}
		if r := compare.Tokens(ta, tb, true); r != 0 {
			return r
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}
