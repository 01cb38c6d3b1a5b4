package pattern

import (
	"strings"
	"sync"
	"unicode"

	"github.com/siyuan-infoblox/import-order/pkg/errors"
)

// Grammar constants. Fixed by the grammar, not user-configurable.
const (
	Separator = ";"
	Delimiter = "."
	Wildcard  = "*"

	// Ungrouped matches any otherwise-unmatched path and keeps each match
	// as its own singleton group; Grouped merges all matches into one
	// trailing group.
	Ungrouped = "*"
	Grouped   = "**"
)

// Pattern is one accepted group of the ordering specification
type Pattern struct {
	Text     string   // literal group text as declared
	Segments []string // delimiter-split segments, nil for wildcard groups
	Order    int      // zero-based declaration index; smaller sorts first
	Wildcard bool
}

// Table is the validated, ordered set of pattern groups parsed from one
// ordering specification. Immutable after Parse returns; safe for
// unlimited concurrent Classify calls.
type Table struct {
	patterns       []Pattern
	orders         map[string]int
	wildcardOrder  int
	groupUnmatched bool

	buildOnce sync.Once
	trie      *Trie
}

// Patterns returns the accepted pattern groups in declaration order,
// including the synthesized trailing wildcard when one was added.
func (t *Table) Patterns() []Pattern {
	return t.patterns
}

// WildcardOrder returns the order assigned to the wildcard group,
// explicit or synthesized.
func (t *Table) WildcardOrder() int {
	return t.wildcardOrder
}

// GroupUnmatched reports whether unmatched paths collapse into one
// trailing group (grouped wildcard) rather than forming singleton groups
// (ungrouped wildcard).
func (t *Table) GroupUnmatched() bool {
	return t.groupUnmatched
}

// Parse validates an ordering specification and assigns each accepted
// group its declaration order. Rejection is wholesale: any invalid group
// fails the entire specification.
func Parse(configText string) (*Table, error) {
	t := &Table{
		orders:        make(map[string]int),
		wildcardOrder: -1,
	}

	sawWildcard := false
	order := 0

	for _, raw := range strings.Split(configText, Separator) {
		group := strings.TrimSpace(raw)
		if group == "" {
			return nil, errors.NewParse(errors.CodeEmptyGroup, errors.ErrMsgEmptyGroup, raw)
		}

		switch group {
		case Ungrouped, Grouped:
			if sawWildcard {
				return nil, errors.NewParse(errors.CodeDuplicateWildcard, errors.ErrMsgDuplicateWildcard, group)
			}
			sawWildcard = true
			t.wildcardOrder = order
			t.groupUnmatched = group == Grouped
			t.orders[group] = order
			t.patterns = append(t.patterns, Pattern{Text: group, Order: order, Wildcard: true})
		default:
			segments, err := splitGroup(group)
			if err != nil {
				return nil, err
			}
			if _, dup := t.orders[group]; dup {
				return nil, errors.NewParse(errors.CodeDuplicatePattern, errors.ErrMsgDuplicatePattern, group)
			}
			t.orders[group] = order
			t.patterns = append(t.patterns, Pattern{Text: group, Segments: segments, Order: order})
		}
		order++
	}

	// No explicit wildcard: synthesize a grouped wildcard with the lowest
	// priority so every path still classifies somewhere.
	if !sawWildcard {
		t.wildcardOrder = order
		t.groupUnmatched = true
		t.orders[Grouped] = order
		t.patterns = append(t.patterns, Pattern{Text: Grouped, Order: order, Wildcard: true})
	}

	return t, nil
}

// splitGroup validates a literal (non-wildcard) group and splits it into
// segments. The group text arrives already trimmed.
func splitGroup(group string) ([]string, error) {
	if strings.Contains(group, Wildcard) {
		return nil, errors.NewParse(errors.CodeMalformedSegment, errors.ErrMsgEmbeddedWildcard, group)
	}
	if strings.IndexFunc(group, unicode.IsSpace) >= 0 {
		return nil, errors.NewParse(errors.CodeMalformedSegment, errors.ErrMsgEmbeddedWhitespace, group)
	}
	if strings.HasPrefix(group, Delimiter) || strings.HasSuffix(group, Delimiter) {
		return nil, errors.NewParse(errors.CodeBadDelimiter, errors.ErrMsgEdgeDelimiter, group)
	}

	segments := strings.Split(group, Delimiter)
	for _, segment := range segments {
		if segment == "" {
			return nil, errors.NewParse(errors.CodeMalformedSegment, errors.ErrMsgDoubledDelimiter, group)
		}
	}
	return segments, nil
}

// Classify resolves a dotted namespace path to its group order. The
// second result reports whether the path fell through to a grouped
// wildcard, collapsing it into the shared trailing group; it is false
// for literal matches and for ungrouped-wildcard fallback.
func (t *Table) Classify(dottedPath string) (int, bool) {
	t.buildOnce.Do(func() {
		t.trie = BuildTrie(t)
	})

	order, matched := t.trie.Lookup(strings.Split(dottedPath, Delimiter))
	if matched == 0 {
		return order, t.groupUnmatched
	}
	return order, false
}
