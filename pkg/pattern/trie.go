package pattern

// Trie is a prefix tree over dotted path segments. Built once from a
// validated table and immutable afterwards, so concurrent lookups need
// no locking.
type Trie struct {
	root          *node
	fallbackOrder int
}

// node represents one dotted segment. Children are owned exclusively by
// their parent and searched linearly: the fan-out of namespace segments
// is small enough that a map buys nothing.
type node struct {
	segment  string
	children []*node
	terminal bool
	order    int
}

func (n *node) find(segment string) *node {
	for _, c := range n.children {
		if c.segment == segment {
			return c
		}
	}
	return nil
}

func (n *node) findOrCreate(segment string) *node {
	if c := n.find(segment); c != nil {
		return c
	}
	c := &node{segment: segment}
	n.children = append(n.children, c)
	return c
}

// BuildTrie builds the lookup trie for an already-validated table.
// Distinct patterns may share a node prefix (System.IO and
// System.Collections share the System node); only the node at which a
// full pattern ends is terminal.
func BuildTrie(t *Table) *Trie {
	tr := &Trie{
		root:          &node{},
		fallbackOrder: t.wildcardOrder,
	}

	for _, p := range t.patterns {
		if p.Wildcard {
			continue
		}
		n := tr.root
		for _, segment := range p.Segments {
			n = n.findOrCreate(segment)
		}
		n.terminal = true
		n.order = p.Order
	}

	return tr
}

// Lookup walks the trie consuming one segment at a time and returns the
// order of the deepest terminal node reached, longest-prefix-wins, along
// with how many segments that pattern spans. A walk that reaches no
// terminal node returns the wildcard order with a matched length of zero.
func (tr *Trie) Lookup(segments []string) (order, matchedLen int) {
	order = tr.fallbackOrder
	matchedLen = 0

	n := tr.root
	for depth, segment := range segments {
		next := n.find(segment)
		if next == nil {
			break
		}
		if next.terminal {
			order = next.order
			matchedLen = depth + 1
		}
		n = next
	}

	return order, matchedLen
}
