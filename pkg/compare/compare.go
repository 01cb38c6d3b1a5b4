package compare

import (
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/siyuan-infoblox/import-order/pkg/roots"
)

// Token is one identifier segment of an import directive.
type Token struct {
	Text string
	// Root marks the first identifier segment immediately following the
	// import keyword, the only position where priority roots apply.
	Root bool
}

// Comparer is a total ordering over directive tokens. The two singleton
// strategies are stateless and freely shared across concurrent sorts.
type Comparer struct {
	specialCaseRoots bool
}

var (
	// Normal applies only the two-pass base comparison.
	Normal = &Comparer{}
	// Priority additionally ranks privileged namespace roots ahead of
	// everything else when both tokens are in root position.
	Priority = &Comparer{specialCaseRoots: true}
)

// Collators and transformer chains keep internal buffers, so they
// cannot be shared across concurrent Compare calls; pool them instead.
var (
	loosePool = sync.Pool{New: func() interface{} {
		return collate.New(language.Und, collate.Loose)
	}}
	casedPool = sync.Pool{New: func() interface{} {
		return collate.New(language.Und)
	}}
	// foldPool transformers strip diacritic marks and compatibility
	// width variants while preserving case: NFKD decomposition, drop
	// nonspacing marks, recompose.
	foldPool = sync.Pool{New: func() interface{} {
		return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}}
)

// Tokens compares two directive tokens, optionally special-casing
// privileged namespace roots. Never fails: every token pair yields a
// decisive ordering.
func Tokens(a, b Token, specialCaseRoots bool) int {
	if specialCaseRoots {
		return Priority.Compare(a, b)
	}
	return Normal.Compare(a, b)
}

// Compare returns -1, 0 or 1 ordering a against b.
func (c *Comparer) Compare(a, b Token) int {
	if a == b {
		return 0
	}

	at := Normalize(a.Text)
	bt := Normalize(b.Text)

	if c.specialCaseRoots && a.Root && b.Root {
		if r, decided := compareRoots(at, bt); decided {
			return r
		}
	}

	return compareText(at, bt)
}

// compareRoots ranks tokens by their position in the priority list. A
// privileged root outranks any unprivileged one; two privileged roots
// rank by list index. When neither is privileged the decision falls
// through to the base comparison.
func compareRoots(a, b string) (int, bool) {
	ia := roots.Index(a)
	ib := roots.Index(b)

	switch {
	case ia < 0 && ib < 0:
		return 0, false
	case ia < 0:
		return 1, true
	case ib < 0:
		return -1, true
	case ia < ib:
		return -1, true
	case ia > ib:
		return 1, true
	}
	return 0, true
}

// compareText is the two-pass base comparison. Pass 1 ignores case,
// diacritics and width so related spellings group together; a pass-1 tie
// between distinct texts is broken by a case-sensitive second pass that
// stays diacritic- and width-insensitive. The collate ignore options
// alone cannot express that pass (IgnoreDiacritics without IgnoreCase
// leaves the collator fully sensitive), so the texts are folded first
// and then compared case-sensitively.
func compareText(a, b string) int {
	if a == b {
		return 0
	}

	loose := loosePool.Get().(*collate.Collator)
	r := loose.CompareString(a, b)
	loosePool.Put(loose)
	if r != 0 {
		return r
	}

	cased := casedPool.Get().(*collate.Collator)
	r = cased.CompareString(foldMarks(a), foldMarks(b))
	casedPool.Put(cased)
	return r
}

// foldMarks removes diacritic marks and width variants while keeping
// case intact. Fold failures keep the text verbatim.
func foldMarks(s string) string {
	t := foldPool.Get().(transform.Transformer)
	folded, _, err := transform.String(t, s)
	foldPool.Put(t)
	if err != nil {
		return s
	}
	return folded
}

// Normalize resolves \uXXXX and \UXXXXXXXX identifier escapes so that
// alternate source spellings of the same identifier compare equal.
// Unresolvable escapes are kept verbatim.
func Normalize(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	rest := text
	for rest != "" {
		if rest[0] == '\\' && len(rest) > 1 && (rest[1] == 'u' || rest[1] == 'U') {
			if r, _, tail, err := strconv.UnquoteChar(rest, 0); err == nil {
				b.WriteRune(r)
				rest = tail
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(rest)
		b.WriteRune(r)
		rest = rest[size:]
	}

	return b.String()
}
