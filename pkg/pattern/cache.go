package pattern

import "sync"

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Table)
)

// CachedTable parses an ordering specification, memoizing the result
// process-wide by specification text. Inserts are idempotent: a race
// that parses the same text twice keeps the first table, and both are
// interchangeable anyway since parsing is deterministic. Rejected
// specifications are not cached.
func CachedTable(configText string) (*Table, error) {
	cacheMu.RLock()
	t, ok := cache[configText]
	cacheMu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := Parse(configText)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	if existing, ok := cache[configText]; ok {
		t = existing
	} else {
		cache[configText] = t
	}
	cacheMu.Unlock()

	return t, nil
}
