package roots

// Priority is the fixed sequence of privileged top-level namespace roots
// recognized by the priority-aware comparer. Lower index = higher sort
// priority. Immutable and shared process-wide.
var Priority = []string{
	"System",
	"Microsoft",
	"Windows",
	"Xamarin",
}

// Index returns the priority position of a root identifier, or -1 when
// the root is not privileged.
func Index(root string) int {
	for i, r := range Priority {
		if r == root {
			return i
		}
	}
	return -1
}
