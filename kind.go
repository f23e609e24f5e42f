package dirwatch

// Kind is the semantic type of a filesystem mutation delivered to listeners.
// The set is closed: overflow notifications never become a Kind.
type Kind int

const (
	// Created indicates a new entry appeared in a watched directory.
	Created Kind = iota
	// Deleted indicates an entry was removed from (or renamed out of) a
	// watched directory.
	Deleted
	// Modified indicates the content of an existing entry changed.
	Modified
)

const kindCount = int(Modified) + 1

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	return []Kind{Created, Deleted, Modified}
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

func (k Kind) valid() bool {
	return k >= Created && k <= Modified
}
