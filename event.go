package dirwatch

// Event is a single translated filesystem mutation. Events are created per
// raw notification and handed straight to listeners; nothing retains them.
type Event struct {
	// Kind is the semantic mutation type.
	Kind Kind

	// Path is the absolute path of the entry that changed, resolved against
	// the watched directory.
	Path string

	// Directory is the watched directory the notification originated from.
	Directory *Directory
}

// RawOp is the mutation type reported by a notification Source.
type RawOp int

const (
	// RawCreate reports a new directory entry.
	RawCreate RawOp = iota
	// RawDelete reports a removed directory entry.
	RawDelete
	// RawModify reports a changed directory entry.
	RawModify
	// RawOverflow reports that the source dropped one or more events.
	// It carries no name.
	RawOverflow
)

// String returns a human-readable representation of the raw operation.
func (op RawOp) String() string {
	switch op {
	case RawCreate:
		return "create"
	case RawDelete:
		return "delete"
	case RawModify:
		return "modify"
	case RawOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// RawEvent is an untranslated notification. Name is relative to the
// directory the handle was registered for.
type RawEvent struct {
	Op   RawOp
	Name string
}

// kindOf maps a raw operation to its semantic kind. Overflow has none.
func kindOf(op RawOp) (Kind, bool) {
	switch op {
	case RawCreate:
		return Created, true
	case RawDelete:
		return Deleted, true
	case RawModify:
		return Modified, true
	default:
		return 0, false
	}
}
