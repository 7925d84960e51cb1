package domain

// IDSource produces a fresh identifier each time it is called.
type IDSource func() string

// Keyed is an entry of an ordered sub-collection with a unique key.
type Keyed interface {
	EntryID() string
}

// Entry is a Keyed value that can be stamped with a new id.
type Entry[E any] interface {
	Keyed
	WithID(id string) E
}

// InsertFront stamps e with a fresh id and prepends it, so the sequence stays
// newest-first. The input slice is not modified. The stamped entry is returned
// alongside the new sequence.
func InsertFront[E Entry[E]](seq []E, e E, next IDSource) ([]E, E) {
	e = e.WithID(next())
	out := make([]E, 0, len(seq)+1)
	out = append(out, e)
	out = append(out, seq...)
	return out, e
}

// RemoveByID deletes the first entry whose id matches, preserving the order of
// the rest. When nothing matches the original slice is returned untouched and
// removed is false.
func RemoveByID[E Keyed](seq []E, id string) ([]E, bool) {
	i := IndexOf(seq, id)
	if i < 0 {
		return seq, false
	}
	out := make([]E, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	out = append(out, seq[i+1:]...)
	return out, true
}

// IndexOf returns the position of the entry with the given id, or -1.
func IndexOf[E Keyed](seq []E, id string) int {
	for i := range seq {
		if seq[i].EntryID() == id {
			return i
		}
	}
	return -1
}
