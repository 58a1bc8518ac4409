package repository

import "github.com/google/uuid"

// KeyKind tags which query path a LookupKey resolves through
type KeyKind int

const (
	KeyNatural KeyKind = iota
	KeyID
)

// LookupKey is either a primary identifier or a natural key (title or slug).
// Only the field matching Kind is meaningful.
type LookupKey struct {
	Kind    KeyKind
	ID      uuid.UUID
	Natural string
}

// ParseLookupKey classifies raw once. Only the canonical 36-character form
// counts as an identifier; braces, urn: prefixes and bare hex are natural keys.
func ParseLookupKey(raw string) LookupKey {
	if len(raw) == 36 {
		if id, err := uuid.Parse(raw); err == nil {
			return LookupKey{Kind: KeyID, ID: id}
		}
	}
	return LookupKey{Kind: KeyNatural, Natural: raw}
}

func (k LookupKey) String() string {
	if k.Kind == KeyID {
		return k.ID.String()
	}
	return k.Natural
}
