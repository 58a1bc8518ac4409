package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseLookupKey(t *testing.T) {
	id := uuid.New()

	t.Run("CanonicalUUID", func(t *testing.T) {
		key := ParseLookupKey(id.String())
		assert.Equal(t, KeyID, key.Kind)
		assert.Equal(t, id, key.ID)
		assert.Equal(t, id.String(), key.String())
	})

	t.Run("Slug", func(t *testing.T) {
		key := ParseLookupKey("mens_chill_crew_neck")
		assert.Equal(t, KeyNatural, key.Kind)
		assert.Equal(t, "mens_chill_crew_neck", key.Natural)
		assert.Equal(t, uuid.Nil, key.ID)
	})

	t.Run("TitleWithSpaces", func(t *testing.T) {
		key := ParseLookupKey("Men's Chill Crew Neck")
		assert.Equal(t, KeyNatural, key.Kind)
		assert.Equal(t, "Men's Chill Crew Neck", key.String())
	})

	t.Run("NonCanonicalUUIDForms", func(t *testing.T) {
		for _, raw := range []string{
			"{" + id.String() + "}",
			"urn:uuid:" + id.String(),
			strings.ReplaceAll(id.String(), "-", ""),
		} {
			assert.Equal(t, KeyNatural, ParseLookupKey(raw).Kind, raw)
		}
	})

	t.Run("MalformedThirtySixChars", func(t *testing.T) {
		key := ParseLookupKey("zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz")
		assert.Equal(t, KeyNatural, key.Kind)
	})
}
