package slug

import "strings"

var replacer = strings.NewReplacer(" ", "_", "'", "")

// Normalize lowercases text, turns every space into an underscore and drops
// every apostrophe. Applying it twice gives the same result as applying it once.
func Normalize(text string) string {
	return replacer.Replace(strings.ToLower(text))
}

// FromTitle returns the normalized override, or the normalized title when no
// override is given.
func FromTitle(title, override string) string {
	if override == "" {
		override = title
	}
	return Normalize(override)
}
