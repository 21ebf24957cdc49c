package scrape

import "strings"

// BioNotFound is returned as the biography when no marker phrase matched.
// It is deliberately not the empty string so "no bio section detected" stays
// distinguishable from "bio section present but empty".
const BioNotFound = "Not found"

// bioMarkers are checked in order; the first marker found splits the text
// even if a later marker occurs earlier in it. The ordering is a heuristic
// over real announcement pages, not a guarantee of semantic correctness.
var bioMarkers = []string{
	"about the speaker",
	"bio:",
	"biography",
}

// SplitAbstractBio splits an event's full body text into its abstract and
// biography portions. Pure and total: every input yields exactly one pair.
func SplitAbstractBio(text string) (abstract, bio string) {
	lower := strings.ToLower(text)
	for _, marker := range bioMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+len(marker):])
		}
	}
	return strings.TrimSpace(text), BioNotFound
}
