package scrape

import (
	"strings"
	"time"

	"liontalk/seminarworker/internal/seminar"
)

// SelectUpcoming retains the items whose start timestamp falls inside the
// forward window (now, now+window]. Items without a parsable timestamp are
// dropped, not errored. When titleContains is non-empty only items whose
// title contains it (case-sensitive) are kept. The filter is stable: original
// relative order is preserved and re-applying the same window is a no-op.
func SelectUpcoming(items []seminar.RawEventItem, now time.Time, window time.Duration, titleContains string) []seminar.RawEventItem {
	horizon := now.Add(window)

	var out []seminar.RawEventItem
	for _, item := range items {
		if item.Start.IsZero() {
			continue
		}
		if !item.Start.After(now) || item.Start.After(horizon) {
			continue
		}
		if titleContains != "" && !strings.Contains(item.Title, titleContains) {
			continue
		}
		out = append(out, item)
	}
	return out
}
