package hint

// Select computes the single active hint from the registered entries and the
// viewed set: the unviewed entry with the numerically smallest priority,
// ties broken by earliest registration. Returns ("", false) when every
// registered hint has been viewed or nothing is registered.
//
// Select is pure; identical inputs always yield the identical result, so
// frequent recomputation cannot flicker between candidates.
func Select(entries []Entry, viewed map[string]bool) (string, bool) {
	best := -1
	for i := range entries {
		if viewed[entries[i].ID] {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		// Strict comparison keeps the earlier registration on equal priority.
		if entries[i].Priority < entries[best].Priority ||
			(entries[i].Priority == entries[best].Priority && entries[i].seq < entries[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return entries[best].ID, true
}
