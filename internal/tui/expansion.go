package tui

// DiffExpanded returns the ids present in next but not in prev: the nodes
// that just transitioned from collapsed to expanded. The controller only
// needs these individual transitions, not the full expansion list.
func DiffExpanded(prev, next []string) []string {
	seen := make(map[string]struct{}, len(prev))
	for _, id := range prev {
		seen[id] = struct{}{}
	}
	var added []string
	for _, id := range next {
		if _, ok := seen[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}
