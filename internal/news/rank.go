package news

import "sort"

// MaxHeadlines is the size of the ranked headline set
const MaxHeadlines = 3

// Rank orders tagged items most recent first, moves earnings/analyst items
// ahead of the rest (keeping recency order inside each group) and keeps the
// first MaxHeadlines. The input slice is not modified.
func Rank(items []TaggedItem) []TaggedItem {
	sorted := make([]TaggedItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	ranked := make([]TaggedItem, 0, len(sorted))
	var rest []TaggedItem
	for _, it := range sorted {
		if it.ReasonTag.Priority() {
			ranked = append(ranked, it)
		} else {
			rest = append(rest, it)
		}
	}
	ranked = append(ranked, rest...)

	if len(ranked) > MaxHeadlines {
		ranked = ranked[:MaxHeadlines]
	}
	return ranked
}
