package news

import "strings"

// dedupPrefixLen is the number of leading runes of a headline compared when
// looking for near-duplicates.
const dedupPrefixLen = 50

func dedupKey(headline string) string {
	r := []rune(headline)
	if len(r) > dedupPrefixLen {
		r = r[:dedupPrefixLen]
	}
	return strings.ToLower(string(r))
}

// Dedup drops items whose lowercased 50-rune headline prefix was already seen.
// The first occurrence in input order is kept.
func Dedup(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	unique := make([]Item, 0, len(items))
	for _, it := range items {
		key := dedupKey(it.Headline)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, it)
	}
	return unique
}
