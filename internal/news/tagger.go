package news

import "strings"

type keywordGroup struct {
	tag      ReasonTag
	keywords []string
}

// reasonGroups is checked in order; the first group with a matching keyword
// wins. Matching is plain substring on the lowercased headline.
var reasonGroups = [...]keywordGroup{
	{TagEarnings, []string{"earnings", "revenue", "profit", "eps", "quarterly", "q1", "q2", "q3", "q4"}},
	{TagProduct, []string{"launch", "product", "release", "unveil", "announce"}},
	{TagAnalyst, []string{"upgrade", "downgrade", "rating", "analyst", "price target"}},
	{TagMacro, []string{"fed", "inflation", "interest rate", "economy", "recession"}},
	{TagRegulatory, []string{"sec", "lawsuit", "regulation", "investigation", "fine"}},
}

// Tag assigns the single reason tag for a headline.
func Tag(headline string) ReasonTag {
	lower := strings.ToLower(headline)
	for _, group := range reasonGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.tag
			}
		}
	}
	return TagOther
}
