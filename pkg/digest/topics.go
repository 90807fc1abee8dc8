package digest

import "sort"

// MaxTopics is the size bound of a digest topic list
const MaxTopics = 10

// ExtractTopics counts topic tags across topic lists and returns up to limit distinct tags,
// most frequent first. Tags are matched exactly, equal counts keep first-seen order.
func ExtractTopics(lists [][]string, limit int) []string {
	counts := map[string]int{}
	order := []string{}
	for _, topics := range lists {
		for _, t := range topics {
			if _, seen := counts[t]; !seen {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
