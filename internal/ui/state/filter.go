package state

import (
	"strings"

	"github.com/mfenwick/couchtv/internal/catalog"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterChannels returns channels matching the query, fuzzy-ranked against
// channel names with a substring fallback over names and ids.
func FilterChannels(channels []catalog.Channel, query string) []catalog.Channel {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return channels
	}
	names := make([]string, len(channels))
	for i, ch := range channels {
		names[i] = ch.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]catalog.Channel, 0, len(matches))
		for idx, ch := range channels {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, ch)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]catalog.Channel, 0, len(channels))
	for _, ch := range channels {
		if strings.Contains(strings.ToLower(ch.Name), lower) || strings.Contains(strings.ToLower(ch.ID), lower) {
			filtered = append(filtered, ch)
		}
	}
	return filtered
}
