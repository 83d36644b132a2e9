// Package search filters locally held collections by title.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/minitube/internal/domain"
)

// Match is a filtered video with match metadata for highlighting
type Match struct {
	Video          domain.VideoRef
	Index          int   // Position in the unfiltered list
	MatchedIndexes []int // Rune positions in Video.Title that matched
	Score          int   // Higher is better (0 when the query is empty)
}

// videoIndex implements fuzzy.Source over video titles
type videoIndex []domain.VideoRef

func (v videoIndex) String(i int) string { return v[i].Title }
func (v videoIndex) Len() int            { return len(v) }

// FilterVideos fuzzy-matches query against video titles, best match first.
// An empty query returns every video in its original order.
func FilterVideos(query string, videos []domain.VideoRef) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(videos))
		for i, v := range videos {
			out[i] = Match{Video: v, Index: i}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, videoIndex(videos))
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{
			Video:          videos[m.Index],
			Index:          m.Index,
			MatchedIndexes: runeIndexes(m.Str, m.MatchedIndexes),
			Score:          m.Score,
		}
	}
	return out
}

// runeIndexes converts fuzzy's byte offsets into rune positions in s
func runeIndexes(s string, offsets []int) []int {
	if len(offsets) == 0 {
		return offsets
	}
	out := make([]int, 0, len(offsets))
	next := 0
	r := 0
	for b := range s {
		for next < len(offsets) && offsets[next] == b {
			out = append(out, r)
			next++
		}
		if next == len(offsets) {
			break
		}
		r++
	}
	return out
}

// FilterChannels returns channels whose title contains query's characters in
// order (case and diacritics folded), closest first by edit distance. An
// empty query returns every channel in its original order.
func FilterChannels(query string, channels []domain.ChannelRef) []domain.ChannelRef {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]domain.ChannelRef(nil), channels...)
	}

	titles := make([]string, len(channels))
	for i, c := range channels {
		titles[i] = c.ChannelTitle
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	out := make([]domain.ChannelRef, len(ranks))
	for i, r := range ranks {
		out[i] = channels[r.OriginalIndex]
	}
	return out
}
