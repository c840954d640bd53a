package model

import (
	"fmt"
	"io"
	"sort"
)

// WordWeight is one row of a topic-word report: a vocabulary index, its
// point-estimate probability under a topic, and its raw assignment count.
type WordWeight struct {
	Index int
	Phi   float64
	Count int
}

// topWords sorts words by descending Phi (ties broken by ascending
// Index, for determinism across Go releases — spec.md §8 law 6) and
// returns at most limit entries. Shared by LdaEngine.TopicWords and
// HdpLdaEngine.TopicWords (Lda::dump / HdpLda::dump in the original have
// near-identical bodies; spec.md §9 notes the two engines may factor
// common code without a shared base type).
func topWords(words []WordWeight, limit int) []WordWeight {
	sorted := make([]WordWeight, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Phi != sorted[j].Phi {
			return sorted[i].Phi > sorted[j].Phi
		}
		return sorted[i].Index < sorted[j].Index
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// TopicReporter is satisfied by both LdaEngine and HdpLdaEngine.
type TopicReporter interface {
	LiveTopicCount() int
}

// PrintTopic writes the "Topic: k (n words)" header followed by up to 10
// "word: phi (count)" lines to w, matching spec.md §6's stdout report
// format and Lda::dump/HdpLda::dump's layout.
func PrintTopic(w io.Writer, vocab []string, topic int, size int, words []WordWeight) {
	fmt.Fprintf(w, "Topic: %d (%d words)\n", topic, size)
	limit := 10
	if len(words) < limit {
		limit = len(words)
	}
	for i := 0; i < limit; i++ {
		ww := words[i]
		name := ""
		if ww.Index < len(vocab) {
			name = vocab[ww.Index]
		}
		fmt.Fprintf(w, "%s: %f (%d)\n", name, ww.Phi, ww.Count)
	}
	fmt.Fprintln(w)
}
