package lingo

import "strings"

// RuleSegmenter is a punctuation-driven sentence segmenter. It splits on
// terminal punctuation runs (., !, ?) and treats any unterminated tail as a
// final sentence. Good enough for short on-screen text, where sentences
// rarely contain abbreviations or quoted speech.
type RuleSegmenter struct{}

// Segment splits text into sentences, punctuation included.
func (RuleSegmenter) Segment(text string) []string {
	var sents []string
	start := 0
	for i := 0; i < len(text); i++ {
		if !isTerminal(text[i]) {
			continue
		}
		j := i
		for j+1 < len(text) && isTerminal(text[j+1]) {
			j++
		}
		if sent := strings.TrimSpace(text[start : j+1]); sent != "" {
			sents = append(sents, sent)
		}
		start = j + 1
		i = j
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sents = append(sents, tail)
	}
	return sents
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// NopSegmenter yields no sentences, which disables the grammar pass while
// keeping the spelling pass active.
type NopSegmenter struct{}

// Segment returns nil for any input.
func (NopSegmenter) Segment(string) []string { return nil }
