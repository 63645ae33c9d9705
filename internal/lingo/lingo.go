// Package lingo checks extracted on-screen text for spelling and grammar
// defects. The spelling pass is a deliberately coarse closed-class heuristic:
// it has a high false-positive rate on proper nouns, which is acceptable for
// a review queue where a human confirms each flag. Do not swap in a full
// dictionary without revisiting every downstream expectation.
package lingo

import (
	"fmt"
	"strings"
	"unicode"
)

// Defect is a single content problem found in extracted text. It is a closed
// union of SpellingDefect and GrammarDefect.
type Defect interface {
	// When returns the formatted timestamp of the frame the text came from.
	When() string

	defect()
}

// SpellingDefect flags a word not recognized by the spelling heuristic.
type SpellingDefect struct {
	Timestamp  string
	Word       string
	Suggestion string
	Context    string
}

func (d SpellingDefect) When() string { return d.Timestamp }
func (SpellingDefect) defect()        {}

// GrammarDefect flags a sentence-level problem.
type GrammarDefect struct {
	Timestamp   string
	Description string
	Suggestion  string
}

func (d GrammarDefect) When() string { return d.Timestamp }
func (GrammarDefect) defect()        {}

// Segmenter splits raw text into sentences. A nil Segmenter disables the
// grammar pass entirely; that is a degraded mode, not an error.
type Segmenter interface {
	Segment(text string) []string
}

// commonWords is the closed-class word list the spelling heuristic accepts.
// Everything else (after the skip rules) gets flagged.
var commonWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "up": {},
	"about": {}, "into": {}, "through": {}, "during": {}, "before": {},
	"after": {}, "above": {}, "below": {}, "between": {}, "among": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"being": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "must": {}, "can": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "there": {}, "here": {}, "where": {}, "when": {}, "why": {},
	"how": {}, "what": {}, "which": {}, "who": {}, "whom": {}, "whose": {},
}

// Checker runs the spelling and grammar passes over extracted text.
type Checker struct {
	vocabulary map[string]struct{}
	segmenter  Segmenter
}

// NewChecker builds a Checker. vocabulary holds lowercased caller-supplied
// terms exempt from the spelling pass.
func NewChecker(vocabulary map[string]struct{}, segmenter Segmenter) *Checker {
	if vocabulary == nil {
		vocabulary = map[string]struct{}{}
	}
	return &Checker{vocabulary: vocabulary, segmenter: segmenter}
}

// Check runs both passes over one frame's text. timestamp is the already
// formatted frame position carried into each defect. Empty or whitespace-only
// text yields no defects.
func (c *Checker) Check(text, timestamp string) []Defect {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var defects []Defect
	for _, word := range strings.Fields(text) {
		clean := stripNonAlnum(word)
		if clean == "" {
			continue
		}
		if _, ok := c.vocabulary[strings.ToLower(clean)]; ok {
			continue
		}
		if len(clean) < 3 || isDigits(clean) {
			continue
		}
		if _, ok := commonWords[strings.ToLower(clean)]; ok {
			continue
		}
		defects = append(defects, SpellingDefect{
			Timestamp:  timestamp,
			Word:       clean,
			Suggestion: fmt.Sprintf("Check spelling of '%s'", clean),
			Context:    truncateContext(text, 100),
		})
	}

	if c.segmenter != nil {
		defects = append(defects, c.checkGrammar(text, timestamp)...)
	}
	return defects
}

// checkGrammar emits defects for sentences that look incomplete or like
// fragments. A single sentence can trip both rules.
func (c *Checker) checkGrammar(text, timestamp string) []Defect {
	var defects []Defect
	for _, sent := range c.segmenter.Segment(text) {
		sent = strings.TrimSpace(sent)

		if len(sent) > 10 && !strings.HasSuffix(sent, ".") &&
			!strings.HasSuffix(sent, "!") && !strings.HasSuffix(sent, "?") {
			defects = append(defects, GrammarDefect{
				Timestamp:   timestamp,
				Description: fmt.Sprintf("Sentence may be incomplete: '%s...'", truncate(sent, 50)),
				Suggestion:  "Check if sentence ends properly",
			})
		}

		if len(strings.Fields(sent)) < 2 && len(sent) > 1 {
			defects = append(defects, GrammarDefect{
				Timestamp:   timestamp,
				Description: fmt.Sprintf("Possible sentence fragment: '%s'", sent),
				Suggestion:  "Check if this is a complete sentence",
			})
		}
	}
	return defects
}

func stripNonAlnum(word string) string {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func truncateContext(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
