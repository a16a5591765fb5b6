package router

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Normalize prepares an utterance for rule matching: NFKC, lower-case,
// trailing punctuation stripped, whitespace collapsed and a phrase
// repeated back-to-back reduced to one occurrence. It is idempotent.
func Normalize(utterance string) string {
	s := norm.NFKC.String(utterance)
	s = lower.String(s)
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "?.!, ")
	return collapseRepeats(strings.Fields(s))
}

// collapseRepeats returns the shortest token period when the utterance is that
// period repeated, e.g. "open terminal open terminal" -> "open terminal".
func collapseRepeats(tokens []string) string {
	n := len(tokens)
	for period := 1; period <= n/2; period++ {
		if n%period != 0 {
			continue
		}
		repeated := true
		for i := period; i < n; i++ {
			if tokens[i] != tokens[i%period] {
				repeated = false
				break
			}
		}
		if repeated {
			return strings.Join(tokens[:period], " ")
		}
	}
	return strings.Join(tokens, " ")
}
