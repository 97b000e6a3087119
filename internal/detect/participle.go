package detect

import (
	"regexp"
	"strings"

	"github.com/prosewatch/prosewatch/internal/match"
	"github.com/prosewatch/prosewatch/internal/model"
)

// trailingClauseRe captures a comma-introduced clause that opens with an
// "-ing" token and runs to sentence-final punctuation.
var trailingClauseRe = regexp.MustCompile(
	`,\s+([A-Za-z]+ing\b[^,.!?;:]*)[.!?]`)

// ingNounStoplist holds common "-ing" words that are nouns or ordinary
// gerunds, not participial hedges. Grammatical role is ambiguous without
// a parser; the stoplist keeps obvious non-participles out.
var ingNounStoplist = map[string]bool{
	"building": true, "morning": true, "evening": true, "king": true,
	"ring": true, "spring": true, "string": true, "thing": true,
	"something": true, "anything": true, "everything": true, "nothing": true,
	"during": true, "ceiling": true, "feeling": true, "meeting": true,
	"wedding": true, "painting": true, "sibling": true, "darling": true,
}

// consequenceRe marks clause content that asserts broad consequence:
// the objects these clauses hang significance on.
var consequenceRe = regexp.MustCompile(`(?i)\b(?:` +
	`future|futures|progress|society|societies|communities|community|` +
	`world|generations?|humanity|landscape|trajectory|nation|mankind|` +
	`better|cleaner|stronger|brighter|deeper|greater|lasting|enduring|` +
	`importance|significance|legacy|well-being|prosperity|sustainability` +
	`)\b`)

// isTrailingParticipleClause is the single predicate behind the
// participle-phrase rule, kept separate so its precision/recall tradeoff
// can be tuned and tested on its own. A clause qualifies when it opens
// with a plausible present participle and asserts broad consequence.
func isTrailingParticipleClause(clause string) bool {
	fields := strings.Fields(clause)
	if len(fields) < 2 {
		return false
	}
	head := strings.ToLower(fields[0])
	if ingNounStoplist[head] {
		return false
	}
	return consequenceRe.MatchString(clause)
}

// detectParticipleClauses finds trailing participial clauses immediately
// before sentence-ending punctuation. Mid-sentence gerund use never
// reaches the predicate: the clause must run comma-to-terminator.
func detectParticipleClauses(text string) []model.PatternMatch {
	var matches []model.PatternMatch
	index := make(map[string]int)

	for _, m := range trailingClauseRe.FindAllStringSubmatch(text, -1) {
		clause := strings.TrimSpace(m[1])
		if !isTrailingParticipleClause(clause) {
			continue
		}
		phrase := strings.Join(strings.Fields(strings.ToLower(clause)), " ")
		if i, ok := index[phrase]; ok {
			matches[i].Count++
			matches[i].Score = match.MatchScore(matches[i].Count, 1.2)
			continue
		}
		index[phrase] = len(matches)
		matches = append(matches, model.PatternMatch{
			Category: model.CategoryParticiplePhrase,
			Phrase:   phrase,
			Count:    1,
			Score:    match.MatchScore(1, 1.2),
		})
	}
	return matches
}
