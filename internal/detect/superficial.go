package detect

import (
	"regexp"
	"strings"

	"github.com/prosewatch/prosewatch/internal/match"
	"github.com/prosewatch/prosewatch/internal/model"
)

// SuperficialDetector flags shallow-insight constructs: trailing
// participial clauses asserting broad consequence, a fixed watch-word
// hedge lexicon, hedged third-party attribution, and named-person
// pseudo-citations. The four sub-categories are independent; one
// sentence can produce matches in several of them.
//
// The vague-attribution catalog here deliberately overlaps with the
// AttributionDetector's: both detectors apply the family independently,
// so the same phrase can be reported twice under the same category tag.
type SuperficialDetector struct {
	matcher *match.Matcher
}

// NewSuperficialDetector builds the detector with its static catalogs.
func NewSuperficialDetector() *SuperficialDetector {
	rules := []match.Rule{
		// watch words: hedge verbs/adjectives asserting vague significance.
		// Each is its own rule so per-phrase counts stay observable.
		match.Literal(model.CategoryWatchWord, 1.0, "ensuring"),
		match.Literal(model.CategoryWatchWord, 1.0, "reflecting"),
		match.Literal(model.CategoryWatchWord, 1.0, "conducive to"),
		match.Literal(model.CategoryWatchWord, 1.0, "tantamount to"),
		match.Literal(model.CategoryWatchWord, 1.0, "contributing to"),
		match.Literal(model.CategoryWatchWord, 1.0, "cultivating"),
		match.Literal(model.CategoryWatchWord, 1.0, "encompassing"),
		match.Literal(model.CategoryWatchWord, 0.8, "essentially"),
		match.Literal(model.CategoryWatchWord, 0.8, "fundamentally"),
		match.Literal(model.CategoryWatchWord, 1.0, "valuable insights"),

		// vague attribution, re-applied in the superficial-analysis context
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\b(?:many|some)\s+(?:believe|argue)\b`),
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\b(?:observers|experts|critics)\s+(?:note|suggest|argue)\b`),
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\bit\s+is\s+often\s+said\b`),
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\bsources\s+say\b`),
	}

	return &SuperficialDetector{matcher: match.NewMatcher(rules)}
}

// Detect scans text against the literal catalogs, then applies the two
// structural heuristics (trailing participial clauses, named-person
// attribution) which need more context than a single regexp.
func (d *SuperficialDetector) Detect(text string) []model.PatternMatch {
	matches := d.matcher.Scan(text)
	matches = append(matches, detectParticipleClauses(text)...)
	matches = append(matches, detectNamedAttribution(text)...)
	return matches
}

// namedAttributionVerbs are reporting verbs that, directly after a
// personal name, mimic a citation.
var namedAttributionRe = regexp.MustCompile(
	`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\s+(highlighted|noted|emphasized|suggested|showed|observed|argued)\b`)

// knownNames are well-known single-token names the two-token heuristic
// would otherwise miss.
var knownNames = map[string]bool{
	"aristotle": true, "plato": true, "socrates": true, "einstein": true,
	"shakespeare": true, "gandhi": true, "confucius": true,
}

var knownNameRe = regexp.MustCompile(
	`\b([A-Z][a-z]+)\s+(highlighted|noted|emphasized|suggested|showed|observed|argued)\b`)

// significanceClaimRe marks the vague-significance vocabulary that turns
// a quoted opinion into a pseudo-citation.
var significanceClaimRe = regexp.MustCompile(
	`(?i)\b(?:profound|lasting|enduring|fundamental(?:ly)?|interconnected|transformative|timeless|universal|far-reaching)\b`)

// sentenceStarters that look like capitalized two-token names but are
// ordinary sentence openings.
var namedAttributionStopwords = map[string]bool{
	"the": true, "this": true, "that": true, "these": true, "those": true,
	"his": true, "her": true, "their": true, "our": true, "one": true,
	"recent": true, "several": true, "other": true,
}

// detectNamedAttribution finds a plausible person name immediately
// followed by a reporting verb and, later in the same sentence, a vague
// significance claim. Each distinct named attribution gets its own entry.
func detectNamedAttribution(text string) []model.PatternMatch {
	var matches []model.PatternMatch
	index := make(map[string]int)

	record := func(name, verb, rest string) {
		if !significanceClaimRe.MatchString(rest) {
			return
		}
		phrase := strings.ToLower(name + " " + verb)
		if i, ok := index[phrase]; ok {
			matches[i].Count++
			matches[i].Score = match.MatchScore(matches[i].Count, 1.2)
			return
		}
		index[phrase] = len(matches)
		matches = append(matches, model.PatternMatch{
			Category: model.CategoryNamedAttribution,
			Phrase:   phrase,
			Count:    1,
			Score:    match.MatchScore(1, 1.2),
		})
	}

	for _, sentence := range splitSentences(text) {
		seenSpan := false
		for _, m := range namedAttributionRe.FindAllStringSubmatchIndex(sentence, -1) {
			name := sentence[m[2]:m[3]]
			first := strings.ToLower(strings.Fields(name)[0])
			if namedAttributionStopwords[first] {
				continue
			}
			record(name, sentence[m[4]:m[5]], sentence[m[1]:])
			seenSpan = true
		}
		if seenSpan {
			continue
		}
		// fall back to the configured single-name list
		for _, m := range knownNameRe.FindAllStringSubmatchIndex(sentence, -1) {
			name := sentence[m[2]:m[3]]
			if !knownNames[strings.ToLower(name)] {
				continue
			}
			record(name, sentence[m[4]:m[5]], sentence[m[1]:])
		}
	}
	return matches
}

var sentenceEndRe = regexp.MustCompile(`[.!?]+`)

// splitSentences is a terminator-based split; the detectors only need
// sentence-local context, not exact boundaries.
func splitSentences(text string) []string {
	parts := sentenceEndRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
