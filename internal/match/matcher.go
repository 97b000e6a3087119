package match

import (
	"regexp"
	"strings"

	"github.com/prosewatch/prosewatch/internal/model"
)

// Rule is one entry in a detector's static catalog: a category tag plus
// either a set of literal phrase variants or a regexp template. Rules are
// built once at process start and never mutated.
type Rule struct {
	Category model.PatternCategory

	// Canonical is the display form a hit is reported under. For families
	// of near-synonym variants every variant collapses to this one form.
	// When empty, the lower-cased matched text itself is the canonical
	// form, so distinct matched spans produce distinct entries.
	Canonical string

	// Phrases are literal variants matched case-insensitively on word
	// boundaries. Mutually exclusive with Pattern.
	Phrases []string

	// Pattern is a structural template. The expression must not include
	// its own case-folding flag; the matcher adds it.
	Pattern string

	// Weight scales the rule's contribution to the composite score.
	// Zero means 1.0.
	Weight float64
}

// Literal returns a rule that matches a single phrase and reports it
// under its own lower-cased form.
func Literal(cat model.PatternCategory, weight float64, phrase string) Rule {
	return Rule{Category: cat, Canonical: strings.ToLower(phrase), Phrases: []string{phrase}, Weight: weight}
}

// Family returns a rule whose variants all collapse to one canonical
// phrase. Each occurrence of any variant increments the same count.
func Family(cat model.PatternCategory, weight float64, canonical string, variants ...string) Rule {
	return Rule{Category: cat, Canonical: strings.ToLower(canonical), Phrases: variants, Weight: weight}
}

// Template returns a rule backed by a regexp. Hits are reported under the
// lower-cased matched text, so one template can yield several entries.
func Template(cat model.PatternCategory, weight float64, pattern string) Rule {
	return Rule{Category: cat, Pattern: pattern, Weight: weight}
}

type compiledRule struct {
	category  model.PatternCategory
	canonical string
	re        *regexp.Regexp
	weight    float64
}

// Matcher scans text against a compiled rule catalog.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles a rule catalog. Compilation happens once per
// detector at startup; a bad pattern is a programming error and panics.
func NewMatcher(rules []Rule) *Matcher {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		weight := r.Weight
		if weight <= 0 {
			weight = 1.0
		}
		compiled = append(compiled, compiledRule{
			category:  r.Category,
			canonical: r.Canonical,
			re:        regexp.MustCompile(`(?i)` + rulePattern(r)),
			weight:    weight,
		})
	}
	return &Matcher{rules: compiled}
}

// rulePattern builds the regexp source for a rule: an alternation of its
// literal variants on word boundaries, or the template as given.
func rulePattern(r Rule) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	quoted := make([]string, 0, len(r.Phrases))
	for _, p := range r.Phrases {
		quoted = append(quoted, strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`))
	}
	return `\b(?:` + strings.Join(quoted, "|") + `)\b`
}

// Scan returns one PatternMatch per distinct canonical phrase found in
// text, with occurrence counts summed. Matches are never merged across
// categories and keep stable rule-then-occurrence order. Pattern-free
// text yields an empty slice.
func (m *Matcher) Scan(text string) []model.PatternMatch {
	var matches []model.PatternMatch
	index := make(map[string]int) // category + "\x00" + phrase -> matches index

	for _, r := range m.rules {
		hits := r.re.FindAllString(text, -1)
		for _, hit := range hits {
			phrase := r.canonical
			if phrase == "" {
				phrase = normalizePhrase(hit)
			}
			key := string(r.category) + "\x00" + phrase
			if i, ok := index[key]; ok {
				matches[i].Count++
				matches[i].Score = MatchScore(matches[i].Count, r.weight)
				continue
			}
			index[key] = len(matches)
			matches = append(matches, model.PatternMatch{
				Category: r.category,
				Phrase:   phrase,
				Count:    1,
				Score:    MatchScore(1, r.weight),
			})
		}
	}
	return matches
}

// MatchScore derives a 0-100 contribution from an occurrence count and a
// rule weight: 20 points for the first hit, 10 for each repeat, capped.
func MatchScore(count int, weight float64) float64 {
	if count < 1 {
		return 0
	}
	s := weight * (20 + 10*float64(count-1))
	if s > 100 {
		return 100
	}
	return s
}

// normalizePhrase lower-cases matched text and collapses internal
// whitespace so the same phrase split across lines dedupes correctly.
func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
