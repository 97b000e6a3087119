package detect

import (
	"github.com/prosewatch/prosewatch/internal/match"
	"github.com/prosewatch/prosewatch/internal/model"
)

// EmphasisDetector flags unearned significance claims. Two families are
// surfaced under one detector: symbolism/legacy framing and inflated
// notability via media-coverage framing. Near-miss words off the catalog
// ("standing ovation", "served the purpose") do not match because rules
// are full-phrase, word-boundary matches.
type EmphasisDetector struct {
	matcher *match.Matcher
}

// NewEmphasisDetector builds the detector with its static catalog.
func NewEmphasisDetector() *EmphasisDetector {
	rules := []match.Rule{
		// symbolism / legacy / importance framing
		match.Literal(model.CategorySymbolism, 1.0, "stands as"),
		match.Literal(model.CategorySymbolism, 1.0, "serves as"),
		match.Family(model.CategorySymbolism, 1.2, "is a testament to",
			"is a testament to", "stands as a testament to", "a testament to"),
		match.Literal(model.CategorySymbolism, 1.0, "is a reminder of"),
		match.Template(model.CategorySymbolism, 1.2,
			`\bplays?\s+a\s+(?:vital|significant|crucial|pivotal|key|essential)\s+role\b`),
		match.Literal(model.CategorySymbolism, 1.0, "underscores its importance"),
		match.Literal(model.CategorySymbolism, 1.0, "highlights its significance"),
		match.Literal(model.CategorySymbolism, 1.0, "impactful"),
		match.Template(model.CategorySymbolism, 1.0,
			`\bimportant\s+to\s+social\s+cohesion\b`),
		match.Literal(model.CategorySymbolism, 1.0, "reflects broader"),
		match.Family(model.CategorySymbolism, 1.2, "symbolizes its enduring impact",
			"symbolizes its ongoing impact", "symbolizes its enduring impact", "symbolizes its lasting impact"),
		match.Literal(model.CategorySymbolism, 1.0, "key turning point"),
		match.Literal(model.CategorySymbolism, 1.0, "promotes collaboration"),
		match.Literal(model.CategorySymbolism, 1.0, "indelible mark"),
		match.Literal(model.CategorySymbolism, 1.0, "deeply rooted"),
		match.Template(model.CategorySymbolism, 1.0,
			`\bprofound\s+(?:heritage|legacy|impact|significance|influence)\b`),
		match.Literal(model.CategorySymbolism, 0.8, "revolutionary"),
		match.Template(model.CategorySymbolism, 1.0,
			`\breinforces\s+(?:good|healthy|positive)\s+habits\b`),
		match.Literal(model.CategorySymbolism, 1.0, "healthy relationship"),
		match.Literal(model.CategorySymbolism, 1.0, "steadfast dedication"),

		// notability / media-coverage framing
		match.Literal(model.CategoryMediaCoverage, 1.0, "independent coverage"),
		// "national media outlets", "Indian media outlets", ...: the
		// qualifying demonym varies, so the template captures one
		// preceding word when present.
		match.Template(model.CategoryMediaCoverage, 1.2,
			`\b(?:[a-z]+\s+)?media\s+outlets\b`),
		match.Template(model.CategoryMediaCoverage, 1.0,
			`\b(?:music|business|tech|industry|news)\s+outlets\b`),
		match.Literal(model.CategoryMediaCoverage, 1.2, "written by a leading expert"),
		match.Literal(model.CategoryMediaCoverage, 1.0, "active social media presence"),
	}

	return &EmphasisDetector{matcher: match.NewMatcher(rules)}
}

// Detect scans text against the catalog.
func (d *EmphasisDetector) Detect(text string) []model.PatternMatch {
	return d.matcher.Scan(text)
}
