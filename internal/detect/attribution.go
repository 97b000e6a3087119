package detect

import (
	"github.com/prosewatch/prosewatch/internal/match"
	"github.com/prosewatch/prosewatch/internal/model"
)

// AttributionDetector flags sourceless authority claims: hedged
// report/belief verbs with no identifiable source behind them, plus
// consensus phrasing that overgeneralizes. Attribution to a named,
// identifiable source is deliberately not matched, and plain passive
// voice ("the bridge was built in 1923") carries no rule here.
type AttributionDetector struct {
	matcher *match.Matcher
}

// NewAttributionDetector builds the detector with its static catalog.
func NewAttributionDetector() *AttributionDetector {
	rules := []match.Rule{
		// [quantifier] + [belief verb]
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\b(?:many|some|most)\s+(?:believe|argue|suggest|claim|contend)\b`),
		// [role] + [report verb]
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\b(?:scholars|experts|analysts|critics|observers|researchers|historians)\s+(?:believe|argue|suggest|note|claim|contend)\b`),
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\bindustry\s+reports?\s+(?:suggest|claim|indicate)\b`),
		// anonymous passive hedges
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\bit\s+is\s+(?:often\s+|widely\s+|commonly\s+)?(?:said|believed|considered|argued|thought)\b`),
		// "has been shown" is passive voice, but flagged: no named source
		match.Family(model.CategoryVagueAttribution, 1.0, "has been shown",
			"has been shown", "have been shown", "it has been demonstrated"),
		match.Template(model.CategoryVagueAttribution, 1.0,
			`\b(?:research|studies|evidence|data)\s+(?:indicates?|shows?|suggests?)\b`),
		match.Family(model.CategoryVagueAttribution, 1.0, "sources say",
			"sources say", "sources claim", "sources indicate"),

		// consensus/agreement phrasing
		match.Template(model.CategoryOvergeneralization, 1.0,
			`\bthe\s+(?:academic|general|scientific|broad)\s+consensus\b`),
		match.Literal(model.CategoryOvergeneralization, 1.0, "widespread agreement"),
		match.Literal(model.CategoryOvergeneralization, 1.0, "commonly argued"),
		match.Template(model.CategoryOvergeneralization, 1.0,
			`\bwidely\s+(?:regarded|accepted|recognized|acknowledged)\s+as\b`),
		match.Template(model.CategoryOvergeneralization, 1.0,
			`\bmost\s+(?:scholars|experts|historians|critics)\b`),
	}

	return &AttributionDetector{matcher: match.NewMatcher(rules)}
}

// Detect scans text against the catalog.
func (d *AttributionDetector) Detect(text string) []model.PatternMatch {
	return d.matcher.Scan(text)
}
