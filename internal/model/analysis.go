package model

// PatternCategory tags a pattern match with the family of AI-sounding
// phrasing it belongs to.
type PatternCategory string

const (
	CategoryVagueAttribution   PatternCategory = "vague-attribution"  // sourceless authority claims
	CategoryOvergeneralization PatternCategory = "overgeneralization" // consensus/agreement phrasing
	CategorySymbolism          PatternCategory = "symbolism"          // significance/legacy framing
	CategoryMediaCoverage      PatternCategory = "media-coverage"     // inflated notability claims
	CategoryParticiplePhrase   PatternCategory = "participle-phrase"  // trailing participial clauses
	CategoryWatchWord          PatternCategory = "watch-word"         // hedge lexicon hits
	CategoryNamedAttribution   PatternCategory = "named-attribution"  // pseudo-citations of named people
)

// PatternMatch is one distinct flagged phrase within the analyzed text.
// Matches are deduplicated per canonical phrase; Count is how many times
// that phrase occurred. Matches are never merged across categories.
type PatternMatch struct {
	Category PatternCategory `json:"category"`
	Phrase   string          `json:"phrase"` // canonical matched text, lower-cased
	Count    int             `json:"count"`
	Score    float64         `json:"score"` // 0-100 contribution, capped
}

// Factors holds the five holistic linguistic sub-scores, each in [0, 100].
// Higher always means more AI-like: sentence variety and vocabulary are
// inverted measures (low variety / low diversity score high).
type Factors struct {
	Repetition      float64 `json:"repetition"`
	FormalTone      float64 `json:"formal_tone"`
	SentenceVariety float64 `json:"sentence_variety"` // inverted: low variety = high score
	Vocabulary      float64 `json:"vocabulary"`       // inverted type-token ratio
	Structure       float64 `json:"structure"`
}

// AnalysisResult is the engine's immutable return value: one composite
// probability score, the factor breakdown, and every pattern match.
type AnalysisResult struct {
	Score         float64        `json:"score"` // 0-100, one decimal place
	Factors       Factors        `json:"factors"`
	Patterns      []PatternMatch `json:"patterns"`
	WordCount     int            `json:"word_count"`
	SentenceCount int            `json:"sentence_count"`
}

// Verdict buckets the composite score into a coarse human-readable band.
func (r *AnalysisResult) Verdict() string {
	switch {
	case r.Score >= 70:
		return "likely AI-generated"
	case r.Score >= 40:
		return "possibly AI-generated"
	case r.Score >= 15:
		return "weak AI signals"
	default:
		return "likely human-written"
	}
}

// TotalMatches sums occurrence counts across every pattern match.
func (r *AnalysisResult) TotalMatches() int {
	total := 0
	for _, m := range r.Patterns {
		total += m.Count
	}
	return total
}
