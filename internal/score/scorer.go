// Package score holds the aggregate scorer: the engine's single entry
// point. It fans out to the pattern detectors and the factor scorer,
// merges their outputs in a fixed order, and folds everything into one
// 0-100 probability score.
package score

import (
	"errors"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/prosewatch/prosewatch/internal/detect"
	"github.com/prosewatch/prosewatch/internal/factors"
	"github.com/prosewatch/prosewatch/internal/model"
)

// MaxInputBytes bounds practical work for very large inputs. Oversized
// input is rejected outright, never truncated. Rebuild-time tunable.
const MaxInputBytes = 1 << 20

var (
	// ErrInputTooLarge is returned for input above MaxInputBytes; no
	// partial analysis is performed.
	ErrInputTooLarge = errors.New("input exceeds maximum size")

	// ErrInvalidInput is returned for malformed UTF-8; detectors never
	// attempt best-effort recovery.
	ErrInvalidInput = errors.New("input is not valid UTF-8")
)

// Composite weighting. Pattern intensity saturates so no single category
// can push the result near 100 alone; see patternSignal.
const (
	patternWeight = 0.6
	factorWeight  = 0.4

	// half-saturation point of the pattern intensity curve, in summed
	// per-category score points
	patternKnee = 150.0
)

var factorWeights = model.Factors{
	Repetition:      0.25,
	FormalTone:      0.20,
	SentenceVariety: 0.20,
	Vocabulary:      0.20,
	Structure:       0.15,
}

// Analyzer runs all detectors and the factor scorer. The rule catalogs
// are compiled once here and shared, read-only, across concurrent calls.
type Analyzer struct {
	attribution *detect.AttributionDetector
	emphasis    *detect.EmphasisDetector
	superficial *detect.SuperficialDetector
	factors     *factors.Scorer
}

// NewAnalyzer creates an analyzer with the static rule catalogs.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		attribution: detect.NewAttributionDetector(),
		emphasis:    detect.NewEmphasisDetector(),
		superficial: detect.NewSuperficialDetector(),
		factors:     factors.NewScorer(),
	}
}

// Analyze scores the given text. Every detector and the factor scorer is
// a pure function of the same input, so they run concurrently; the only
// synchronization is waiting for all sub-results before merging, and the
// merge preserves the fixed detector order (attribution, emphasis,
// superficial) regardless of completion order. Identical input always
// yields an identical result.
func (a *Analyzer) Analyze(text string) (*model.AnalysisResult, error) {
	if len(text) > MaxInputBytes {
		return nil, ErrInputTooLarge
	}
	if !utf8.ValidString(text) {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(text) == "" {
		// analysis of nothing is not an error
		return &model.AnalysisResult{Patterns: []model.PatternMatch{}}, nil
	}

	var (
		wg          sync.WaitGroup
		attribution []model.PatternMatch
		emphasis    []model.PatternMatch
		superficial []model.PatternMatch
		facts       model.Factors
	)

	wg.Add(4)
	go func() { defer wg.Done(); attribution = a.attribution.Detect(text) }()
	go func() { defer wg.Done(); emphasis = a.emphasis.Detect(text) }()
	go func() { defer wg.Done(); superficial = a.superficial.Detect(text) }()
	go func() { defer wg.Done(); facts = a.factors.Score(text) }()
	wg.Wait()

	patterns := make([]model.PatternMatch, 0, len(attribution)+len(emphasis)+len(superficial))
	patterns = append(patterns, attribution...)
	patterns = append(patterns, emphasis...)
	patterns = append(patterns, superficial...)

	return &model.AnalysisResult{
		Score:         compositeScore(patterns, facts),
		Factors:       facts,
		Patterns:      patterns,
		WordCount:     len(factors.Tokenize(text)),
		SentenceCount: len(factors.SplitSentences(text)),
	}, nil
}

// compositeScore folds pattern intensity and the five factors into one
// 0-100 value, rounded to one decimal place. It is monotonically
// non-decreasing in every input and saturates at 100.
func compositeScore(patterns []model.PatternMatch, f model.Factors) float64 {
	composite := patternWeight*patternSignal(patterns) + factorWeight*factorSignal(f)
	if composite > 100 {
		composite = 100
	}
	return math.Round(composite*10) / 10
}

// patternSignal sums per-category match scores, capping each category at
// 100 so no single family dominates, then maps the sum onto 0-100 with a
// saturating curve that rises steeply for the first signals and flattens
// as evidence piles up.
func patternSignal(patterns []model.PatternMatch) float64 {
	totals := make(map[model.PatternCategory]float64)
	for _, m := range patterns {
		totals[m.Category] += m.Score
	}
	sum := 0.0
	for _, t := range totals {
		if t > 100 {
			t = 100
		}
		sum += t
	}
	if sum == 0 {
		return 0
	}
	return 100 * sum / (sum + patternKnee)
}

// factorSignal is the weighted mean of the five factor values.
func factorSignal(f model.Factors) float64 {
	return f.Repetition*factorWeights.Repetition +
		f.FormalTone*factorWeights.FormalTone +
		f.SentenceVariety*factorWeights.SentenceVariety +
		f.Vocabulary*factorWeights.Vocabulary +
		f.Structure*factorWeights.Structure
}
