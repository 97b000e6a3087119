// Package factors computes holistic linguistic metrics over raw text,
// independent of any phrase catalog. Each factor lands in [0, 100] with
// higher meaning more AI-like; factors with too little data to measure
// fall back to 0 rather than dividing by zero.
package factors

import (
	"math"
	"regexp"
	"strings"

	"github.com/prosewatch/prosewatch/internal/model"
)

// Scorer computes the five factor sub-scores. It is stateless and safe
// to share across concurrent calls.
type Scorer struct{}

// NewScorer creates a new factor scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes all five factors for the given text.
func (s *Scorer) Score(text string) model.Factors {
	words := Tokenize(text)
	sentences := SplitSentences(text)

	return model.Factors{
		Repetition:      repetitionScore(words),
		FormalTone:      formalToneScore(text, words),
		SentenceVariety: sentenceVarietyScore(sentences),
		Vocabulary:      vocabularyScore(words),
		Structure:       structureScore(text, sentences),
	}
}

var wordRe = regexp.MustCompile(`[A-Za-z0-9']+`)
var sentenceRe = regexp.MustCompile(`[.!?]+`)

// Tokenize splits text into word tokens.
func Tokenize(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// SplitSentences splits text on terminal punctuation, dropping empty
// fragments.
func SplitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// repetitionScore measures how often content words recur. Generated
// prose leans on the same safe nouns; heavy reuse scores high.
func repetitionScore(words []string) float64 {
	if len(words) < 10 {
		return 0
	}
	total := 0
	unique := make(map[string]bool)
	for _, w := range words {
		w = strings.ToLower(w)
		if len(w) <= 3 || stopwords[w] {
			continue
		}
		total++
		unique[w] = true
	}
	if total < 5 {
		return 0
	}
	repeated := float64(total-len(unique)) / float64(total)
	return clamp100(repeated / 0.35 * 100)
}

// formalMarkers are connective/register words overrepresented in
// generated prose.
var formalMarkers = []string{
	"furthermore", "moreover", "consequently", "additionally", "thus",
	"hence", "therefore", "nevertheless", "nonetheless", "accordingly",
	"notably", "significantly", "crucially", "in conclusion", "in summary",
	"it is important to note", "it is worth noting",
}

var formalMarkerRe = buildPhraseRe(formalMarkers)

// passiveRe is a rough passive-construction probe: a be-verb followed by
// a likely past participle.
var passiveRe = regexp.MustCompile(`(?i)\b(?:is|are|was|were|been|being|be)\s+[a-z]+(?:ed|wn|en)\b`)

func buildPhraseRe(phrases []string) *regexp.Regexp {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		quoted = append(quoted, strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// formalToneScore measures the density of formal markers and passive
// constructions per 100 words.
func formalToneScore(text string, words []string) float64 {
	if len(words) < 5 {
		return 0
	}
	hits := len(formalMarkerRe.FindAllString(text, -1))
	hits += len(passiveRe.FindAllString(text, -1))
	per100 := float64(hits) / float64(len(words)) * 100
	return clamp100(per100 / 6.0 * 100)
}

// sentenceVarietyScore is the inverted coefficient of variation of
// sentence lengths: uniform sentence lengths are a known LLM tell, so
// LOW variety yields a HIGH score.
func sentenceVarietyScore(sentences []string) float64 {
	if len(sentences) < 2 {
		return 0
	}
	lengths := make([]float64, len(sentences))
	for i, s := range sentences {
		lengths[i] = float64(len(Tokenize(s)))
	}
	mean, sd := meanStd(lengths)
	if mean == 0 {
		return 0
	}
	cv := sd / mean
	// human prose typically runs cv > 0.5; generated prose well under
	return clamp100((0.55 - cv) / 0.55 * 100)
}

// vocabularyScore is the inverted type-token ratio: low lexical
// diversity scores high.
func vocabularyScore(words []string) float64 {
	if len(words) < 10 {
		return 0
	}
	unique := make(map[string]bool)
	for _, w := range words {
		unique[strings.ToLower(w)] = true
	}
	ttr := float64(len(unique)) / float64(len(words))
	return clamp100((0.75 - ttr) / 0.45 * 100)
}

var paragraphRe = regexp.MustCompile(`\n\s*\n`)

// structureScore measures regularity of sentence openers and paragraph
// lengths; templated structure scores high.
func structureScore(text string, sentences []string) float64 {
	if len(sentences) < 3 {
		return 0
	}

	// repeated sentence-starter bigrams
	starts := make(map[string]int)
	for _, s := range sentences {
		w := Tokenize(s)
		if len(w) >= 2 {
			starts[strings.ToLower(w[0]+" "+w[1])]++
		} else if len(w) == 1 {
			starts[strings.ToLower(w[0])]++
		}
	}
	repeats := 0
	for _, n := range starts {
		if n > 1 {
			repeats += n - 1
		}
	}
	starterScore := clamp01(float64(repeats) / float64(len(sentences)) / 0.4)

	// paragraph length uniformity, when there are enough paragraphs
	paraScore := 0.0
	paras := paragraphRe.Split(text, -1)
	var lens []float64
	for _, p := range paras {
		if n := len(Tokenize(p)); n > 0 {
			lens = append(lens, float64(n))
		}
	}
	if len(lens) >= 3 {
		mean, sd := meanStd(lens)
		if mean > 0 {
			paraScore = clamp01((0.5 - sd/mean) / 0.5)
		}
	}

	return clamp100((0.7*starterScore + 0.3*paraScore) * 100)
}

func meanStd(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// stopwords excluded from the repetition measure: recurrence of function
// words says nothing about authorship.
var stopwords = map[string]bool{
	"the": true, "and": true, "that": true, "this": true, "with": true,
	"from": true, "have": true, "has": true, "had": true, "was": true,
	"were": true, "been": true, "will": true, "would": true, "could": true,
	"should": true, "there": true, "their": true, "they": true, "them": true,
	"then": true, "than": true, "which": true, "when": true, "where": true,
	"what": true, "while": true, "about": true, "into": true, "over": true,
	"also": true, "more": true, "most": true, "some": true, "such": true,
	"very": true, "just": true, "only": true, "other": true, "these": true,
	"those": true, "because": true, "between": true, "through": true,
	"each": true, "many": true, "much": true, "your": true, "its": true,
}
