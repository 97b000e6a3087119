package detect

import (
	"strings"
	"testing"

	"github.com/prosewatch/prosewatch/internal/model"
)

func countByCategory(matches []model.PatternMatch, cat model.PatternCategory) int {
	n := 0
	for _, m := range matches {
		if m.Category == cat {
			n++
		}
	}
	return n
}

func TestSuperficialDetector_ParticipleClause(t *testing.T) {
	d := NewSuperficialDetector()

	text := "The plant was closed last year, ensuring cleaner air for communities. " +
		"New tools emerged, shaping the trajectory of human progress."

	matches := d.Detect(text)
	if n := countByCategory(matches, model.CategoryParticiplePhrase); n != 2 {
		t.Fatalf("Expected 2 participle-phrase matches, got %d: %v", n, matches)
	}
}

func TestSuperficialDetector_OrdinaryGerundsNotFlagged(t *testing.T) {
	d := NewSuperficialDetector()

	for _, text := range []string{
		"Running faster helps build endurance.",
		"The building stands tall.",
		"We went shopping in the morning, then drove home.",
	} {
		matches := d.Detect(text)
		if n := countByCategory(matches, model.CategoryParticiplePhrase); n != 0 {
			t.Errorf("Expected no participle matches for %q, got %v", text, matches)
		}
	}
}

func TestSuperficialDetector_WatchWordCounts(t *testing.T) {
	d := NewSuperficialDetector()

	text := "Ensuring quality matters. Ensuring fairness matters. Ensuring transparency matters."
	matches := d.Detect(text)

	var ensuring *model.PatternMatch
	for i := range matches {
		if matches[i].Category == model.CategoryWatchWord && matches[i].Phrase == "ensuring" {
			ensuring = &matches[i]
		}
	}
	if ensuring == nil {
		t.Fatalf("Expected a watch-word match for 'ensuring', got %v", matches)
	}
	if ensuring.Count != 3 {
		t.Errorf("Expected count 3, got %d", ensuring.Count)
	}
}

func TestSuperficialDetector_NamedAttribution(t *testing.T) {
	d := NewSuperficialDetector()

	text := "Roger Ebert highlighted the lasting influence of the film. " +
		"Maya Angelou emphasized the profound impact of literature."

	matches := d.Detect(text)
	if n := countByCategory(matches, model.CategoryNamedAttribution); n != 2 {
		t.Fatalf("Expected 2 named-attribution matches, got %d: %v", n, matches)
	}

	phrases := map[string]bool{}
	for _, m := range matches {
		if m.Category == model.CategoryNamedAttribution {
			phrases[m.Phrase] = true
		}
	}
	if !phrases["roger ebert highlighted"] || !phrases["maya angelou emphasized"] {
		t.Errorf("Expected each named attribution to produce its own entry, got %v", phrases)
	}
}

func TestSuperficialDetector_NamedAttributionNeedsClaim(t *testing.T) {
	d := NewSuperficialDetector()

	// reporting verb without a vague-significance claim is ordinary prose
	text := "Jane Porter noted the meeting ran long."
	matches := d.Detect(text)
	if n := countByCategory(matches, model.CategoryNamedAttribution); n != 0 {
		t.Errorf("Expected no named-attribution match, got %v", matches)
	}
}

func TestSuperficialDetector_KnownSingleNames(t *testing.T) {
	d := NewSuperficialDetector()

	text := "Aristotle noted the enduring nature of virtue."
	matches := d.Detect(text)
	if n := countByCategory(matches, model.CategoryNamedAttribution); n != 1 {
		t.Fatalf("Expected known single-token name to match, got %v", matches)
	}
}

func TestSuperficialDetector_CategoryIndependence(t *testing.T) {
	d := NewSuperficialDetector()

	// one sentence triggering both named-attribution and a watch word
	text := "Maya Angelou emphasized that literature is fundamentally transformative for readers."
	matches := d.Detect(text)

	if n := countByCategory(matches, model.CategoryNamedAttribution); n != 1 {
		t.Errorf("Expected named-attribution match, got %v", matches)
	}
	var watchPhrases []string
	for _, m := range matches {
		if m.Category == model.CategoryWatchWord {
			watchPhrases = append(watchPhrases, m.Phrase)
		}
	}
	if len(watchPhrases) == 0 || !strings.Contains(strings.Join(watchPhrases, " "), "fundamentally") {
		t.Errorf("Expected watch-word match for 'fundamentally', got %v", matches)
	}
}

func TestSuperficialDetector_VagueAttributionOverlap(t *testing.T) {
	attribution := NewAttributionDetector()
	superficial := NewSuperficialDetector()

	// the same phrase family is flagged independently by both detectors
	text := "Many believe the reform will succeed."
	if n := countByCategory(attribution.Detect(text), model.CategoryVagueAttribution); n != 1 {
		t.Errorf("Expected attribution detector to flag 'many believe', got %d", n)
	}
	if n := countByCategory(superficial.Detect(text), model.CategoryVagueAttribution); n != 1 {
		t.Errorf("Expected superficial detector to flag 'many believe' too, got %d", n)
	}
}

func TestSuperficialDetector_NoFalsePositives(t *testing.T) {
	d := NewSuperficialDetector()
	for _, text := range []string{
		"The cat sat on the mat.",
		"The weather is sunny today.",
		"The ensuing events were unexpected.",
	} {
		if matches := d.Detect(text); len(matches) != 0 {
			t.Errorf("Expected no matches for %q, got %v", text, matches)
		}
	}
}
