package factors

import (
	"strings"
	"testing"
)

func checkBounds(t *testing.T, name string, v float64) {
	t.Helper()
	if v < 0 || v > 100 {
		t.Errorf("%s out of bounds: %.2f", name, v)
	}
}

func TestScorer_AllFactorsBounded(t *testing.T) {
	s := NewScorer()

	texts := []string{
		"",
		"word",
		"One sentence only here.",
		"The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs. How vexingly quick daft zebras jump!",
		strings.Repeat("The process is important. ", 40),
	}

	for _, text := range texts {
		f := s.Score(text)
		checkBounds(t, "repetition", f.Repetition)
		checkBounds(t, "formalTone", f.FormalTone)
		checkBounds(t, "sentenceVariety", f.SentenceVariety)
		checkBounds(t, "vocabulary", f.Vocabulary)
		checkBounds(t, "structure", f.Structure)
	}
}

func TestScorer_InsufficientDataFallsBackToZero(t *testing.T) {
	s := NewScorer()

	// single word: nothing to measure, defined fallback is 0
	f := s.Score("hello")
	if f != (s.Score("hello")) {
		t.Error("Expected deterministic result")
	}
	if f.Repetition != 0 || f.SentenceVariety != 0 || f.Vocabulary != 0 || f.Structure != 0 {
		t.Errorf("Expected zero factors for single word, got %+v", f)
	}

	// single sentence: variety needs at least 2 sentences
	f = s.Score("A perfectly ordinary sentence with enough words to pass the token guards easily.")
	if f.SentenceVariety != 0 {
		t.Errorf("Expected 0 sentence variety for single sentence, got %.2f", f.SentenceVariety)
	}
}

func TestScorer_UniformSentenceLengthsScoreHigh(t *testing.T) {
	s := NewScorer()

	// identical sentence lengths: the classic low-variety tell
	uniform := "The cat sat on the mat today. The dog ran in the park today. " +
		"The bird flew over the house today. The fish swam in the bowl today."
	varied := "Yes. The dog ran in the park despite the heavy morning rain that had soaked everything. " +
		"Stop. Nobody expected the committee to reverse such a long-standing and controversial decision overnight."

	fu := s.Score(uniform)
	fv := s.Score(varied)

	if fu.SentenceVariety <= fv.SentenceVariety {
		t.Errorf("Expected uniform text to score higher: uniform=%.2f varied=%.2f",
			fu.SentenceVariety, fv.SentenceVariety)
	}
	if fu.SentenceVariety < 60 {
		t.Errorf("Expected high score for uniform lengths, got %.2f", fu.SentenceVariety)
	}
}

func TestScorer_RepetitionMonotone(t *testing.T) {
	s := NewScorer()

	repetitive := strings.Repeat("innovation drives innovation because innovation needs innovation today ", 5)
	diverse := "Sunlight filtered through ancient oaks while children chased fireflies " +
		"across meadows, laughing beneath scattered clouds during golden autumn evenings."

	if s.Score(repetitive).Repetition <= s.Score(diverse).Repetition {
		t.Errorf("Expected repetitive text to score higher: %.2f vs %.2f",
			s.Score(repetitive).Repetition, s.Score(diverse).Repetition)
	}
}

func TestScorer_FormalToneDensity(t *testing.T) {
	s := NewScorer()

	formal := "Furthermore, the results were analyzed. Moreover, the data was collected carefully. " +
		"Consequently, conclusions were drawn. It is important to note the limitations."
	casual := "We grabbed lunch and talked about the game. It was fun and the food hit the spot."

	if s.Score(formal).FormalTone <= s.Score(casual).FormalTone {
		t.Errorf("Expected formal text to score higher: %.2f vs %.2f",
			s.Score(formal).FormalTone, s.Score(casual).FormalTone)
	}
}

func TestScorer_VocabularyInverted(t *testing.T) {
	s := NewScorer()

	// low diversity: the same few words over and over
	narrow := strings.Repeat("the system makes the system work for the system ", 6)
	rich := "Kaleidoscopic murals adorned crumbling viaducts; pigeons wheeled above " +
		"rusted tramlines while vendors hawked saffron, tamarind, and cardamom."

	if s.Score(narrow).Vocabulary <= s.Score(rich).Vocabulary {
		t.Errorf("Expected narrow vocabulary to score higher: %.2f vs %.2f",
			s.Score(narrow).Vocabulary, s.Score(rich).Vocabulary)
	}
}

func TestScorer_StructureRegularity(t *testing.T) {
	s := NewScorer()

	templated := "The city offers museums. The city offers parks. The city offers theaters. " +
		"The city offers restaurants."
	organic := "Museums dot the old quarter. Down by the river, parks open onto the water. " +
		"Theater? Try the east side. Everyone argues about restaurants."

	if s.Score(templated).Structure <= s.Score(organic).Structure {
		t.Errorf("Expected templated openers to score higher: %.2f vs %.2f",
			s.Score(templated).Structure, s.Score(organic).Structure)
	}
}

func TestTokenize(t *testing.T) {
	words := Tokenize("Don't split contractions; punctuation, though - goes away!")
	for _, w := range words {
		if strings.ContainsAny(w, ";,-!") {
			t.Errorf("Token %q contains punctuation", w)
		}
	}
	if len(words) != 7 {
		t.Errorf("Expected 7 tokens, got %d: %v", len(words), words)
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("First one. Second one! Third one? ")
	if len(sentences) != 3 {
		t.Errorf("Expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
	if len(SplitSentences("")) != 0 {
		t.Error("Expected no sentences for empty input")
	}
}
