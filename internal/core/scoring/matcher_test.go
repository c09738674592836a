package scoring

import "testing"

func TestSimilarityIdentical(t *testing.T) {
	if got := Similarity("POL123456789", "POL123456789", ModeRatio); got != 100 {
		t.Fatalf("ratio of identical strings = %d, want 100", got)
	}
	if got := Similarity("John Smith", "Dear John Smith, welcome", ModePartialRatio); got != 100 {
		t.Fatalf("partial ratio of embedded string = %d, want 100", got)
	}
}

func TestFoldedSimilarityIgnoresCase(t *testing.T) {
	if got := FoldedSimilarity("JOHN SMITH", "john smith", ModeRatio); got != 100 {
		t.Fatalf("folded ratio = %d, want 100", got)
	}
}

func TestDigitSimilarityStripsFormatting(t *testing.T) {
	if got := DigitSimilarity("(555) 123-4567", "+5551234567"); got != 100 {
		t.Fatalf("digit similarity = %d, want 100", got)
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("+45 (0) 12-34"); got != "4501234" {
		t.Fatalf("DigitsOnly() = %q, want 4501234", got)
	}
}
