package words

import (
	"strings"
	"testing"
)

func testSource() MapSource {
	return MapSource{
		"colors":  {"red", "blue", "amber"},
		"animals": {"cat", "elephant", "penguin"},
	}
}

func TestBankOracleExactMatch(t *testing.T) {
	t.Parallel()

	oracle := NewBankOracle(testSource())
	verdict, ok := oracle.Lookup("blue", "colors")
	if !ok {
		t.Fatal("expected a verdict for a known category")
	}
	if !verdict.IsValid || verdict.Confidence != 1 {
		t.Fatalf("expected confident acceptance, got %+v", verdict)
	}
}

func TestBankOracleFuzzyMatch(t *testing.T) {
	t.Parallel()

	oracle := NewBankOracle(testSource())
	// one transposition away from "elephant"
	verdict, ok := oracle.Lookup("elepahnt", "animals")
	if !ok {
		t.Fatal("expected a verdict")
	}
	if !verdict.IsValid {
		t.Fatalf("expected fuzzy acceptance, got %+v", verdict)
	}
	if verdict.Confidence <= similarityThreshold || verdict.Confidence >= 1 {
		t.Fatalf("expected fuzzy confidence in (%v, 1), got %v", similarityThreshold, verdict.Confidence)
	}
}

func TestBankOracleWrongCategory(t *testing.T) {
	t.Parallel()

	oracle := NewBankOracle(testSource())
	verdict, ok := oracle.Lookup("penguin", "colors")
	if !ok {
		t.Fatal("expected a verdict")
	}
	if verdict.IsValid {
		t.Fatalf("expected rejection, got %+v", verdict)
	}
	if !strings.Contains(verdict.Explanation, "animals") {
		t.Fatalf("expected the explanation to name the right category, got %q", verdict.Explanation)
	}
}

func TestBankOracleLowConfidenceNegative(t *testing.T) {
	t.Parallel()

	oracle := NewBankOracle(testSource())
	verdict, ok := oracle.Lookup("xylophone", "colors")
	if !ok {
		t.Fatal("expected a verdict")
	}
	if verdict.IsValid {
		t.Fatalf("expected rejection, got %+v", verdict)
	}
	if verdict.Confidence >= 0.5 {
		t.Fatalf("expected low confidence, got %v", verdict.Confidence)
	}
}

func TestBankOracleAbstainsOnUnknownCategory(t *testing.T) {
	t.Parallel()

	oracle := NewBankOracle(testSource())
	if _, ok := oracle.Lookup("anything", "movies"); ok {
		t.Fatal("expected no verdict for an unknown category")
	}
}
