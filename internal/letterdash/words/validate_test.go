package words

import (
	"strings"
	"testing"
)

func testDictionary() Dictionary {
	return Dictionary{
		"colors": {
			Keywords: []string{"red", "blue", "amber", "green"},
		},
		"animals": {
			Partial:  true,
			Keywords: []string{"cat", "elephant"},
		},
		"brands": {
			Keywords: []string{"acme"},
			Rejects:  []string{"generic"},
		},
		"numbers": {
			Predicate: func(answer string) bool {
				return strings.IndexFunc(answer, func(r rune) bool { return r < '0' || r > '9' }) == -1
			},
		},
	}
}

func TestValidateAcceptsMatchingAnswer(t *testing.T) {
	t.Parallel()

	v := NewValidator(testDictionary(), nil)
	result := v.Validate("blue", "Colors", "B")

	if !result.ValidLetter || !result.ValidCategory {
		t.Fatalf("expected fully valid result, got %+v", result)
	}
	if result.FailureReason != "" {
		t.Fatalf("unexpected failure reason %q", result.FailureReason)
	}
}

func TestValidateTable(t *testing.T) {
	t.Parallel()

	v := NewValidator(testDictionary(), nil)

	tests := []struct {
		name          string
		answer        string
		category      string
		letter        string
		validLetter   bool
		validCategory bool
		reason        string
	}{
		{"empty answer", "", "Colors", "B", false, false, ReasonEmpty},
		{"whitespace only", "   ", "Colors", "B", false, false, ReasonEmpty},
		{"wrong letter", "blue", "Colors", "A", false, true, `Does not start with "A"`},
		{"wrong category", "bogus", "Colors", "B", true, false, `Does not fit category "Colors"`},
		{"case insensitive letter", "Blue", "Colors", "b", true, true, ""},
		{"trimmed answer", "  amber  ", "Colors", "A", true, true, ""},
		{"partial match", "cats", "Animals", "C", true, true, ""},
		{"partial match containing keyword", "elephant seal", "Animals", "E", true, true, ""},
		{"reject keyword", "generic acme", "Brands", "G", true, false, `Does not fit category "Brands"`},
		{"predicate accepts", "42", "Numbers", "4", true, true, ""},
		{"predicate rejects", "4x", "Numbers", "4", true, false, `Does not fit category "Numbers"`},
		{"unknown category open world", "whatever", "Mystery", "W", true, true, ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := v.Validate(tc.answer, tc.category, tc.letter)
			if result.ValidLetter != tc.validLetter {
				t.Errorf("ValidLetter = %v, want %v", result.ValidLetter, tc.validLetter)
			}
			if result.ValidCategory != tc.validCategory {
				t.Errorf("ValidCategory = %v, want %v", result.ValidCategory, tc.validCategory)
			}
			if result.FailureReason != tc.reason {
				t.Errorf("FailureReason = %q, want %q", result.FailureReason, tc.reason)
			}
		})
	}
}

// Partial matching accepts mutual substrings, so a prefix of a keyword
// matches too.
func TestValidatePartialMutualSubstring(t *testing.T) {
	t.Parallel()

	v := NewValidator(testDictionary(), nil)

	if result := v.Validate("elephan", "Animals", "E"); !result.ValidCategory {
		t.Fatalf("prefix of keyword should match under partial rule: %+v", result)
	}
}

func TestValidateLetterFailureTakesPrecedence(t *testing.T) {
	t.Parallel()

	v := NewValidator(testDictionary(), nil)
	result := v.Validate("bogus", "Colors", "A")

	if result.ValidLetter || result.ValidCategory {
		t.Fatalf("expected both checks to fail, got %+v", result)
	}
	if !strings.Contains(result.FailureReason, "start with") {
		t.Fatalf("expected letter failure reported first, got %q", result.FailureReason)
	}
}

func TestValidateOraclePrecedesDictionary(t *testing.T) {
	t.Parallel()

	oracle := NewBankOracle(MapSource{
		"colors": {"cerulean"},
	})
	v := NewValidator(testDictionary(), oracle)

	// the oracle accepts a word the dictionary does not know
	if result := v.Validate("cerulean", "Colors", "C"); !result.ValidCategory {
		t.Fatalf("expected oracle to accept, got %+v", result)
	}

	// the oracle rejects a word the dictionary would accept
	result := v.Validate("blue", "Colors", "B")
	if result.ValidCategory {
		t.Fatalf("expected oracle rejection to win, got %+v", result)
	}
	if result.FailureReason == "" {
		t.Fatalf("expected oracle explanation in failure reason")
	}
}

func TestValidateFallsBackWhenOracleAbstains(t *testing.T) {
	t.Parallel()

	// the oracle only knows animals; colors resolve via the dictionary
	oracle := NewBankOracle(MapSource{"animals": {"cat"}})
	v := NewValidator(testDictionary(), oracle)

	if result := v.Validate("blue", "Colors", "B"); !result.ValidCategory {
		t.Fatalf("expected dictionary fallback to accept, got %+v", result)
	}
}
