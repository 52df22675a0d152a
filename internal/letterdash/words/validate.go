package words

import (
	"fmt"
	"strings"
)

const ReasonEmpty = "Empty answer"

// Result is the validator's judgement of a single answer.
type Result struct {
	ValidLetter   bool
	ValidCategory bool
	FailureReason string
}

func (r Result) Valid() bool {
	return r.ValidLetter && r.ValidCategory
}

func NewValidator(dict Dictionary, oracle Oracle) *Validator {
	return &Validator{dict: dict, oracle: oracle}
}

// Validator decides whether an answer fits the round's letter and its
// category. The oracle, when present, has the final word on category
// fit; otherwise the dictionary rule applies, and a category with no
// rule at all accepts any non-empty answer.
type Validator struct {
	dict   Dictionary
	oracle Oracle
}

func (v *Validator) Validate(answer, category, letter string) Result {
	answer = Normalize(answer)
	if answer == "" {
		return Result{FailureReason: ReasonEmpty}
	}

	result := Result{
		ValidLetter: strings.HasPrefix(answer, Normalize(letter)),
	}

	var explanation string
	result.ValidCategory, explanation = v.categoryFit(answer, category)

	// letter failure takes precedence in the reported reason
	switch {
	case !result.ValidLetter:
		result.FailureReason = fmt.Sprintf("Does not start with %q", strings.ToUpper(letter))
	case !result.ValidCategory:
		if explanation == "" {
			explanation = fmt.Sprintf("Does not fit category %q", category)
		}
		result.FailureReason = explanation
	}

	return result
}

func (v *Validator) categoryFit(answer, category string) (bool, string) {
	if v.oracle != nil {
		if verdict, ok := v.oracle.Lookup(answer, Normalize(category)); ok {
			if verdict.IsValid {
				return true, ""
			}
			return false, verdict.Explanation
		}
	}

	rule, ok := v.dict.Lookup(category)
	if !ok {
		// unknown categories must not block play
		return true, ""
	}

	return rule.matches(answer), ""
}
