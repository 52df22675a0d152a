package words

import "fmt"

// similarity above this threshold counts as a fuzzy match
const similarityThreshold = 0.7

const (
	confidenceExact = 1.0
	confidenceFuzzy = 0.8
	confidenceWrong = 0.9
	confidenceLow   = 0.3
)

// Verdict is the content bank's judgement for one (answer, category) pair.
type Verdict struct {
	IsValid     bool    `json:"isValid"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Oracle is the pluggable external validation source. Lookup reports
// absent (false) when the bank has no opinion for the category, in which
// case validation falls back to the dictionary rules.
type Oracle interface {
	Lookup(answer, category string) (Verdict, bool)
}

// Source supplies per-category word sets to the bank oracle. Categories
// and words are normalized by the implementation.
type Source interface {
	Words(category string) ([]string, bool)
	Categories() []string
}

func NewBankOracle(source Source) *BankOracle {
	return &BankOracle{source: source}
}

// BankOracle judges answers against stored word sets: exact membership,
// then fuzzy similarity, then a probe of every other category to call
// out answers that fit the wrong category.
type BankOracle struct {
	source Source
}

var _ Oracle = (*BankOracle)(nil)

func (o *BankOracle) Lookup(answer, category string) (Verdict, bool) {
	answer = Normalize(answer)
	category = Normalize(category)

	set, ok := o.source.Words(category)
	if !ok {
		return Verdict{}, false
	}

	for _, w := range set {
		if Normalize(w) == answer {
			return Verdict{
				IsValid:     true,
				Confidence:  confidenceExact,
				Explanation: fmt.Sprintf("%q is a known %s answer", answer, category),
			}, true
		}
	}

	var best float64
	var bestWord string
	for _, w := range set {
		if s := Similarity(answer, Normalize(w)); s > best {
			best = s
			bestWord = w
		}
	}

	if best > similarityThreshold {
		return Verdict{
			IsValid:     true,
			Confidence:  best,
			Explanation: fmt.Sprintf("%q is close to %q", answer, bestWord),
		}, true
	}

	for _, other := range o.source.Categories() {
		if other == category {
			continue
		}
		otherSet, ok := o.source.Words(other)
		if !ok {
			continue
		}
		for _, w := range otherSet {
			if Normalize(w) == answer {
				return Verdict{
					IsValid:     false,
					Confidence:  confidenceWrong,
					Explanation: fmt.Sprintf("%q belongs to category %s", answer, other),
				}, true
			}
		}
	}

	return Verdict{
		IsValid:     false,
		Confidence:  confidenceLow,
		Explanation: fmt.Sprintf("%q is not a known %s answer", answer, category),
	}, true
}

// MapSource is an in-memory Source, keyed by normalized category name.
type MapSource map[string][]string

var _ Source = (MapSource)(nil)

func (m MapSource) Words(category string) ([]string, bool) {
	set, ok := m[Normalize(category)]
	return set, ok
}

func (m MapSource) Categories() []string {
	categories := make([]string, 0, len(m))
	for category := range m {
		categories = append(categories, category)
	}
	return categories
}
