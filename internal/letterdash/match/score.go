package match

import (
	"time"

	"github.com/letterdash-games/letterdash/internal/letterdash/words"
)

const duplicateReason = "Duplicate answer"

// CategoryResult is the judgement of one answer in one category.
type CategoryResult struct {
	Category      string `json:"category"`
	Answer        string `json:"answer"`
	ValidLetter   bool   `json:"validLetter"`
	ValidCategory bool   `json:"validCategory"`
	Duplicate     bool   `json:"duplicate"`
	Points        int    `json:"points"`
	FailureReason string `json:"failureReason,omitempty"`
}

// ScoreBreakdown is one player's result for a single round. It is
// transient: applied to the player's score, then discarded.
type ScoreBreakdown struct {
	PlayerID   string           `json:"playerId"`
	Results    []CategoryResult `json:"results"`
	SpeedBonus int              `json:"speedBonus"`
	Total      int              `json:"total"`
}

// Score computes the round's breakdowns. It is a pure function of its
// inputs: players are walked in session order and the speed-bonus tie
// breaks on the smallest player id, so every device computing the same
// round arrives at the same result.
func Score(
	submissions map[string]*Submission,
	players []*Player,
	letter string,
	categories []string,
	roundStartedAt time.Time,
	validator *words.Validator,
	cfg Config,
) []ScoreBreakdown {
	breakdowns := make([]ScoreBreakdown, len(players))

	for i, player := range players {
		breakdown := ScoreBreakdown{PlayerID: player.ID, Results: make([]CategoryResult, len(categories))}
		sub := submissions[player.ID]

		for j, category := range categories {
			var answer string
			if sub != nil {
				answer = sub.Answers[category]
			}

			result := validator.Validate(answer, category, letter)
			cr := CategoryResult{
				Category:      category,
				Answer:        answer,
				ValidLetter:   result.ValidLetter,
				ValidCategory: result.ValidCategory,
				FailureReason: result.FailureReason,
			}
			if result.Valid() {
				cr.Points = cfg.BasePoints
			} else if result.FailureReason != words.ReasonEmpty {
				if !result.ValidLetter {
					cr.Points -= cfg.InvalidLetterPenalty
				} else {
					cr.Points -= cfg.InvalidCategoryPenalty
				}
			}
			breakdown.Results[j] = cr
		}

		breakdowns[i] = breakdown
	}

	markDuplicates(breakdowns, categories, cfg)
	awardSpeedBonus(breakdowns, submissions, categories, roundStartedAt, cfg)

	for i := range breakdowns {
		total := breakdowns[i].SpeedBonus
		for _, r := range breakdowns[i].Results {
			total += r.Points
		}
		if total < 0 {
			total = 0
		}
		breakdowns[i].Total = total
	}

	return breakdowns
}

// markDuplicates zeroes every holder of an answer shared by two or more
// players within the same category. Empty answers never count.
func markDuplicates(breakdowns []ScoreBreakdown, categories []string, cfg Config) {
	for j := range categories {
		counts := map[string]int{}
		for i := range breakdowns {
			if answer := words.Normalize(breakdowns[i].Results[j].Answer); answer != "" {
				counts[answer]++
			}
		}

		for i := range breakdowns {
			cr := &breakdowns[i].Results[j]
			answer := words.Normalize(cr.Answer)
			if answer == "" || counts[answer] < 2 {
				continue
			}

			cr.Duplicate = true
			cr.Points = -cfg.DuplicatePenalty
			if cr.FailureReason != "" {
				cr.FailureReason += "; " + duplicateReason
			} else {
				cr.FailureReason = duplicateReason
			}
		}
	}
}

// awardSpeedBonus grants the bonus to the single fastest player whose
// submission answered every category. Ties break on the smallest
// player id.
func awardSpeedBonus(
	breakdowns []ScoreBreakdown,
	submissions map[string]*Submission,
	categories []string,
	roundStartedAt time.Time,
	cfg Config,
) {
	winner := -1
	var winnerElapsed time.Duration

	for i := range breakdowns {
		sub := submissions[breakdowns[i].PlayerID]
		if sub == nil || !complete(sub, categories) {
			continue
		}

		elapsed := sub.SubmittedAt.Sub(roundStartedAt)
		switch {
		case winner == -1,
			elapsed < winnerElapsed,
			elapsed == winnerElapsed && breakdowns[i].PlayerID < breakdowns[winner].PlayerID:
			winner = i
			winnerElapsed = elapsed
		}
	}

	if winner >= 0 {
		breakdowns[winner].SpeedBonus = cfg.SpeedBonus
	}
}

func complete(sub *Submission, categories []string) bool {
	for _, category := range categories {
		if words.Normalize(sub.Answers[category]) == "" {
			return false
		}
	}
	return true
}
