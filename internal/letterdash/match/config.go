package match

import (
	"time"

	"github.com/letterdash-games/letterdash/internal/letterdash/resource"
)

const (
	DefaultMinPlayers         = 2
	DefaultMaxPlayers         = 8
	DefaultTotalRounds        = 3
	DefaultCategoriesPerRound = 3
	DefaultRoundSeconds       = 120

	DefaultBasePoints = 1
	DefaultSpeedBonus = 5

	DefaultRoundEndDelay  = 3 * time.Second
	DefaultNextRoundDelay = 2 * time.Second
)

// Config is the fixed per-session configuration. It is set at creation,
// travels with the serialized session and never changes afterwards.
type Config struct {
	TotalRounds        int      `json:"totalRounds"`
	CategoriesPerRound int      `json:"categoriesPerRound"`
	RoundSeconds       int      `json:"roundSeconds"`
	MinPlayers         int      `json:"minPlayers"`
	MaxPlayers         int      `json:"maxPlayers"`
	Letters            []string `json:"letters"`
	Categories         []string `json:"categories"`

	// scoring tunables; zero BasePoints/SpeedBonus mean the defaults,
	// negative values disable them, penalties default to zero
	BasePoints             int `json:"basePoints"`
	SpeedBonus             int `json:"speedBonus"`
	DuplicatePenalty       int `json:"duplicatePenalty"`
	InvalidLetterPenalty   int `json:"invalidLetterPenalty"`
	InvalidCategoryPenalty int `json:"invalidCategoryPenalty"`

	// host-side pacing between round end, scoring and the next round
	RoundEndDelay  time.Duration `json:"roundEndDelay"`
	NextRoundDelay time.Duration `json:"nextRoundDelay"`
}

func DefaultConfig() Config {
	return Config{
		TotalRounds:        DefaultTotalRounds,
		CategoriesPerRound: DefaultCategoriesPerRound,
		RoundSeconds:       DefaultRoundSeconds,
		MinPlayers:         DefaultMinPlayers,
		MaxPlayers:         DefaultMaxPlayers,
		Letters:            resource.ActiveLetters(),
		Categories:         resource.ActiveCategories(),
		BasePoints:         DefaultBasePoints,
		SpeedBonus:         DefaultSpeedBonus,
		RoundEndDelay:      DefaultRoundEndDelay,
		NextRoundDelay:     DefaultNextRoundDelay,
	}
}

func (c Config) withDefaults() Config {
	if c.TotalRounds <= 0 {
		c.TotalRounds = DefaultTotalRounds
	}
	if c.CategoriesPerRound <= 0 {
		c.CategoriesPerRound = DefaultCategoriesPerRound
	}
	if c.RoundSeconds <= 0 {
		c.RoundSeconds = DefaultRoundSeconds
	}
	if c.MinPlayers <= 0 {
		c.MinPlayers = DefaultMinPlayers
	}
	if c.MaxPlayers <= 0 {
		c.MaxPlayers = DefaultMaxPlayers
	}
	if len(c.Letters) == 0 {
		c.Letters = resource.ActiveLetters()
	}
	if len(c.Categories) == 0 {
		c.Categories = resource.ActiveCategories()
	}
	// zero scoring values fall back to the defaults; a negative value
	// disables the component
	if c.BasePoints == 0 {
		c.BasePoints = DefaultBasePoints
	} else if c.BasePoints < 0 {
		c.BasePoints = 0
	}
	if c.SpeedBonus == 0 {
		c.SpeedBonus = DefaultSpeedBonus
	} else if c.SpeedBonus < 0 {
		c.SpeedBonus = 0
	}
	if c.CategoriesPerRound > len(c.Categories) {
		c.CategoriesPerRound = len(c.Categories)
	}
	return c
}
