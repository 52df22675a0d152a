package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/letterdash-games/letterdash/internal/cache/cachelru"
	"github.com/letterdash-games/letterdash/internal/database"
	wordbankDb "github.com/letterdash-games/letterdash/internal/database/wordbank/database"
	"github.com/letterdash-games/letterdash/internal/letterdash/match"
	"github.com/letterdash-games/letterdash/internal/letterdash/resource"
	"github.com/letterdash-games/letterdash/internal/letterdash/words"
	"github.com/letterdash-games/letterdash/internal/logging"
	"github.com/letterdash-games/letterdash/internal/shutdown"
	"github.com/letterdash-games/letterdash/internal/util"
)

type Config struct {
	Debug bool `envconfig:"LETTERDASH_DEBUG" default:"false"`

	// demo game shape
	Rounds             int `envconfig:"LETTERDASH_ROUNDS" default:"2"`
	CategoriesPerRound int `envconfig:"LETTERDASH_CATEGORIES_PER_ROUND" default:"2"`
	RoundSeconds       int `envconfig:"LETTERDASH_ROUND_SECONDS" default:"15"`
	BotPlayers         int `envconfig:"LETTERDASH_BOT_PLAYERS" default:"3"`

	CacheSize int `envconfig:"LETTERDASH_CACHE_SIZE" default:"1024"`
	Db        database.Config
}

func main() {
	ctx, done := shutdown.New()
	defer done()

	logger := logging.FromContext(ctx)
	if err := realMain(ctx); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context) error {
	config := Config{}
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("processing the config: %w", err)
	}

	logger := logging.NewLogger(config.Debug).Named("cli")
	ctx = logging.WithLogger(ctx, logger)

	db, err := database.New(ctx, &config.Db)
	if err != nil {
		return fmt.Errorf("new database: %w", err)
	}
	defer db.Close(ctx)

	bankCache, err := cachelru.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	bank := wordbankDb.New(db, bankCache)
	if err := bank.Seed(resource.SeedWords()); err != nil {
		return fmt.Errorf("seed word bank: %w", err)
	}

	validator := words.NewValidator(resource.DefaultDictionary(), words.NewBankOracle(bank))

	cfg := match.DefaultConfig()
	cfg.TotalRounds = config.Rounds
	cfg.CategoriesPerRound = config.CategoriesPerRound
	cfg.RoundSeconds = config.RoundSeconds
	cfg.RoundEndDelay = time.Second
	cfg.NextRoundDelay = time.Second

	m := match.New(cfg, "Host", resource.Avatars[0], match.WithValidator(validator), match.WithLogger(logger))

	var bots []*match.Player
	for i := 0; i < config.BotPlayers; i++ {
		bot, err := m.Join(fmt.Sprintf("Bot %d", i+1), resource.Avatars[(i+1)%len(resource.Avatars)])
		if err != nil {
			return fmt.Errorf("join bot: %w", err)
		}
		bots = append(bots, bot)
	}

	events := make(chan match.Event, 64)
	unsubscribe := m.Subscribe(func(ev match.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	defer unsubscribe()

	host, err := m.Host()
	if err != nil {
		return fmt.Errorf("host controller: %w", err)
	}

	if err := host.StartGame(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	if err := host.StartNextRound(); err != nil {
		return fmt.Errorf("start round: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev.Type {
			case match.EventRoundStarted:
				fmt.Fprintf(os.Stdout, "\nRound %d — letter %q, categories: %s\n",
					ev.Session.CurrentRound,
					ev.Session.CurrentLetter,
					strings.Join(ev.Session.CurrentCategories, ", "),
				)
				go play(m, ev.Session, bots)
			case match.EventScoresApplied:
				fmt.Fprint(os.Stdout, match.RenderBreakdown(ev.Session, ev.Breakdowns))
			case match.EventGameCompleted:
				fmt.Fprintf(os.Stdout, "\nFinal standings:\n%s", match.RenderScoreboard(ev.Session))
				return nil
			}
		}
	}
}

// play submits scripted answers for the host and every bot.
func play(m *match.Match, s *match.Session, bots []*match.Player) {
	logger := logging.DefaultLogger().Named("cli.play")
	seed := resource.SeedWords()

	submit := func(playerID string, offset int) {
		answers := map[string]string{}
		for _, category := range s.CurrentCategories {
			answers[category] = pickWord(seed, category, s.CurrentLetter, offset)
		}
		if err := m.SubmitAnswers(playerID, answers); err != nil {
			logger.Debugf("submit for %s: %v", playerID, err)
		}
	}

	util.Sleep(time.Second)
	if host, ok := m.LocalPlayer(); ok {
		submit(host.ID, 0)
	}

	for i, bot := range bots {
		util.Sleep(500 * time.Millisecond)
		submit(bot.ID, i+1)
	}
}

// pickWord finds the offset-th stored word starting with the round's
// letter, so different players mostly answer differently.
func pickWord(seed map[string][]string, category, letter string, offset int) string {
	set := seed[strings.ToLower(category)]

	var matches []string
	for _, w := range set {
		if strings.HasPrefix(strings.ToLower(w), strings.ToLower(letter)) {
			matches = append(matches, w)
		}
	}

	if len(matches) == 0 {
		return ""
	}
	return matches[offset%len(matches)]
}
