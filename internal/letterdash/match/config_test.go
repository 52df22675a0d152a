package match

import "testing"

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.withDefaults()

	if cfg.BasePoints != DefaultBasePoints {
		t.Fatalf("BasePoints = %d, want %d", cfg.BasePoints, DefaultBasePoints)
	}
	if cfg.SpeedBonus != DefaultSpeedBonus {
		t.Fatalf("SpeedBonus = %d, want %d", cfg.SpeedBonus, DefaultSpeedBonus)
	}
	if cfg.MaxPlayers != DefaultMaxPlayers || cfg.MinPlayers != DefaultMinPlayers {
		t.Fatalf("player bounds not defaulted: %+v", cfg)
	}
	if len(cfg.Letters) == 0 || len(cfg.Categories) == 0 {
		t.Fatalf("content tables not defaulted")
	}
}

func TestConfigNegativeDisablesScoring(t *testing.T) {
	t.Parallel()

	cfg := Config{BasePoints: -1, SpeedBonus: -1}.withDefaults()

	if cfg.BasePoints != 0 {
		t.Fatalf("BasePoints = %d, want 0", cfg.BasePoints)
	}
	if cfg.SpeedBonus != 0 {
		t.Fatalf("SpeedBonus = %d, want 0", cfg.SpeedBonus)
	}
}

func TestConfigExplicitValuesKept(t *testing.T) {
	t.Parallel()

	cfg := Config{BasePoints: 3, SpeedBonus: 10}.withDefaults()

	if cfg.BasePoints != 3 || cfg.SpeedBonus != 10 {
		t.Fatalf("explicit scoring values overridden: %+v", cfg)
	}
}

func TestConfigCategoriesPerRoundClamped(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Categories:         []string{"Colors", "Animals"},
		CategoriesPerRound: 5,
	}.withDefaults()

	if cfg.CategoriesPerRound != 2 {
		t.Fatalf("CategoriesPerRound = %d, want 2", cfg.CategoriesPerRound)
	}
}
