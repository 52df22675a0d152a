package database

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/letterdash-games/letterdash/internal/cache/cachelru"
	"github.com/letterdash-games/letterdash/internal/database"
	"github.com/letterdash-games/letterdash/internal/database/wordbank/model"
)

func testBank(t *testing.T) *DB {
	t.Helper()

	sDB, err := database.New(context.Background(), &database.Config{
		FilePath: filepath.Join(t.TempDir(), "wordbank.db"),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sDB.Close(context.Background()) })

	c, err := cachelru.NewLRU(16)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	return New(sDB, c)
}

func TestPutFetch(t *testing.T) {
	bank := testBank(t)

	if err := bank.Put(model.WordSet{Category: "  Colors ", Words: []string{"blue", "red"}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	set, err := bank.Fetch("colors")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if set.Category != "colors" {
		t.Fatalf("category not normalized on write: %q", set.Category)
	}
	if len(set.Words) != 2 || set.Words[0] != "blue" {
		t.Fatalf("words drifted: %v", set.Words)
	}
	if set.UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not stamped")
	}

	// mixed-case lookups hit the same entry
	if _, err := bank.Fetch("COLORS"); err != nil {
		t.Fatalf("case-insensitive fetch: %v", err)
	}
}

func TestFetchMissing(t *testing.T) {
	bank := testBank(t)

	if _, err := bank.Fetch("unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchServedFromCache(t *testing.T) {
	bank := testBank(t)

	if err := bank.Put(model.WordSet{Category: "animals", Words: []string{"cat"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := bank.Fetch("animals"); err != nil {
		t.Fatalf("warm fetch: %v", err)
	}

	if _, ok := bank.cache.Get("animals"); !ok {
		t.Fatalf("fetch did not populate the cache")
	}

	// a write invalidates the cached entry
	if err := bank.Put(model.WordSet{Category: "animals", Words: []string{"cat", "dog"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := bank.cache.Get("animals"); ok {
		t.Fatalf("stale entry survived the write")
	}

	set, err := bank.Fetch("animals")
	if err != nil {
		t.Fatalf("fetch after rewrite: %v", err)
	}
	if len(set.Words) != 2 {
		t.Fatalf("expected rewritten words, got %v", set.Words)
	}
}

func TestSeedSkipsExisting(t *testing.T) {
	bank := testBank(t)

	if err := bank.Put(model.WordSet{Category: "colors", Words: []string{"vermilion"}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := bank.Seed(map[string][]string{
		"colors":  {"blue", "red"},
		"animals": {"cat", "dog"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	set, err := bank.Fetch("colors")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(set.Words) != 1 || set.Words[0] != "vermilion" {
		t.Fatalf("seed overwrote an existing set: %v", set.Words)
	}

	if _, err := bank.Fetch("animals"); err != nil {
		t.Fatalf("seeded category missing: %v", err)
	}
}

func TestSourceInterface(t *testing.T) {
	bank := testBank(t)

	if err := bank.Seed(map[string][]string{
		"colors":  {"blue"},
		"animals": {"cat"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	words, ok := bank.Words("Colors")
	if !ok || len(words) != 1 || words[0] != "blue" {
		t.Fatalf("Words mismatch: %v %v", words, ok)
	}
	if _, ok := bank.Words("cities"); ok {
		t.Fatalf("expected no words for an unknown category")
	}

	categories := bank.Categories()
	sort.Strings(categories)
	want := []string{"animals", "colors"}
	if len(categories) != 2 || categories[0] != want[0] || categories[1] != want[1] {
		t.Fatalf("Categories mismatch: %v", categories)
	}
}
