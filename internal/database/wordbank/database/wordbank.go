package database

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/letterdash-games/letterdash/internal/cache"
	"github.com/letterdash-games/letterdash/internal/database"
	"github.com/letterdash-games/letterdash/internal/database/wordbank/model"
	"github.com/letterdash-games/letterdash/internal/letterdash/words"
)

var ErrNotFound = fmt.Errorf("not found")

const bucket = "wordbank"

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

// DB stores per-category word sets in a bolt bucket keyed by the
// normalized category name, with an ARC cache in front of reads.
type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) Fetch(category string) (model.WordSet, error) {
	key := normalize(category)

	if db.cache != nil {
		if v, ok := db.cache.Get(key); ok {
			return v.(model.WordSet), nil
		}
	}

	var set model.WordSet
	var raw []byte

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrNotFound
		}
		raw = b.Get([]byte(key))
		return nil
	}); err != nil {
		return set, fmt.Errorf("view transaction error: %w", err)
	}

	if len(raw) == 0 {
		return set, ErrNotFound
	}

	if err := json.Unmarshal(raw, &set); err != nil {
		return set, fmt.Errorf("unmarshal: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(key, set)
	}

	return set, nil
}

func (db *DB) Put(set model.WordSet) error {
	set.Category = normalize(set.Category)
	set.UpdatedAt = time.Now()

	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() // nolint

	b := tx.Bucket([]byte(bucket))
	if b == nil {
		bs, err := tx.CreateBucket([]byte(bucket))
		if err != nil {
			return fmt.Errorf("can not create bucket: %w", err)
		}
		b = bs
	}

	bytes, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := b.Put([]byte(set.Category), bytes); err != nil {
		return fmt.Errorf("put to bucket error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(set.Category)
	}

	return nil
}

// Seed loads word sets for categories the bank does not know yet.
func (db *DB) Seed(sets map[string][]string) error {
	for category, list := range sets {
		if _, err := db.Fetch(category); err == nil {
			continue
		}
		if err := db.Put(model.WordSet{Category: category, Words: list}); err != nil {
			return fmt.Errorf("seed %q: %w", category, err)
		}
	}
	return nil
}

var _ words.Source = (*DB)(nil)

// Words implements words.Source over the stored sets.
func (db *DB) Words(category string) ([]string, bool) {
	set, err := db.Fetch(category)
	if err != nil {
		return nil, false
	}
	return set.Words, true
}

// Categories implements words.Source; it lists every stored category.
func (db *DB) Categories() []string {
	var categories []string

	_ = db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			categories = append(categories, string(k))
			return nil
		})
	})

	return categories
}

func normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
