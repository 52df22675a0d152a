package model

import "time"

// WordSet is the stored vocabulary of one category.
type WordSet struct {
	Category  string    `json:"category"`
	Words     []string  `json:"words"`
	UpdatedAt time.Time `json:"updatedAt"`
}
