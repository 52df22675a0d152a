package model

import "time"

// Snapshot is the last session payload seen for one room code. The
// blob stays opaque; Version is lifted out so stale writes can be
// rejected without another decode.
type Snapshot struct {
	Code      int64     `json:"code"`
	Version   uint64    `json:"version"`
	Blob      []byte    `json:"blob"`
	UpdatedAt time.Time `json:"updatedAt"`
}
