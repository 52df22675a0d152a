package match

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a session for transport. The payload is opaque to
// the transport layer; only Decode understands it.
func Encode(s *Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return b, nil
}

// Decode restores a session from transported bytes. Missing optional
// fields fall back to their defaults; malformed payloads return an
// error and no session.
func Decode(b []byte) (*Session, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("decode session: empty payload")
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	if s.ID == "" {
		return nil, fmt.Errorf("decode session: missing id")
	}

	s.normalize()
	return &s, nil
}
