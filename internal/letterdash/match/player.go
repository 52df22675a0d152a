package match

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/letterdash-games/letterdash/internal/strpool"
)

func NewPlayer(name, avatar string, host bool) *Player {
	return &Player{
		ID:     uuid.NewString(),
		Name:   name,
		Avatar: avatar,
		IsHost: host,
	}
}

// Player is one participant of a session. Score only grows, and only
// when a round's breakdowns are applied.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Score  int    `json:"score"`
	IsHost bool   `json:"isHost"`
}

func (p *Player) FormatName() string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	if p.Avatar != "" {
		buf.WriteString(p.Avatar)
		buf.WriteString(" ")
	}
	buf.WriteString(p.Name)
	if p.Score > 0 {
		buf.WriteString(" (")
		buf.WriteString(strconv.Itoa(p.Score))
		buf.WriteString(")")
	}

	return buf.String()
}
