package match

import (
	"sort"
	"strconv"

	"github.com/enescakir/emoji"
	"github.com/letterdash-games/letterdash/internal/strpool"
)

// RenderScoreboard formats the players ordered by score, leader first.
func RenderScoreboard(s *Session) string {
	players := make([]*Player, len(s.Players))
	copy(players, s.Players)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	for i, p := range players {
		if i == 0 && p.Score > 0 {
			buf.WriteString(emoji.Trophy.String())
		} else {
			buf.WriteString(strconv.Itoa(i + 1))
			buf.WriteString(".")
		}
		buf.WriteString(" ")
		buf.WriteString(p.FormatName())
		buf.WriteString(" — ")
		buf.WriteString(strconv.Itoa(p.Score))
		buf.WriteString("\n")
	}

	return buf.String()
}

// RenderBreakdown formats one round's results per player.
func RenderBreakdown(s *Session, breakdowns []ScoreBreakdown) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	for _, b := range breakdowns {
		player, ok := s.FindPlayer(b.PlayerID)
		if !ok {
			continue
		}

		buf.WriteString(player.FormatName())
		buf.WriteString("\n")

		for _, r := range b.Results {
			buf.WriteString("  ")
			buf.WriteString(r.Category)
			buf.WriteString(": ")
			if r.Answer == "" {
				buf.WriteString("—")
			} else {
				buf.WriteString(r.Answer)
			}
			buf.WriteString(" ")
			if r.Points > 0 {
				buf.WriteString(emoji.CheckMarkButton.String())
			} else {
				buf.WriteString(emoji.CrossMark.String())
			}
			buf.WriteString(" ")
			if r.Points >= 0 {
				buf.WriteString("+")
			}
			buf.WriteString(strconv.Itoa(r.Points))
			if r.FailureReason != "" {
				buf.WriteString(" (")
				buf.WriteString(r.FailureReason)
				buf.WriteString(")")
			}
			buf.WriteString("\n")
		}

		if b.SpeedBonus > 0 {
			buf.WriteString("  ")
			buf.WriteString(emoji.HighVoltage.String())
			buf.WriteString(" speed bonus +")
			buf.WriteString(strconv.Itoa(b.SpeedBonus))
			buf.WriteString("\n")
		}

		buf.WriteString("  total +")
		buf.WriteString(strconv.Itoa(b.Total))
		buf.WriteString("\n")
	}

	return buf.String()
}
