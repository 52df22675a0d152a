package match

// join appends a new player to the session. A join under an already
// taken name is ignored and reports the existing player; a full
// session is rejected.
func join(s *Session, name, avatar string) (*Player, bool, error) {
	if existing, ok := s.FindPlayerByName(name); ok {
		return existing, false, nil
	}

	if len(s.Players) >= s.Config.MaxPlayers {
		return nil, false, ErrSessionFull
	}

	player := NewPlayer(name, avatar, false)
	s.Players = append(s.Players, player)
	s.Version++

	return player, true, nil
}

// merge applies an incoming session to the local one. The policy is
// wholesale last-write-wins replacement gated on the version counter,
// with one carve-out: same-round submissions that a stale copy carries
// and the local copy lacks are folded in additively, so two devices
// submitting at the same version cannot silently drop one another's
// answers.
func merge(local, incoming *Session) (*Session, bool, error) {
	if incoming.Version > local.Version {
		return incoming, true, nil
	}

	if sameRound(local, incoming) && local.Status.Accepting() {
		absorbed := false
		for id, sub := range incoming.Submissions {
			if local.SubmittedPlayerIDs[id] {
				continue
			}
			if _, known := local.FindPlayer(id); !known {
				continue
			}
			local.Submissions[id] = sub.clone()
			local.SubmittedPlayerIDs[id] = true
			absorbed = true
		}
		if absorbed {
			local.Version++
			return local, false, nil
		}
	}

	return nil, false, ErrStaleUpdate
}

func sameRound(a, b *Session) bool {
	return a.ID == b.ID &&
		a.CurrentRound == b.CurrentRound &&
		a.CurrentLetter == b.CurrentLetter &&
		a.RoundStartedAt.Equal(b.RoundStartedAt)
}
