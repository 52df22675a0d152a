package match

import (
	"time"
)

type Status uint8

const (
	StatusWaitingForPlayers Status = iota + 1
	StatusReady
	StatusRoundInProgress
	StatusWaitingForSubmissions
	StatusRoundEnded
	StatusGameCompleted
)

func (s Status) String() string {
	switch s {
	case StatusWaitingForPlayers:
		return "waiting_for_players"
	case StatusReady:
		return "ready"
	case StatusRoundInProgress:
		return "round_in_progress"
	case StatusWaitingForSubmissions:
		return "waiting_for_submissions"
	case StatusRoundEnded:
		return "round_ended"
	case StatusGameCompleted:
		return "game_completed"
	}
	return "unknown"
}

// Accepting reports whether submissions are currently allowed.
func (s Status) Accepting() bool {
	return s == StatusRoundInProgress || s == StatusWaitingForSubmissions
}

// Submission is one player's answers for the active round. It is
// created once and never merged; a second submission by the same
// player is rejected.
type Submission struct {
	PlayerID    string            `json:"playerId"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

func (s *Submission) clone() *Submission {
	cp := &Submission{
		PlayerID:    s.PlayerID,
		Answers:     make(map[string]string, len(s.Answers)),
		SubmittedAt: s.SubmittedAt,
	}
	for k, v := range s.Answers {
		cp.Answers[k] = v
	}
	return cp
}

// Session is the complete shared state of one game. Each device holds
// its own copy; the codec in serialize.go carries it between devices.
type Session struct {
	ID           string `json:"id"`
	Code         int64  `json:"code"`
	HostPlayerID string `json:"hostPlayerId"`
	Config       Config `json:"config"`

	// Version grows on every accepted mutation; stale incoming copies
	// are discarded by comparing it.
	Version uint64 `json:"version"`

	Players []*Player `json:"players"`

	CurrentRound      int       `json:"currentRound"`
	Status            Status    `json:"status"`
	CurrentLetter     string    `json:"currentLetter"`
	CurrentCategories []string  `json:"currentCategories"`
	RoundStartedAt    time.Time `json:"roundStartedAt"`

	Submissions        map[string]*Submission `json:"submissions"`
	SubmittedPlayerIDs map[string]bool        `json:"submittedPlayerIds"`

	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) FindPlayer(id string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (s *Session) FindPlayerByName(name string) (*Player, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func (s *Session) AllSubmitted() bool {
	return len(s.Players) > 0 && len(s.SubmittedPlayerIDs) == len(s.Players)
}

// Remaining is the round time left at now, clamped to zero.
func (s *Session) Remaining(now time.Time) time.Duration {
	if !s.Status.Accepting() || s.RoundStartedAt.IsZero() {
		return 0
	}
	remaining := time.Duration(s.Config.RoundSeconds)*time.Second - now.Sub(s.RoundStartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Session) clearRound() {
	s.CurrentLetter = ""
	s.CurrentCategories = nil
	s.Submissions = map[string]*Submission{}
	s.SubmittedPlayerIDs = map[string]bool{}
}

// Clone deep-copies the session for snapshots handed to observers.
func (s *Session) Clone() *Session {
	cp := *s

	cp.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		player := *p
		cp.Players[i] = &player
	}

	cp.CurrentCategories = append([]string(nil), s.CurrentCategories...)
	cp.Config.Letters = append([]string(nil), s.Config.Letters...)
	cp.Config.Categories = append([]string(nil), s.Config.Categories...)

	cp.Submissions = make(map[string]*Submission, len(s.Submissions))
	for id, sub := range s.Submissions {
		cp.Submissions[id] = sub.clone()
	}

	cp.SubmittedPlayerIDs = make(map[string]bool, len(s.SubmittedPlayerIDs))
	for id := range s.SubmittedPlayerIDs {
		cp.SubmittedPlayerIDs[id] = true
	}

	return &cp
}

// normalize restores field invariants after decoding: maps are never
// nil and the submitted set mirrors the submission keys.
func (s *Session) normalize() {
	s.Config = s.Config.withDefaults()

	if s.Submissions == nil {
		s.Submissions = map[string]*Submission{}
	}

	s.SubmittedPlayerIDs = make(map[string]bool, len(s.Submissions))
	for id := range s.Submissions {
		s.SubmittedPlayerIDs[id] = true
	}

	if s.Players == nil {
		s.Players = []*Player{}
	}

	if s.Status == 0 {
		s.Status = StatusWaitingForPlayers
	}
}
