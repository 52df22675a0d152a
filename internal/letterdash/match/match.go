package match

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fastrand"
	"go.uber.org/zap"

	"github.com/letterdash-games/letterdash/internal/hashutil"
	"github.com/letterdash-games/letterdash/internal/letterdash/resource"
	"github.com/letterdash-games/letterdash/internal/letterdash/words"
	"github.com/letterdash-games/letterdash/internal/logging"
	"github.com/letterdash-games/letterdash/internal/util"
)

var ErrSessionMismatch = errors.New("update for a different session")

type EventType string

const (
	EventPlayerJoined       EventType = "PLAYER_JOINED"
	EventGameStarted        EventType = "GAME_STARTED"
	EventRoundStarted       EventType = "ROUND_STARTED"
	EventSubmissionAccepted EventType = "SUBMISSION_ACCEPTED"
	EventRoundEnded         EventType = "ROUND_ENDED"
	EventScoresApplied      EventType = "SCORES_APPLIED"
	EventGameCompleted      EventType = "GAME_COMPLETED"
	EventStateReceived      EventType = "STATE_RECEIVED"
	EventCountdownTick      EventType = "COUNTDOWN_TICK"
)

// Event is published to observers on every confirmed state transition.
// Session is a snapshot the observer may keep. Encoded, when set, is
// the payload the device must hand to its transport for peers.
type Event struct {
	Type        EventType
	Session     *Session
	Encoded     []byte
	SecondsLeft int
	Breakdowns  []ScoreBreakdown
}

type Option func(*Match)

func WithValidator(v *words.Validator) Option {
	return func(m *Match) { m.validator = v }
}

func WithClock(now func() time.Time) Option {
	return func(m *Match) { m.now = now }
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(m *Match) { m.logger = logger }
}

// Match owns one device's copy of a Session. All mutations go through
// its methods under a single mutex; observers are notified after the
// lock is released. Host-only transitions live on HostController.
type Match struct {
	mu sync.Mutex

	session       *Session
	localPlayerID string

	validator *words.Validator
	logger    *zap.SugaredLogger
	now       func() time.Time

	observers    map[int]func(Event)
	nextObserver int

	// at most one countdown goroutine; replaced on round start
	countdownStop chan struct{}
}

// New creates a session with the local player as host.
func New(cfg Config, hostName, hostAvatar string, opts ...Option) *Match {
	cfg = cfg.withDefaults()
	host := NewPlayer(hostName, hostAvatar, true)

	m := newMatch(opts)
	m.localPlayerID = host.ID
	m.session = &Session{
		ID:                 uuid.NewString(),
		Code:               hashutil.JoinCode(),
		HostPlayerID:       host.ID,
		Config:             cfg,
		Version:            1,
		Players:            []*Player{host},
		Status:             StatusWaitingForPlayers,
		Submissions:        map[string]*Submission{},
		SubmittedPlayerIDs: map[string]bool{},
		CreatedAt:          m.now(),
	}

	return m
}

// FromSession adopts a session received from a peer, e.g. when a
// device joins mid-game from a transported snapshot. localPlayerID may
// be empty until the device claims a player via Join.
func FromSession(s *Session, localPlayerID string, opts ...Option) *Match {
	m := newMatch(opts)
	s.normalize()
	m.session = s
	m.localPlayerID = localPlayerID

	m.mu.Lock()
	if s.Status.Accepting() && s.Remaining(m.now()) > 0 {
		m.startCountdownLocked()
	}
	m.mu.Unlock()

	return m
}

func newMatch(opts []Option) *Match {
	m := &Match{
		validator: words.NewValidator(resource.DefaultDictionary(), nil),
		logger:    logging.DefaultLogger().Named("match"),
		now:       time.Now,
		observers: map[int]func(Event){},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers an observer; the returned function removes it.
func (m *Match) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextObserver
	m.nextObserver++
	m.observers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// Session returns a deep copy of the current state.
func (m *Match) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Clone()
}

func (m *Match) LocalPlayer() (*Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.localPlayerID == "" {
		return nil, false
	}
	p, ok := m.session.FindPlayer(m.localPlayerID)
	if !ok {
		return nil, false
	}
	player := *p
	return &player, true
}

func (m *Match) IsHost() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isHostLocked()
}

func (m *Match) isHostLocked() bool {
	return m.localPlayerID != "" && m.localPlayerID == m.session.HostPlayerID
}

// EncodeSnapshot serializes the current state, e.g. for seeding a
// transport channel.
func (m *Match) EncodeSnapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Encode(m.session)
}

// Join adds a player to the session. If the device had no local player
// yet, the joined player becomes it. A join under a taken name is
// ignored and reports the existing player.
func (m *Match) Join(name, avatar string) (*Player, error) {
	m.mu.Lock()

	if m.session.Status == StatusGameCompleted {
		m.mu.Unlock()
		return nil, ErrGameCompleted
	}

	player, added, err := join(m.session, name, avatar)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	if m.localPlayerID == "" {
		m.localPlayerID = player.ID
	}

	var events []Event
	if added {
		events = append(events, m.eventLocked(EventPlayerJoined, true))
	}
	joined := *player
	m.mu.Unlock()

	m.publish(events)
	return &joined, nil
}

// Submit records the local player's answers for the active round.
func (m *Match) Submit(answers map[string]string) error {
	m.mu.Lock()
	id := m.localPlayerID
	m.mu.Unlock()
	return m.SubmitAnswers(id, answers)
}

// SubmitAnswers records one player's answers. The first submission of
// a round flips the session to WaitingForSubmissions; the last one
// ends the round immediately without waiting for the countdown.
func (m *Match) SubmitAnswers(playerID string, answers map[string]string) error {
	m.mu.Lock()

	s := m.session
	if _, ok := s.FindPlayer(playerID); !ok {
		m.mu.Unlock()
		return ErrUnknownPlayer
	}
	if !s.Status.Accepting() {
		m.mu.Unlock()
		return ErrNoActiveRound
	}
	if s.SubmittedPlayerIDs[playerID] {
		m.mu.Unlock()
		return ErrAlreadySubmitted
	}

	sub := &Submission{
		PlayerID:    playerID,
		Answers:     make(map[string]string, len(answers)),
		SubmittedAt: m.now(),
	}
	for category, answer := range answers {
		sub.Answers[category] = answer
	}

	s.Submissions[playerID] = sub
	s.SubmittedPlayerIDs[playerID] = true
	if s.Status == StatusRoundInProgress {
		s.Status = StatusWaitingForSubmissions
	}
	s.Version++

	events := []Event{m.eventLocked(EventSubmissionAccepted, true)}
	if s.AllSubmitted() && m.isHostLocked() {
		m.endRoundLocked(&events)
	}
	m.mu.Unlock()

	m.publish(events)
	return nil
}

// ReceiveUpdate applies a session transported from a peer. Undecodable
// or stale payloads leave local state untouched.
func (m *Match) ReceiveUpdate(b []byte) error {
	incoming, err := Decode(b)
	if err != nil {
		m.logger.Debugf("discarding inbound update: %v", err)
		return err
	}

	m.mu.Lock()

	if incoming.ID != m.session.ID {
		m.mu.Unlock()
		return ErrSessionMismatch
	}

	merged, replaced, err := merge(m.session, incoming)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	var events []Event
	if replaced {
		m.session = merged
		m.applyHostFlagsLocked()
		events = append(events, m.eventLocked(EventStateReceived, false))
	} else {
		// a stale copy carried submissions we lacked; rebroadcast the
		// merged state so every device converges
		if m.session.Status == StatusRoundInProgress {
			m.session.Status = StatusWaitingForSubmissions
			m.session.Version++
		}
		events = append(events, m.eventLocked(EventStateReceived, true))
	}

	if m.session.Status.Accepting() {
		if m.session.AllSubmitted() && m.isHostLocked() {
			m.endRoundLocked(&events)
		} else if m.session.Remaining(m.now()) > 0 {
			m.startCountdownLocked()
		}
	} else {
		m.stopCountdownLocked()
	}

	m.mu.Unlock()
	m.publish(events)
	return nil
}

func (m *Match) applyHostFlagsLocked() {
	for _, p := range m.session.Players {
		p.IsHost = p.ID == m.session.HostPlayerID
	}
}

// Host returns the host-only controller, or ErrNotHost when the local
// player is not the session's host.
func (m *Match) Host() (*HostController, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isHostLocked() {
		return nil, ErrNotHost
	}
	return &HostController{m: m}, nil
}

// HostController carries the transitions only the host device drives.
type HostController struct {
	m *Match
}

// StartGame moves the lobby to Ready and arms round one.
func (h *HostController) StartGame() error {
	m := h.m
	m.mu.Lock()

	s := m.session
	if !m.isHostLocked() {
		m.mu.Unlock()
		return ErrNotHost
	}
	if s.Status != StatusWaitingForPlayers {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	if len(s.Players) < s.Config.MinPlayers {
		m.mu.Unlock()
		return ErrNotEnoughPlayers
	}

	s.Status = StatusReady
	s.CurrentRound = 1
	s.Version++

	events := []Event{m.eventLocked(EventGameStarted, true)}
	m.mu.Unlock()

	m.publish(events)
	return nil
}

// StartNextRound begins the armed round: draws the letter and the
// categories, stamps the start time, clears submissions and starts the
// countdown. Past the last round it completes the game instead.
func (h *HostController) StartNextRound() error {
	m := h.m
	m.mu.Lock()

	s := m.session
	if !m.isHostLocked() {
		m.mu.Unlock()
		return ErrNotHost
	}
	if s.Status == StatusGameCompleted {
		m.mu.Unlock()
		return ErrGameCompleted
	}
	if s.Status != StatusReady && s.Status != StatusRoundEnded {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}

	var events []Event
	if s.CurrentRound > s.Config.TotalRounds {
		m.completeGameLocked(&events)
	} else {
		m.startRoundLocked(&events)
	}
	m.mu.Unlock()

	m.publish(events)
	return nil
}

func (m *Match) startRoundLocked(events *[]Event) {
	s := m.session

	s.Status = StatusRoundInProgress
	s.CurrentLetter = s.Config.Letters[fastrand.Uint32n(uint32(len(s.Config.Letters)))]
	s.CurrentCategories = drawCategories(s.Config.Categories, s.Config.CategoriesPerRound)
	s.RoundStartedAt = m.now()
	s.Submissions = map[string]*Submission{}
	s.SubmittedPlayerIDs = map[string]bool{}
	s.Version++

	m.startCountdownLocked()
	*events = append(*events, m.eventLocked(EventRoundStarted, true))
}

func (m *Match) completeGameLocked(events *[]Event) {
	s := m.session
	s.Status = StatusGameCompleted
	s.clearRound()
	s.Version++
	m.stopCountdownLocked()
	*events = append(*events, m.eventLocked(EventGameCompleted, true))
}

// endRoundLocked closes the active round. Countdown expiry and
// all-submitted race here; whichever fires second becomes a no-op.
func (m *Match) endRoundLocked(events *[]Event) {
	s := m.session
	if !s.Status.Accepting() {
		return
	}

	m.stopCountdownLocked()
	s.Status = StatusRoundEnded
	s.Version++
	*events = append(*events, m.eventLocked(EventRoundEnded, true))

	if m.isHostLocked() {
		go m.finishRound(s.CurrentRound)
	}
}

// finishRound runs on the host after a round ends: score after a short
// pause, then either arm the next round or complete the game.
func (m *Match) finishRound(round int) {
	m.mu.Lock()
	delayEnd := m.session.Config.RoundEndDelay
	delayNext := m.session.Config.NextRoundDelay
	m.mu.Unlock()

	util.Sleep(delayEnd)

	m.mu.Lock()
	s := m.session
	if s.Status != StatusRoundEnded || s.CurrentRound != round {
		m.mu.Unlock()
		return
	}

	breakdowns := Score(
		s.Submissions, s.Players, s.CurrentLetter, s.CurrentCategories,
		s.RoundStartedAt, m.validator, s.Config,
	)
	for _, b := range breakdowns {
		if p, ok := s.FindPlayer(b.PlayerID); ok {
			p.Score += b.Total
		}
	}
	s.Version++

	ev := m.eventLocked(EventScoresApplied, true)
	ev.Breakdowns = breakdowns
	events := []Event{ev}

	next := s.CurrentRound+1 <= s.Config.TotalRounds
	if !next {
		m.completeGameLocked(&events)
	}
	m.mu.Unlock()
	m.publish(events)

	if !next {
		return
	}

	util.Sleep(delayNext)

	m.mu.Lock()
	events = nil
	if m.session.Status == StatusRoundEnded && m.session.CurrentRound == round {
		m.session.CurrentRound++
		m.startRoundLocked(&events)
	}
	m.mu.Unlock()
	m.publish(events)
}

func (m *Match) startCountdownLocked() {
	m.stopCountdownLocked()
	stop := make(chan struct{})
	m.countdownStop = stop
	go m.countdown(stop)
}

func (m *Match) stopCountdownLocked() {
	if m.countdownStop != nil {
		close(m.countdownStop)
		m.countdownStop = nil
	}
}

// countdown ticks once a second until the round time runs out. Only
// the host turns expiry into a round-end transition; other devices
// just stop ticking and wait for the host's broadcast.
func (m *Match) countdown(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			if m.countdownStop != stop || !m.session.Status.Accepting() {
				m.mu.Unlock()
				return
			}

			remaining := m.session.Remaining(m.now())
			var events []Event
			expired := remaining <= 0
			if expired {
				if m.isHostLocked() {
					m.endRoundLocked(&events)
				} else {
					m.countdownStop = nil
				}
			} else {
				events = append(events, Event{Type: EventCountdownTick, SecondsLeft: int(remaining / time.Second)})
			}
			m.mu.Unlock()

			m.publish(events)
			if expired {
				return
			}
		}
	}
}

// eventLocked snapshots the session into an event; broadcast events
// additionally carry the encoded payload for the transport.
func (m *Match) eventLocked(t EventType, broadcast bool) Event {
	ev := Event{Type: t, Session: m.session.Clone()}
	if broadcast {
		b, err := Encode(m.session)
		if err != nil {
			m.logger.Errorf("encode session for broadcast: %v", err)
		} else {
			ev.Encoded = b
		}
	}
	return ev
}

func (m *Match) publish(events []Event) {
	if len(events) == 0 {
		return
	}

	m.mu.Lock()
	observers := make([]func(Event), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}

// drawCategories samples n categories uniformly without replacement.
func drawCategories(pool []string, n int) []string {
	perm := make([]string, len(pool))
	copy(perm, pool)

	for i := len(perm) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		perm[i], perm[j] = perm[j], perm[i]
	}

	if n > len(perm) {
		n = len(perm)
	}
	return perm[:n]
}
