package relay

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/letterdash-games/letterdash/internal/cache"
	snapDb "github.com/letterdash-games/letterdash/internal/database/snapshot/database"
	snapModel "github.com/letterdash-games/letterdash/internal/database/snapshot/model"
	"github.com/letterdash-games/letterdash/internal/letterdash/match"
	"github.com/letterdash-games/letterdash/internal/logging"
)

// Conn is the transport side of one connected device. The relay never
// interprets payloads beyond reading the session version.
type Conn interface {
	Send(b []byte) error
	Close() error
}

func NewHub(snaps *snapDb.DB, snapCache cache.Cache, logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = logging.DefaultLogger().Named("relay")
	}
	return &Hub{
		rooms:  map[int64]*Room{},
		snaps:  snaps,
		cache:  snapCache,
		logger: logger,
	}
}

// Hub groups connected devices into rooms by join code and remembers
// the latest session snapshot per room, so a device joining mid-game
// is caught up immediately.
type Hub struct {
	mu sync.Mutex

	rooms  map[int64]*Room
	snaps  *snapDb.DB
	cache  cache.Cache
	logger *zap.SugaredLogger
}

// Join registers a device in the room for code, creating the room if
// needed, and replays the latest snapshot to it. Registration happens
// under the hub lock, so a join can never land in a room that a
// concurrent teardown is removing from the registry.
func (h *Hub) Join(code int64, conn Conn) (*Room, *Peer) {
	h.mu.Lock()

	room, ok := h.rooms[code]
	if !ok {
		room = &Room{
			code:   code,
			hub:    h,
			peers:  map[*Peer]bool{},
			logger: h.logger.Named("room"),
		}
		room.latest, room.latestVersion = h.restore(code)
		h.rooms[code] = room
	}

	peer := &Peer{
		conn: conn,
		room: room,
		send: make(chan []byte, 16),
	}
	go peer.writePump()

	room.mu.Lock()
	room.peers[peer] = true
	replay := room.latest
	room.mu.Unlock()

	h.mu.Unlock()

	if replay != nil {
		peer.enqueue(replay)
	}

	return room, peer
}

// restore recovers the last snapshot for a code from cache or disk.
func (h *Hub) restore(code int64) ([]byte, uint64) {
	if h.cache != nil {
		if v, ok := h.cache.Get(code); ok {
			snap := v.(snapModel.Snapshot)
			return snap.Blob, snap.Version
		}
	}

	if h.snaps != nil {
		if snap, err := h.snaps.Fetch(code); err == nil {
			if h.cache != nil {
				h.cache.Add(code, snap)
			}
			return snap.Blob, snap.Version
		}
	}

	return nil, 0
}

func (h *Hub) persist(code int64, version uint64, blob []byte) {
	snap := snapModel.Snapshot{
		Code:      code,
		Version:   version,
		Blob:      blob,
		UpdatedAt: time.Now(),
	}

	if h.cache != nil {
		h.cache.Add(code, snap)
	}

	if h.snaps != nil {
		if err := h.snaps.Add(snap); err != nil {
			h.logger.Errorf("persist snapshot for room %d: %v", code, err)
		}
	}
}

// drop removes an emptied room from the registry. Both locks are held
// while re-checking emptiness (ordering hub then room, the same as
// Join), so a join racing the teardown either keeps the room alive or
// lands in a freshly created successor.
func (h *Hub) drop(room *Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room.mu.Lock()
	empty := len(room.peers) == 0
	room.mu.Unlock()

	if empty && h.rooms[room.code] == room {
		delete(h.rooms, room.code)
	}
}

// Room is the set of devices sharing one session.
type Room struct {
	mu sync.Mutex

	code   int64
	hub    *Hub
	peers  map[*Peer]bool
	logger *zap.SugaredLogger

	latest        []byte
	latestVersion uint64
}

func (r *Room) Leave(peer *Peer) {
	r.mu.Lock()
	if _, ok := r.peers[peer]; ok {
		delete(r.peers, peer)
		peer.close()
	}
	r.mu.Unlock()

	r.hub.drop(r)
}

// Receive takes one device's payload and fans it out to the rest of
// the room. Undecodable payloads are dropped; payloads whose version
// is not newer than the room's latest are dropped as stale. The
// snapshot is persisted under the room lock, so the stored copy never
// regresses behind the in-memory latest.
func (r *Room) Receive(from *Peer, blob []byte) {
	session, err := match.Decode(blob)
	if err != nil {
		r.logger.Debugf("room %d: dropping undecodable payload: %v", r.code, err)
		return
	}

	r.mu.Lock()
	if session.Version <= r.latestVersion && r.latest != nil {
		r.mu.Unlock()
		r.logger.Debugf("room %d: dropping stale payload v%d (latest v%d)",
			r.code, session.Version, r.latestVersion)
		return
	}

	r.latest = blob
	r.latestVersion = session.Version

	peers := make([]*Peer, 0, len(r.peers))
	for peer := range r.peers {
		if peer != from {
			peers = append(peers, peer)
		}
	}

	r.hub.persist(r.code, session.Version, blob)
	r.mu.Unlock()

	for _, peer := range peers {
		peer.enqueue(blob)
	}
}

// Peer is one connected device inside a room.
type Peer struct {
	conn Conn
	room *Room
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func (p *Peer) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.send)
	}
}

func (p *Peer) enqueue(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.send <- b:
	default:
		p.room.logger.Warnf("room %d: peer send buffer full, dropping payload", p.room.code)
	}
}

func (p *Peer) writePump() {
	defer p.conn.Close()

	for b := range p.send {
		if err := p.conn.Send(b); err != nil {
			return
		}
	}
}
