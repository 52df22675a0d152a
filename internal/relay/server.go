package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"

	"github.com/letterdash-games/letterdash/internal/logging"
)

const (
	httpTimeout     = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	qrSize          = 320
)

type ServerConfig struct {
	Bind    string
	Port    int
	Version string
}

func NewServer(cfg ServerConfig, hub *Hub) *Server {
	return &Server{cfg: cfg, hub: hub}
}

// Server exposes the relay over HTTP: a websocket endpoint per room
// plus health, version and a QR code of the join URL.
type Server struct {
	cfg ServerConfig
	hub *Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("relay.server")

	mux := httprouter.New()
	mux.GET("/healthz", s.handleHealth)
	mux.GET("/version", s.handleVersion)
	mux.GET("/rooms/:code/ws", s.handleRoom(ctx))
	mux.GET("/rooms/:code/qr", s.handleQR)

	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port)),
		Handler:           mux,
		ReadHeaderTimeout: httpTimeout,
		IdleTimeout:       10 * time.Minute,
	}

	logger.Infof("listening on %s", srv.Addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("letterdash-relay v" + s.cfg.Version + "\n"))
}

func (s *Server) handleRoom(ctx context.Context) httprouter.Handle {
	logger := logging.FromContext(ctx).Named("relay.ws")

	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		code, err := strconv.ParseInt(p.ByName("code"), 10, 64)
		if err != nil {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Debugf("upgrade: %v", err)
			return
		}

		room, peer := s.hub.Join(code, &wsConn{conn: conn})
		defer room.Leave(peer)

		for {
			kind, blob, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
				continue
			}
			room.Receive(peer, blob)
		}
	}
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	code := p.ByName("code")
	if _, err := strconv.ParseInt(code, 10, 64); err != nil {
		http.Error(w, "invalid room code", http.StatusBadRequest)
		return
	}

	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	url := scheme + "://" + r.Host + "/rooms/" + code + "/ws"

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// wsConn adapts a gorilla websocket connection to the relay Conn.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) Send(b []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
