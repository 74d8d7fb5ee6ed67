package debuglink

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// WS_PATH is where the WebSocket endpoint is mounted.
const WS_PATH = "/debug"

var wsUpgrader = websocket.Upgrader{} // use default options

type wsClientConn struct {
	conn *websocket.Conn
}

func (c *wsClientConn) readLine() (string, error) {
	tp, msg, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	if tp != websocket.TextMessage {
		return "", errors.New("expected text message, got something else")
	}
	return string(msg), nil
}

func (c *wsClientConn) writeMsg(b []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *wsClientConn) close() error {
	return c.conn.Close()
}

// Handler upgrades requests to WebSocket debugger sessions. Each
// snapshot is one text message and each command is one text message.
func (h *Hub) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("New client connection from %s", r.RemoteAddr)
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("websocket upgrade error:", err)
			return
		}

		logger := log.New(log.Writer(), fmt.Sprintf("[client/%s] ", conn.RemoteAddr()), log.Flags())
		h.serveClient(ctx, &wsClientConn{conn: conn}, logger)
	})
}

// ListenWS serves WebSocket debugger sessions at WS_PATH on addr until
// ctx is done.
func (h *Hub) ListenWS(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(WS_PATH, h.Handler(ctx))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Printf("Started HTTP(WebSocket) debug server at %s%s", addr, WS_PATH)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
