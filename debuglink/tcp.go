package debuglink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
)

type tcpClientConn struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (c *tcpClientConn) readLine() (string, error) {
	l, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(l, "\r\n"), nil
}

func (c *tcpClientConn) writeMsg(b []byte) error {
	_, err := c.conn.Write(append(b, '\n'))
	return err
}

func (c *tcpClientConn) close() error {
	return c.conn.Close()
}

// ListenTCP serves line oriented debugger sessions on addr until ctx
// is done.
func (h *Hub) ListenTCP(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	log.Printf("Started TCP debug server at %s", l.Addr())

	return h.ServeTCP(ctx, l)
}

// ServeTCP accepts clients from l until ctx is done. Each client gets
// one JSON snapshot per line and sends one command per line.
func (h *Hub) ServeTCP(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			log.Printf("Failed to accept connection -- %v", err)
			continue
		}
		log.Printf("New client connection from %s", conn.RemoteAddr())

		c := &tcpClientConn{conn: conn, reader: bufio.NewReader(conn)}
		logger := log.New(log.Writer(), fmt.Sprintf("[client/%s] ", conn.RemoteAddr()), log.Flags())
		go h.serveClient(ctx, c, logger)
	}
}
