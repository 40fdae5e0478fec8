package ws

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Connection wraps a client-side websocket. Reads happen from a single loop;
// writes may come from both the heartbeat path and callers, so they are
// serialized with a mutex.
type Connection struct {
	conn *websocket.Conn

	writeMu sync.Mutex
}

func Dial(ctx context.Context, url string) (*Connection, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	return &Connection{conn: conn}, nil
}

// Read blocks until a frame arrives or the deadline passes. Binary frames are
// assumed to be zlib-compressed and are inflated before returning.
func (c *Connection) Read(deadline time.Time) ([]byte, error) {
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	t, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	if t == websocket.BinaryMessage {
		return Decompress(msg)
	}

	return msg, nil
}

func (c *Connection) WriteJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteJSON(v)
}

// Close sends a close frame with the given code and tears down the underlying
// connection.
func (c *Connection) Close(code int, reason string) error {
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.writeMu.Unlock()

	return c.conn.Close()
}

// IsTimeout reports whether err is a read-deadline expiry rather than a real
// transport failure.
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// CloseCode extracts the close code if err came from a close frame.
func CloseCode(err error) (int, bool) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code, true
	}

	return 0, false
}
