package gateway

import (
	"context"
	"encoding/json"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quartzlab/discordkit/internal/rest"
	"github.com/quartzlab/discordkit/internal/state"
	"github.com/quartzlab/discordkit/pkg/ws"
	"github.com/quartzlab/discordkit/pkg/xcontext"
)

type Status int32

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusIdentifying
	StatusConnected
	StatusResuming
	StatusReconnecting
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusIdentifying:
		return "identifying"
	case StatusConnected:
		return "connected"
	case StatusResuming:
		return "resuming"
	case StatusReconnecting:
		return "reconnecting"
	case StatusClosed:
		return "closed"
	}

	return "unknown"
}

// action is what a finished connection attempt asks the outer loop to do
// next.
type action int

const (
	actionResume action = iota
	actionReconnect
	actionClose
)

const (
	// receiveWait bounds the handshake read; a server that cannot produce
	// its hello within this window is not worth waiting on.
	receiveWait = 5 * time.Second

	// reconnectDelay is a flat wait before any reconnect; close codes
	// already tell retryable apart from fatal, so no exponential growth.
	reconnectDelay = 6 * time.Second
)

// Session owns the gateway connection lifecycle: handshake, heartbeats, the
// receive loop, and the reconnect policy. The goroutine calling Start runs
// every cache mutation and sink callback; a per-connection companion
// goroutine only keeps the heartbeat cadence. The entity cache may be read
// from anywhere.
type Session struct {
	token     string
	sink      EventSink
	state     *state.State
	transport *rest.Transport

	compress bool
	backoff  time.Duration

	status   atomic.Int32
	sequence atomic.Int64

	sessionID string
	resumable bool

	stopOnce sync.Once
	stopc    chan struct{}
}

func NewSession(token string, sink EventSink, st *state.State, transport *rest.Transport) *Session {
	s := &Session{
		token:     token,
		sink:      sink,
		state:     st,
		transport: transport,
		backoff:   reconnectDelay,
		stopc:     make(chan struct{}),
	}

	// Throttled REST actions surface through the same sink as gateway
	// events.
	transport.OnThrottle(func(resetAt time.Time) {
		s.sink.ActionRateLimited(resetAt)
	})

	return s
}

// SetCompress asks the server to zlib-compress dispatch payloads. Binary
// frames are inflated transparently by the connection layer.
func (s *Session) SetCompress(enable bool) {
	s.compress = enable
}

// State exposes the local entity mirror for REST helpers and caller code.
func (s *Session) State() *state.State {
	return s.state
}

func (s *Session) Status() Status {
	return Status(s.status.Load())
}

func (s *Session) setStatus(st Status) {
	s.status.Store(int32(st))
}

// Stop requests a graceful shutdown. The heartbeat goroutine closes the live
// connection, which unblocks the receive loop; Stop itself does not block.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopc) })
}

func (s *Session) stopRequested(ctx context.Context) bool {
	select {
	case <-s.stopc:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Start resolves the gateway endpoint, then runs connection attempts until a
// terminal condition. It blocks for the life of the session.
func (s *Session) Start(ctx context.Context) error {
	log := xcontext.Logger(ctx)

	endpoint, err := s.transport.GetGatewayBot(ctx)
	if err != nil {
		log.Errorf("Cannot resolve the gateway endpoint, giving up: %v", err)
		s.shutdown()
		return err
	}

	url := endpoint + "?v=8&encoding=json"

	for {
		if s.stopRequested(ctx) {
			s.shutdown()
			return nil
		}

		act, err := s.runOnce(ctx, url)
		switch act {
		case actionClose:
			s.shutdown()
			return err

		case actionResume:
			s.resumable = true
			s.setStatus(StatusResuming)
			log.Infof("Connection lost (%v), resuming session %s in %v", err, s.sessionID, s.backoff)

		case actionReconnect:
			s.resumable = false
			s.sessionID = ""
			s.sequence.Store(0)
			s.setStatus(StatusReconnecting)
			log.Infof("Connection lost (%v), reconnecting with a fresh identify in %v", err, s.backoff)
		}

		select {
		case <-s.stopc:
		case <-ctx.Done():
		case <-time.After(s.backoff):
		}
	}
}

func (s *Session) shutdown() {
	s.setStatus(StatusClosed)
	s.sink.ShutdownRequested()
}

// runOnce executes a single connection lifetime: dial, handshake, then the
// combined heartbeat/receive loop.
func (s *Session) runOnce(ctx context.Context, url string) (action, error) {
	log := xcontext.Logger(ctx)

	s.setStatus(StatusConnecting)
	conn, err := ws.Dial(ctx, url)
	if err != nil {
		log.Warnf("Cannot open the gateway connection: %v", err)
		return actionReconnect, err
	}
	defer conn.Close(websocket.CloseNormalClosure, "")

	s.setStatus(StatusIdentifying)
	interval, err := s.handshake(ctx, conn)
	if err != nil {
		if code, ok := ws.CloseCode(err); ok {
			act := classifyClose(code)
			if act == actionClose {
				log.Errorf("Gateway refused the session with fatal code %d: %v", code, err)
			}
			return act, err
		}

		log.Warnf("Gateway handshake failed: %v", err)
		return actionReconnect, err
	}

	s.setStatus(StatusConnected)
	return s.listen(ctx, conn, interval)
}

// handshake waits for the server hello, then answers with either a fresh
// identify or a resume for the previous session.
func (s *Session) handshake(ctx context.Context, conn *ws.Connection) (time.Duration, error) {
	payload, err := conn.Read(time.Now().Add(receiveWait))
	if err != nil {
		return 0, err
	}

	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		return 0, err
	}

	if f.Op != opHello {
		return 0, errUnexpectedFrame(f.Op)
	}

	var hello helloData
	if err := json.Unmarshal(f.D, &hello); err != nil {
		return 0, err
	}

	if s.resumable && s.sessionID != "" {
		err = conn.WriteJSON(struct {
			Op int        `json:"op"`
			D  resumeData `json:"d"`
		}{opResume, resumeData{
			Token:     s.token,
			SessionID: s.sessionID,
			Seq:       s.sequence.Load(),
		}})
	} else {
		err = conn.WriteJSON(struct {
			Op int          `json:"op"`
			D  identifyData `json:"d"`
		}{opIdentify, identifyData{
			Token: s.token,
			Properties: identifyProperties{
				OS:      runtime.GOOS,
				Browser: "discordkit",
				Device:  "discordkit",
			},
			Compress: s.compress,
		}})
	}
	if err != nil {
		return 0, err
	}

	return time.Duration(hello.HeartbeatInterval) * time.Millisecond, nil
}

// listen runs the receive loop while a companion goroutine keeps the
// heartbeat cadence. The companion also owns the liveness verdict and
// unblocks a stuck read on Stop by closing the connection; a read error after
// a deadline is permanent on this websocket, so reads never use short polling
// deadlines.
func (s *Session) listen(ctx context.Context, conn *ws.Connection, interval time.Duration) (action, error) {
	log := xcontext.Logger(ctx)

	var outstanding atomic.Int32
	timedOut := make(chan struct{})
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if outstanding.Load() > 1 {
					// Two heartbeats went unacknowledged; the link is
					// dead even if the OS has not noticed yet.
					log.Warnf("Missed %d heartbeat acks, tearing down the connection", outstanding.Load())
					close(timedOut)
					conn.Close(websocket.CloseServiceRestart, "heartbeat ack timeout")
					return
				}

				if err := s.sendHeartbeat(conn); err != nil {
					// The receive loop sees the broken connection.
					return
				}
				outstanding.Add(1)

			case <-s.stopc:
				conn.Close(websocket.CloseNormalClosure, "client shutdown")
				return

			case <-ctx.Done():
				conn.Close(websocket.CloseNormalClosure, "context canceled")
				return

			case <-done:
				return
			}
		}
	}()

	for {
		// The server acknowledges every heartbeat, so a healthy link
		// produces a frame at least once per interval.
		payload, err := conn.Read(time.Now().Add(2 * interval))
		if err != nil {
			select {
			case <-timedOut:
				return actionResume, errHeartbeatTimeout
			default:
			}

			if s.stopRequested(ctx) {
				return actionClose, nil
			}

			if ws.IsTimeout(err) {
				log.Warnf("No traffic for %v, tearing down the connection", 2*interval)
				conn.Close(websocket.CloseServiceRestart, "receive timeout")
				return actionResume, errHeartbeatTimeout
			}

			if code, ok := ws.CloseCode(err); ok {
				act := classifyClose(code)
				if act == actionClose {
					log.Errorf("Gateway closed the session with fatal code %d, not reconnecting: %v", code, err)
				} else {
					log.Warnf("Gateway closed the connection with code %d: %v", code, err)
				}
				return act, err
			}

			return actionReconnect, err
		}

		var f frame
		if err := json.Unmarshal(payload, &f); err != nil {
			log.Warnf("Dropping an undecodable frame: %v", err)
			continue
		}

		if f.S != 0 {
			s.sequence.Store(f.S)
		}

		switch f.Op {
		case opDispatch:
			s.dispatch(ctx, f)

		case opHeartbeat:
			// The server may request an immediate beat.
			if err := s.sendHeartbeat(conn); err != nil {
				return actionResume, err
			}
			outstanding.Add(1)

		case opHeartbeatACK:
			if outstanding.Load() > 0 {
				outstanding.Add(-1)
			}

		case opReconnect:
			conn.Close(websocket.CloseServiceRestart, "server requested reconnect")
			return actionResume, nil

		case opInvalidSession:
			var resumable bool
			_ = json.Unmarshal(f.D, &resumable)
			conn.Close(websocket.CloseNormalClosure, "invalid session")
			if resumable {
				return actionResume, nil
			}
			return actionReconnect, nil

		case opHello:
			// Already handled during the handshake.

		default:
			log.Debugf("Ignoring unknown opcode %d", f.Op)
		}
	}
}

func (s *Session) sendHeartbeat(conn *ws.Connection) error {
	var d *int64
	if seq := s.sequence.Load(); seq != 0 {
		d = &seq
	}

	return conn.WriteJSON(struct {
		Op int    `json:"op"`
		D  *int64 `json:"d"`
	}{opHeartbeat, d})
}
