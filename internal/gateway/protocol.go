package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errHeartbeatTimeout = errors.New("two heartbeats went unacknowledged")

func errUnexpectedFrame(op int) error {
	return fmt.Errorf("expected a hello frame, got opcode %d", op)
}

// Gateway opcodes this client consumes or sends.
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opResume         = 6
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatACK   = 11
)

// frame is the envelope of every gateway message. S and T are only present on
// dispatch frames.
type frame struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  int64           `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

type helloData struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

type identifyProperties struct {
	OS      string `json:"$os"`
	Browser string `json:"$browser"`
	Device  string `json:"$device"`
}

type identifyData struct {
	Token      string             `json:"token"`
	Properties identifyProperties `json:"properties"`
	Compress   bool               `json:"compress"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}

// Close codes in the 4000 range and what the session does about them.
const (
	closeUnknownError         = 4000
	closeUnknownOpcode        = 4001
	closeDecodeError          = 4002
	closeNotAuthenticated     = 4003
	closeAuthenticationFailed = 4004
	closeAlreadyAuthenticated = 4005
	closeInvalidSequence      = 4007
	closeRateLimited          = 4008
	closeSessionTimedOut      = 4009
	closeInvalidShard         = 4010
	closeShardingRequired     = 4011
)

// classifyClose maps a close code onto the next session action. Codes the
// table does not know default to a fresh identify, never to silence.
func classifyClose(code int) action {
	switch code {
	case closeAuthenticationFailed, closeInvalidShard, closeShardingRequired:
		return actionClose
	case closeRateLimited:
		return actionResume
	case closeUnknownError, closeUnknownOpcode, closeDecodeError,
		closeNotAuthenticated, closeAlreadyAuthenticated,
		closeInvalidSequence, closeSessionTimedOut:
		return actionReconnect
	default:
		return actionReconnect
	}
}
