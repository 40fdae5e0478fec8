package ratelimit

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/puzpuzpuz/xsync"

	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/pkg/errorx"
)

// Scope is the server's true partitioning of quotas, which is coarser than
// per-endpoint.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeGuild   Scope = "guild"
	ScopeChannel Scope = "channel"
	ScopeWebhook Scope = "webhook"
)

// Key identifies one quota bucket: a route category plus the target the route
// acts on. Global routes use the zero target.
type Key struct {
	Scope    Scope
	TargetID entity.ID
}

func GlobalKey() Key {
	return Key{Scope: ScopeGlobal}
}

func GuildKey(id entity.ID) Key {
	return Key{Scope: ScopeGuild, TargetID: id}
}

func ChannelKey(id entity.ID) Key {
	return Key{Scope: ScopeChannel, TargetID: id}
}

func WebhookKey(id entity.ID) Key {
	return Key{Scope: ScopeWebhook, TargetID: id}
}

func (k Key) String() string {
	return string(k.Scope) + ":" + k.TargetID.String()
}

type bucket struct {
	mu sync.Mutex

	known     bool
	limit     int
	remaining int
	resetAt   time.Time
}

// Governor is the optimistic local quota tracker. It remembers the last
// server-supplied limit headers per bucket and denies calls it already knows
// would fail, without ever sleeping or retrying on the caller's behalf.
// Racing callers may still draw a 429 from the server; the server response is
// always authoritative and re-synced via Observe.
type Governor struct {
	clock   clock.Clock
	buckets *xsync.MapOf[string, *bucket]
}

func NewGovernor() *Governor {
	return NewGovernorWithClock(clock.New())
}

func NewGovernorWithClock(c clock.Clock) *Governor {
	return &Governor{
		clock:   c,
		buckets: xsync.NewMapOf[*bucket](),
	}
}

// Reserve grants the call (decrementing the remembered remaining count) or
// denies it with a rate-limit error carrying the reset time. Unknown and
// expired bucket memory is treated as fresh quota.
func (g *Governor) Reserve(key Key) error {
	b, _ := g.buckets.LoadOrStore(key.String(), &bucket{})

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.known {
		return nil
	}

	now := g.clock.Now()
	if !b.resetAt.After(now) {
		// The remembered window is over; forget it rather than trust it.
		b.known = false
		return nil
	}

	if b.remaining > 0 {
		b.remaining--
		return nil
	}

	return errorx.NewRateLimit(b.resetAt)
}

// Observe records the quota headers of a response. Server state always
// overrides local prediction, even when the new remaining count is lower
// than what the governor predicted.
func (g *Governor) Observe(key Key, limit, remaining int, resetAt time.Time) {
	b, _ := g.buckets.LoadOrStore(key.String(), &bucket{})

	b.mu.Lock()
	defer b.mu.Unlock()

	b.known = true
	b.limit = limit
	b.remaining = remaining
	b.resetAt = resetAt
}

// Snapshot reports the remembered state of a bucket, mainly for diagnostics.
func (g *Governor) Snapshot(key Key) (limit, remaining int, resetAt time.Time, known bool) {
	b, ok := g.buckets.Load(key.String())
	if !ok {
		return 0, 0, time.Time{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limit, b.remaining, b.resetAt, b.known
}
