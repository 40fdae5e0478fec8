package gateway

import (
	"time"

	"github.com/quartzlab/discordkit/internal/entity"
)

// EventSink is the callback surface the session invokes once per decoded
// event, after the matching cache mutation has been applied. Callbacks run
// synchronously on the session's receive loop: blocking in one stalls
// heartbeats and every later event, so hand long work off to your own
// goroutine.
//
// Embed NopSink and override only what you need.
type EventSink interface {
	Ready(self *entity.User)
	Resumed()

	GuildCreate(g *entity.Guild)
	GuildUpdate(g *entity.Guild)
	GuildDelete(id entity.ID)

	ChannelCreate(c *entity.Channel)
	ChannelUpdate(c *entity.Channel)
	ChannelDelete(c *entity.Channel)

	MemberAdd(m *entity.Member)
	MemberUpdate(m *entity.Member)
	MemberRemove(guildID entity.ID, u *entity.User)

	RoleCreate(guildID entity.ID, r *entity.Role)
	RoleUpdate(guildID entity.ID, r *entity.Role)
	RoleDelete(guildID, roleID entity.ID)

	MessageCreate(m *entity.Message)
	MessageUpdate(m *entity.Message)
	MessageDelete(d entity.MessageDelete)
	MessageDeleteBulk(d entity.MessageDeleteBulk)

	ReactionAdd(r entity.MessageReaction)
	ReactionRemove(r entity.MessageReaction)
	ReactionClear(r entity.MessageReaction)

	PresenceUpdate(p *entity.Presence)
	TypingStart(t entity.TypingStart)
	UserUpdate(u *entity.User)

	BanAdd(b entity.GuildBan)
	BanRemove(b entity.GuildBan)

	EmojisUpdate(guildID entity.ID, emojis []*entity.Emoji)

	// ActionRateLimited fires when a REST call was locally suppressed or
	// answered with a 429. The call is not retried by the library.
	ActionRateLimited(resetAt time.Time)

	// ShutdownRequested fires once when the session reaches its terminal
	// state, whether by Stop or by a fatal close code.
	ShutdownRequested()
}

// NopSink implements every EventSink callback as a no-op.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) Ready(*entity.User)                          {}
func (NopSink) Resumed()                                    {}
func (NopSink) GuildCreate(*entity.Guild)                   {}
func (NopSink) GuildUpdate(*entity.Guild)                   {}
func (NopSink) GuildDelete(entity.ID)                       {}
func (NopSink) ChannelCreate(*entity.Channel)               {}
func (NopSink) ChannelUpdate(*entity.Channel)               {}
func (NopSink) ChannelDelete(*entity.Channel)               {}
func (NopSink) MemberAdd(*entity.Member)                    {}
func (NopSink) MemberUpdate(*entity.Member)                 {}
func (NopSink) MemberRemove(entity.ID, *entity.User)        {}
func (NopSink) RoleCreate(entity.ID, *entity.Role)          {}
func (NopSink) RoleUpdate(entity.ID, *entity.Role)          {}
func (NopSink) RoleDelete(entity.ID, entity.ID)             {}
func (NopSink) MessageCreate(*entity.Message)               {}
func (NopSink) MessageUpdate(*entity.Message)               {}
func (NopSink) MessageDelete(entity.MessageDelete)          {}
func (NopSink) MessageDeleteBulk(entity.MessageDeleteBulk)  {}
func (NopSink) ReactionAdd(entity.MessageReaction)          {}
func (NopSink) ReactionRemove(entity.MessageReaction)       {}
func (NopSink) ReactionClear(entity.MessageReaction)        {}
func (NopSink) PresenceUpdate(*entity.Presence)             {}
func (NopSink) TypingStart(entity.TypingStart)              {}
func (NopSink) UserUpdate(*entity.User)                     {}
func (NopSink) BanAdd(entity.GuildBan)                      {}
func (NopSink) BanRemove(entity.GuildBan)                   {}
func (NopSink) EmojisUpdate(entity.ID, []*entity.Emoji)     {}
func (NopSink) ActionRateLimited(time.Time)                 {}
func (NopSink) ShutdownRequested()                          {}
