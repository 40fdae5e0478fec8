package gateway

import (
	"context"
	"encoding/json"

	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/pkg/logger"
	"github.com/quartzlab/discordkit/pkg/xcontext"
)

// dispatch maps one inbound event onto its cache mutation and sink callback.
// The mutation always happens before the callback so observers read
// consistent state. Every failure here is contained: a malformed or
// out-of-order event is logged and skipped, never allowed to take down the
// connection.
func (s *Session) dispatch(ctx context.Context, f frame) {
	log := xcontext.Logger(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Recovered from a panic while handling %s: %v", f.T, r)
		}
	}()

	switch f.T {
	case "READY":
		var d struct {
			SessionID string          `json:"session_id"`
			User      *entity.User    `json:"user"`
			Guilds    []*entity.Guild `json:"guilds"`
		}
		if !decode(log, f, &d) {
			return
		}
		s.sessionID = d.SessionID
		if d.User != nil {
			s.state.UserUpdate(d.User)
		}
		for _, g := range d.Guilds {
			s.state.GuildCreate(g)
		}
		s.sink.Ready(d.User)

	case "RESUMED":
		s.sink.Resumed()

	case "GUILD_CREATE":
		var g entity.Guild
		if !decode(log, f, &g) {
			return
		}
		s.state.GuildCreate(&g)
		if cached, err := s.state.Guilds.Get(g.ID); err == nil {
			s.sink.GuildCreate(cached)
		}

	case "GUILD_UPDATE":
		var g entity.Guild
		if !decode(log, f, &g) {
			return
		}
		if err := s.state.GuildUpdate(&g); err != nil {
			log.Warnf("GUILD_UPDATE for unsynced guild %s: %v", g.ID, err)
		}
		if cached, err := s.state.Guilds.Get(g.ID); err == nil {
			s.sink.GuildUpdate(cached)
		} else {
			s.sink.GuildUpdate(&g)
		}

	case "GUILD_DELETE":
		var g entity.Guild
		if !decode(log, f, &g) {
			return
		}
		s.state.GuildDelete(g.ID)
		s.sink.GuildDelete(g.ID)

	case "CHANNEL_CREATE":
		var c entity.Channel
		if !decode(log, f, &c) {
			return
		}
		if err := s.state.ChannelCreate(&c); err != nil {
			log.Warnf("CHANNEL_CREATE for unsynced guild %s: %v", c.GuildID, err)
		}
		s.sink.ChannelCreate(&c)

	case "CHANNEL_UPDATE":
		var c entity.Channel
		if !decode(log, f, &c) {
			return
		}
		if err := s.state.ChannelUpdate(&c); err != nil {
			log.Warnf("CHANNEL_UPDATE for unsynced guild %s: %v", c.GuildID, err)
		}
		s.sink.ChannelUpdate(&c)

	case "CHANNEL_DELETE":
		var c entity.Channel
		if !decode(log, f, &c) {
			return
		}
		s.state.ChannelDelete(c.ID)
		s.sink.ChannelDelete(&c)

	case "GUILD_MEMBER_ADD":
		var m entity.Member
		if !decode(log, f, &m) {
			return
		}
		if err := s.state.MemberAdd(&m); err != nil {
			log.Warnf("GUILD_MEMBER_ADD for unsynced guild %s: %v", m.GuildID, err)
		}
		s.sink.MemberAdd(&m)

	case "GUILD_MEMBER_UPDATE":
		var m entity.Member
		if !decode(log, f, &m) {
			return
		}
		if err := s.state.MemberUpdate(&m); err != nil {
			log.Warnf("GUILD_MEMBER_UPDATE for guild %s: %v", m.GuildID, err)
		}
		s.sink.MemberUpdate(&m)

	case "GUILD_MEMBER_REMOVE":
		var d entity.GuildMemberRemove
		if !decode(log, f, &d) {
			return
		}
		if err := s.state.MemberRemove(d.GuildID, d.User); err != nil {
			log.Warnf("GUILD_MEMBER_REMOVE for guild %s: %v", d.GuildID, err)
		}
		s.sink.MemberRemove(d.GuildID, d.User)

	case "GUILD_ROLE_CREATE":
		var d entity.GuildRoleChange
		if !decode(log, f, &d) {
			return
		}
		if err := s.state.RoleCreate(d.GuildID, d.Role); err != nil {
			log.Warnf("GUILD_ROLE_CREATE for unsynced guild %s: %v", d.GuildID, err)
		}
		s.sink.RoleCreate(d.GuildID, d.Role)

	case "GUILD_ROLE_UPDATE":
		var d entity.GuildRoleChange
		if !decode(log, f, &d) {
			return
		}
		if err := s.state.RoleUpdate(d.GuildID, d.Role); err != nil {
			log.Warnf("GUILD_ROLE_UPDATE for unsynced guild %s: %v", d.GuildID, err)
		}
		s.sink.RoleUpdate(d.GuildID, d.Role)

	case "GUILD_ROLE_DELETE":
		var d entity.GuildRoleDelete
		if !decode(log, f, &d) {
			return
		}
		if err := s.state.RoleDelete(d.GuildID, d.RoleID); err != nil {
			log.Warnf("GUILD_ROLE_DELETE for unknown role %s in guild %s: %v", d.RoleID, d.GuildID, err)
		}
		s.sink.RoleDelete(d.GuildID, d.RoleID)

	case "GUILD_EMOJIS_UPDATE":
		var d entity.GuildEmojisUpdate
		if !decode(log, f, &d) {
			return
		}
		if err := s.state.EmojisUpdate(d.GuildID, d.Emojis); err != nil {
			log.Warnf("GUILD_EMOJIS_UPDATE for unsynced guild %s: %v", d.GuildID, err)
		}
		s.sink.EmojisUpdate(d.GuildID, d.Emojis)

	case "GUILD_BAN_ADD":
		var d entity.GuildBan
		if !decode(log, f, &d) {
			return
		}
		s.sink.BanAdd(d)

	case "GUILD_BAN_REMOVE":
		var d entity.GuildBan
		if !decode(log, f, &d) {
			return
		}
		s.sink.BanRemove(d)

	case "MESSAGE_CREATE":
		var m entity.Message
		if !decode(log, f, &m) {
			return
		}
		if err := s.state.MessageCreate(&m); err != nil {
			log.Warnf("MESSAGE_CREATE for unsynced channel %s: %v", m.ChannelID, err)
		}
		s.sink.MessageCreate(&m)

	case "MESSAGE_UPDATE":
		var m entity.Message
		if !decode(log, f, &m) {
			return
		}
		s.sink.MessageUpdate(&m)

	case "MESSAGE_DELETE":
		var d entity.MessageDelete
		if !decode(log, f, &d) {
			return
		}
		s.sink.MessageDelete(d)

	case "MESSAGE_DELETE_BULK":
		var d entity.MessageDeleteBulk
		if !decode(log, f, &d) {
			return
		}
		s.sink.MessageDeleteBulk(d)

	case "MESSAGE_REACTION_ADD":
		var d entity.MessageReaction
		if !decode(log, f, &d) {
			return
		}
		s.sink.ReactionAdd(d)

	case "MESSAGE_REACTION_REMOVE":
		var d entity.MessageReaction
		if !decode(log, f, &d) {
			return
		}
		s.sink.ReactionRemove(d)

	case "MESSAGE_REACTION_REMOVE_ALL":
		var d entity.MessageReaction
		if !decode(log, f, &d) {
			return
		}
		s.sink.ReactionClear(d)

	case "PRESENCE_UPDATE":
		var p entity.Presence
		if !decode(log, f, &p) {
			return
		}
		if err := s.state.PresenceUpdate(&p); err != nil {
			log.Warnf("PRESENCE_UPDATE for unsynced guild %s: %v", p.GuildID, err)
		}
		s.sink.PresenceUpdate(&p)

	case "TYPING_START":
		var d entity.TypingStart
		if !decode(log, f, &d) {
			return
		}
		s.sink.TypingStart(d)

	case "USER_UPDATE":
		var u entity.User
		if !decode(log, f, &u) {
			return
		}
		s.state.UserUpdate(&u)
		s.sink.UserUpdate(&u)

	default:
		// New server event types must never crash the session.
		log.Debugf("Ignoring unhandled event type %s", f.T)
	}
}

func decode(log logger.Logger, f frame, v any) bool {
	if err := json.Unmarshal(f.D, v); err != nil {
		log.Warnf("Dropping a malformed %s payload: %v", f.T, err)
		return false
	}

	return true
}
