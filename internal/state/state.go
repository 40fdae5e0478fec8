package state

import (
	"github.com/quartzlab/discordkit/internal/cache"
	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/pkg/errorx"
)

// State is the local mirror of server-side entities: three keyed stores plus
// the cross-entity bookkeeping the stores themselves do not enforce (the
// guild.ChannelIDs list always reflecting channels whose GuildID points back
// at that guild).
//
// State is mutated only from the gateway dispatch loop and read from
// anywhere.
type State struct {
	Guilds   *cache.Store[*entity.Guild]
	Channels *cache.Store[*entity.Channel]
	Users    *cache.Store[*entity.User]
}

func New() *State {
	return &State{
		Guilds:   cache.NewStore[*entity.Guild](),
		Channels: cache.NewStore[*entity.Channel](),
		Users:    cache.NewStore[*entity.User](),
	}
}

// GuildCreate installs a guild from its initial sync payload. The embedded
// channel objects move into the channel store; the guild keeps only their
// ids. Wire presences are re-keyed by user id, and every member's user is
// merged into the user store.
func (s *State) GuildCreate(g *entity.Guild) {
	g = g.Clone()

	g.ChannelIDs = g.ChannelIDs[:0]
	for _, ch := range g.Channels {
		ch.GuildID = g.ID
		s.Channels.Put(ch.ID, ch)
		g.ChannelIDs = append(g.ChannelIDs, ch.ID)
	}
	g.Channels = nil

	g.Presences = make(map[entity.ID]*entity.Presence, len(g.WirePresences))
	for _, p := range g.WirePresences {
		if p.User != nil {
			g.Presences[p.User.ID] = p
		}
	}
	g.WirePresences = nil

	for _, m := range g.Members {
		m.GuildID = g.ID
		if m.User != nil {
			s.putUser(m.User)
		}
	}

	s.Guilds.Put(g.ID, g)
}

// GuildUpdate applies the fields an update payload carries, preserving the
// member, channel, and presence bookkeeping the payload never includes.
func (s *State) GuildUpdate(w *entity.Guild) error {
	return s.Guilds.Mutate(w.ID, func(g *entity.Guild) {
		g.Name = w.Name
		g.Icon = w.Icon
		g.Splash = w.Splash
		g.OwnerID = w.OwnerID
		g.VerificationLevel = w.VerificationLevel
		g.DefaultNotifications = w.DefaultNotifications
		g.ExplicitContentFilter = w.ExplicitContentFilter
		if w.Roles != nil {
			g.Roles = w.Roles
		}
		if w.Emojis != nil {
			g.Emojis = w.Emojis
		}
	})
}

// GuildDelete drops the guild and every channel it owns.
func (s *State) GuildDelete(id entity.ID) {
	if g, err := s.Guilds.Get(id); err == nil {
		for _, cid := range g.ChannelIDs {
			s.Channels.Remove(cid)
		}
	}

	s.Guilds.Remove(id)
}

// ChannelCreate stores the channel and, for guild channels, registers it in
// the owning guild's channel list. The channel is cached even when the guild
// has not synced yet; the returned error is only a consistency report.
func (s *State) ChannelCreate(c *entity.Channel) error {
	s.Channels.Put(c.ID, c)

	if c.GuildID.IsZero() {
		return nil
	}

	return s.Guilds.Mutate(c.GuildID, func(g *entity.Guild) {
		if !g.HasChannel(c.ID) {
			g.ChannelIDs = append(g.ChannelIDs, c.ID)
		}
	})
}

// ChannelUpdate replaces the stored channel wholesale; update payloads carry
// the complete object. Guild membership is re-asserted for safety.
func (s *State) ChannelUpdate(c *entity.Channel) error {
	return s.ChannelCreate(c)
}

func (s *State) ChannelDelete(id entity.ID) {
	c, err := s.Channels.Get(id)
	s.Channels.Remove(id)
	if err != nil || c.GuildID.IsZero() {
		return
	}

	_ = s.Guilds.Mutate(c.GuildID, func(g *entity.Guild) {
		for i, cid := range g.ChannelIDs {
			if cid == id {
				g.ChannelIDs = append(g.ChannelIDs[:i], g.ChannelIDs[i+1:]...)
				break
			}
		}
	})
}

// MemberAdd merges the member into its guild and the user into the user
// store.
func (s *State) MemberAdd(m *entity.Member) error {
	if m.User != nil {
		s.putUser(m.User)
	}

	return s.Guilds.Mutate(m.GuildID, func(g *entity.Guild) {
		if m.User != nil {
			if existing := g.Member(m.User.ID); existing != nil {
				*existing = *m.Clone()
				return
			}
		}

		g.Members = append(g.Members, m.Clone())
		g.MemberCount++
	})
}

// MemberUpdate applies the delta fields of a member-update payload.
func (s *State) MemberUpdate(m *entity.Member) error {
	if m.User == nil {
		return errorx.ErrBadEvent
	}

	s.putUser(m.User)

	err := s.Guilds.Mutate(m.GuildID, func(g *entity.Guild) {
		existing := g.Member(m.User.ID)
		if existing == nil {
			g.Members = append(g.Members, m.Clone())
			g.MemberCount++
			return
		}

		existing.Nick = m.Nick
		existing.Mute = m.Mute
		existing.Deaf = m.Deaf
		if m.Roles != nil {
			existing.Roles = append([]entity.ID(nil), m.Roles...)
		}
		existing.User = m.User.Clone()
	})

	return err
}

// MemberRemove drops the member from its guild. The user itself leaves the
// user store only when no other cached guild still references them; this is
// the one path that ever removes a user.
func (s *State) MemberRemove(guildID entity.ID, user *entity.User) error {
	if user == nil {
		return errorx.ErrBadEvent
	}

	err := s.Guilds.Mutate(guildID, func(g *entity.Guild) {
		for i, m := range g.Members {
			if m.User != nil && m.User.ID == user.ID {
				g.Members = append(g.Members[:i], g.Members[i+1:]...)
				if g.MemberCount > 0 {
					g.MemberCount--
				}
				break
			}
		}

		delete(g.Presences, user.ID)
	})
	if err != nil {
		return err
	}

	if !s.userKnownToAnyGuild(user.ID) {
		s.Users.Remove(user.ID)
	}

	return nil
}

func (s *State) RoleCreate(guildID entity.ID, r *entity.Role) error {
	return s.Guilds.Mutate(guildID, func(g *entity.Guild) {
		if existing := g.Role(r.ID); existing != nil {
			*existing = *r.Clone()
			return
		}

		g.Roles = append(g.Roles, r.Clone())
	})
}

func (s *State) RoleUpdate(guildID entity.ID, r *entity.Role) error {
	return s.Guilds.Mutate(guildID, func(g *entity.Guild) {
		existing := g.Role(r.ID)
		if existing == nil {
			g.Roles = append(g.Roles, r.Clone())
			return
		}

		*existing = *r.Clone()
	})
}

// RoleDelete removes the role from its guild. Deleting a role the cache has
// never seen is reported but leaves the guild unchanged.
func (s *State) RoleDelete(guildID, roleID entity.ID) error {
	var found bool
	err := s.Guilds.Mutate(guildID, func(g *entity.Guild) {
		for i, r := range g.Roles {
			if r.ID == roleID {
				g.Roles = append(g.Roles[:i], g.Roles[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}

	if !found {
		return errorx.Wrap(errorx.ErrNotFound, "role %s in guild %s", roleID, guildID)
	}

	return nil
}

// EmojisUpdate replaces the guild's emoji list. The payload arrives as a
// full snapshot, never a delta.
func (s *State) EmojisUpdate(guildID entity.ID, emojis []*entity.Emoji) error {
	return s.Guilds.Mutate(guildID, func(g *entity.Guild) {
		g.Emojis = make([]*entity.Emoji, len(emojis))
		for i, e := range emojis {
			g.Emojis[i] = e.Clone()
		}
	})
}

func (s *State) PresenceUpdate(p *entity.Presence) error {
	if p.User == nil {
		return errorx.ErrBadEvent
	}

	// Presence payloads may carry a partial user; only merge when the payload
	// includes identity fields.
	if p.User.Username != "" {
		s.putUser(p.User)
	}

	return s.Guilds.Mutate(p.GuildID, func(g *entity.Guild) {
		if g.Presences == nil {
			g.Presences = make(map[entity.ID]*entity.Presence)
		}

		g.Presences[p.User.ID] = p.Clone()
	})
}

// UserUpdate merges the self-user or a member's user delta. Users seen once
// are kept even if no longer visible in any guild.
func (s *State) UserUpdate(u *entity.User) {
	s.putUser(u)
}

// MessageCreate only touches the channel's last-message marker; message
// bodies are not cache-resident.
func (s *State) MessageCreate(m *entity.Message) error {
	return s.Channels.Mutate(m.ChannelID, func(c *entity.Channel) {
		c.LastMessageID = m.ID
	})
}

// putUser merges field-by-field so a partial user payload never clobbers
// fields it does not carry.
func (s *State) putUser(u *entity.User) {
	err := s.Users.Mutate(u.ID, func(cur *entity.User) {
		if u.Username != "" {
			cur.Username = u.Username
		}
		if u.Discriminator != "" {
			cur.Discriminator = u.Discriminator
		}
		if u.Avatar != "" {
			cur.Avatar = u.Avatar
		}
		if u.Flags != 0 {
			cur.Flags = u.Flags
		}
		if u.PremiumType != 0 {
			cur.PremiumType = u.PremiumType
		}
	})
	if err != nil {
		s.Users.Put(u.ID, u)
	}
}

func (s *State) userKnownToAnyGuild(userID entity.ID) bool {
	for _, g := range s.Guilds.List() {
		if g.Member(userID) != nil {
			return true
		}
	}

	return false
}
