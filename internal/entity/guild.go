package entity

type VerificationLevel int

const (
	VerificationNone VerificationLevel = iota
	VerificationLow
	VerificationMedium
	VerificationHigh
	VerificationVeryHigh
)

type NotificationLevel int

const (
	NotifyAllMessages NotificationLevel = iota
	NotifyOnlyMentions
)

type ExplicitContentFilterLevel int

const (
	FilterDisabled ExplicitContentFilterLevel = iota
	FilterMembersWithoutRoles
	FilterAllMembers
)

type Member struct {
	User     *User  `json:"user"`
	GuildID  ID     `json:"guild_id,omitempty"`
	Nick     string `json:"nick,omitempty"`
	Roles    []ID   `json:"roles"`
	JoinedAt string `json:"joined_at,omitempty"`
	Mute     bool   `json:"mute"`
	Deaf     bool   `json:"deaf"`
}

func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}

	c := *m
	c.User = m.User.Clone()
	if m.Roles != nil {
		c.Roles = append([]ID(nil), m.Roles...)
	}

	return &c
}

type Emoji struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	Roles         []ID   `json:"roles,omitempty"`
	RequireColons bool   `json:"require_colons,omitempty"`
	Managed       bool   `json:"managed,omitempty"`
	Animated      bool   `json:"animated,omitempty"`
}

func (e *Emoji) Clone() *Emoji {
	if e == nil {
		return nil
	}

	c := *e
	if e.Roles != nil {
		c.Roles = append([]ID(nil), e.Roles...)
	}

	return &c
}

type Activity struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	URL  string `json:"url,omitempty"`
}

type Presence struct {
	User       *User       `json:"user"`
	GuildID    ID          `json:"guild_id,omitempty"`
	Status     string      `json:"status"`
	Activities []*Activity `json:"activities,omitempty"`
}

func (p *Presence) Clone() *Presence {
	if p == nil {
		return nil
	}

	c := *p
	c.User = p.User.Clone()
	if p.Activities != nil {
		c.Activities = make([]*Activity, len(p.Activities))
		for i, a := range p.Activities {
			ac := *a
			c.Activities[i] = &ac
		}
	}

	return &c
}

type Guild struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	Splash  string `json:"splash,omitempty"`
	OwnerID ID     `json:"owner_id,omitempty"`

	VerificationLevel     VerificationLevel          `json:"verification_level"`
	DefaultNotifications  NotificationLevel          `json:"default_message_notifications"`
	ExplicitContentFilter ExplicitContentFilterLevel `json:"explicit_content_filter"`

	Large       bool   `json:"large,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
	JoinedAt    string `json:"joined_at,omitempty"`

	Members []*Member `json:"members,omitempty"`
	Roles   []*Role   `json:"roles,omitempty"`
	Emojis  []*Emoji  `json:"emojis,omitempty"`

	// Channels is only populated on the wire by the initial guild sync; the
	// cache strips it and tracks ChannelIDs instead, with the channels
	// themselves living in the channel store.
	Channels []*Channel `json:"channels,omitempty"`

	// Wire presences arrive as a list; the cache keys them by user id.
	WirePresences []*Presence `json:"presences,omitempty"`

	ChannelIDs []ID              `json:"-"`
	Presences  map[ID]*Presence  `json:"-"`
}

func (g *Guild) Clone() *Guild {
	if g == nil {
		return nil
	}

	c := *g
	if g.Members != nil {
		c.Members = make([]*Member, len(g.Members))
		for i, m := range g.Members {
			c.Members[i] = m.Clone()
		}
	}
	if g.Roles != nil {
		c.Roles = make([]*Role, len(g.Roles))
		for i, r := range g.Roles {
			c.Roles[i] = r.Clone()
		}
	}
	if g.Emojis != nil {
		c.Emojis = make([]*Emoji, len(g.Emojis))
		for i, e := range g.Emojis {
			c.Emojis[i] = e.Clone()
		}
	}
	if g.Channels != nil {
		c.Channels = make([]*Channel, len(g.Channels))
		for i, ch := range g.Channels {
			c.Channels[i] = ch.Clone()
		}
	}
	if g.WirePresences != nil {
		c.WirePresences = make([]*Presence, len(g.WirePresences))
		for i, p := range g.WirePresences {
			c.WirePresences[i] = p.Clone()
		}
	}
	if g.ChannelIDs != nil {
		c.ChannelIDs = append([]ID(nil), g.ChannelIDs...)
	}
	if g.Presences != nil {
		c.Presences = make(map[ID]*Presence, len(g.Presences))
		for k, p := range g.Presences {
			c.Presences[k] = p.Clone()
		}
	}

	return &c
}

// Member returns the member entry for a user, or nil if they are not part of
// this guild.
func (g *Guild) Member(userID ID) *Member {
	for _, m := range g.Members {
		if m.User != nil && m.User.ID == userID {
			return m
		}
	}

	return nil
}

// Role returns the guild role with the given id, or nil.
func (g *Guild) Role(roleID ID) *Role {
	for _, r := range g.Roles {
		if r.ID == roleID {
			return r
		}
	}

	return nil
}

// HasChannel reports whether the guild's channel list contains id.
func (g *Guild) HasChannel(id ID) bool {
	for _, cid := range g.ChannelIDs {
		if cid == id {
			return true
		}
	}

	return false
}
