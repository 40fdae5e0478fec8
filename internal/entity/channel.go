package entity

type ChannelType int

const (
	ChannelGuildText ChannelType = iota
	ChannelDM
	ChannelGuildVoice
	ChannelGroupDM
	ChannelGuildCategory
	ChannelGuildNews
	ChannelGuildStore
)

type Channel struct {
	ID       ID          `json:"id"`
	Type     ChannelType `json:"type"`
	GuildID  ID          `json:"guild_id,omitempty"`
	ParentID ID          `json:"parent_id,omitempty"`
	Name     string      `json:"name,omitempty"`
	Topic    string      `json:"topic,omitempty"`

	// Position orders siblings in the sidebar.
	Position      int  `json:"position,omitempty"`
	NSFW          bool `json:"nsfw,omitempty"`
	LastMessageID ID   `json:"last_message_id,omitempty"`

	// Voice-only fields; zero for every other kind.
	Bitrate   int `json:"bitrate,omitempty"`
	UserLimit int `json:"user_limit,omitempty"`

	// Recipients is only set for direct-message and group-dm channels.
	Recipients []*User `json:"recipients,omitempty"`
}

func (c *Channel) IsGuildKind() bool {
	switch c.Type {
	case ChannelGuildText, ChannelGuildVoice, ChannelGuildCategory, ChannelGuildNews, ChannelGuildStore:
		return true
	}

	return false
}

func (c *Channel) Clone() *Channel {
	if c == nil {
		return nil
	}

	cp := *c
	if c.Recipients != nil {
		cp.Recipients = make([]*User, len(c.Recipients))
		for i, u := range c.Recipients {
			cp.Recipients[i] = u.Clone()
		}
	}

	return &cp
}
