package entity

// Event-local payloads: shapes that only exist on the wire and never enter
// the cache.

type TypingStart struct {
	ChannelID ID    `json:"channel_id"`
	GuildID   ID    `json:"guild_id,omitempty"`
	UserID    ID    `json:"user_id"`
	Timestamp int64 `json:"timestamp"`
}

type MessageReaction struct {
	UserID    ID    `json:"user_id,omitempty"`
	ChannelID ID    `json:"channel_id"`
	MessageID ID    `json:"message_id"`
	GuildID   ID    `json:"guild_id,omitempty"`
	Emoji     Emoji `json:"emoji"`
}

type MessageDelete struct {
	ID        ID `json:"id"`
	ChannelID ID `json:"channel_id"`
	GuildID   ID `json:"guild_id,omitempty"`
}

type MessageDeleteBulk struct {
	IDs       []ID `json:"ids"`
	ChannelID ID   `json:"channel_id"`
	GuildID   ID   `json:"guild_id,omitempty"`
}

type GuildBan struct {
	GuildID ID    `json:"guild_id"`
	User    *User `json:"user"`
}

type GuildRoleChange struct {
	GuildID ID    `json:"guild_id"`
	Role    *Role `json:"role"`
}

type GuildRoleDelete struct {
	GuildID ID `json:"guild_id"`
	RoleID  ID `json:"role_id"`
}

type GuildMemberRemove struct {
	GuildID ID    `json:"guild_id"`
	User    *User `json:"user"`
}

type GuildEmojisUpdate struct {
	GuildID ID       `json:"guild_id"`
	Emojis  []*Emoji `json:"emojis"`
}
