package entity

type Message struct {
	ID              ID      `json:"id"`
	ChannelID       ID      `json:"channel_id"`
	GuildID         ID      `json:"guild_id,omitempty"`
	Author          *User   `json:"author,omitempty"`
	Content         string  `json:"content"`
	Timestamp       string  `json:"timestamp,omitempty"`
	EditedTimestamp string  `json:"edited_timestamp,omitempty"`
	TTS             bool    `json:"tts,omitempty"`
	MentionEveryone bool    `json:"mention_everyone,omitempty"`
	Mentions        []*User `json:"mentions,omitempty"`
}
