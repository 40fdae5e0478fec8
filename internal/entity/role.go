package entity

import (
	"bytes"
	"strconv"
)

// Permissions is a 64-bit permission bitfield. The wire encodes it either as
// a bare integer or as a quoted string depending on API age, so decoding
// accepts both.
type Permissions uint64

const (
	PermCreateInvite     Permissions = 1 << 0
	PermKickMembers      Permissions = 1 << 1
	PermBanMembers       Permissions = 1 << 2
	PermAdministrator    Permissions = 1 << 3
	PermManageChannels   Permissions = 1 << 4
	PermManageGuild      Permissions = 1 << 5
	PermAddReactions     Permissions = 1 << 6
	PermViewAuditLog     Permissions = 1 << 7
	PermViewChannel      Permissions = 1 << 10
	PermSendMessages     Permissions = 1 << 11
	PermManageMessages   Permissions = 1 << 13
	PermEmbedLinks       Permissions = 1 << 14
	PermAttachFiles      Permissions = 1 << 15
	PermReadHistory      Permissions = 1 << 16
	PermMentionEveryone  Permissions = 1 << 17
	PermVoiceConnect     Permissions = 1 << 20
	PermVoiceSpeak       Permissions = 1 << 21
	PermVoiceMuteMembers Permissions = 1 << 22
	PermVoiceDeafMembers Permissions = 1 << 23
	PermVoiceMoveMembers Permissions = 1 << 24
	PermChangeNickname   Permissions = 1 << 26
	PermManageNicknames  Permissions = 1 << 27
	PermManageRoles      Permissions = 1 << 28
	PermManageWebhooks   Permissions = 1 << 29
	PermManageEmojis     Permissions = 1 << 30
)

func (p Permissions) Has(perm Permissions) bool {
	return p&perm == perm
}

func (p Permissions) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(p), 10) + `"`), nil
}

func (p *Permissions) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}

	s := string(bytes.Trim(b, `"`))
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*p = Permissions(v)
	return nil
}

type Role struct {
	ID          ID          `json:"id"`
	Name        string      `json:"name"`
	Color       int         `json:"color"`
	Position    int         `json:"position"`
	Permissions Permissions `json:"permissions"`
	Hoist       bool        `json:"hoist"`
	Managed     bool        `json:"managed"`
	Mentionable bool        `json:"mentionable"`
}

func (r *Role) Clone() *Role {
	if r == nil {
		return nil
	}

	c := *r
	return &c
}
