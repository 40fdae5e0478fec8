package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIDWireFormat(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"80351110224678912","username":"nelly"}`), &u))
	require.Equal(t, ID(80351110224678912), u.ID)

	out, err := json.Marshal(u)
	require.NoError(t, err)
	require.Contains(t, string(out), `"id":"80351110224678912"`)
}

func TestIDNullMeansUnset(t *testing.T) {
	var c Channel
	require.NoError(t, json.Unmarshal([]byte(`{"id":"100","guild_id":null}`), &c))
	require.Equal(t, ID(100), c.ID)
	require.True(t, c.GuildID.IsZero())
}

func TestIDAcceptsBareIntegers(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte(`12345`), &id))
	require.Equal(t, ID(12345), id)

	require.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &id))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	require.Equal(t, ID(42), id)

	id, err = ParseID("")
	require.NoError(t, err)
	require.True(t, id.IsZero())

	_, err = ParseID("abc")
	require.Error(t, err)
}

func TestIDCreatedAt(t *testing.T) {
	const epochMillis int64 = 1420070400000

	ts := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	id := ID((ts.UnixMilli() - epochMillis) << 22)

	require.Equal(t, ts.UnixMilli(), id.CreatedAt().UnixMilli())
}

func TestUserFlagsHasChecksExactBits(t *testing.T) {
	f := FlagStaff | FlagHouseBravery

	require.True(t, f.Has(FlagStaff))
	require.True(t, f.Has(FlagHouseBravery))
	require.False(t, f.Has(FlagPartner))

	// Overlapping-but-incomplete combinations must not pass.
	require.False(t, f.Has(FlagStaff|FlagPartner))
	require.True(t, f.Has(FlagStaff|FlagHouseBravery))
}

func TestPermissionsWireFormats(t *testing.T) {
	var r Role
	require.NoError(t, json.Unmarshal([]byte(`{"id":"5","name":"mod","permissions":"268435462"}`), &r))
	require.True(t, r.Permissions.Has(PermKickMembers))
	require.True(t, r.Permissions.Has(PermBanMembers))
	require.True(t, r.Permissions.Has(PermManageRoles))
	require.False(t, r.Permissions.Has(PermAdministrator))

	require.NoError(t, json.Unmarshal([]byte(`{"id":"5","permissions":8}`), &r))
	require.True(t, r.Permissions.Has(PermAdministrator))

	out, err := json.Marshal(Role{ID: 5, Permissions: PermSendMessages})
	require.NoError(t, err)
	require.Contains(t, string(out), `"permissions":"2048"`)
}

func TestUserTag(t *testing.T) {
	u := &User{Username: "nelly", Discriminator: "1337"}
	require.Equal(t, "nelly#1337", u.Tag())
}

func TestGuildCloneIsDeep(t *testing.T) {
	g := &Guild{
		ID:         10,
		Name:       "hq",
		Roles:      []*Role{{ID: 5, Name: "mod"}},
		Members:    []*Member{{User: &User{ID: 42, Username: "bot"}}},
		ChannelIDs: []ID{100},
		Presences:  map[ID]*Presence{42: {Status: "online"}},
	}

	c := g.Clone()
	c.Roles[0].Name = "admin"
	c.Members[0].User.Username = "other"
	c.ChannelIDs[0] = 999
	c.Presences[42].Status = "idle"

	require.Equal(t, "mod", g.Roles[0].Name)
	require.Equal(t, "bot", g.Members[0].User.Username)
	require.Equal(t, ID(100), g.ChannelIDs[0])
	require.Equal(t, "online", g.Presences[42].Status)
}

func TestChannelIsGuildKind(t *testing.T) {
	require.True(t, (&Channel{Type: ChannelGuildText}).IsGuildKind())
	require.False(t, (&Channel{Type: ChannelDM}).IsGuildKind())
}
