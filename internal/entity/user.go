package entity

// UserFlags is the account badge bitfield carried in the user's public flags.
type UserFlags int

const (
	FlagStaff             UserFlags = 1 << 0
	FlagPartner           UserFlags = 1 << 1
	FlagHypeSquadEvents   UserFlags = 1 << 2
	FlagBugHunter         UserFlags = 1 << 3
	FlagHouseBravery      UserFlags = 1 << 6
	FlagHouseBrilliance   UserFlags = 1 << 7
	FlagHouseBalance      UserFlags = 1 << 8
	FlagEarlySupporter    UserFlags = 1 << 9
	FlagTeamUser          UserFlags = 1 << 10
	FlagBugHunterGold     UserFlags = 1 << 14
	FlagVerifiedBot       UserFlags = 1 << 16
	FlagVerifiedDeveloper UserFlags = 1 << 17
)

// Has checks a badge bit. This must be a bitwise AND: f&flag is nonzero only
// when the specific badge bits are set.
func (f UserFlags) Has(flag UserFlags) bool {
	return f&flag == flag
}

type PremiumType int

const (
	PremiumNone PremiumType = iota
	PremiumClassic
	PremiumFull
)

type User struct {
	ID            ID          `json:"id"`
	Username      string      `json:"username"`
	Discriminator string      `json:"discriminator"`
	Avatar        string      `json:"avatar,omitempty"`
	Bot           bool        `json:"bot,omitempty"`
	Flags         UserFlags   `json:"public_flags,omitempty"`
	PremiumType   PremiumType `json:"premium_type,omitempty"`
}

// Tag is the unique identity tuple rendered the way users see it.
func (u *User) Tag() string {
	return u.Username + "#" + u.Discriminator
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	c := *u
	return &c
}
