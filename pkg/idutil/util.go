package idutil

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// The platform mints snowflakes against its own epoch (2015-01-01T00:00:00Z),
// not the library default.
const epochMillis int64 = 1420070400000

func init() {
	snowflake.Epoch = epochMillis
}

// Format renders an identifier in its canonical wire form.
func Format(id int64) string {
	return snowflake.ParseInt64(id).String()
}

// Parse converts the wire form of an identifier into its numeric value.
func Parse(s string) (int64, error) {
	id, err := snowflake.ParseString(s)
	if err != nil {
		return 0, err
	}

	return id.Int64(), nil
}

// TimeFrom extracts the creation time embedded in a snowflake.
func TimeFrom(id int64) time.Time {
	ms := snowflake.ParseInt64(id).Time()
	return time.UnixMilli(ms)
}
