package entity

import (
	"bytes"
	"time"

	"github.com/quartzlab/discordkit/pkg/idutil"
)

// ID is a 64-bit snowflake identifier. The wire format quotes it as a string
// because 64-bit integers overflow common JSON consumers; a JSON null decodes
// to the zero ID, which means "unset".
type ID int64

func (id ID) String() string {
	return idutil.Format(int64(id))
}

func (id ID) IsZero() bool {
	return id == 0
}

// CreatedAt extracts the creation time embedded in the snowflake.
func (id ID) CreatedAt() time.Time {
	return idutil.TimeFrom(int64(id))
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == 0 {
		return []byte("null"), nil
	}

	return []byte(`"` + id.String() + `"`), nil
}

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}

	v, err := ParseID(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}

	*id = v
	return nil
}

// ParseID decodes the wire form of an identifier. An empty string is the zero
// ID, not an error.
func ParseID(s string) (ID, error) {
	if s == "" {
		return 0, nil
	}

	v, err := idutil.Parse(s)
	if err != nil {
		return 0, err
	}

	return ID(v), nil
}
