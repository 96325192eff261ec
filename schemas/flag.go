package schemas

import (
	"bytes"
	"errors"
)

var errInvalidFlag = errors.New("flag must be 0 or 1")

// Flag is a boolean that travels as an integer 0/1 on the wire. Outlets have
// always exposed is_open this way and clients depend on it.
type Flag bool

func FlagFromInt(v int) (Flag, bool) {
	switch v {
	case 0:
		return false, true
	case 1:
		return true, true
	}
	return false, false
}

func (f Flag) Int() int {
	if f {
		return 1
	}
	return 0
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", `"1"`, "true":
		*f = true
	case "0", `"0"`, "false":
		*f = false
	default:
		return errInvalidFlag
	}
	return nil
}
