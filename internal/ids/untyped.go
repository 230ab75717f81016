package ids

import (
	"encoding/base32"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dchest/siphash"
)

// EncodedLen is the length of the bare (unprefixed) text form.
const EncodedLen = 26

// encoding is base32hex, lowercase, unpadded. Unlike standard base32, the
// hex-ordered alphabet sorts the same way as the bytes it encodes, so the
// text form of an id is ordered chronologically too.
var encoding = base32.NewEncoding("0123456789abcdefghijklmnopqrstuv").WithPadding(base32.NoPadding)

// UntypedID is an identifier without an entity tag: a nanosecond timestamp
// and a random word. The zero value is valid (and sorts first).
type UntypedID struct {
	stamp  uint64
	random uint64
}

// Generator produces fresh identifiers from the process clock and the
// shared random source. The zero value is ready to use.
type Generator struct{}

// NewGenerator returns a fresh Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Untyped returns a new identifier stamped with the current wall-clock time.
// Two calls in the same nanosecond are disambiguated by the random word;
// callers must not assume stamps alone are unique.
func (g *Generator) Untyped() UntypedID {
	return UntypedID{
		stamp:  uint64(time.Now().UnixNano()),
		random: rand.Uint64(),
	}
}

// Hashed returns an identifier at time zero whose random portion is derived
// from v: equal values always yield equal identifiers. The stamp of zero
// keeps hashed ids recognizably out of band from generated ones. The
// derivation is SipHash-2-4 with a zero key over v's JSON encoding.
//
// Hashed panics if v cannot be JSON-encoded; it is meant for values that are
// themselves documents or fixtures.
func Hashed(v any) UntypedID {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("ids: hash value: %v", err))
	}
	return UntypedID{stamp: 0, random: siphash.Hash(0, 0, body)}
}

// Timestamp returns the stamp portion as a wall-clock time.
func (id UntypedID) Timestamp() time.Time {
	return time.Unix(0, int64(id.stamp)).UTC()
}

// Random returns the random portion.
func (id UntypedID) Random() uint64 {
	return id.random
}

// Bytes returns the 16-byte binary form: the stamp then the random word,
// each big-endian, so a bytewise comparison matches Compare.
func (id UntypedID) Bytes() []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], id.stamp)
	binary.BigEndian.PutUint64(buf[8:16], id.random)
	return buf
}

func untypedFromBytes(b []byte) UntypedID {
	return UntypedID{
		stamp:  binary.BigEndian.Uint64(b[0:8]),
		random: binary.BigEndian.Uint64(b[8:16]),
	}
}

// Compare orders ids by stamp, then random word. It returns -1, 0 or 1.
func (id UntypedID) Compare(other UntypedID) int {
	switch {
	case id.stamp < other.stamp:
		return -1
	case id.stamp > other.stamp:
		return 1
	case id.random < other.random:
		return -1
	case id.random > other.random:
		return 1
	}
	return 0
}

// String returns the bare 26-character text form.
func (id UntypedID) String() string {
	return encoding.EncodeToString(id.Bytes())
}

// ParseUntyped parses the bare text form. It fails with ErrUnparseable on
// wrong length, a stray entity divider, or a malformed body.
func ParseUntyped(src string) (UntypedID, error) {
	if len(src) != EncodedLen || strings.Contains(src, divider) {
		return UntypedID{}, fmt.Errorf("%w: %q", ErrUnparseable, src)
	}
	return decodeBody(src)
}

func decodeBody(body string) (UntypedID, error) {
	if len(body) != EncodedLen {
		return UntypedID{}, fmt.Errorf("%w: %q", ErrUnparseable, body)
	}
	raw, err := encoding.DecodeString(body)
	if err != nil || len(raw) != 16 {
		return UntypedID{}, fmt.Errorf("%w: %q", ErrUnparseable, body)
	}
	return untypedFromBytes(raw), nil
}

// MarshalText implements encoding.TextMarshaler.
func (id UntypedID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *UntypedID) UnmarshalText(text []byte) error {
	parsed, err := ParseUntyped(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
