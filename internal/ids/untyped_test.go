package ids

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntypedRoundTripsViaString(t *testing.T) {
	id := Hashed("Hi!")

	parsed, err := ParseUntyped(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestUntypedRoundTripsViaStringNow(t *testing.T) {
	id := NewGenerator().Untyped()

	parsed, err := ParseUntyped(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestUntypedRoundTripsViaJSON(t *testing.T) {
	id := Hashed("boo")

	buf, err := json.Marshal(id)
	require.NoError(t, err)

	var parsed UntypedID
	require.NoError(t, json.Unmarshal(buf, &parsed))
	assert.Equal(t, id, parsed)
}

func TestUntypedSerializesToStringLike(t *testing.T) {
	id := Hashed("boo")

	buf, err := json.Marshal(id)
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(buf, &s))
	assert.Equal(t, id.String(), s)
}

func TestUntypedStringIsFixedWidth(t *testing.T) {
	for _, id := range []UntypedID{{}, Hashed("x"), NewGenerator().Untyped()} {
		assert.Len(t, id.String(), EncodedLen)
	}
}

func TestHashedIsDeterministic(t *testing.T) {
	assert.Equal(t, Hashed("boo"), Hashed("boo"))
	assert.NotEqual(t, Hashed("boo"), Hashed("Hi!"))
}

func TestHashedHasZeroStamp(t *testing.T) {
	assert.Equal(t, time.Unix(0, 0).UTC(), Hashed("boo").Timestamp())
}

func TestGenerateIsUnique(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[UntypedID]bool)
	for i := 0; i < 1000; i++ {
		seen[gen.Untyped()] = true
	}
	assert.Len(t, seen, 1000)
}

func TestGenerateOrdersByTime(t *testing.T) {
	gen := NewGenerator()

	earlier := gen.Untyped()
	time.Sleep(2 * time.Millisecond)
	later := gen.Untyped()

	assert.Equal(t, -1, earlier.Compare(later))
	assert.Equal(t, 1, later.Compare(earlier))

	// The text form must order the same way as the ids themselves.
	assert.Less(t, earlier.String(), later.String())
}

func TestDistinctIDsHaveStrictOrder(t *testing.T) {
	gen := NewGenerator()

	id := gen.Untyped()
	other := gen.Untyped()
	for other == id {
		other = gen.Untyped()
	}

	assert.NotZero(t, id.Compare(other))
	assert.Zero(t, id.Compare(id))
}

func TestBytesAreBigEndianStampThenRandom(t *testing.T) {
	id := NewGenerator().Untyped()

	buf := id.Bytes()
	require.Len(t, buf, 16)
	assert.Equal(t, id, untypedFromBytes(buf))
}

func TestParseUntypedAcceptsExpectedLen(t *testing.T) {
	_, err := ParseUntyped("0000000000001q5nnvfqq7krfo")
	assert.NoError(t, err)
}

func TestParseUntypedRejectsPrefixedInput(t *testing.T) {
	_, err := ParseUntyped("wrong.0000000000001q5nnvfqq7krfo")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParseUntypedRejectsTruncation(t *testing.T) {
	_, err := ParseUntyped("0000000000001q5nnvfqq7krf")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParseUntypedRejectsExtension(t *testing.T) {
	_, err := ParseUntyped("0000000000001q5nnvfqq7krfoa")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParseUntypedRejectsBadAlphabet(t *testing.T) {
	bad := strings.Repeat("z", EncodedLen)
	_, err := ParseUntyped(bad)
	assert.ErrorIs(t, err, ErrUnparseable)
}
