package sys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWStringRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"spectranv6",
		"V6-123456/0001",
		"µ-wave ∆f", // non-ASCII survives the wide encoding
	} {
		w := WString(s)
		assert.Equal(t, WChar(0), w[len(w)-1], "encoded string is NUL terminated")
		assert.Equal(t, s, GoString(&w[0]))
	}
}

func TestGoStringNil(t *testing.T) {
	assert.Equal(t, "", GoString(nil))
}

func TestGoStringNStopsAtNUL(t *testing.T) {
	buf := make([]WChar, 8)
	copy(buf, WString("iq")) // "iq\0" into a larger buffer
	assert.Equal(t, "iq", GoStringN(buf))

	// No NUL in the slice decodes the full window.
	assert.Equal(t, "iq", GoStringN(WString("iq")[:2]))

	assert.Equal(t, "", GoStringN(nil))
}
