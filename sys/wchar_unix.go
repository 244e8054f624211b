//go:build !windows

package sys

// WChar matches wchar_t: a 4-byte UTF-32 code point on unix-likes.
type WChar uint32

func encodeWChars(s string) []WChar {
	out := make([]WChar, 0, len(s))
	for _, r := range s {
		out = append(out, WChar(r))
	}
	return out
}

func decodeWChars(ws []WChar) string {
	rs := make([]rune, len(ws))
	for i, c := range ws {
		rs[i] = rune(c)
	}
	return string(rs)
}
