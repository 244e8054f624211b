//go:build windows

package sys

import "unicode/utf16"

// WChar matches wchar_t: a 2-byte UTF-16 code unit on Windows.
type WChar uint16

func encodeWChars(s string) []WChar {
	enc := utf16.Encode([]rune(s))
	out := make([]WChar, len(enc))
	for i, c := range enc {
		out[i] = WChar(c)
	}
	return out
}

func decodeWChars(ws []WChar) string {
	enc := make([]uint16, len(ws))
	for i, c := range ws {
		enc[i] = uint16(c)
	}
	return string(utf16.Decode(enc))
}
