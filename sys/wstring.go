package sys

import "unsafe"

// The vendor ABI exchanges text as NUL-terminated wchar_t strings. The
// width of WChar is platform dependent; see the wchar_*.go files.

// GoString decodes a NUL-terminated vendor wide string. A nil pointer
// decodes to the empty string.
func GoString(p *WChar) string {
	if p == nil {
		return ""
	}
	n := 0
	for {
		c := *(*WChar)(unsafe.Add(unsafe.Pointer(p), uintptr(n)*unsafe.Sizeof(WChar(0))))
		if c == 0 {
			break
		}
		n++
	}
	return decodeWChars(unsafe.Slice(p, n))
}

// GoStringN decodes a fixed-size wide character buffer, stopping at the
// first NUL.
func GoStringN(ws []WChar) string {
	for i, c := range ws {
		if c == 0 {
			ws = ws[:i]
			break
		}
	}
	return decodeWChars(ws)
}

// WString encodes s as a NUL-terminated vendor wide string.
func WString(s string) []WChar {
	return append(encodeWChars(s), 0)
}
