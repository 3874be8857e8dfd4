package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// TerminatorLen returns the byte length of the JavaScript line terminator at
// the start of b: 1 for \n and \r, 2 for \r\n, 3 for U+2028 and U+2029, 0 otherwise.
func TerminatorLen(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	switch b[0] {
	case '\n':
		return 1
	case '\r':
		if len(b) > 1 && b[1] == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		if len(b) >= 3 && b[1] == 0x80 && (b[2] == 0xA8 || b[2] == 0xA9) {
			return 3
		}
	}
	return 0
}

// buildLineIndex записывает смещение начала каждой строки, кроме первой.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i := 0; i < len(content); {
		n := TerminatorLen(content[i:])
		if n == 0 {
			i++
			continue
		}
		i += n
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line index overflow: %w", err))
		}
		out = append(out, off)
	}
	return out
}

// terminatorBefore returns the length of the line terminator ending at off.
func terminatorBefore(content []byte, off uint32) uint32 {
	switch {
	case off >= 2 && content[off-2] == '\r' && content[off-1] == '\n':
		return 2
	case off >= 1 && (content[off-1] == '\n' || content[off-1] == '\r'):
		return 1
	case off >= 3 && TerminatorLen(content[off-3:off]) == 3:
		return 3
	}
	return 0
}

// toLineCol maps a byte offset to a 1-based line and a 1-based column measured
// in UTF-16 code units. Offsets past the end clamp to the end of the file.
func toLineCol(f *File, off uint32) LineCol {
	if int(off) > len(f.Content) {
		off = uint32(len(f.Content))
	}
	lineIdx := f.LineIdx

	// бинпоиск: количество начал строк не дальше off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1]
	}

	lineNo, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNo, Col: utf16Len(f.Content[startOff:off]) + 1}
}

func utf16Len(b []byte) uint32 {
	var n uint32
	for len(b) > 0 {
		if b[0] < utf8.RuneSelf {
			n++
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		b = b[size:]
	}
	return n
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
