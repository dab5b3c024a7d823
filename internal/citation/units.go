// SPDX-License-Identifier: Apache-2.0

package citation

import "unicode/utf16"

// units is a string held as UTF-16 code units. Offsets reported by browsers
// (and stored with every citation) count code units, not bytes or runes.
type units []uint16

func toUnits(s string) units {
	return utf16.Encode([]rune(s))
}

func (u units) String() string {
	return string(utf16.Decode(u))
}

// CodeUnits returns the length of s in UTF-16 code units.
func CodeUnits(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// indexFrom returns the first index >= from at which needle occurs in u, or -1.
func (u units) indexFrom(needle units, from int) int {
	if from < 0 {
		from = 0
	}
	if len(needle) == 0 || from > len(u)-len(needle) {
		return -1
	}
	for i := from; i <= len(u)-len(needle); i++ {
		if u[i] != needle[0] {
			continue
		}
		match := true
		for j := 1; j < len(needle); j++ {
			if u[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// clip returns u[start:end] with both bounds clamped to the slice. A bound
// that would split a surrogate pair moves inward, so the result never holds
// half a character.
func (u units) clip(start, end int) units {
	if start < 0 {
		start = 0
	}
	if end > len(u) {
		end = len(u)
	}
	if u.splitsPair(start) {
		start++
	}
	if u.splitsPair(end) {
		end--
	}
	if start >= end {
		return nil
	}
	return u[start:end]
}

// splitsPair reports whether index i falls between the high and low halves
// of a surrogate pair.
func (u units) splitsPair(i int) bool {
	return i > 0 && i < len(u) && isHighSurrogate(u[i-1]) && isLowSurrogate(u[i])
}

// widen moves start back and end forward until neither splits a surrogate pair.
func (u units) widen(start, end int) (int, int) {
	if u.splitsPair(start) {
		start--
	}
	if u.splitsPair(end) {
		end++
	}
	return start, end
}

func isHighSurrogate(c uint16) bool { return c >= 0xd800 && c < 0xdc00 }

func isLowSurrogate(c uint16) bool { return c >= 0xdc00 && c < 0xe000 }
