package models

import (
	"strings"
	"unicode/utf8"
)

// pictographic ranges covering the emoji blocks used by initiative tags.
var pictographicRanges = [][2]rune{
	{0x2600, 0x27BF},   // misc symbols, dingbats
	{0x2B00, 0x2BFF},   // misc symbols and arrows (⭐ etc.)
	{0x1F000, 0x1F2FF}, // mahjong, enclosed ideographs
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport
	{0x1F900, 0x1FAFF}, // supplemental pictographs
}

func isPictographic(r rune) bool {
	for _, rg := range pictographicRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// SplitLeadingEmoji extracts a leading pictographic glyph from name.
// On success it returns the glyph and the remaining name with leading
// whitespace stripped. Legacy initiative records store the emoji inside
// the name field; the load path uses this to migrate them.
func SplitLeadingEmoji(name string) (emoji, rest string, ok bool) {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !isPictographic(r) {
		return "", name, false
	}
	emoji = name[:size]
	rest = name[size:]
	// A variation selector following the glyph belongs to it.
	if vr, vsize := utf8.DecodeRuneInString(rest); vr == 0xFE0F {
		emoji += rest[:vsize]
		rest = rest[vsize:]
	}
	return emoji, strings.TrimLeft(rest, " \t"), true
}
