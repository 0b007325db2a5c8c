package statute

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// ideographNumerals maps single CJK numeral ideographs to their value.
var ideographNumerals = map[rune]int{
	'〇': 0, '零': 0,
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9, '十': 10,
	'百': 100, '千': 1000,
}

// numeralRange is a contiguous block of code points with consecutive values.
type numeralRange struct {
	first, last rune
	base        int
}

var numeralRanges = []numeralRange{
	{'0', '9', 0},
	{'①', '⑳', 1},
	{'⑴', '⒇', 1},
	{'⒈', '⒛', 1},
	{'⓪', '⓪', 0},
	{'⓫', '⓴', 11},
	{'⓵', '⓾', 1},
	{'⓿', '⓿', 0},
	{'❶', '❿', 1},
	{'➀', '➉', 1},
	{'➊', '➓', 1},
	{'㈠', '㈩', 1},
	{'㉑', '㉟', 21},
	{'㊀', '㊉', 1},
	{'㊱', '㊿', 36},
}

// NormalizeNumber converts a single numeral glyph (circled, parenthesized,
// ideographic or full-width digit) into its decimal string, so "③" becomes
// "3". Anything that is not exactly one recognised glyph is returned as is.
func NormalizeNumber(text string) string {
	folded := width.Fold.String(text)
	glyph, size := utf8.DecodeRuneInString(folded)
	if size == 0 || size != len(folded) || glyph == utf8.RuneError {
		return text
	}
	value, ok := numeralValue(glyph)
	if !ok {
		return text
	}
	return strconv.Itoa(value)
}

func numeralValue(glyph rune) (int, bool) {
	if value, ok := ideographNumerals[glyph]; ok {
		return value, true
	}
	for _, block := range numeralRanges {
		if glyph >= block.first && glyph <= block.last {
			return block.base + int(glyph-block.first), true
		}
	}
	return 0, false
}
