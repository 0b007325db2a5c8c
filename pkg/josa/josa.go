// Package josa selects Korean postpositions (조사) for amendment sentences.
//
// When a term is replaced in a statute, the postposition that followed the
// old term may no longer agree with the new one: "을" after a word ending in
// a consonant becomes "를" after a word ending in a vowel, and "으로" drops
// to "로" after a vowel or the liquid consonant ㄹ. Agree resolves the
// phrase for every detected postposition and every final-consonant class
// from a fixed rule table.
package josa

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Postposition is a postposition recognised at the end of a found word.
type Postposition int

const (
	// None means the found word carries no recognised postposition.
	None Postposition = iota
	// Euro is 으로.
	Euro
	// Ina is 이나.
	Ina
	// Na is 나.
	Na
	// Ro is 로.
	Ro
	// Eul is 을.
	Eul
	// Reul is 를.
	Reul
	// Gwa is 과.
	Gwa
	// Wa is 와.
	Wa
	// I is 이.
	I
	// Ga is 가.
	Ga

	postpositionCount
)

var postpositionText = [postpositionCount]string{
	None: "",
	Euro: "으로",
	Ina:  "이나",
	Na:   "나",
	Ro:   "로",
	Eul:  "을",
	Reul: "를",
	Gwa:  "과",
	Wa:   "와",
	I:    "이",
	Ga:   "가",
}

// detectionOrder lists postpositions in the order they are tested as
// suffixes. Longer forms come before the shorter forms they end with.
var detectionOrder = [...]Postposition{Euro, Ina, Na, Ro, Eul, Reul, Gwa, Wa, I, Ga}

// String returns the Hangul form of the postposition.
func (postposition Postposition) String() string {
	if postposition < 0 || postposition >= postpositionCount {
		return ""
	}
	return postpositionText[postposition]
}

// Detect returns the first postposition in detection order that is a suffix
// of word, or None.
func Detect(word string) Postposition {
	for _, postposition := range detectionOrder {
		if strings.HasSuffix(word, postpositionText[postposition]) {
			return postposition
		}
	}
	return None
}

// Final classifies how the last syllable of a word ends.
type Final int

const (
	// Open is a syllable without a final consonant (받침).
	Open Final = iota
	// Liquid is a syllable closed by ㄹ.
	Liquid
	// Closed is a syllable closed by any other consonant.
	Closed

	finalCount
)

// String returns a short name for the class.
func (final Final) String() string {
	switch final {
	case Open:
		return "open"
	case Liquid:
		return "liquid"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	finalsPerBase = 28
	finalRieul    = 8
)

// digitFinals gives the final class of each digit read in Sino-Korean:
// 영 일 이 삼 사 오 육 칠 팔 구.
var digitFinals = [10]Final{Closed, Liquid, Open, Closed, Open, Open, Closed, Liquid, Liquid, Open}

// FinalOf classifies the last character of word. Hangul syllables are
// decoded arithmetically; digits use their Sino-Korean reading; any other
// character, or an empty word, counts as Open.
func FinalOf(word string) Final {
	word = strings.TrimRightFunc(norm.NFC.String(word), unicode.IsSpace)
	last, size := utf8.DecodeLastRuneInString(word)
	if size == 0 || last == utf8.RuneError {
		return Open
	}

	switch {
	case last >= syllableBase && last <= syllableLast:
		switch (last - syllableBase) % finalsPerBase {
		case 0:
			return Open
		case finalRieul:
			return Liquid
		default:
			return Closed
		}
	case last >= '0' && last <= '9':
		return digitFinals[last-'0']
	default:
		return Open
	}
}

// HasFinalConsonant reports whether the last syllable of word is closed by
// a consonant, ㄹ included.
func HasFinalConsonant(word string) bool {
	return FinalOf(word) != Open
}

// IsLiquidFinal reports whether the last syllable of word is closed by ㄹ.
func IsLiquidFinal(word string) bool {
	return FinalOf(word) == Liquid
}
