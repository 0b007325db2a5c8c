package josa

// rule is one cell of the agreement table: the postposition written after
// the quoted found word, and the one attached to the replacement.
type rule struct {
	found    string
	attached string
}

// rules is indexed by detected postposition and by the final class of the
// replacement word. The array shape covers every combination; each cell is
// filled explicitly.
//
// The None row applies "를 …로" whatever the replacement ends with, so a
// consonant-final replacement yields e.g. "를 허용로".
var rules = [postpositionCount][finalCount]rule{
	None: {
		Open:   {"를", "로"},
		Liquid: {"를", "로"},
		Closed: {"를", "로"},
	},
	Eul: {
		Open:   {"을", "를"},
		Liquid: {"를", "로"},
		Closed: {"를", "으로"},
	},
	Reul: {
		Open:   {"를", "를"},
		Liquid: {"를", "을"},
		Closed: {"를", "을"},
	},
	Gwa: {
		Open:   {"과", "와"},
		Liquid: {"과", "로"},
		Closed: {"과", "으로"},
	},
	Wa: {
		Open:   {"와", "를"},
		Liquid: {"와", "과"},
		Closed: {"와", "과"},
	},
	I: {
		Open:   {"이", "가"},
		Liquid: {"이", "로"},
		Closed: {"이", "으로"},
	},
	Ga: {
		Open:   {"가", "를"},
		Liquid: {"가", "이"},
		Closed: {"가", "이"},
	},
	Ina: {
		Open:   {"이나", "나"},
		Liquid: {"이나", "로"},
		Closed: {"이나", "으로"},
	},
	Na: {
		Open:   {"나", "를"},
		Liquid: {"나", "이나"},
		Closed: {"나", "이나"},
	},
	Euro: {
		Open:   {"으로", "로"},
		Liquid: {"으로", "로"},
		Closed: {"으로", "으로"},
	},
	Ro: {
		Open:   {"로", "로"},
		Liquid: {"로", "로"},
		Closed: {"로", "으로"},
	},
}

// Agreement is the resolved postposition phrase for one replacement.
type Agreement struct {
	// Root is the found word without its detected postposition.
	Root string `json:"root"`

	// Detected is the postposition found at the end of the found word.
	Detected Postposition `json:"-"`

	// Final is the final-consonant class of the replacement word.
	Final Final `json:"-"`

	// Phrase is spliced right after the quoted found word, e.g. "를 자연인으로".
	Phrase string `json:"phrase"`
}

// Agree detects the postposition ending found and returns the phrase that
// introduces replacement with agreeing postpositions.
func Agree(found, replacement string) Agreement {
	detected := Detect(found)
	final := FinalOf(replacement)
	cell := rules[detected][final]

	return Agreement{
		Root:     found[:len(found)-len(detected.String())],
		Detected: detected,
		Final:    final,
		Phrase:   cell.found + " " + replacement + cell.attached,
	}
}

// Phrase is shorthand for Agree(found, replacement).Phrase.
func Phrase(found, replacement string) string {
	return Agree(found, replacement).Phrase
}
