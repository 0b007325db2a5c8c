package amend

import (
	"strconv"
	"strings"

	"github.com/coolbeans/lawamend/pkg/josa"
	"github.com/coolbeans/lawamend/pkg/statute"
)

// NoTargetsMessage is the single result returned when no statute contains
// the term. It signals an empty result, not a failure.
const NoTargetsMessage = "⚠️ 개정 대상 조문이 없습니다."

// circledOrdinals is the number of ordinals written as circled digits.
const circledOrdinals = 20

// Ordinal returns the prefix for the statute at zero-based index: "①" to
// "⑳" for the first twenty, then "21.", "22." and so on.
func Ordinal(index int) string {
	if index >= 0 && index < circledOrdinals {
		return string(rune('①' + index))
	}
	return strconv.Itoa(index+1) + "."
}

// Citations renders a location list: a single location as is, several as
// "각각 A, B 및 C".
func Citations(locations []statute.Location) string {
	rendered := make([]string, len(locations))
	for index, location := range locations {
		rendered[index] = location.String()
	}

	switch len(rendered) {
	case 0:
		return ""
	case 1:
		return rendered[0]
	default:
		last := len(rendered) - 1
		return "각각 " + strings.Join(rendered[:last], ", ") + " 및 " + rendered[last]
	}
}

// Sentence renders one amendment sentence, e.g.
// `제3조제1항 중 “사람을”를 자연인으로 한다.`.
func Sentence(locations []statute.Location, found, replacement string) string {
	return Citations(locations) + " 중 “" + found + "”" + josa.Phrase(found, replacement) + " 한다."
}

// Compose drafts the amendment of one statute from its match group. It
// reports false when the group is empty.
func Compose(law statute.Law, index int, group *MatchGroup, found, replacement string) (Amendment, bool) {
	if group.Empty() {
		return Amendment{}, false
	}

	sentences := make([]string, 0, group.Len())
	for _, token := range group.Tokens() {
		sentences = append(sentences, Sentence(group.Locations(token), found, replacement))
	}

	return Amendment{
		Law:       law,
		Ordinal:   Ordinal(index),
		Matches:   group,
		Sentences: sentences,
	}, true
}

// Render returns one HTML block per amendment, or the one-element
// NoTargetsMessage list when there is none. The result is never empty.
func Render(amendments []Amendment) []string {
	if len(amendments) == 0 {
		return []string{NoTargetsMessage}
	}
	rendered := make([]string, len(amendments))
	for index, amendment := range amendments {
		rendered[index] = amendment.HTML()
	}
	return rendered
}

// IsSentinel reports whether results is the no-targets result of Render.
func IsSentinel(results []string) bool {
	return len(results) == 1 && results[0] == NoTargetsMessage
}

// Draft collects the locations of found in document and composes the
// amendment of that statute at the given ordinal index.
func Draft(document *statute.Document, found, replacement string, index int) (Amendment, bool) {
	if document == nil {
		return Amendment{}, false
	}
	return Compose(document.Law, index, Collect(document, found), found, replacement)
}
