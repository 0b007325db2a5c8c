package search

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/lawamend/pkg/highlight"
	"github.com/coolbeans/lawamend/pkg/statute"
)

func mark(text string) string {
	return highlight.OpenTag + text + highlight.CloseTag
}

// =============================================================================
// Article-level behaviour
// =============================================================================

func TestArticle_DirectHitOnly(t *testing.T) {
	article := statute.Article{
		Number: "1",
		Text:   "제1조(목적) 이 법은 개인정보를 보호한다.",
		Clauses: []statute.Clause{
			{Number: "①", Text: "① 관계없는 내용이다."},
		},
	}

	result, ok := Article(article, "개인정보")

	require.True(t, ok)
	assert.Equal(t, "제1조", result.Article)
	assert.Equal(t, []string{"제1조(목적) 이 법은 " + mark("개인정보") + "를 보호한다."}, result.Fragments)
}

func TestArticle_NoMatch(t *testing.T) {
	article := statute.Article{
		Number: "1",
		Text:   "제1조(목적) 이 법은 국민을 보호한다.",
		Clauses: []statute.Clause{
			{Number: "①", Text: "① 아주 긴 항의 내용이지만 검색어는 없다.", Items: []statute.Item{{Number: "1.", Text: "1. 역시 없다."}}},
		},
	}

	_, ok := Article(article, "개인정보")

	assert.False(t, ok)
}

func TestArticle_WhitespaceInsensitiveHit(t *testing.T) {
	article := statute.Article{Number: "2", Text: "제2조 개인 정보의 정의"}

	result, ok := Article(article, "개인정보")

	require.True(t, ok)
	// The hit is whitespace-insensitive, the highlight is literal.
	assert.Equal(t, []string{"제2조 개인 정보의 정의"}, result.Fragments)
}

func TestArticle_EmptyQuery(t *testing.T) {
	article := statute.Article{Number: "2", Text: "제2조 정의"}

	_, ok := Article(article, "  ")

	assert.False(t, ok)
}

// =============================================================================
// Context emission
// =============================================================================

func TestArticle_ContextEmittedOnce(t *testing.T) {
	article := statute.Article{
		Number: "3",
		Text:   "제3조(정의)",
		Clauses: []statute.Clause{
			{Number: "①", Text: "① 첫째 항", Items: []statute.Item{{Number: "1.", Text: "1. 사람의 이름"}}},
			{Number: "②", Text: "② 둘째 항", Items: []statute.Item{{Number: "1.", Text: "1. 사람의 주소"}}},
			{Number: "③", Text: "③ 셋째 항", Items: []statute.Item{{Number: "1.", Text: "1. 사람의 나이"}}},
		},
	}

	result, ok := Article(article, "사람")
	require.True(t, ok)

	want := []string{
		"제3조(정의) ① 첫째 항",
		"&nbsp;&nbsp;1. " + mark("사람") + "의 이름",
		"② 둘째 항",
		"&nbsp;&nbsp;1. " + mark("사람") + "의 주소",
		"③ 셋째 항",
		"&nbsp;&nbsp;1. " + mark("사람") + "의 나이",
	}
	if diff := cmp.Diff(want, result.Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}

	withArticleText := 0
	for _, fragment := range result.Fragments {
		if strings.Contains(fragment, "제3조(정의)") {
			withArticleText++
		}
	}
	assert.Equal(t, 1, withArticleText)
	assert.True(t, strings.HasPrefix(result.Fragments[0], "제3조(정의)"))
}

func TestArticle_DirectHitSuppressesContext(t *testing.T) {
	article := statute.Article{
		Number: "4",
		Text:   "제4조(사람의 권리)",
		Clauses: []statute.Clause{
			{Number: "①", Text: "① 사람은 존엄하다."},
		},
	}

	result, ok := Article(article, "사람")
	require.True(t, ok)

	assert.Equal(t, []string{
		"제4조(" + mark("사람") + "의 권리)",
		"① " + mark("사람") + "은 존엄하다.",
	}, result.Fragments)
}

func TestArticle_SkipsNonMatchingClauses(t *testing.T) {
	article := statute.Article{
		Number: "5",
		Text:   "제5조(책무)",
		Clauses: []statute.Clause{
			{Number: "①", Text: "① 국가는 노력한다."},
			{Number: "②", Text: "② 지방자치단체는 사람을 돕는다."},
			{Number: "③", Text: "③ 국가는 계획을 세운다."},
		},
	}

	result, ok := Article(article, "사람")
	require.True(t, ok)

	assert.Equal(t, []string{"제5조(책무) ② 지방자치단체는 " + mark("사람") + "을 돕는다."}, result.Fragments)
}

func TestArticle_SubItemLines(t *testing.T) {
	article := statute.Article{
		Number: "6",
		Text:   "제6조(적용 범위)",
		Clauses: []statute.Clause{{
			Number: "①",
			Text:   "① 다음 각 호에 적용한다.",
			Items: []statute.Item{{
				Number: "1.",
				Text:   "1. 다음 각 목의 자",
				SubItems: []statute.SubItem{
					{Number: "가.", Lines: []string{"가. 국내에 주소를 둔\n\n   사람\n"}},
					{Number: "나.", Lines: []string{"나. 외국 법인"}},
				},
			}},
		}},
	}

	result, ok := Article(article, "사람")
	require.True(t, ok)

	want := []string{
		"제6조(적용 범위) ① 다음 각 호에 적용한다.",
		"<div style='margin:0;padding:0'>&nbsp;&nbsp;&nbsp;&nbsp;가. 국내에 주소를 둔<br>&nbsp;&nbsp;&nbsp;&nbsp;" + mark("사람") + "</div>",
	}
	if diff := cmp.Diff(want, result.Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleResult_HTML(t *testing.T) {
	result := ArticleResult{Article: "제1조", Fragments: []string{"a", "b"}}

	assert.Equal(t, "a<br>b", result.HTML())
}

// =============================================================================
// Document and law level
// =============================================================================

func TestLaw_OmitsEmptyArticlesAndLaws(t *testing.T) {
	document := &statute.Document{
		Law: statute.Law{Name: "민법", ID: "1"},
		Articles: []statute.Article{
			{Number: "1", Text: "제1조 사람의 능력"},
			{Number: "2", Text: "제2조 물건"},
			{Number: "3", BranchNumber: "2", Text: "제3조의2 사람의 주소"},
		},
	}

	result, ok := Law(document, "사람")
	require.True(t, ok)
	assert.Equal(t, "민법", result.Law.Name)
	require.Len(t, result.Articles, 2)
	assert.Equal(t, "제1조", result.Articles[0].Article)
	assert.Equal(t, "제3조의2", result.Articles[1].Article)

	_, ok = Law(document, "법인")
	assert.False(t, ok)

	_, ok = Law(nil, "사람")
	assert.False(t, ok)
}

func TestDocument_DoesNotMutateTree(t *testing.T) {
	document := &statute.Document{
		Articles: []statute.Article{{
			Number:  "1",
			Text:    "제1조 사람",
			Clauses: []statute.Clause{{Number: "①", Text: "① 사람"}},
		}},
	}

	Document(document, "사람")

	assert.Equal(t, "제1조 사람", document.Articles[0].Text)
	assert.Equal(t, "① 사람", document.Articles[0].Clauses[0].Text)
}
