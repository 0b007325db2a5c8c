package render

import (
	"io"

	"github.com/fumiama/go-docx"
	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/amend"
)

const (
	docxMatchColor = "FF0000"
	docxTitleSize  = "32"
	docxLawSize    = "28"
)

func writeDocument(writer io.Writer, document *docx.Docx) error {
	if _, err := document.WriteTo(writer); err != nil {
		return errors.Errorf("failed to write DOCX: %w", err)
	}
	return nil
}

func writeSearchDOCX(writer io.Writer, report SearchReport) error {
	document := docx.New().WithDefaultTheme()
	document.AddParagraph().AddText("검색 결과: " + report.Query).Bold().Size(docxTitleSize)

	if len(report.Results) == 0 {
		document.AddParagraph().AddText("해당하는 조문이 없습니다.")
	}

	for _, result := range report.Results {
		document.AddParagraph().AddText(result.Law.Name).Bold().Size(docxLawSize)
		for _, article := range result.Articles {
			document.AddParagraph().AddText(article.Article).Bold()
			for _, fragment := range article.Fragments {
				for _, line := range fragmentLines(fragment) {
					paragraph := document.AddParagraph()
					for _, piece := range line {
						if piece.emphasis {
							paragraph.AddText(piece.text).Color(docxMatchColor).Bold()
						} else {
							paragraph.AddText(piece.text)
						}
					}
				}
			}
		}
	}

	return writeDocument(writer, document)
}

func writeAmendDOCX(writer io.Writer, report AmendReport) error {
	document := docx.New().WithDefaultTheme()
	document.AddParagraph().AddText("개정문").Bold().Size(docxTitleSize)

	if len(report.Amendments) == 0 {
		document.AddParagraph().AddText(amend.NoTargetsMessage)
	}

	for _, amendment := range report.Amendments {
		document.AddParagraph().AddText(amendment.Header()).Bold()
		for _, sentence := range amendment.Sentences {
			document.AddParagraph().AddText(sentence)
		}
	}

	return writeDocument(writer, document)
}
