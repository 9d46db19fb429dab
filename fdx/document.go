package fdx

import (
	"strings"

	"github.com/google/uuid"
)

// Document assembly: turns a ParseResult into the final ordered Document.
// Title-page-derived pseudo-elements always precede body elements.

// BuildDocument assembles the screenplay document from a conversion result.
// The result is not retained; callers persist or diff the Document.
func BuildDocument(r *ParseResult) Document {
	doc := Document{
		Title:     r.TitlePage.Title,
		Author:    r.TitlePage.Author,
		DraftInfo: draftInfo(&r.TitlePage),
	}

	// Display fields become general pseudo-elements; draft date and
	// revision are metadata and stay in DraftInfo only. Empty fields
	// produce no element, same as empty body paragraphs.
	for _, text := range []string{
		r.TitlePage.Title,
		r.TitlePage.Author,
		r.TitlePage.Contact,
		r.TitlePage.Copyright,
	} {
		if text == "" {
			continue
		}
		doc.Elements = append(doc.Elements, ParsedElement{
			ID:   uuid.NewString(),
			Type: ElementGeneral,
			Text: text,
		})
	}

	doc.Elements = append(doc.Elements, r.Elements...)
	return doc
}

func draftInfo(tp *TitlePageInfo) string {
	var parts []string
	if tp.DraftDate != "" {
		parts = append(parts, tp.DraftDate)
	}
	if tp.Revision != "" {
		parts = append(parts, tp.Revision)
	}
	return strings.Join(parts, " - ")
}
