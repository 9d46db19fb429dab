package fdx

import "strings"

// Type definitions for the internal screenplay document derived from Final
// Draft FDX interchange files.

// ElementType distinguishes the semantic kinds of screenplay paragraphs.
type ElementType string

const (
	ElementSceneHeading  ElementType = "sceneHeading"
	ElementAction        ElementType = "action"
	ElementCharacter     ElementType = "character"
	ElementParenthetical ElementType = "parenthetical"
	ElementDialogue      ElementType = "dialogue"
	ElementTransition    ElementType = "transition"
	ElementShot          ElementType = "shot"
	ElementGeneral       ElementType = "general"
)

// mapElementType folds an FDX paragraph Type attribute to the internal
// element kind. Administrative FDX types ("Cast List", "New Act", "End of
// Act" and anything else we do not recognize) become general.
func mapElementType(raw string) ElementType {
	switch {
	case strings.EqualFold(raw, "Scene Heading"):
		return ElementSceneHeading
	case strings.EqualFold(raw, "Action"):
		return ElementAction
	case strings.EqualFold(raw, "Character"):
		return ElementCharacter
	case strings.EqualFold(raw, "Parenthetical"):
		return ElementParenthetical
	case strings.EqualFold(raw, "Dialogue"):
		return ElementDialogue
	case strings.EqualFold(raw, "Transition"):
		return ElementTransition
	case strings.EqualFold(raw, "Shot"):
		return ElementShot
	default:
		return ElementGeneral
	}
}

// ParsedElement is a single typed screenplay element in document order.
type ParsedElement struct {
	ID            string
	Type          ElementType
	Text          string
	SceneNumber   string // scene headings only
	RevisionColor string
	RevisionID    string
	IsOmitted     bool
	PageNumber    string
	// PageEighths is the scene length in eighths of a page. Valid values
	// are >= 1; zero means the length is unknown.
	PageEighths int
}

// TitlePageInfo aggregates the <TitlePage> fields, each accumulated
// incrementally as character data arrives.
type TitlePageInfo struct {
	Title     string
	Author    string
	Contact   string
	Copyright string
	DraftDate string
	Revision  string
}

// RevisionInfo is a single entry of the document revision-color registry.
type RevisionInfo struct {
	ID           int
	Color        string
	Mark         string
	FullRevision bool
	PageColor    string
	Name         string
	Style        string
}

// ParseResult is the complete outcome of one conversion call. It is produced
// from freshly initialized parser state, consumed immediately by the
// document assembler or the revision diff and then discarded.
type ParseResult struct {
	Elements  []ParsedElement
	TitlePage TitlePageInfo
	Revisions []RevisionInfo
	PageCount int // always >= 1
	// SceneCount counts every scene-heading-triggering paragraph or marker
	// encountered, including ones later rendered with placeholder text.
	SceneCount int
}

// SceneHeadings returns the scene heading elements in document order.
func (r *ParseResult) SceneHeadings() []ParsedElement {
	var headings []ParsedElement
	for i := range r.Elements {
		if r.Elements[i].Type == ElementSceneHeading {
			headings = append(headings, r.Elements[i])
		}
	}
	return headings
}

// Document is the assembled screenplay: title-page-derived pseudo-elements,
// if any, precede the body elements.
type Document struct {
	Title     string
	Author    string
	DraftInfo string
	Elements  []ParsedElement
}
