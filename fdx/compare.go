package fdx

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Revision diff between two parses of the same screenplay, surfaced to the
// user as "N added / M modified / K removed".

// ChangeSet describes the differences between an original and a revised
// parse. Heading lists are kept for display, natural-sorted so "SCENE 2"
// precedes "SCENE 10".
type ChangeSet struct {
	AddedHeadings   []string
	RemovedHeadings []string
	ModifiedCount   int
}

func (cs *ChangeSet) Added() int    { return len(cs.AddedHeadings) }
func (cs *ChangeSet) Modified() int { return cs.ModifiedCount }
func (cs *ChangeSet) Removed() int  { return len(cs.RemovedHeadings) }

// Compare diffs two raw parse results.
//
// Added and removed are computed from case-normalized scene heading text.
// Modified counts revised elements carrying a non-white revision color - an
// approximation kept for callers diffing two independent parses, which have
// no shared element identity. CompareDocuments is the canonical definition.
func Compare(original, revised *ParseResult) ChangeSet {
	cs := compareHeadings(headingSet(original.Elements), headingSet(revised.Elements))
	for i := range revised.Elements {
		color := revised.Elements[i].RevisionColor
		if color != "" && !strings.EqualFold(color, "white") {
			cs.ModifiedCount++
		}
	}
	return cs
}

// CompareDocuments diffs two assembled documents. Elements are matched by
// their stable IDs and count as modified only when their text differs
// between the two documents.
func CompareDocuments(original, revised *Document) ChangeSet {
	cs := compareHeadings(headingSet(original.Elements), headingSet(revised.Elements))

	originalText := make(map[string]string, len(original.Elements))
	for i := range original.Elements {
		originalText[original.Elements[i].ID] = original.Elements[i].Text
	}
	for i := range revised.Elements {
		text, ok := originalText[revised.Elements[i].ID]
		if ok && text != revised.Elements[i].Text {
			cs.ModifiedCount++
		}
	}
	return cs
}

func compareHeadings(original, revised map[string]struct{}) ChangeSet {
	var cs ChangeSet
	for heading := range revised {
		if _, ok := original[heading]; !ok {
			cs.AddedHeadings = append(cs.AddedHeadings, heading)
		}
	}
	for heading := range original {
		if _, ok := revised[heading]; !ok {
			cs.RemovedHeadings = append(cs.RemovedHeadings, heading)
		}
	}
	sort.Sort(natural.StringSlice(cs.AddedHeadings))
	sort.Sort(natural.StringSlice(cs.RemovedHeadings))
	return cs
}

func headingSet(elements []ParsedElement) map[string]struct{} {
	set := make(map[string]struct{})
	for i := range elements {
		if elements[i].Type == ElementSceneHeading {
			set[strings.ToUpper(elements[i].Text)] = struct{}{}
		}
	}
	return set
}
