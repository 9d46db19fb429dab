package fdx

import (
	"sort"

	"github.com/maruel/natural"

	"fdc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the parse result for manual inspection
// during debugging.
func (r *ParseResult) String() string {
	if r == nil {
		return "<nil ParseResult>"
	}
	return treeWriter{debug.NewTreeWriter()}.parseResult(r).String()
}

func (tw treeWriter) parseResult(r *ParseResult) treeWriter {
	tw.Line(0, "ParseResult pages=%d scenes=%d", r.PageCount, r.SceneCount)
	tw.titlePage(1, &r.TitlePage)
	if len(r.Revisions) > 0 {
		tw.Count(1, "Revisions", len(r.Revisions))
		for i := range r.Revisions {
			rev := &r.Revisions[i]
			tw.Line(2, "Revision[%d] color=%q mark=%q full=%t", rev.ID, rev.Color, rev.Mark, rev.FullRevision)
		}
	}
	tw.Count(1, "Elements", len(r.Elements))
	for i := range r.Elements {
		tw.element(2, &r.Elements[i])
	}
	tw.sceneIndex(1, r)
	return tw
}

func (tw treeWriter) titlePage(depth int, tp *TitlePageInfo) {
	if *tp == (TitlePageInfo{}) {
		return
	}
	tw.Line(depth, "TitlePage")
	for _, field := range []struct{ label, value string }{
		{"Title", tp.Title},
		{"Author", tp.Author},
		{"Contact", tp.Contact},
		{"Copyright", tp.Copyright},
		{"DraftDate", tp.DraftDate},
		{"Revision", tp.Revision},
	} {
		if field.value != "" {
			tw.TextBlock(depth+1, field.label, field.value)
		}
	}
}

func (tw treeWriter) element(depth int, el *ParsedElement) {
	tw.Line(depth, "%s", el.Type)
	tw.TextBlock(depth+1, "text", el.Text)
	if el.SceneNumber != "" {
		tw.Line(depth+1, "number=%q", el.SceneNumber)
	}
	if el.RevisionColor != "" || el.RevisionID != "" {
		tw.Line(depth+1, "revision color=%q id=%q", el.RevisionColor, el.RevisionID)
	}
	if el.IsOmitted {
		tw.Line(depth+1, "omitted")
	}
	if el.PageNumber != "" {
		tw.Line(depth+1, "page=%q", el.PageNumber)
	}
	if el.PageEighths > 0 {
		tw.Line(depth+1, "length=%q", FormatLength(el.PageEighths))
	}
}

// sceneIndex lists scene numbers in natural order, so "2" sorts before "10A".
func (tw treeWriter) sceneIndex(depth int, r *ParseResult) {
	var numbers []string
	for _, h := range r.SceneHeadings() {
		numbers = append(numbers, h.SceneNumber)
	}
	if len(numbers) == 0 {
		return
	}
	sort.Sort(natural.StringSlice(numbers))
	tw.Line(depth, "SceneIndex")
	for _, n := range numbers {
		tw.Line(depth+1, "scene %s", n)
	}
}
