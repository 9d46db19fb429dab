package fdx

import (
	"reflect"
	"testing"
)

func headingsResult(texts ...string) *ParseResult {
	r := &ParseResult{PageCount: 1}
	for i, text := range texts {
		r.Elements = append(r.Elements, ParsedElement{
			ID:   "scene-" + text,
			Type: ElementSceneHeading,
			Text: text,
		})
		r.SceneCount = i + 1
	}
	return r
}

func TestCompareAddedRemoved(t *testing.T) {
	original := headingsResult("INT. OFFICE - DAY", "EXT. YARD - DAY")
	revised := headingsResult("INT. OFFICE - DAY", "INT. BASEMENT - NIGHT")

	cs := Compare(original, revised)
	if cs.Added() != 1 || cs.Removed() != 1 {
		t.Fatalf("expected 1 added / 1 removed, got %d / %d", cs.Added(), cs.Removed())
	}
	if !reflect.DeepEqual(cs.AddedHeadings, []string{"INT. BASEMENT - NIGHT"}) {
		t.Fatalf("unexpected added list: %v", cs.AddedHeadings)
	}
	if !reflect.DeepEqual(cs.RemovedHeadings, []string{"EXT. YARD - DAY"}) {
		t.Fatalf("unexpected removed list: %v", cs.RemovedHeadings)
	}
}

func TestCompareHeadingsCaseNormalized(t *testing.T) {
	original := headingsResult("Int. Office - Day")
	revised := headingsResult("INT. OFFICE - DAY")

	cs := Compare(original, revised)
	if cs.Added() != 0 || cs.Removed() != 0 {
		t.Fatalf("case-differing headings must match, got %+v", cs)
	}
}

func TestCompareModifiedByRevisionColor(t *testing.T) {
	original := headingsResult("INT. OFFICE - DAY")
	revised := &ParseResult{
		PageCount: 1,
		Elements: []ParsedElement{
			{ID: "a", Type: ElementSceneHeading, Text: "INT. OFFICE - DAY", RevisionColor: "Blue"},
			{ID: "b", Type: ElementAction, Text: "He sits.", RevisionColor: "White"},
			{ID: "c", Type: ElementDialogue, Text: "Hello.", RevisionColor: "pink"},
			{ID: "d", Type: ElementAction, Text: "Unmarked."},
		},
	}

	cs := Compare(original, revised)
	// white and unset colors do not count
	if cs.Modified() != 2 {
		t.Fatalf("expected 2 modified, got %d", cs.Modified())
	}
}

func TestCompareDocumentsTextIdentity(t *testing.T) {
	original := &Document{Elements: []ParsedElement{
		{ID: "1", Type: ElementSceneHeading, Text: "INT. OFFICE - DAY"},
		{ID: "2", Type: ElementAction, Text: "He sits."},
		{ID: "3", Type: ElementDialogue, Text: "Hello."},
	}}
	revised := &Document{Elements: []ParsedElement{
		{ID: "1", Type: ElementSceneHeading, Text: "INT. OFFICE - DAY"},
		{ID: "2", Type: ElementAction, Text: "He stands."},
		{ID: "4", Type: ElementSceneHeading, Text: "EXT. STREET - NIGHT", RevisionColor: "Blue"},
	}}

	cs := CompareDocuments(original, revised)
	if cs.Modified() != 1 {
		t.Fatalf("only the identity-matched changed element counts, got %d", cs.Modified())
	}
	if cs.Added() != 1 || cs.Removed() != 0 {
		t.Fatalf("unexpected added/removed: %d / %d", cs.Added(), cs.Removed())
	}
}

func TestCompareListsNaturallySorted(t *testing.T) {
	original := headingsResult()
	revised := headingsResult("SCENE 10", "SCENE 2", "SCENE 1")

	cs := Compare(original, revised)
	if !reflect.DeepEqual(cs.AddedHeadings, []string{"SCENE 1", "SCENE 2", "SCENE 10"}) {
		t.Fatalf("added list not naturally sorted: %v", cs.AddedHeadings)
	}
}

func TestCompareEndToEnd(t *testing.T) {
	original := mustConvert(t, `<FinalDraft><Content>
		<Paragraph Type="Scene Heading"><Text>INT. OFFICE - DAY</Text></Paragraph>
		<Paragraph Type="Scene Heading"><Text>EXT. YARD - DAY</Text></Paragraph>
	</Content></FinalDraft>`)
	revised := mustConvert(t, `<FinalDraft><Content>
		<Paragraph Type="Scene Heading"><Text>INT. OFFICE - DAY</Text></Paragraph>
		<Paragraph Type="Scene Heading"><Text RevisionColor="Blue">INT. VAULT - DAY</Text></Paragraph>
	</Content></FinalDraft>`)

	cs := Compare(original, revised)
	if cs.Added() != 1 || cs.Removed() != 1 || cs.Modified() != 1 {
		t.Fatalf("expected 1/1/1, got %d/%d/%d", cs.Added(), cs.Modified(), cs.Removed())
	}
}
