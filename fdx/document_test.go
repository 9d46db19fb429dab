package fdx

import "testing"

func TestBuildDocument(t *testing.T) {
	result := mustConvert(t, `<FinalDraft>
	<TitlePage>
		<Content>
			<Title>The Long Night</Title>
			<WrittenBy>Jane Doe</WrittenBy>
			<Copyright>(c) 2026</Copyright>
			<DraftDate>2026-08-01</DraftDate>
			<Revision>Blue Draft</Revision>
		</Content>
	</TitlePage>
	<Content>
		<Paragraph Type="Scene Heading"><Text>INT. OFFICE - DAY</Text></Paragraph>
		<Paragraph Type="Action"><Text>He sits.</Text></Paragraph>
	</Content>
</FinalDraft>`)

	doc := BuildDocument(result)
	if doc.Title != "The Long Night" || doc.Author != "Jane Doe" {
		t.Fatalf("unexpected document metadata: %+v", doc)
	}
	if doc.DraftInfo != "2026-08-01 - Blue Draft" {
		t.Fatalf("unexpected draft info: %q", doc.DraftInfo)
	}

	// title, author, copyright pseudo-elements precede the two body elements;
	// the empty contact field produces none
	if len(doc.Elements) != 5 {
		t.Fatalf("expected 5 elements, got %d: %+v", len(doc.Elements), doc.Elements)
	}
	for i, want := range []string{"The Long Night", "Jane Doe", "(c) 2026"} {
		el := doc.Elements[i]
		if el.Type != ElementGeneral || el.Text != want {
			t.Fatalf("pseudo-element %d mismatch: %+v", i, el)
		}
		if el.ID == "" {
			t.Fatalf("pseudo-element %d missing ID", i)
		}
	}
	if doc.Elements[3].Type != ElementSceneHeading || doc.Elements[4].Type != ElementAction {
		t.Fatalf("body elements out of order: %+v", doc.Elements[3:])
	}
}

func TestBuildDocumentWithoutTitlePage(t *testing.T) {
	result := mustConvert(t, `<FinalDraft><Content>
		<Paragraph Type="Action"><Text>Bare.</Text></Paragraph>
	</Content></FinalDraft>`)

	doc := BuildDocument(result)
	if doc.Title != "" || doc.DraftInfo != "" {
		t.Fatalf("expected empty metadata, got %+v", doc)
	}
	if len(doc.Elements) != 1 || doc.Elements[0].Text != "Bare." {
		t.Fatalf("expected body elements only, got %+v", doc.Elements)
	}
}
