package fdx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// FDX conversion state machine.
//
// Final Draft structural boundaries do not line up with the semantic
// boundaries we need: the final text of a scene heading can be spread across
// nested sub-elements, so a heading is finalized only when the next
// top-level paragraph begins or the document ends. The DOM is replayed as
// ordered start/characters/end events and the converter tracks paragraph
// depth, a scratch record for the current top-level element and a pending
// scene heading buffer that survives paragraph-close events.

// Convert parses a raw FDX byte buffer into a ParseResult. All state is
// local to the call, so concurrent conversions need no coordination. The
// only failure is an XML stream the tokenizer cannot read; every other
// anomaly degrades via documented fallbacks.
func Convert(data []byte, log *zap.Logger) (*ParseResult, error) {
	doc := etree.NewDocument()

	// Old FDX exporters are not always strict about declared encodings.
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
	}

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to read FDX: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}

	c := &converter{
		log:    log,
		result: &ParseResult{PageCount: 1},
	}
	c.walk(doc.Root())
	c.endDocument()
	return c.result, nil
}

// converter holds the state of a single conversion call.
type converter struct {
	log *zap.Logger

	paragraphDepth int
	scratch        *scratchElement // current top-level element, nil when none is open
	pending        *pendingScene   // deferred scene heading, nil when none is pending

	inTitlePage bool
	titleField  *string // TitlePageInfo field currently receiving text
	inRevisions bool

	result *ParseResult
}

// scratchElement accumulates the current top-level paragraph. Its identity
// fields are only ever set while paragraphDepth is 1; character data keeps
// arriving from any depth.
type scratchElement struct {
	declaredType  string
	text          strings.Builder
	sceneNumber   string
	revisionColor string
	revisionID    string
	pageNumber    string
	pageEighths   int
	omitted       bool
}

// pendingScene buffers an in-flight scene heading across paragraph-close
// events until the next top-level paragraph or end of document.
type pendingScene struct {
	number        string
	text          strings.Builder
	revisionColor string
	revisionID    string
	pageNumber    string
	pageEighths   int
	omitted       bool
}

// walk replays the subtree as ordered start/characters/end events.
func (c *converter) walk(el *etree.Element) {
	c.startElement(el)
	for _, node := range el.Child {
		switch token := node.(type) {
		case *etree.CharData:
			c.characters(token.Data)
		case *etree.Element:
			c.walk(token)
		}
	}
	c.endElement(el)
}

func (c *converter) startElement(el *etree.Element) {
	switch {
	case matchTag(el, "Paragraph"):
		c.startParagraph(el)
	case matchTag(el, "Text"):
		c.startText(el)
	case matchTag(el, "SceneProperties"):
		c.sceneProperties(el)
	case matchTag(el, "PageBreak"):
		// fallback page signal for documents without explicit page numbers
		c.result.PageCount++
	case matchTag(el, "TitlePage"):
		c.inTitlePage = true
	case matchTag(el, "Revisions"):
		c.inRevisions = true
	case matchTag(el, "Revision") && c.inRevisions:
		c.addRevision(el)
	case c.inTitlePage:
		c.startTitleField(el)
	}
}

func (c *converter) endElement(el *etree.Element) {
	switch {
	case matchTag(el, "Paragraph"):
		c.endParagraph()
	case matchTag(el, "TitlePage"):
		c.inTitlePage = false
		c.titleField = nil
	case matchTag(el, "Revisions"):
		c.inRevisions = false
	case c.inTitlePage && c.titleField != nil:
		if c.titlePageField(el) == c.titleField {
			c.titleField = nil
		}
	}
}

func (c *converter) startParagraph(el *etree.Element) {
	c.paragraphDepth++

	// Title page paragraphs are layout only, the field tags carry the data.
	if c.inTitlePage || c.paragraphDepth != 1 {
		return
	}

	// A scene heading left pending by the previous paragraph is complete now.
	if c.pending != nil {
		c.finalizePendingScene()
	}

	s := &scratchElement{
		declaredType: attrValue(el, "Type"),
		sceneNumber:  attrValue(el, "Number"),
		revisionID:   attrValue(el, "RevisionID"),
	}
	c.scratch = s

	if strings.EqualFold(s.declaredType, "Scene Heading") {
		c.openPendingScene(s.sceneNumber, s.revisionID)
	}
}

func (c *converter) endParagraph() {
	c.paragraphDepth--
	if c.inTitlePage || c.paragraphDepth != 0 {
		return
	}
	// A pending scene heading is NOT finalized here: content can legally
	// continue to arrive after this close event.
	if c.pending == nil && c.scratch != nil {
		c.flushScratch()
	}
}

func (c *converter) startText(el *etree.Element) {
	color := attrValue(el, "RevisionColor")
	if color == "" {
		return
	}
	if c.scratch != nil {
		c.scratch.revisionColor = color
	}
	if c.pending != nil && c.paragraphDepth == 1 {
		c.pending.revisionColor = color
	}
}

func (c *converter) characters(data string) {
	if c.inTitlePage {
		if c.titleField == nil {
			return
		}
		if trimmed := strings.TrimSpace(data); trimmed != "" {
			if *c.titleField != "" {
				*c.titleField += " "
			}
			*c.titleField += trimmed
		}
		return
	}

	if c.scratch != nil {
		c.scratch.text.WriteString(data)
	}
	// Text from nested sub-paragraphs is captured into the scratch record
	// but never reaches the scene heading buffer.
	if c.pending != nil && c.paragraphDepth == 1 {
		c.pending.text.WriteString(data)
	}
}

// sceneProperties handles the paragraph-type-independent scene marker.
func (c *converter) sceneProperties(el *etree.Element) {
	if c.inTitlePage {
		return
	}
	if c.pending == nil {
		c.openPendingScene(attrValue(el, "Number"), "")
	}

	if number := attrValue(el, "Number"); number != "" {
		c.pending.number = number
		if c.scratch != nil {
			c.scratch.sceneNumber = number
		}
	}
	if page := attrValue(el, "Page"); page != "" {
		c.pending.pageNumber = page
		if c.scratch != nil {
			c.scratch.pageNumber = page
		}
		if v, err := strconv.Atoi(page); err == nil {
			c.result.PageCount = max(c.result.PageCount, v)
		} else {
			c.log.Debug("Scene page is not numeric, ignoring for page count", zap.String("page", page))
		}
	}
	if eighths := NormalizeLength(attrValue(el, "Length")); eighths > 0 {
		c.pending.pageEighths = eighths
		if c.scratch != nil {
			c.scratch.pageEighths = eighths
		}
	}
	if strings.EqualFold(attrValue(el, "Omitted"), "Yes") {
		c.pending.omitted = true
		if c.scratch != nil {
			c.scratch.omitted = true
		}
	}
}

// openPendingScene starts a new deferred scene heading. Absent an explicit
// number the running scene counter is used.
func (c *converter) openPendingScene(number, revisionID string) {
	c.result.SceneCount++
	if number == "" {
		number = strconv.Itoa(c.result.SceneCount)
	}
	c.pending = &pendingScene{
		number:     number,
		revisionID: revisionID,
	}
}

// finalizePendingScene emits the buffered scene heading. Headings are never
// silently dropped: empty text gets a placeholder.
func (c *converter) finalizePendingScene() {
	p := c.pending
	c.pending = nil

	text := strings.TrimSpace(p.text.String())
	if text == "" {
		text = "SCENE " + p.number
		c.log.Debug("Scene heading without text, substituting placeholder", zap.String("number", p.number))
	}
	c.result.Elements = append(c.result.Elements, ParsedElement{
		ID:            uuid.NewString(),
		Type:          ElementSceneHeading,
		Text:          text,
		SceneNumber:   p.number,
		RevisionColor: p.revisionColor,
		RevisionID:    p.revisionID,
		IsOmitted:     p.omitted,
		PageNumber:    p.pageNumber,
		PageEighths:   p.pageEighths,
	})
}

// flushScratch emits the scratch record as a non-scene element. Elements
// whose text trims to empty are dropped.
func (c *converter) flushScratch() {
	s := c.scratch
	c.scratch = nil

	text := strings.TrimSpace(s.text.String())
	if text == "" {
		return
	}
	c.result.Elements = append(c.result.Elements, ParsedElement{
		ID:            uuid.NewString(),
		Type:          mapElementType(s.declaredType),
		Text:          text,
		RevisionColor: s.revisionColor,
		RevisionID:    s.revisionID,
		IsOmitted:     s.omitted,
		PageNumber:    s.pageNumber,
	})
}

func (c *converter) startTitleField(el *etree.Element) {
	if field := c.titlePageField(el); field != nil {
		c.titleField = field
	}
}

// titlePageField maps a title page child tag to the TitlePageInfo field it
// feeds, nil for tags we do not track.
func (c *converter) titlePageField(el *etree.Element) *string {
	tp := &c.result.TitlePage
	switch {
	case matchTag(el, "Title"):
		return &tp.Title
	case matchTag(el, "WrittenBy"), matchTag(el, "Author"):
		return &tp.Author
	case matchTag(el, "Contact"):
		return &tp.Contact
	case matchTag(el, "Copyright"):
		return &tp.Copyright
	case matchTag(el, "DraftDate"):
		return &tp.DraftDate
	case matchTag(el, "Revision"):
		return &tp.Revision
	default:
		return nil
	}
}

func (c *converter) addRevision(el *etree.Element) {
	raw := attrValue(el, "ID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		c.log.Warn("Revision entry has unparsable ID, skipping", zap.String("id", raw), zap.Error(err))
		return
	}
	c.result.Revisions = append(c.result.Revisions, RevisionInfo{
		ID:           id,
		Color:        attrValue(el, "Color"),
		Mark:         attrValue(el, "Mark"),
		FullRevision: isYes(attrValue(el, "FullRevision")),
		PageColor:    attrValue(el, "PageColor"),
		Name:         attrValue(el, "Name"),
		Style:        attrValue(el, "Style"),
	})
}

// endDocument finalizes whatever is still open once the whole byte stream
// has been consumed.
func (c *converter) endDocument() {
	if c.pending != nil {
		// The scratch record, if any, belongs to the pending heading's own
		// paragraph and must not be emitted a second time.
		c.finalizePendingScene()
		return
	}
	if c.scratch != nil {
		c.flushScratch()
	}
}

// Tag and attribute names are matched case-insensitively everywhere, via
// these two helpers only.

func matchTag(el *etree.Element, name string) bool {
	return strings.EqualFold(el.Tag, name)
}

func attrValue(el *etree.Element, key string) string {
	for _, attr := range el.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Value
		}
	}
	return ""
}

func isYes(raw string) bool {
	return strings.EqualFold(raw, "Yes") || strings.EqualFold(raw, "true")
}
