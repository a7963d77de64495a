package dictionary

// BlockKind is the presentation role of a Block.
type BlockKind string

const (
	BlockKindHeader  BlockKind = "header"
	BlockKindDivider BlockKind = "divider"
	BlockKindSection BlockKind = "section"
)

// Block is one element of a structured response.
// Text is empty for dividers.
type Block struct {
	Kind BlockKind
	Text string
}

// Response is either a plain text message or an ordered list of blocks, never both.
// Use NewTextResponse or NewDefinitionResponse to build one.
type Response struct {
	Text   string
	Blocks []Block
}

// NewTextResponse returns a plain text response.
func NewTextResponse(text string) Response {
	return Response{Text: text}
}

// NewDefinitionResponse returns a heading, a divider and a body section.
func NewDefinitionResponse(heading, body string) Response {
	return Response{
		Blocks: []Block{
			{Kind: BlockKindHeader, Text: heading},
			{Kind: BlockKindDivider},
			{Kind: BlockKindSection, Text: body},
		},
	}
}

// HasBlocks reports whether the response is block structured.
func (r Response) HasBlocks() bool {
	return len(r.Blocks) > 0
}

// Body returns the plain text of a text response,
// or the text of the last section block of a block response.
func (r Response) Body() string {
	if !r.HasBlocks() {
		return r.Text
	}
	for i := len(r.Blocks) - 1; i >= 0; i-- {
		if r.Blocks[i].Kind == BlockKindSection {
			return r.Blocks[i].Text
		}
	}
	return ""
}
