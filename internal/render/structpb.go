package render

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// Struct renders a response as {"text": ...} or {"blocks": [{"type": ..., "text": ...}]}.
func Struct(resp dictionary.Response) (*structpb.Struct, error) {
	fields := map[string]any{}
	if resp.HasBlocks() {
		blocks := make([]any, 0, len(resp.Blocks))
		for _, b := range resp.Blocks {
			block := map[string]any{"type": string(b.Kind)}
			if b.Kind != dictionary.BlockKindDivider {
				block["text"] = b.Text
			}
			blocks = append(blocks, block)
		}
		fields["blocks"] = blocks
	} else {
		fields["text"] = resp.Text
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("structpb.NewStruct() > %w", err)
	}
	return s, nil
}

// FromStruct is the inverse of Struct.
func FromStruct(s *structpb.Struct) (dictionary.Response, error) {
	fields := s.GetFields()
	blocksValue, hasBlocks := fields["blocks"]
	if !hasBlocks {
		textValue, ok := fields["text"]
		if !ok {
			return dictionary.Response{}, fmt.Errorf("response has neither text nor blocks")
		}
		if _, ok := textValue.GetKind().(*structpb.Value_StringValue); !ok {
			return dictionary.Response{}, fmt.Errorf("response text is not a string")
		}
		return dictionary.NewTextResponse(textValue.GetStringValue()), nil
	}

	list := blocksValue.GetListValue()
	if list == nil {
		return dictionary.Response{}, fmt.Errorf("response blocks is not a list")
	}
	var resp dictionary.Response
	for i, v := range list.GetValues() {
		block := v.GetStructValue()
		if block == nil {
			return dictionary.Response{}, fmt.Errorf("block %d is not an object", i)
		}
		resp.Blocks = append(resp.Blocks, dictionary.Block{
			Kind: dictionary.BlockKind(block.GetFields()["type"].GetStringValue()),
			Text: block.GetFields()["text"].GetStringValue(),
		})
	}
	return resp, nil
}
