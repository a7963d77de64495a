package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefinitionResponse(t *testing.T) {
	got := NewDefinitionResponse("Apple", "Was saved as: a round fruit")

	assert.True(t, got.HasBlocks())
	assert.Empty(t, got.Text)
	assert.Equal(t, []Block{
		{Kind: BlockKindHeader, Text: "Apple"},
		{Kind: BlockKindDivider},
		{Kind: BlockKindSection, Text: "Was saved as: a round fruit"},
	}, got.Blocks)
	assert.Equal(t, "Was saved as: a round fruit", got.Body())
}

func TestNewTextResponse(t *testing.T) {
	got := NewTextResponse("Apple has been deleted")

	assert.False(t, got.HasBlocks())
	assert.Equal(t, "Apple has been deleted", got.Body())
}
