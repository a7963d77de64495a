package dictionary

import (
	"strings"
)

// Command is one of ListCommand, GetCommand, PutCommand or DeleteCommand.
type Command interface {
	command()
}

// ListCommand lists the display terms whose term key starts with Prefix.
// An empty Prefix matches every entry.
type ListCommand struct {
	Prefix string
}

// GetCommand looks up a single term.
type GetCommand struct {
	Term        string
	DisplayTerm string
}

// PutCommand defines or overwrites a term.
type PutCommand struct {
	Term        string
	DisplayTerm string
	Definition  string
}

// DeleteCommand removes a term.
type DeleteCommand struct {
	Term        string
	DisplayTerm string
}

func (ListCommand) command()   {}
func (GetCommand) command()    {}
func (PutCommand) command()    {}
func (DeleteCommand) command() {}

// NewListCommand returns a ListCommand with a lower-cased prefix.
func NewListCommand(prefix string) ListCommand {
	return ListCommand{Prefix: strings.ToLower(prefix)}
}

// NormalizeTerm converts a user supplied word into its term key.
func NormalizeTerm(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// ParseCommand converts the text of a request into a Command.
// A nil text lists every term.
//
//	"word"            -> GetCommand
//	"word=definition" -> PutCommand
//	"word=" or "word= " -> DeleteCommand
func ParseCommand(text *string) Command {
	if text == nil {
		return ListCommand{}
	}

	left, right, hasDefinition := strings.Cut(*text, "=")
	word := strings.TrimSpace(left)
	term := NormalizeTerm(word)
	if !hasDefinition {
		return GetCommand{Term: term, DisplayTerm: word}
	}

	definition := strings.TrimSpace(right)
	if definition == "" {
		return DeleteCommand{Term: term, DisplayTerm: word}
	}
	return PutCommand{Term: term, DisplayTerm: word, Definition: definition}
}
