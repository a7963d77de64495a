// Package render converts dictionary responses into the formats of each delivery channel.
package render

import (
	"github.com/slack-go/slack"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// Slack renders a response as an ephemeral Block Kit message for a slash command reply.
func Slack(resp dictionary.Response) slack.Msg {
	msg := slack.Msg{ResponseType: slack.ResponseTypeEphemeral}
	if !resp.HasBlocks() {
		msg.Text = resp.Text
		return msg
	}

	blocks := make([]slack.Block, 0, len(resp.Blocks))
	for _, b := range resp.Blocks {
		switch b.Kind {
		case dictionary.BlockKindHeader:
			blocks = append(blocks, slack.NewHeaderBlock(plainTextObject(b.Text)))
		case dictionary.BlockKindDivider:
			blocks = append(blocks, slack.NewDividerBlock())
		default:
			blocks = append(blocks, slack.NewSectionBlock(plainTextObject(b.Text), nil, nil))
		}
	}
	msg.Blocks = slack.Blocks{BlockSet: blocks}
	return msg
}

func plainTextObject(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}
