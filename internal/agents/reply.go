package agents

import (
	"encoding/json"

	"github.com/cloudwego/eino/schema"
)

type ReplyKind int

const (
	// ReplyText carries plain assistant text.
	ReplyText ReplyKind = iota
	// ReplyParts carries an ordered list of text fragments.
	ReplyParts
	// ReplyRaw carries an opaque response that had no extractable text.
	ReplyRaw
)

// Reply is the closed union of agent response shapes. The orchestration
// service matches on Kind instead of probing the runtime's message type.
type Reply struct {
	Kind  ReplyKind
	Text  string
	Parts []string
	Raw   any
}

// ExtractReply folds a model message into the reply union: multi-part
// content wins, then plain content, then the raw message.
func ExtractReply(msg *schema.Message) *Reply {
	if msg == nil {
		return &Reply{Kind: ReplyRaw}
	}

	if len(msg.MultiContent) > 0 {
		parts := make([]string, 0, len(msg.MultiContent))
		for _, part := range msg.MultiContent {
			if part.Type == schema.ChatMessagePartTypeText && part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
		if len(parts) > 0 {
			return &Reply{Kind: ReplyParts, Parts: parts}
		}
	}

	if msg.Content != "" {
		return &Reply{Kind: ReplyText, Text: msg.Content}
	}

	return &Reply{Kind: ReplyRaw, Raw: msg}
}

// Render flattens the reply to response text. Raw replies serialize as a
// last resort so the caller always gets something inspectable.
func (r *Reply) Render() string {
	switch r.Kind {
	case ReplyText:
		return r.Text
	case ReplyParts:
		text := ""
		for i, part := range r.Parts {
			if i > 0 {
				text += "\n"
			}
			text += part
		}
		return text
	default:
		encoded, err := json.Marshal(r.Raw)
		if err != nil || string(encoded) == "null" {
			return ""
		}
		return string(encoded)
	}
}
