package editor

import (
	"github.com/cynit/hub/internal/htmlx"
	"github.com/cynit/hub/internal/modes"
)

// RichText holds HTML content. Stored content is sanitized: script tags and
// inline event handler attributes are stripped.
type RichText struct {
	buffer
}

func NewRichText() *RichText { return &RichText{} }

func (r *RichText) Kind() modes.EditorKind { return modes.KindRichText }

func (r *RichText) SetContent(content string) {
	r.store(htmlx.Sanitize(content))
}
