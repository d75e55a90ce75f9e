package editor

import (
	"github.com/cynit/hub/internal/frontmatter"
	"github.com/cynit/hub/internal/modes"
)

// Markup edits markdown documents that may carry a YAML frontmatter block.
// Content is stored verbatim; Meta and Body give the split view.
type Markup struct {
	buffer
}

func NewMarkup() *Markup { return &Markup{} }

func (m *Markup) Kind() modes.EditorKind { return modes.KindMarkup }

func (m *Markup) SetContent(content string) { m.store(content) }

// Meta returns the parsed frontmatter of the current content.
func (m *Markup) Meta() map[string]any {
	meta, _ := frontmatter.Split(m.Content())
	return meta
}

// Body returns the current content without its frontmatter block.
func (m *Markup) Body() string {
	_, body := frontmatter.Split(m.Content())
	return body
}
