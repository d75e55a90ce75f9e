// Package editor provides the pluggable editor backends behind a content
// mode: rich text, markup and plain code. All variants expose the same
// capability set (get content / set content / change notification) so the
// session controller stays generic over them.
package editor

import (
	"sync"

	"github.com/cynit/hub/internal/modes"
)

// Backend is one editor implementation. Change callbacks fire synchronously
// on every SetContent with the stored (possibly normalized) content.
type Backend interface {
	Kind() modes.EditorKind
	Content() string
	SetContent(content string)
	OnChange(fn func(content string))
}

// buffer is the shared in-memory state of all backends.
type buffer struct {
	mu       sync.Mutex
	content  string
	onChange []func(string)
}

func (b *buffer) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

func (b *buffer) OnChange(fn func(string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = append(b.onChange, fn)
}

func (b *buffer) store(content string) {
	b.mu.Lock()
	b.content = content
	fns := make([]func(string), len(b.onChange))
	copy(fns, b.onChange)
	b.mu.Unlock()

	for _, fn := range fns {
		fn(content)
	}
}

// New returns the backend for the given editor kind. Unknown kinds fall back
// to the plain code editor.
func New(kind modes.EditorKind) Backend {
	switch kind {
	case modes.KindRichText:
		return NewRichText()
	case modes.KindMarkup:
		return NewMarkup()
	default:
		return NewCode()
	}
}
