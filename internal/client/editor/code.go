package editor

import "github.com/cynit/hub/internal/modes"

// Code is the plain-text editor used for css, json, xml and raw modes.
type Code struct {
	buffer
}

func NewCode() *Code { return &Code{} }

func (c *Code) Kind() modes.EditorKind { return modes.KindCode }

func (c *Code) SetContent(content string) { c.store(content) }
