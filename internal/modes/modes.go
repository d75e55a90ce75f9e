// Package modes defines the content modes known to the hub and the fixed
// mode-to-file-extension mapping used for snapshot filenames and export
// entry names.
package modes

import (
	"encoding/json"
	"fmt"
	"os"
)

// Mode is a named content type determining which editor backend and file
// extension apply.
type Mode string

const (
	Markdown Mode = "markdown"
	HTML     Mode = "html"
	CSS      Mode = "css"
	JSON     Mode = "json"
	XML      Mode = "xml"
	Raw      Mode = "raw"
)

// EditorKind selects which editor backend implementation a mode uses.
type EditorKind string

const (
	KindRichText EditorKind = "richtext"
	KindMarkup   EditorKind = "markup"
	KindCode     EditorKind = "code"
)

// Ext maps a mode to its file extension. Unknown modes fall back to "txt".
func Ext(m Mode) string {
	switch m {
	case Markdown:
		return "md"
	case HTML:
		return "html"
	case CSS:
		return "css"
	case JSON:
		return "json"
	case XML:
		return "xml"
	default:
		return "txt"
	}
}

// SnapshotFilename derives the filename under which a mode's content is
// snapshotted and exported.
func SnapshotFilename(m Mode) string {
	return "content." + Ext(m)
}

// Definition describes one configured mode.
type Definition struct {
	Name   Mode       `json:"name"`
	Label  string     `json:"label"`
	Editor EditorKind `json:"editor"`
}

// Registry holds the ordered set of configured modes.
type Registry struct {
	defs []Definition
}

// DefaultRegistry returns the built-in mode set, used when no modes config
// file is supplied.
func DefaultRegistry() *Registry {
	return &Registry{defs: []Definition{
		{Name: Markdown, Label: "Markdown", Editor: KindMarkup},
		{Name: HTML, Label: "HTML", Editor: KindRichText},
		{Name: CSS, Label: "CSS", Editor: KindCode},
		{Name: JSON, Label: "JSON", Editor: KindCode},
		{Name: XML, Label: "XML", Editor: KindCode},
		{Name: Raw, Label: "Raw", Editor: KindCode},
	}}
}

type registryFile struct {
	Modes []Definition `json:"modes"`
}

// LoadRegistry reads a modes config file. A missing or malformed file is a
// startup error: the caller must treat it as fatal, there is no partial
// operation with a half-loaded mode set.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading modes config: %w", err)
	}

	var rf registryFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing modes config: %w", err)
	}
	if len(rf.Modes) == 0 {
		return nil, fmt.Errorf("modes config %s defines no modes", path)
	}

	for _, d := range rf.Modes {
		if d.Name == "" {
			return nil, fmt.Errorf("modes config %s contains a mode without a name", path)
		}
	}

	return &Registry{defs: rf.Modes}, nil
}

// All returns the mode definitions in configuration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Contains reports whether m is a configured mode.
func (r *Registry) Contains(m Mode) bool {
	for _, d := range r.defs {
		if d.Name == m {
			return true
		}
	}
	return false
}

// Lookup returns the definition for m.
func (r *Registry) Lookup(m Mode) (Definition, bool) {
	for _, d := range r.defs {
		if d.Name == m {
			return d, true
		}
	}
	return Definition{}, false
}

// First returns the first configured mode, the session's initial mode.
func (r *Registry) First() Mode {
	return r.defs[0].Name
}
