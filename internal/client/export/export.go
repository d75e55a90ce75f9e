// Package export bundles the content of every mode into a single ZIP
// download and optionally publishes it to object storage.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cynit/hub/internal/archive"
	"github.com/cynit/hub/internal/filex"
	"github.com/cynit/hub/internal/modes"
	"github.com/cynit/hub/internal/shared"
)

// Result is one built export: the suggested download name and the archive
// bytes (MIME type application/zip).
type Result struct {
	Filename string
	Data     []byte
}

// ContentFunc returns the current content for a mode.
type ContentFunc func(mode modes.Mode) string

type Exporter struct {
	prefix string
	now    func() time.Time
}

// NewExporter returns an exporter naming its archives "<prefix>_<ts>.zip".
func NewExporter(prefix string) *Exporter {
	return &Exporter{prefix: prefix, now: time.Now}
}

// Export captures every registered mode's content in order and assembles the
// archive. Modes with empty content are skipped; entry names follow the
// mode-to-extension table.
func (e *Exporter) Export(registry *modes.Registry, content ContentFunc) Result {
	var entries []archive.Entry
	for _, d := range registry.All() {
		text := content(d.Name)
		if text == "" {
			continue
		}
		entries = append(entries, archive.TextEntry(modes.SnapshotFilename(d.Name), text))
	}

	name := fmt.Sprintf("%s_%s.zip", e.prefix, shared.TimestampToken(e.now()))
	return Result{Filename: name, Data: archive.Build(entries)}
}

// WriteFile stores the archive under dir and returns the full path.
func (e *Exporter) WriteFile(dir string, r Result) (string, error) {
	if _, err := filex.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.Filename)
	if err := filex.WriteFileAtomic(path, r.Data, 0o640); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
