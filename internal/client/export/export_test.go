package export

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/cynit/hub/internal/modes"
	"github.com/stretchr/testify/require"
)

func contentFor(m map[modes.Mode]string) ContentFunc {
	return func(mode modes.Mode) string { return m[mode] }
}

func TestExportBundlesNonEmptyModes(t *testing.T) {
	e := NewExporter("i18n_export")
	e.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	r := e.Export(modes.DefaultRegistry(), contentFor(map[modes.Mode]string{
		modes.Markdown: "# doc",
		modes.CSS:      "body{}",
		// html, json, xml, raw left empty: skipped
	}))

	require.Equal(t, "i18n_export_2026-08-30T12-00-00Z.zip", r.Filename)

	zr, err := zip.NewReader(bytes.NewReader(r.Data), int64(len(r.Data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	require.Equal(t, "content.md", zr.File[0].Name)
	require.Equal(t, "content.css", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "# doc", string(body))
}

func TestExportAllEmptyStillValid(t *testing.T) {
	e := NewExporter("i18n_export")
	r := e.Export(modes.DefaultRegistry(), contentFor(nil))

	zr, err := zip.NewReader(bytes.NewReader(r.Data), int64(len(r.Data)))
	require.NoError(t, err)
	require.Empty(t, zr.File)
}

func TestExportFilenameIsFilesystemSafe(t *testing.T) {
	e := NewExporter("i18n_export")
	r := e.Export(modes.DefaultRegistry(), contentFor(nil))

	require.NotRegexp(t, regexp.MustCompile(`[:.]`), r.Filename[:len(r.Filename)-len(".zip")])
	require.Regexp(t, regexp.MustCompile(`^i18n_export_.+\.zip$`), r.Filename)
}

func TestWriteFile(t *testing.T) {
	e := NewExporter("i18n_export")
	r := e.Export(modes.DefaultRegistry(), contentFor(map[modes.Mode]string{modes.Raw: "plain"}))

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := e.WriteFile(dir, r)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, r.Data, data)
}
