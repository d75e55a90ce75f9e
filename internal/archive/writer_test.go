package archive

import (
	"archive/zip"
	"bytes"
	"hash/crc32"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, f *zip.File) []byte {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return b
}

func TestChecksumMatchesReference(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "project name", input: "CyNiT"},
		{name: "hello", input: "hello"},
		{name: "world", input: "world"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := crc32.ChecksumIEEE([]byte(tt.input))
			require.Equal(t, want, Checksum([]byte(tt.input)))
		})
	}
}

func TestBuildRoundTrip(t *testing.T) {
	entries := []Entry{
		TextEntry("content.md", "# Title\n\nSome text."),
		TextEntry("content.html", "<p>Some text.</p>"),
		TextEntry("nested/content.css", "body { margin: 0; }"),
		BinaryEntry("blob.bin", []byte{0x00, 0xff, 0x10, 0x80}),
	}

	buf := Build(entries)

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	require.NoError(t, err)
	require.Len(t, zr.File, len(entries))

	for i, e := range entries {
		f := zr.File[i]
		require.Equal(t, e.Name, f.Name)
		require.Equal(t, zip.Store, f.Method)
		require.Equal(t, uint64(e.Size()), f.UncompressedSize64)

		got := readAll(t, f)
		require.Equal(t, e.data, got)
	}
}

func TestBuildEmpty(t *testing.T) {
	buf := Build(nil)

	// EOCD record only.
	require.Len(t, buf, 22)

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	require.NoError(t, err)
	require.Empty(t, zr.File)
}

func TestBuildKnownScenario(t *testing.T) {
	buf := Build([]Entry{
		TextEntry("a.txt", "hello"),
		TextEntry("b.txt", "world"),
	})

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	a, b := zr.File[0], zr.File[1]
	require.Equal(t, "a.txt", a.Name)
	require.Equal(t, "b.txt", b.Name)
	require.EqualValues(t, 5, a.UncompressedSize64)
	require.EqualValues(t, 5, b.UncompressedSize64)
	require.Equal(t, zip.Store, a.Method)
	require.Equal(t, zip.Store, b.Method)
	require.Equal(t, crc32.ChecksumIEEE([]byte("hello")), a.CRC32)
	require.Equal(t, crc32.ChecksumIEEE([]byte("world")), b.CRC32)
	require.Equal(t, "hello", string(readAll(t, a)))
	require.Equal(t, "world", string(readAll(t, b)))
}

func TestBuildOffsetsAreRunningTotals(t *testing.T) {
	entries := []Entry{
		TextEntry("one.txt", "first payload"),
		TextEntry("two.txt", "2"),
		TextEntry("three.txt", ""),
		TextEntry("four.txt", "the fourth and longest payload of them all"),
	}

	buf := Build(entries)
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	require.NoError(t, err)

	expected := int64(0)
	for i, f := range zr.File {
		// DataOffset points past the 30-byte local header and the name.
		dataOff, err := f.DataOffset()
		require.NoError(t, err)
		localOff := dataOff - localHeaderFixedSize - int64(len(f.Name))
		require.Equal(t, expected, localOff, "entry %d", i)

		expected += localHeaderFixedSize + int64(len(entries[i].Name)) + int64(entries[i].Size())
	}
}

func TestBuildBinaryEntryHasRealChecksum(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	buf := Build([]Entry{BinaryEntry("x.bin", data)})

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	require.Equal(t, crc32.ChecksumIEEE(data), zr.File[0].CRC32)
}
