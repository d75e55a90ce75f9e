// Package archive builds uncompressed (store-method) ZIP archives in memory.
//
// The writer emits the three structural sections of a ZIP file by hand:
// one local file header per entry followed by the raw payload, a central
// directory mirroring the local headers, and a single end-of-central-directory
// record. Payloads are stored verbatim (method 0), so any compliant reader
// returns byte-identical content.
package archive

import "bytes"

const (
	localHeaderSignature   = 0x04034b50
	centralDirSignature    = 0x02014b50
	endOfCentralSignature  = 0x06054b50
	zipVersion             = 20
	localHeaderFixedSize   = 30
	centralRecordFixedSize = 46
)

// Entry is one named payload inside the produced archive. Use TextEntry or
// BinaryEntry to construct one; exactly one payload form is set per entry.
// Names must be non-empty and unique within a single archive; the writer does
// not enforce this (duplicate names yield two conflicting directory records).
type Entry struct {
	Name string
	data []byte
}

// TextEntry returns an entry whose payload is the UTF-8 encoding of text.
func TextEntry(name, text string) Entry {
	return Entry{Name: name, data: []byte(text)}
}

// BinaryEntry returns an entry carrying raw bytes unchanged.
func BinaryEntry(name string, data []byte) Entry {
	return Entry{Name: name, data: data}
}

// Size returns the payload length in bytes.
func (e Entry) Size() int { return len(e.data) }

// crcTable is the classic 256-entry lookup table for the reflected CRC-32
// with polynomial 0xEDB88320 (IEEE 802.3).
var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var t [256]uint32
	for n := 0; n < 256; n++ {
		c := uint32(n)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = 0xEDB88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[n] = c
	}
	return t
}

// Checksum computes the standard CRC-32 of data.
func Checksum(data []byte) uint32 {
	c := ^uint32(0)
	for _, b := range data {
		c = crcTable[(c^uint32(b))&0xff] ^ (c >> 8)
	}
	return ^c
}

func putU16(buf *bytes.Buffer, v uint16) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
}

func putU32(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}

// Build serializes entries into a single valid store-mode ZIP byte buffer.
//
// Entries appear in the archive in the given order; each entry's local header
// offset equals the running total of all preceding local-header+payload sizes.
// An empty input produces a minimal valid archive consisting of just the
// end-of-central-directory record with zero counts. Build is a pure function
// of its input and cannot fail.
func Build(entries []Entry) []byte {
	var out bytes.Buffer

	offsets := make([]uint32, len(entries))
	crcs := make([]uint32, len(entries))

	for i, e := range entries {
		offsets[i] = uint32(out.Len())
		crcs[i] = Checksum(e.data)
		name := []byte(e.Name)

		putU32(&out, localHeaderSignature)
		putU16(&out, zipVersion) // version needed to extract
		putU16(&out, 0)          // general purpose flags
		putU16(&out, 0)          // method: store
		putU16(&out, 0)          // mod time
		putU16(&out, 0)          // mod date
		putU32(&out, crcs[i])
		putU32(&out, uint32(len(e.data))) // compressed size
		putU32(&out, uint32(len(e.data))) // uncompressed size
		putU16(&out, uint16(len(name)))
		putU16(&out, 0) // extra field length
		out.Write(name)
		out.Write(e.data)
	}

	centralStart := uint32(out.Len())

	for i, e := range entries {
		name := []byte(e.Name)

		putU32(&out, centralDirSignature)
		putU16(&out, zipVersion) // version made by
		putU16(&out, zipVersion) // version needed to extract
		putU16(&out, 0)          // general purpose flags
		putU16(&out, 0)          // method: store
		putU16(&out, 0)          // mod time
		putU16(&out, 0)          // mod date
		putU32(&out, crcs[i])
		putU32(&out, uint32(len(e.data)))
		putU32(&out, uint32(len(e.data)))
		putU16(&out, uint16(len(name)))
		putU16(&out, 0) // extra field length
		putU16(&out, 0) // comment length
		putU16(&out, 0) // disk number start
		putU16(&out, 0) // internal attributes
		putU32(&out, 0) // external attributes
		putU32(&out, offsets[i])
		out.Write(name)
	}

	centralSize := uint32(out.Len()) - centralStart

	putU32(&out, endOfCentralSignature)
	putU16(&out, 0) // disk number
	putU16(&out, 0) // disk with central directory
	putU16(&out, uint16(len(entries)))
	putU16(&out, uint16(len(entries)))
	putU32(&out, centralSize)
	putU32(&out, centralStart)
	putU16(&out, 0) // comment length

	return out.Bytes()
}
