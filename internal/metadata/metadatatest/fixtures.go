// Package metadatatest builds small JPEG and PNG files carrying EXIF GPS
// metadata, for use in tests of packages that consume images.
package metadatatest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// order is the byte order of every TIFF stream built here.
var order = binary.BigEndian

// TIFF field types.
const (
	typeASCII    uint16 = 2
	typeLong     uint16 = 4
	typeRational uint16 = 5
)

// Tag ids.
const (
	tagMake         uint16 = 0x010f
	tagGPSInfo      uint16 = 0x8825
	tagLatitudeRef  uint16 = 0x0001
	tagLatitude     uint16 = 0x0002
	tagLongitudeRef uint16 = 0x0003
	tagLongitude    uint16 = 0x0004
)

// GPS describes the positional tags to embed. Empty refs and nil
// coordinates are left out of the GPS IFD.
type GPS struct {
	LatitudeRef  string
	Latitude     []exifcommon.Rational
	LongitudeRef string
	Longitude    []exifcommon.Rational
}

// DMS returns a whole-number degrees/minutes/seconds triple.
func DMS(degrees, minutes, seconds uint32) []exifcommon.Rational {
	return []exifcommon.Rational{
		{Numerator: degrees, Denominator: 1},
		{Numerator: minutes, Denominator: 1},
		{Numerator: seconds, Denominator: 1},
	}
}

// Portland returns 45°N 122°W, the position used across the test suites.
func Portland() GPS {
	return GPS{
		LatitudeRef:  "N",
		Latitude:     DMS(45, 0, 0),
		LongitudeRef: "W",
		Longitude:    DMS(122, 0, 0),
	}
}

// JPEG returns a 1x1 grayscale JPEG header whose EXIF block carries g.
func JPEG(g GPS) []byte {
	return jpeg(exifSegment(TIFF(g)))
}

// JPEGWithoutGPS returns a JPEG whose EXIF block has no GPS sub-IFD.
func JPEGWithoutGPS() []byte {
	return jpeg(exifSegment(tiffWithoutGPS()))
}

// JPEGWithoutExif returns a JPEG with no EXIF block at all.
func JPEGWithoutExif() []byte {
	return jpeg(nil)
}

// PNG returns a 1x1 grayscale PNG whose eXIf chunk carries g.
func PNG(g GPS) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		panic(err)
	}
	encoded := buf.Bytes()

	// Signature (8) + IHDR chunk (4 length + 4 type + 13 data + 4 CRC).
	const afterIHDR = 8 + 25

	out := make([]byte, 0, len(encoded)+64)
	out = append(out, encoded[:afterIHDR]...)
	out = append(out, pngChunk("eXIf", TIFF(g))...)
	out = append(out, encoded[afterIHDR:]...)
	return out
}

// Truncated returns bytes that look like nothing a decoder accepts.
func Truncated() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00}
}

// TIFF returns a big-endian TIFF stream with a Make tag and a GPS IFD built from g.
func TIFF(g GPS) []byte {
	var gps []entry
	if g.LatitudeRef != "" {
		gps = append(gps, asciiEntry(tagLatitudeRef, g.LatitudeRef))
	}
	if g.Latitude != nil {
		gps = append(gps, rationalEntry(tagLatitude, g.Latitude))
	}
	if g.LongitudeRef != "" {
		gps = append(gps, asciiEntry(tagLongitudeRef, g.LongitudeRef))
	}
	if g.Longitude != nil {
		gps = append(gps, rationalEntry(tagLongitude, g.Longitude))
	}

	ifd0 := []entry{
		asciiEntry(tagMake, "geotags"),
		longEntry(tagGPSInfo, 0),
	}

	// The GPS pointer is inline, so IFD0's size does not depend on its value.
	gpsOffset := uint32(8 + len(encodeIFD(ifd0, 8)))
	ifd0[1] = longEntry(tagGPSInfo, gpsOffset)

	out := tiffHeader()
	out = append(out, encodeIFD(ifd0, 8)...)
	out = append(out, encodeIFD(gps, gpsOffset)...)
	return out
}

func tiffWithoutGPS() []byte {
	out := tiffHeader()
	return append(out, encodeIFD([]entry{asciiEntry(tagMake, "geotags")}, 8)...)
}

// tiffHeader returns "MM", the magic 42 and the offset of IFD0.
func tiffHeader() []byte {
	h := make([]byte, 8)
	h[0], h[1] = 'M', 'M'
	order.PutUint16(h[2:], 42)
	order.PutUint32(h[4:], 8)
	return h
}

// entry is one IFD entry with its encoded value.
type entry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiEntry(tag uint16, s string) entry {
	data := append([]byte(s), 0)
	return entry{tag: tag, typ: typeASCII, count: uint32(len(data)), data: data}
}

func longEntry(tag uint16, v uint32) entry {
	data := make([]byte, 4)
	order.PutUint32(data, v)
	return entry{tag: tag, typ: typeLong, count: 1, data: data}
}

func rationalEntry(tag uint16, values []exifcommon.Rational) entry {
	data := make([]byte, 8*len(values))
	for i, r := range values {
		order.PutUint32(data[8*i:], r.Numerator)
		order.PutUint32(data[8*i+4:], r.Denominator)
	}
	return entry{tag: tag, typ: typeRational, count: uint32(len(values)), data: data}
}

// encodeIFD encodes entries (sorted by tag) as an IFD placed at offset,
// followed by the values that do not fit inline.
func encodeIFD(entries []entry, offset uint32) []byte {
	dataOffset := offset + 2 + uint32(12*len(entries)) + 4

	var head, tail bytes.Buffer
	_ = binary.Write(&head, order, uint16(len(entries)))

	for _, e := range entries {
		_ = binary.Write(&head, order, e.tag)
		_ = binary.Write(&head, order, e.typ)
		_ = binary.Write(&head, order, e.count)

		if len(e.data) <= 4 {
			inline := make([]byte, 4)
			copy(inline, e.data)
			head.Write(inline)
			continue
		}

		_ = binary.Write(&head, order, dataOffset+uint32(tail.Len()))
		tail.Write(e.data)
		if tail.Len()%2 == 1 {
			tail.WriteByte(0)
		}
	}

	// No next IFD.
	_ = binary.Write(&head, order, uint32(0))

	return append(head.Bytes(), tail.Bytes()...)
}

// exifSegment wraps a TIFF stream in a JPEG APP1 payload.
func exifSegment(tiff []byte) []byte {
	return append([]byte("Exif\x00\x00"), tiff...)
}

// jpeg assembles SOI, a JFIF APP0, an optional APP1, a grayscale SOF0 and EOI.
func jpeg(app1 []byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})

	jfif := []byte{'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00}
	writeSegment(&buf, 0xE0, jfif)

	if app1 != nil {
		writeSegment(&buf, 0xE1, app1)
	}

	// 8-bit precision, 1x1, one component with 1x1 sampling and table 0.
	sof := []byte{0x08, 0x00, 0x01, 0x00, 0x01, 0x01, 0x01, 0x11, 0x00}
	writeSegment(&buf, 0xC0, sof)

	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

func writeSegment(buf *bytes.Buffer, marker byte, payload []byte) {
	buf.Write([]byte{0xFF, marker})
	_ = binary.Write(buf, binary.BigEndian, uint16(len(payload)+2))
	buf.Write(payload)
}

// pngChunk encodes a PNG chunk with its CRC.
func pngChunk(typ string, data []byte) []byte {
	out := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(out[0:], uint32(len(data)))
	copy(out[4:], typ)
	out = append(out, data...)

	crc := crc32.NewIEEE()
	_, _ = crc.Write(out[4:])
	return binary.BigEndian.AppendUint32(out, crc.Sum32())
}
