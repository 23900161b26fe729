// Package encoding converts text between UTF-8 and the single-byte code
// pages legacy terminals draw with, and detects the encoding of text files
// handed to the dialogs.
package encoding

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding represents a character encoding with metadata
type Encoding struct {
	Name        string            // Display name
	ID          string            // Internal identifier
	Codec       encoding.Encoding // x/text codec (nil for UTF-8)
	Aliases     []string          // Alternative names, including chardet's
	SingleByte  bool              // One byte per cell, usable as a terminal code page
	Supported   bool              // Whether we can decode it
	Description string
}

// DetectionResult holds the result of encoding detection
type DetectionResult struct {
	Encoding   *Encoding
	Confidence int  // 0-100
	HasBOM     bool // Whether a BOM was detected
}

// Replacement is written for runes a code page cannot represent
const Replacement = '?'

// SupportedEncodings is the list of encodings we decode and encode
var SupportedEncodings = []*Encoding{
	{
		Name:        "UTF-8",
		ID:          "utf-8",
		Aliases:     []string{"UTF-8", "utf8"},
		Supported:   true,
		Description: "Unicode (default)",
	},
	{
		Name:        "UTF-8 BOM",
		ID:          "utf-8-bom",
		Supported:   true,
		Description: "Unicode with byte order mark",
	},
	{
		Name:        "UTF-16 LE",
		ID:          "utf-16-le",
		Codec:       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		Aliases:     []string{"UTF-16LE"},
		Supported:   true,
		Description: "Unicode 16-bit (Little Endian)",
	},
	{
		Name:        "UTF-16 BE",
		ID:          "utf-16-be",
		Codec:       unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
		Aliases:     []string{"UTF-16BE"},
		Supported:   true,
		Description: "Unicode 16-bit (Big Endian)",
	},
	{
		Name:        "CP437",
		ID:          "cp437",
		Codec:       charmap.CodePage437,
		Aliases:     []string{"IBM437", "437", "OEM-US"},
		SingleByte:  true,
		Supported:   true,
		Description: "IBM PC / DOS line drawing",
	},
	{
		Name:        "CP850",
		ID:          "cp850",
		Codec:       charmap.CodePage850,
		Aliases:     []string{"IBM850", "850"},
		SingleByte:  true,
		Supported:   true,
		Description: "DOS Latin-1",
	},
	{
		Name:        "ISO-8859-1",
		ID:          "iso-8859-1",
		Codec:       charmap.ISO8859_1,
		Aliases:     []string{"ISO-8859-1", "latin1", "Latin-1"},
		SingleByte:  true,
		Supported:   true,
		Description: "Western European (Latin-1)",
	},
	{
		Name:        "Windows-1252",
		ID:          "windows-1252",
		Codec:       charmap.Windows1252,
		Aliases:     []string{"windows-1252", "CP1252"},
		SingleByte:  true,
		Supported:   true,
		Description: "Western European (Windows)",
	},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var utf16LEBOM = []byte{0xFF, 0xFE}
var utf16BEBOM = []byte{0xFE, 0xFF}

// GetEncodingByID returns an encoding by its ID
func GetEncodingByID(id string) *Encoding {
	id = strings.ToLower(id)
	for _, enc := range SupportedEncodings {
		if enc.ID == id {
			return enc
		}
	}
	return nil
}

// GetEncodingByName returns an encoding by name, ID or alias
func GetEncodingByName(name string) *Encoding {
	for _, enc := range SupportedEncodings {
		if strings.EqualFold(enc.Name, name) || strings.EqualFold(enc.ID, name) {
			return enc
		}
		for _, alias := range enc.Aliases {
			if strings.EqualFold(alias, name) {
				return enc
			}
		}
	}
	return nil
}

// Detect guesses the encoding of data: BOMs first, then UTF-8 validity,
// then chardet.
func Detect(data []byte) *DetectionResult {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return &DetectionResult{Encoding: GetEncodingByID("utf-8-bom"), Confidence: 100, HasBOM: true}
	case bytes.HasPrefix(data, utf16BEBOM):
		return &DetectionResult{Encoding: GetEncodingByID("utf-16-be"), Confidence: 100, HasBOM: true}
	case bytes.HasPrefix(data, utf16LEBOM):
		return &DetectionResult{Encoding: GetEncodingByID("utf-16-le"), Confidence: 100, HasBOM: true}
	case utf8.Valid(data):
		return &DetectionResult{Encoding: GetEncodingByID("utf-8"), Confidence: 100}
	}

	detected, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || detected == nil {
		// Latin-1 decodes every byte sequence
		return &DetectionResult{Encoding: GetEncodingByID("iso-8859-1"), Confidence: 50}
	}

	if enc := GetEncodingByName(detected.Charset); enc != nil {
		return &DetectionResult{Encoding: enc, Confidence: detected.Confidence}
	}
	return &DetectionResult{
		Encoding: &Encoding{
			Name: detected.Charset,
			ID:   strings.ToLower(detected.Charset),
		},
		Confidence: detected.Confidence,
	}
}

// DecodeToUTF8 decodes data from the given encoding to UTF-8
func DecodeToUTF8(data []byte, enc *Encoding) ([]byte, error) {
	if enc == nil || enc.Codec == nil {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	switch enc.ID {
	case "utf-16-le":
		data = bytes.TrimPrefix(data, utf16LEBOM)
	case "utf-16-be":
		data = bytes.TrimPrefix(data, utf16BEBOM)
	}

	reader := transform.NewReader(bytes.NewReader(data), enc.Codec.NewDecoder())
	return io.ReadAll(reader)
}

// DecodeText detects the encoding of data and returns it as a UTF-8 string.
// Undetectable or unsupported encodings fall back to Latin-1.
func DecodeText(data []byte) (string, *Encoding, error) {
	enc := Detect(data).Encoding
	if !enc.Supported {
		enc = GetEncodingByID("iso-8859-1")
	}
	out, err := DecodeToUTF8(data, enc)
	if err != nil {
		return "", enc, err
	}
	return string(out), enc, nil
}

// DrawnText returns s as a surface draws it: unchanged in UTF-8, otherwise
// with every rune the code page lacks replaced by Replacement
func DrawnText(s string, utf8 bool) string {
	if utf8 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(DecodeLegacy(EncodeRune(r)))
	}
	return b.String()
}

// EncodeForTerminal converts s to the bytes a surface expects. Runes the
// code page lacks become Replacement.
func EncodeForTerminal(s string, utf8 bool) []byte {
	if utf8 {
		return []byte(s)
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, EncodeRune(r))
	}
	return out
}

// EncodeRune returns the CP437 byte for r
func EncodeRune(r rune) byte {
	if b, ok := charmap.CodePage437.EncodeRune(r); ok {
		return b
	}
	return Replacement
}

// DecodeLegacy returns the rune a CP437 byte draws
func DecodeLegacy(b byte) rune {
	return charmap.CodePage437.DecodeByte(b)
}
