package gedcom

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// CharsetProvider resolves a character-set name declared in the file header
// to a decoder. Returning ok=false keeps the already-selected fallback; the
// engine must tolerate names it has never heard of (ANSEL being the usual
// suspect, which x/text does not carry).
type CharsetProvider interface {
	Decoder(name string) (enc encoding.Encoding, ok bool)
}

// StdCharsets is the default provider, backed by golang.org/x/text.
type StdCharsets struct{}

var _ CharsetProvider = StdCharsets{}

// Decoder maps the character-set names seen in the wild onto x/text
// encodings. Names are matched case-insensitively.
func (StdCharsets) Decoder(name string) (encoding.Encoding, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTF-8", "UTF8":
		return unicode.UTF8, true
	case "UNICODE", "UTF-16", "UTF16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), true
	case "ASCII", "ANSI", "WINDOWS-1252", "CP1252", "IBM WINDOWS":
		// ASCII files from legacy producers routinely contain 1252
		// bytes, so decode the superset.
		return charmap.Windows1252, true
	case "LATIN1", "ISO-8859-1", "ISO8859-1":
		return charmap.ISO8859_1, true
	case "IBMPC", "IBM DOS", "CP437":
		return charmap.CodePage437, true
	case "MSDOS", "CP850":
		return charmap.CodePage850, true
	case "MACINTOSH", "MAC", "APPLE":
		return charmap.Macintosh, true
	}
	return nil, false
}

// Byte-order-mark signatures, longest first so the 32-bit marks win over
// their 16-bit prefixes.
var (
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// detectBOM inspects the first four bytes of the stream and picks a decoder.
// When no mark is present it applies the alternating-zero-byte heuristic for
// BOM-less 16-bit text before falling back to the legacy code page. The
// returned name is "" for the fallback so the header CHAR declaration can
// still override it.
func detectBOM(prefix []byte) (enc encoding.Encoding, name string) {
	switch {
	case bytes.HasPrefix(prefix, bomUTF32LE):
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), "UTF-32"
	case bytes.HasPrefix(prefix, bomUTF32BE):
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), "UTF-32"
	case bytes.HasPrefix(prefix, bomUTF8):
		return unicode.UTF8BOM, "UTF-8"
	case bytes.HasPrefix(prefix, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "UNICODE"
	case bytes.HasPrefix(prefix, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "UNICODE"
	}

	// BOM-less 16-bit text: the first line is "0 HEAD", all ASCII, so
	// every other byte of a UTF-16 stream is zero.
	if len(prefix) >= 4 {
		if prefix[0] != 0 && prefix[1] == 0 && prefix[2] != 0 && prefix[3] == 0 {
			return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "UNICODE"
		}
		if prefix[0] == 0 && prefix[1] != 0 && prefix[2] == 0 && prefix[3] != 0 {
			return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "UNICODE"
		}
	}

	// Single-byte fallback until the header declares otherwise.
	return charmap.Windows1252, ""
}
