package reader

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/mwantia/ossfm/data"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8    = "UTF-8"
	EncodingUTF16LE = "UTF-16LE"
	EncodingUTF16BE = "UTF-16BE"
	EncodingGB18030 = "GB18030"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw object content to UTF-8 text. A byte order mark wins, valid
// UTF-8 is taken as-is and anything else is decoded as GB18030.
func Decode(raw []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return string(raw[len(bomUTF8):]), EncodingUTF8, nil
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeWith(raw, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), EncodingUTF16LE)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeWith(raw, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), EncodingUTF16BE)
	case utf8.Valid(raw):
		return string(raw), EncodingUTF8, nil
	default:
		return decodeWith(raw, simplifiedchinese.GB18030, EncodingGB18030)
	}
}

// DecodeAs converts raw content using a named encoding such as "gbk" or "shift_jis".
func DecodeAs(raw []byte, name string) (string, string, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve encoding '%s': %w", name, data.ErrInvalid)
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}
	return decodeWith(raw, enc, canonical)
}

func decodeWith(raw []byte, enc encoding.Encoding, name string) (string, string, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode content as %s: %w", name, err)
	}
	return string(decoded), name, nil
}
