package fetch

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Decode converts an HTML body to UTF-8. The encoding is taken from the
// content first and the declared header second, in this order: byte order
// mark, valid UTF-8, <meta> charset prescan, Content-Type charset, GB18030
// when it decodes without replacement characters, windows-1252.
func Decode(body []byte, contentType string) ([]byte, string, error) {
	enc, name := DetectEncoding(body, contentType)
	if enc == encoding.Nop || name == "utf-8" {
		return bytes.TrimPrefix(body, []byte("\xef\xbb\xbf")), "utf-8", nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return nil, name, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, name, nil
}

// DetectEncoding picks the encoding of body without decoding it.
func DetectEncoding(body []byte, contentType string) (encoding.Encoding, string) {
	// BOM only; an empty content type keeps the header out of this step.
	if e, name, certain := charset.DetermineEncoding(body, ""); certain {
		return e, name
	}
	if utf8.Valid(body) {
		return encoding.Nop, "utf-8"
	}
	if e, name := prescanMeta(body); e != nil {
		return e, name
	}
	if e, name := declaredCharset(contentType); e != nil {
		return e, name
	}
	if decodesCleanly(simplifiedchinese.GB18030, body) {
		return simplifiedchinese.GB18030, "gb18030"
	}
	return charmap.Windows1252, "windows-1252"
}

// prescanMeta looks for <meta charset> or an http-equiv Content-Type in the
// head of the document.
func prescanMeta(body []byte) (encoding.Encoding, string) {
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	// DetermineEncoding returns windows-1252 with certain=false both when the
	// prescan finds nothing and when a page declares windows-1252, so look
	// for a declaration before trusting that answer.
	lower := bytes.ToLower(head)
	if !bytes.Contains(lower, []byte("charset")) {
		return nil, ""
	}
	e, name, _ := charset.DetermineEncoding(head, "")
	if name == "windows-1252" && !declaresLatin1(lower) {
		return nil, ""
	}
	return e, name
}

func declaresLatin1(lower []byte) bool {
	for _, label := range []string{"windows-1252", "iso-8859-1", "latin1", "ascii", "us-ascii", "cp1252"} {
		if bytes.Contains(lower, []byte(label)) {
			return true
		}
	}
	return false
}

func declaredCharset(contentType string) (encoding.Encoding, string) {
	if strings.TrimSpace(contentType) == "" {
		return nil, ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, ""
	}
	label, ok := params["charset"]
	if !ok {
		return nil, ""
	}
	return charset.Lookup(label)
}

func decodesCleanly(enc encoding.Encoding, body []byte) bool {
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return false
	}
	return !bytes.ContainsRune(out, utf8.RuneError)
}
