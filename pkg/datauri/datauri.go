// Package datauri converts between "data:<mime>;base64,<payload>" strings
// and raw bytes plus a MIME type.
package datauri

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	scheme    = "data:"
	separator = ";base64,"
)

// ErrMalformed is returned for strings that are not base64 data URIs.
var ErrMalformed = errors.New("datauri: malformed data URI")

// Encode renders data as a base64 data URI. An empty mime is sniffed.
func Encode(mime string, data []byte) string {
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	return scheme + mime + separator + base64.StdEncoding.EncodeToString(data)
}

// Decode splits s into its payload bytes and MIME type. Whitespace inside
// the payload and missing padding are tolerated. When the URI declares no
// MIME type it is sniffed from the payload.
func Decode(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, scheme) {
		return nil, "", ErrMalformed
	}

	header, payload, ok := strings.Cut(s[len(scheme):], separator)
	if !ok {
		return nil, "", ErrMalformed
	}

	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, "", ErrMalformed
		}
	}

	// Parameters such as ";charset=utf-8" stay part of the MIME type.
	mime := strings.TrimSpace(header)
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	return data, mime, nil
}

// Extension returns the file extension for mime, including the dot.
func Extension(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	if m := mimetype.Lookup(strings.TrimSpace(base)); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	return ".bin"
}
