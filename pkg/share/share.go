// Package share packs an entry list into a URL query parameter and back.
package share

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/diary/pkg/entry"
)

// Param is the query parameter carrying the encoded list.
const Param = "data"

// maxDecoded bounds the inflated size of a shared list.
const maxDecoded = 32 << 20

// Encode serialises entries to JSON, deflates and base64url-encodes them.
func Encode(entries []*entry.Entry) (string, error) {
	data, err := entry.MarshalList(entries)
	if err != nil {
		return "", fmt.Errorf("share: encode: %w", err)
	}
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("share: compress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("share: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("share: compress: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode is the inverse of Encode. Malformed input yields (nil, false).
func Decode(token string) ([]*entry.Entry, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, false
	}
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxDecoded+1))
	if err != nil || len(data) > maxDecoded {
		return nil, false
	}
	list, err := entry.UnmarshalList(data, uuid.NewString)
	if err != nil {
		return nil, false
	}
	return list, true
}

// Link returns base with the encoded list set as the data parameter.
func Link(base string, entries []*entry.Entry) (string, error) {
	token, err := Encode(entries)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share: base url: %w", err)
	}
	q := u.Query()
	q.Set(Param, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromLink accepts a full share URL or a bare token.
func FromLink(link string) ([]*entry.Entry, bool) {
	link = strings.TrimSpace(link)
	if !strings.Contains(link, "?") {
		return Decode(link)
	}
	u, err := url.Parse(link)
	if err != nil {
		return nil, false
	}
	return Decode(u.Query().Get(Param))
}
