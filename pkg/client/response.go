package client

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 1 << 20

// bodyDecoder lets a target take over decoding of the raw response body.
type bodyDecoder interface {
	decodeBody(data []byte) error
}

// decode unmarshals a success body into out, unwrapping a {"data": ...}
// envelope when the API sends one.
func decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if d, ok := out.(bodyDecoder); ok {
		return d.decodeBody(data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(unwrapEnvelope(data), out)
}

func unwrapEnvelope(data []byte) []byte {
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return data
	}
	if d := res.Get("data"); d.IsObject() || d.IsArray() {
		return []byte(d.Raw)
	}
	return data
}

// errorMessages pulls the human-readable message(s) out of an error body.
// The API answers with {"message": "..."} or, for validation failures,
// {"message": ["field must ...", ...]}.
func errorMessages(data []byte) []string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if !gjson.ValidBytes(trimmed) {
		return []string{truncate(string(trimmed), 200)}
	}
	res := gjson.ParseBytes(trimmed)
	for _, key := range []string{"message", "error.message", "error", "errors"} {
		v := res.Get(key)
		switch {
		case v.IsArray():
			var msgs []string
			v.ForEach(func(_, item gjson.Result) bool {
				if item.IsObject() {
					item = item.Get("message")
				}
				if s := strings.TrimSpace(item.String()); s != "" {
					msgs = append(msgs, s)
				}
				return true
			})
			if len(msgs) > 0 {
				return msgs
			}
		case v.Type == gjson.String && v.Str != "":
			return []string{v.Str}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
