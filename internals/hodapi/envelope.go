package hodapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// RawJSON is a backend payload passed through untouched.
type RawJSON = json.RawMessage

/*
The backend is inconsistent about envelopes. A list may arrive as

	[...]
	{"<key>": [...]}
	{"data": [...]}
	{"data": {"<key>": [...]}}

and a single object as {...}, {"<key>": {...}}, {"data": {...}} or
{"data": {"<key>": {...}}}. UnwrapList and UnwrapObject accept all of them.
*/

// UnwrapList flattens any accepted list envelope. keys are the resource
// names tried in order ("assignments", "faculties", ...). An object carrying
// none of the keys and no "data" is an empty list.
func UnwrapList[T any](raw []byte, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	switch raw[0] {
	case '[':
		var out []T
		if err := sonic.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := sonic.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		for _, k := range keys {
			if inner, ok := obj[k]; ok {
				return UnwrapList[T](inner, keys...)
			}
		}
		if inner, ok := obj["data"]; ok {
			return UnwrapList[T](inner, keys...)
		}
		return []T{}, nil
	default:
		return nil, fmt.Errorf("decode list: unexpected payload %q", truncate(raw, 32))
	}
}

// UnwrapObject unwraps any accepted single-object envelope.
func UnwrapObject[T any](raw []byte, keys ...string) (T, error) {
	var zero T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return zero, nil
	}
	if raw[0] == '{' {
		var obj map[string]json.RawMessage
		if err := sonic.Unmarshal(raw, &obj); err != nil {
			return zero, fmt.Errorf("decode envelope: %w", err)
		}
		for _, k := range keys {
			if inner, ok := obj[k]; ok && isObject(inner) {
				return UnwrapObject[T](inner, keys...)
			}
		}
		if inner, ok := obj["data"]; ok && isObject(inner) {
			return UnwrapObject[T](inner, keys...)
		}
	}

	var out T
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decode object: %w", err)
	}
	return out, nil
}

func isObject(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '{'
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
