package axiom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// List is the normalized result of every platform list endpoint. The
// backend is mid-migration: newer endpoints return a paginated envelope
// {"items": [...], "total": N} while older ones still return a bare
// array. Paged makes the contract explicit so callers never inspect
// response shapes themselves; Total is only meaningful when Paged.
type List[T any] struct {
	Items []T  `json:"items"`
	Total int  `json:"total"`
	Paged bool `json:"paged"`
}

// decodeList detects which contract a list response follows and decodes
// it. This is the only place in the codebase that looks at the shape.
func decodeList[T any](data []byte) (List[T], error) {
	var list List[T]

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		list.Items = []T{}
		return list, nil
	}

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &list.Items); err != nil {
			return list, fmt.Errorf("failed to unmarshal list response: %w", err)
		}
		list.Total = len(list.Items)
		return list, nil

	case '{':
		var envelope struct {
			Items []T `json:"items"`
			Total int `json:"total"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return list, fmt.Errorf("failed to unmarshal list envelope: %w", err)
		}
		list.Items = envelope.Items
		if list.Items == nil {
			list.Items = []T{}
		}
		list.Total = envelope.Total
		list.Paged = true
		return list, nil

	default:
		return list, fmt.Errorf("unexpected list response shape: %s", preview(trimmed))
	}
}

func preview(data []byte) string {
	const max = 64
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

// StatusResponse is the body of mutation endpoints that return only an
// acknowledgement.
type StatusResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
