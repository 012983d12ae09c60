package apiclient

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// listEnvelope is the paginated shape some list endpoints answer with.
type listEnvelope[T any] struct {
	Results []T `json:"results"`
}

// DecodeList decodes a list payload that arrives either as a bare JSON array
// or wrapped in a {"results": [...]} envelope. Both shapes yield the same
// ordered slice; an absent results key yields an empty slice.
func DecodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, errors.Wrap(err, "[DecodeList] bare array")
		}
		return out, nil
	}

	var envelope listEnvelope[T]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(err, "[DecodeList] envelope")
	}
	if envelope.Results == nil {
		return []T{}, nil
	}
	return envelope.Results, nil
}

// DoList issues req through c and normalizes the list response.
func DoList[T any](ctx context.Context, c *Client, req Request) ([]T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, req, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	return DecodeList[T](raw)
}
