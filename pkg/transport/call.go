package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// envelope is the server's response wrapper. Bodies without a "success"
// field are treated as bare payloads.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error"`
	Message string          `json:"message"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Call sends one request through c and decodes the payload into out, which
// may be nil when the caller expects no payload.
func Call(ctx context.Context, c Client, method, path string, body, out any) error {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}

	raw := resp.Body()
	env, wrapped := parseEnvelope(raw)

	if sc := resp.StatusCode(); sc < 200 || sc > 299 || (wrapped && !*env.Success) {
		return newStatusError(method, path, sc, raw, env)
	}

	payload := raw
	if wrapped {
		payload = env.Data
	}
	if out == nil {
		return nil
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("transport: decode %s %s: %w", method, path, err)
	}
	return nil
}

func parseEnvelope(raw []byte) (envelope, bool) {
	var env envelope
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env, false
	}
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Success == nil {
		return envelope{}, false
	}
	return env, true
}

func newStatusError(method, path string, status int, raw []byte, env envelope) *StatusError {
	e := &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       append([]byte(nil), raw...),
	}
	if env.Error != nil {
		e.Code = env.Error.Code
		e.Message = env.Error.Message
	}
	if e.Message == "" {
		e.Message = env.Message
	}
	if e.Message == "" && env.Success == nil {
		// gin handlers that skip the envelope answer {"error": "..."}
		var plain struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &plain) == nil {
			e.Message = plain.Error
		}
	}
	return e
}
