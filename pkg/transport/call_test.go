package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type fakeResp struct {
	status int
	body   string
}

func (r fakeResp) StatusCode() int { return r.status }
func (r fakeResp) Body() []byte    { return []byte(r.body) }

type fakeClient struct {
	resp   Response
	err    error
	calls  int
	method string
	path   string
	body   any
	closed int
}

func (f *fakeClient) Do(_ context.Context, method, path string, body any) (Response, error) {
	f.calls++
	f.method, f.path, f.body = method, path, body
	return f.resp, f.err
}

func (f *fakeClient) Close() { f.closed++ }

func TestCall_DecodesBarePayload(t *testing.T) {
	fc := &fakeClient{resp: fakeResp{200, `[{"id":1},{"id":2}]`}}

	var out []struct{ ID int }
	if err := Call(context.Background(), fc, http.MethodGet, "/dramas/1/poses", nil, &out); err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if len(out) != 2 || out[1].ID != 2 {
		t.Fatalf("bad decode: %+v", out)
	}
	if fc.method != http.MethodGet || fc.path != "/dramas/1/poses" {
		t.Fatalf("sent %s %s", fc.method, fc.path)
	}
}

func TestCall_UnwrapsEnvelope(t *testing.T) {
	fc := &fakeClient{resp: fakeResp{200, `{"success":true,"data":{"task_id":"t-1"},"timestamp":"now"}`}}

	var out struct {
		TaskID string `json:"task_id"`
	}
	if err := Call(context.Background(), fc, http.MethodPost, "/poses/1/generate", nil, &out); err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if out.TaskID != "t-1" {
		t.Fatalf("task_id=%q", out.TaskID)
	}
}

func TestCall_EmptyAndNullPayloads(t *testing.T) {
	for _, body := range []string{``, `null`, `{"success":true,"data":null}`, `{"success":true}`} {
		fc := &fakeClient{resp: fakeResp{200, body}}
		out := map[string]any{"keep": 1}
		if err := Call(context.Background(), fc, http.MethodPut, "/poses/1", nil, &out); err != nil {
			t.Fatalf("body %q: %v", body, err)
		}
		if out["keep"] != 1 {
			t.Fatalf("body %q: out overwritten: %v", body, out)
		}
	}
}

func TestCall_NilOutSkipsDecode(t *testing.T) {
	fc := &fakeClient{resp: fakeResp{200, `not json at all`}}
	if err := Call(context.Background(), fc, http.MethodDelete, "/poses/1", nil, nil); err != nil {
		t.Fatalf("Call error: %v", err)
	}
}

func TestCall_StatusErrors(t *testing.T) {
	cases := []struct {
		name     string
		resp     fakeResp
		wantCode string
		wantMsg  string
		status   int
	}{
		{"envelope", fakeResp{404, `{"success":false,"error":{"code":"NOT_FOUND","message":"pose not found"}}`}, "NOT_FOUND", "pose not found", 404},
		{"gin plain", fakeResp{400, `{"error":"Invalid ID"}`}, "", "Invalid ID", 400},
		{"text", fakeResp{502, `Bad Gateway`}, "", "", 502},
		{"2xx failure envelope", fakeResp{200, `{"success":false,"message":"quota exceeded"}`}, "", "quota exceeded", 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc := &fakeClient{resp: tc.resp}
			err := Call(context.Background(), fc, http.MethodGet, "/poses/9", nil, nil)

			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("want *StatusError, got %T %v", err, err)
			}
			if se.StatusCode != tc.status || se.Code != tc.wantCode || se.Message != tc.wantMsg {
				t.Fatalf("got %+v", se)
			}
			if se.Method != http.MethodGet || se.Path != "/poses/9" || string(se.Body) != tc.resp.body {
				t.Fatalf("request context lost: %+v", se)
			}
			if !strings.Contains(se.Error(), "/poses/9") {
				t.Fatalf("Error() = %q", se.Error())
			}
		})
	}
}

func TestStatusError_NotFound(t *testing.T) {
	if !(&StatusError{StatusCode: 404}).NotFound() {
		t.Fatalf("404 should be NotFound")
	}
	if (&StatusError{StatusCode: 500}).NotFound() {
		t.Fatalf("500 should not be NotFound")
	}
}

func TestCall_TransportErrorUnchanged(t *testing.T) {
	sentinel := errors.New("connection refused")
	fc := &fakeClient{err: sentinel}

	err := Call(context.Background(), fc, http.MethodGet, "/x", nil, nil)
	if err != sentinel {
		t.Fatalf("want the transport error as-is, got %v", err)
	}
}

func TestCall_MalformedPayload(t *testing.T) {
	fc := &fakeClient{resp: fakeResp{200, `[{"id":"one"}]`}}

	var out []struct {
		ID int `json:"id"`
	}
	err := Call(context.Background(), fc, http.MethodGet, "/dramas/1/poses", nil, &out)
	if err == nil || !strings.Contains(err.Error(), "decode GET /dramas/1/poses") {
		t.Fatalf("want decode error, got %v", err)
	}
}

func TestChain_OrderAndClose(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Client) Client {
			return wrap(next, func(ctx context.Context, method, path string, body any) (Response, error) {
				order = append(order, name)
				return next.Do(ctx, method, path, body)
			})
		}
	}

	fc := &fakeClient{resp: fakeResp{200, `{}`}}
	c := Chain(fc, mark("outer"), mark("inner"))

	if _, err := c.Do(context.Background(), http.MethodGet, "/", nil); err != nil {
		t.Fatalf("Do error: %v", err)
	}
	if strings.Join(order, ",") != "outer,inner" {
		t.Fatalf("order=%v", order)
	}
	c.Close()
	if fc.closed != 1 {
		t.Fatalf("Close not forwarded")
	}
}
