package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// NewRequest creates a new HTTP request for testing. A non-nil body is
// encoded as JSON.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRawRequest creates a request whose body is sent verbatim.
func NewRawRequest(method, path, body string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// RecordResponse is a decoded response envelope.
type RecordResponse struct {
	Code    int
	Header  http.Header
	Status  bool
	Message string
	// HasData is false when the "data" key is absent from the body.
	HasData bool
	Data    json.RawMessage
}

// RecordHTTPResponse decodes the envelope written to w.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var raw map[string]json.RawMessage
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &raw)
	}

	rec := RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
	}
	if v, ok := raw["status"]; ok {
		_ = json.Unmarshal(v, &rec.Status)
	}
	if v, ok := raw["message"]; ok {
		_ = json.Unmarshal(v, &rec.Message)
	}
	if v, ok := raw["data"]; ok {
		rec.HasData = true
		rec.Data = v
	}
	return rec
}

// DecodeData unmarshals the envelope payload into out.
func (rr RecordResponse) DecodeData(out interface{}) error {
	return json.Unmarshal(rr.Data, out)
}
