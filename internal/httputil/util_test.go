package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		contentType    string
		body           string
		expectedOK     bool
		expectedStatus int
	}{
		{name: "positive", contentType: "application/json", body: `{"name": "a"}`, expectedOK: true, expectedStatus: http.StatusOK},
		{name: "charset", contentType: "application/json; charset=utf-8", body: `{"name": "a"}`, expectedOK: true, expectedStatus: http.StatusOK},
		{name: "content_type", contentType: "text/plain", body: `{"name": "a"}`, expectedStatus: http.StatusUnsupportedMediaType},
		{name: "syntax", contentType: "application/json", body: `{"name": `, expectedStatus: http.StatusBadRequest},
		{name: "malformed", contentType: "application/json", body: `{"name": "a"`, expectedStatus: http.StatusBadRequest},
		{name: "type", contentType: "application/json", body: `{"name": 1}`, expectedStatus: http.StatusBadRequest},
		{name: "unknown_field", contentType: "application/json", body: `{"other": 1}`, expectedStatus: http.StatusBadRequest},
		{name: "empty", contentType: "application/json", body: ``, expectedStatus: http.StatusBadRequest},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var dst struct {
				Name string `json:"name"`
			}
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(test.body))
			r.Header.Set("content-type", test.contentType)
			w := httptest.NewRecorder()
			ok := DecodeJSON(context.Background(), w, r, &dst)
			if ok != test.expectedOK {
				t.Errorf("decode, got: %v, expected: %v", ok, test.expectedOK)
			}
			if w.Code != test.expectedStatus {
				t.Errorf("status, got: %v, expected: %v", w.Code, test.expectedStatus)
			}
		})
	}
}

func TestRespJSON(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	RespJSON(context.Background(), w, http.StatusCreated, map[string]int{"len": 3})
	if w.Code != http.StatusCreated {
		t.Errorf("status, got: %v, expected: %v", w.Code, http.StatusCreated)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"len":3}` {
		t.Errorf("body, got: %v, expected: %v", got, `{"len":3}`)
	}
	if got := w.Header().Get("content-type"); got != "application/json" {
		t.Errorf("content type, got: %v", got)
	}
}

func TestBearer(t *testing.T) {
	t.Parallel()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(RequireBearer("secret", ok))
	defer srv.Close()

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{name: "authorized", token: "secret", expectedStatus: http.StatusNoContent},
		{name: "wrong_token", token: "guess", expectedStatus: http.StatusUnauthorized},
		{name: "no_token", token: "", expectedStatus: http.StatusUnauthorized},
	}
	for _, test := range tests {
		client := NewClientFromConfig(ClientConfig{BearerToken: test.token})
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("%s: the error should not be returned: %v", test.name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != test.expectedStatus {
			t.Errorf("%s: status, got: %v, expected: %v", test.name, resp.StatusCode, test.expectedStatus)
		}
	}

	if h := RequireBearer("", ok); h == nil {
		t.Errorf("an empty token must keep the handler")
	}
}
