package query

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"fava_bridge/pkg/core/upstream"
)

type envelope struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Data    []map[string]string `json:"data"`
}

// serveQuery builds a fake upstream whose /api/query_result returns body,
// and a query handler pointed at it.
func serveQuery(t *testing.T, body string) *Handler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/query_result" {
			w.Write([]byte(body))
			return
		}
		w.Write([]byte("refreshed"))
	}))
	t.Cleanup(srv.Close)
	return NewHandler(upstream.NewClient(srv.URL, zerolog.Nop()), zerolog.Nop())
}

func doQuery(t *testing.T, h *Handler, target string) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, env
}

func TestHandle_ScrapesTable(t *testing.T) {
	table := `<table><thead><tr><th>Account</th><th>Total</th></tr></thead>` +
		`<tbody><tr><td>Income:Salary</td><td>-9000.00</td></tr></tbody></table>`
	body, _ := json.Marshal(map[string]interface{}{
		"success": true,
		"data":    map[string]string{"table": table},
	})

	h := serveQuery(t, string(body))
	code, env := doQuery(t, h, "/api/query_result?query_string=select+1")

	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if !env.Success {
		t.Fatalf("expected success, got %+v", env)
	}
	if len(env.Data) != 1 || env.Data[0]["Account"] != "Income:Salary" || env.Data[0]["Total"] != "-9000.00" {
		t.Errorf("unexpected data: %v", env.Data)
	}
}

func TestHandle_UpstreamErrorPropagatesVerbatim(t *testing.T) {
	h := serveQuery(t, `{"success":false,"error":"bad query"}`)
	code, env := doQuery(t, h, "/api/query_result?query_string=select+1")

	if code != http.StatusOK {
		t.Errorf("logical failures must still be HTTP 200, got %d", code)
	}
	if env.Success || env.Error != "bad query" {
		t.Errorf("expected the upstream message verbatim, got %+v", env)
	}
}

func TestHandle_NullErrorGetsFallbackMessage(t *testing.T) {
	h := serveQuery(t, `{"success":false,"error":null}`)
	_, env := doQuery(t, h, "/api/query_result?query_string=select+1")

	if env.Success || env.Error != "Something went wrong" {
		t.Errorf("expected the fallback message, got %+v", env)
	}
}

func TestHandle_MissingDataIsEmptyResult(t *testing.T) {
	h := serveQuery(t, `{"success":true}`)
	_, env := doQuery(t, h, "/api/query_result?query_string=select+1")

	if !env.Success {
		t.Fatalf("a success envelope without data is a valid empty result, got %+v", env)
	}
	if env.Data == nil || len(env.Data) != 0 {
		t.Errorf("expected data to be [], got %v", env.Data)
	}
}

func TestHandle_MissingQueryString(t *testing.T) {
	h := serveQuery(t, `{"success":true}`)
	code, env := doQuery(t, h, "/api/query_result")

	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if env.Success || env.Error == "" {
		t.Errorf("expected a validation failure envelope, got %+v", env)
	}
}

func TestHandle_TransportErrorBecomesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	srv.Close() // connection refused from here on

	h := NewHandler(upstream.NewClient(srv.URL, zerolog.Nop()), zerolog.Nop())
	code, env := doQuery(t, h, "/api/query_result?query_string=select+1")

	if code != http.StatusOK {
		t.Errorf("transport failures must still be HTTP 200, got %d", code)
	}
	if env.Success || env.Error == "" {
		t.Errorf("expected a failure envelope with a message, got %+v", env)
	}
}
