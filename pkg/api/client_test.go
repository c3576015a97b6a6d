package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/isotrack/isotrack/pkg/errors"
	"github.com/isotrack/isotrack/pkg/flow"
	"github.com/isotrack/isotrack/pkg/httputil"
)

func envelopeHandler(t *testing.T, wantPath string, payload string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "message": "ok", "data": ` + payload + `}`))
	}
}

func TestListDiagrams(t *testing.T) {
	srv := httptest.NewServer(envelopeHandler(t, "/diagrams",
		`[{"id": "d1", "name": "Organigrama", "type": "organigrama"}]`))
	defer srv.Close()

	c := New(srv.URL)
	diagrams, err := c.ListDiagrams(context.Background())
	if err != nil {
		t.Fatalf("ListDiagrams() error: %v", err)
	}
	if len(diagrams) != 1 || diagrams[0].ID != "d1" {
		t.Errorf("diagrams = %+v", diagrams)
	}
}

func TestGetDiagramDecodesGraphPayload(t *testing.T) {
	srv := httptest.NewServer(envelopeHandler(t, "/diagrams/d1",
		`{"id": "d1", "name": "Organigrama", "type": "organigrama",
		  "data": {"nodes": [{"id": "n1", "label": "Dirección", "type": "area"}], "edges": []}}`))
	defer srv.Close()

	c := New(srv.URL)
	d, err := c.GetDiagram(context.Background(), "d1")
	if err != nil {
		t.Fatalf("GetDiagram() error: %v", err)
	}
	if d.Data == nil || len(d.Data.Nodes) != 1 || d.Data.Nodes[0].Type != flow.TypeArea {
		t.Errorf("data = %+v", d.Data)
	}
}

func TestSaveDiagramSendsBodyAndToken(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"success": true, "message": "guardado", "data": {"id": "d1"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(StaticToken("tok-123")))
	g := &flow.Graph{Nodes: []flow.Node{{ID: "n1"}}}
	d, err := c.SaveDiagram(context.Background(), "d1", SaveRequest{Data: g, SVGExport: "<svg/>"})
	if err != nil {
		t.Fatalf("SaveDiagram() error: %v", err)
	}
	if d.ID != "d1" {
		t.Errorf("diagram = %+v", d)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("auth = %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"svg_export":"<svg/>"`) {
		t.Errorf("body = %s", gotBody)
	}
}

func TestErrorPrefersServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, "diagrama no encontrado")
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetDiagram(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := errors.UserMessage(err); msg != "diagrama no encontrado" {
		t.Errorf("message = %q, want server message", msg)
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("code = %v, want NOT_FOUND", errors.GetCode(err))
	}
}

func TestErrorFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		// Not an envelope at all.
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListDiagrams(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "status 400") && msg != "No se pudo obtener los diagramas" {
		t.Errorf("message = %q", msg)
	}
}

func TestTransportErrorIsNormalized(t *testing.T) {
	// Point at a closed server so the request fails at transport level.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, WithRetry(2, time.Millisecond))
	_, err := c.ListDiagrams(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("code = %v, want NETWORK_ERROR", errors.GetCode(err))
	}
}

func TestRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			httputil.WriteError(w, http.StatusInternalServerError, "caído")
			return
		}
		w.Write([]byte(`{"success": true, "message": "ok", "data": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRetry(3, time.Millisecond))
	if _, err := c.ListDiagrams(context.Background()); err != nil {
		t.Fatalf("ListDiagrams() error after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestUnsuccessfulEnvelopeIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 status but the envelope itself reports failure.
		w.Write([]byte(`{"success": false, "message": "sesión expirada"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListFlows(context.Background())
	if err == nil {
		t.Fatal("expected error for success=false envelope")
	}
	if msg := errors.UserMessage(err); msg != "sesión expirada" {
		t.Errorf("message = %q", msg)
	}
}

func TestInvalidIDRejectedBeforeRequest(t *testing.T) {
	c := New("http://unused.invalid")
	if _, err := c.GetDiagram(context.Background(), "../etc"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
