package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"stencil/internal/core/classify"
	"stencil/internal/modkit/httpkit"
	phttp "stencil/internal/platform/net/http"
	"stencil/internal/services/detect/domain"
)

// fakeService records what the transport hands it
type fakeService struct {
	gotReq  domain.Request
	cleared []string
	result  domain.Result
}

func (f *fakeService) Detect(_ context.Context, req domain.Request) domain.Result {
	f.gotReq = req
	r := f.result
	r.EndpointName = req.EndpointName
	return r
}

func (f *fakeService) ClearSession(sessionID string) {
	f.cleared = append(f.cleared, sessionID)
}

func newTestServer(t *testing.T, svc domain.ServicePort) *httptest.Server {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(httpkit.Identity(httpkit.NewForwardedPort(false)))
	Register(r, svc)
	srv := httptest.NewServer(r.Mux())
	t.Cleanup(srv.Close)
	return srv
}

func TestDetectThreadsIdentityAndBody(t *testing.T) {
	svc := &fakeService{result: domain.Result{
		EndpointType: classify.ChatModel,
		Status:       domain.StatusSuccess,
		ExampleJSON:  map[string]any{"messages": []any{}},
	}}
	srv := newTestServer(t, svc)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/",
		strings.NewReader(`{"endpoint_name":"support-chat","correlation_id":"corr-42"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httpkit.HeaderForwardedUser, "alice")
	req.Header.Set(httpkit.HeaderSessionID, "sess-1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if svc.gotReq.SessionID != "sess-1" {
		t.Fatalf("session = %q", svc.gotReq.SessionID)
	}
	if svc.gotReq.ActorID != "alice" {
		t.Fatalf("actor = %q", svc.gotReq.ActorID)
	}
	if svc.gotReq.CorrelationID != "corr-42" {
		t.Fatalf("correlation = %q", svc.gotReq.CorrelationID)
	}

	var env struct {
		Data domain.Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.EndpointName != "support-chat" {
		t.Fatalf("endpoint = %q", env.Data.EndpointName)
	}
	if env.Data.Status != domain.StatusSuccess {
		t.Fatalf("status = %q", env.Data.Status)
	}
}

func TestDetectRejectsUnknownFields(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/",
		strings.NewReader(`{"endpoint_name":"x","surprise":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httpkit.HeaderSessionID, "sess-1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		t.Fatal("unknown fields must not be accepted")
	}
}

func TestClearSessionUsesCallerSession(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(t, svc)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/session", nil)
	req.Header.Set(httpkit.HeaderSessionID, "sess-9")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(svc.cleared) != 1 || svc.cleared[0] != "sess-9" {
		t.Fatalf("cleared = %v", svc.cleared)
	}
}
