package cache

import (
	"reflect"
	"testing"
	"time"

	"stencil/internal/core/classify"
	"stencil/internal/services/detect/domain"
)

func sample(name string, status domain.DetectionStatus) domain.Result {
	return domain.Result{
		EndpointName:  name,
		EndpointType:  classify.Unknown,
		ExampleJSON:   map[string]any{"feature": "example_value"},
		Status:        status,
		CorrelationID: "corr-1",
		LatencyMS:     42,
		DetectedAt:    time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSession_RoundTrip(t *testing.T) {
	s := newSession()

	if _, ok := s.Get("support-chat"); ok {
		t.Fatal("empty session should miss")
	}

	want := sample("support-chat", domain.StatusSuccess)
	s.Set("support-chat", want)

	got, ok := s.Get("support-chat")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cached result changed: got %+v want %+v", got, want)
	}

	s.Clear()
	if _, ok := s.Get("support-chat"); ok {
		t.Error("Clear should drop entries")
	}
}

func TestSession_CachesFailures(t *testing.T) {
	s := newSession()
	fail := sample("churn-scorer", domain.StatusFailure)
	fail.ErrorMessage = "registry rate limited"
	s.Set("churn-scorer", fail)

	got, ok := s.Get("churn-scorer")
	if !ok || got.Status != domain.StatusFailure {
		t.Fatalf("failures must be cached, got %+v ok=%v", got, ok)
	}
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(8)
	m.For("alice").Set("support-chat", sample("support-chat", domain.StatusSuccess))

	if _, ok := m.For("bob").Get("support-chat"); ok {
		t.Error("bob should not see alice's cache")
	}
	if s := m.For("alice"); s != m.For("alice") {
		t.Error("same session id must return the same cache")
	}
}

func TestManager_EvictsOldSessions(t *testing.T) {
	m := NewManager(2)
	m.For("s1").Set("ep", sample("ep", domain.StatusSuccess))
	m.For("s2")
	m.For("s3") // evicts s1

	if _, ok := m.For("s1").Get("ep"); ok {
		t.Error("evicted session should come back empty")
	}
}

func TestManager_ClearEmptiesOneSession(t *testing.T) {
	m := NewManager(8)
	m.For("alice").Set("ep", sample("ep", domain.StatusFailure))
	m.For("bob").Set("ep", sample("ep", domain.StatusSuccess))

	m.Clear("alice")

	if _, ok := m.For("alice").Get("ep"); ok {
		t.Error("alice's cache should be empty after Clear")
	}
	if _, ok := m.For("bob").Get("ep"); !ok {
		t.Error("bob's cache should survive alice's Clear")
	}
	// clearing a session nobody has seen is a no-op
	m.Clear("nobody")
}

func TestManager_InvokeBlocked(t *testing.T) {
	m := NewManager(8)

	if m.InvokeBlocked("alice", "secret-model") {
		t.Error("unknown session should not block")
	}

	denied := sample("secret-model", domain.StatusFailure)
	denied.PermissionDenied = true
	denied.ErrorMessage = "registry denied access"
	m.For("alice").Set("secret-model", denied)
	m.For("alice").Set("support-chat", sample("support-chat", domain.StatusSuccess))

	if !m.InvokeBlocked("alice", "secret-model") {
		t.Error("permission denied result must block invoke")
	}
	if m.InvokeBlocked("alice", "support-chat") {
		t.Error("successful detection must not block invoke")
	}
	if m.InvokeBlocked("bob", "secret-model") {
		t.Error("blocks are per session")
	}

	m.Clear("alice")
	if m.InvokeBlocked("alice", "secret-model") {
		t.Error("clearing the session lifts the block")
	}
}
