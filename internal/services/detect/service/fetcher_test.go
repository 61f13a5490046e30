package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stencil/internal/adapters/registry"
	perr "stencil/internal/platform/errors"
)

// scriptedSource returns fn(n) for the nth call (1 based)
type scriptedSource struct {
	calls int
	fn    func(call int) ([]byte, error)
}

func (s *scriptedSource) ModelSchema(_ context.Context, _, _ string) ([]byte, error) {
	s.calls++
	return s.fn(s.calls)
}

// fakeClock advances only when the fetcher sleeps
type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newTestFetcher(src *scriptedSource, deadline time.Duration) (*Fetcher, *fakeClock) {
	f := NewFetcher(src, deadline)
	clk := &fakeClock{t: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	f.now = clk.now
	f.sleep = clk.sleep
	return f, clk
}

func rateLimited(after time.Duration) error {
	return &registry.RateLimitedError{
		RetryAfter: after,
		Err:        perr.TooManyRequestsf("registry rate limited"),
	}
}

const validSignature = `[
	{"name": "customer_id", "type": "string"},
	{"name": "score", "type": "double", "required": false}
]`

func TestFetch_Success(t *testing.T) {
	src := &scriptedSource{fn: func(int) ([]byte, error) { return []byte(validSignature), nil }}
	f, clk := newTestFetcher(src, 5*time.Second)

	sch, err := f.Fetch(context.Background(), "models.sales.churn", "3")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(sch.Fields) != 2 || sch.Fields[0].Name != "customer_id" {
		t.Errorf("schema = %+v", sch)
	}
	if !sch.Fields[0].Required || sch.Fields[1].Required {
		t.Errorf("required flags wrong: %+v", sch.Fields)
	}
	if src.calls != 1 || len(clk.slept) != 0 {
		t.Errorf("calls = %d slept = %v", src.calls, clk.slept)
	}
}

func TestFetch_MalformedSchemaNoRetry(t *testing.T) {
	src := &scriptedSource{fn: func(int) ([]byte, error) {
		return []byte(`[{"name": "x", "type": "tensor"}]`), nil
	}}
	f, clk := newTestFetcher(src, 5*time.Second)

	_, err := f.Fetch(context.Background(), "m", "1")
	if !perr.IsCode(err, perr.ErrorCodeMalformedUpstream) {
		t.Fatalf("err = %v, want malformed upstream", err)
	}
	if src.calls != 1 || len(clk.slept) != 0 {
		t.Errorf("calls = %d slept = %v, malformed must not retry", src.calls, clk.slept)
	}
}

func TestFetch_TerminalErrorsPassThrough(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code perr.ErrorCode
	}{
		{"not found", perr.NotFoundf("model not found"), perr.ErrorCodeNotFound},
		{"permission denied", perr.Forbiddenf("registry denied access"), perr.ErrorCodeForbidden},
		{"unavailable", perr.Unavailablef("registry upstream status 502"), perr.ErrorCodeUnavailable},
		{"malformed", perr.MalformedUpstreamf("registry signature has no inputs"), perr.ErrorCodeMalformedUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &scriptedSource{fn: func(int) ([]byte, error) { return nil, tc.err }}
			f, clk := newTestFetcher(src, 5*time.Second)

			_, err := f.Fetch(context.Background(), "m", "1")
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("err = %v, want code %d", err, tc.code)
			}
			if src.calls != 1 || len(clk.slept) != 0 {
				t.Errorf("calls = %d slept = %v, want zero retries", src.calls, clk.slept)
			}
		})
	}
}

func TestFetch_RateLimitedRetriesWithinBigBudget(t *testing.T) {
	src := &scriptedSource{fn: func(call int) ([]byte, error) {
		if call <= 2 {
			return nil, rateLimited(0)
		}
		return []byte(validSignature), nil
	}}
	f, clk := newTestFetcher(src, 20*time.Second)

	sch, err := f.Fetch(context.Background(), "m", "1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if sch == nil || len(sch.Fields) != 2 {
		t.Errorf("schema = %+v", sch)
	}
	if src.calls != 3 {
		t.Errorf("calls = %d, want 3", src.calls)
	}
	if len(clk.slept) != 2 || clk.slept[0] != 2*time.Second || clk.slept[1] != 4*time.Second {
		t.Errorf("slept = %v, want [2s 4s]", clk.slept)
	}
}

// With the standard 5s budget, a second rate limited response must yield a
// timeout, never an eventual success: 2s already spent plus a 4s delay
// overruns the budget, so the fetcher fails fast instead of sleeping
func TestFetch_DefaultBudgetTimesOutBeforeSecondRetry(t *testing.T) {
	src := &scriptedSource{fn: func(int) ([]byte, error) { return nil, rateLimited(0) }}
	f, clk := newTestFetcher(src, DefaultDeadline)

	_, err := f.Fetch(context.Background(), "m", "1")
	if !perr.IsCode(err, perr.ErrorCodeDeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if src.calls != 2 {
		t.Errorf("calls = %d, want 2", src.calls)
	}
	if len(clk.slept) != 1 || clk.slept[0] != 2*time.Second {
		t.Errorf("slept = %v, want [2s]", clk.slept)
	}
}

func TestFetch_RetryAfterHintFailsFast(t *testing.T) {
	src := &scriptedSource{fn: func(int) ([]byte, error) { return nil, rateLimited(10 * time.Second) }}
	f, clk := newTestFetcher(src, DefaultDeadline)

	_, err := f.Fetch(context.Background(), "m", "1")
	if !perr.IsCode(err, perr.ErrorCodeDeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if src.calls != 1 || len(clk.slept) != 0 {
		t.Errorf("calls = %d slept = %v, a 10s hint must not be slept on", src.calls, clk.slept)
	}
}

func TestFetch_ScheduleExhausted(t *testing.T) {
	src := &scriptedSource{fn: func(int) ([]byte, error) { return nil, rateLimited(0) }}
	f, clk := newTestFetcher(src, time.Minute)

	_, err := f.Fetch(context.Background(), "m", "1")
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("err = %v, want too many requests after schedule exhaustion", err)
	}
	if src.calls != 4 {
		t.Errorf("calls = %d, want 4 (initial plus three retries)", src.calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
	if len(clk.slept) != len(want) {
		t.Fatalf("slept = %v, want %v", clk.slept, want)
	}
	for i := range want {
		if clk.slept[i] != want[i] {
			t.Errorf("slept[%d] = %v, want %v", i, clk.slept[i], want[i])
		}
	}
}

func TestFetch_ContextDeadlineBecomesTimeout(t *testing.T) {
	src := &scriptedSource{fn: func(int) ([]byte, error) { return nil, context.DeadlineExceeded }}
	f, _ := newTestFetcher(src, 5*time.Second)

	_, err := f.Fetch(context.Background(), "m", "1")
	if !perr.IsCode(err, perr.ErrorCodeDeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestFetch_CancellationPassesThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &scriptedSource{fn: func(int) ([]byte, error) {
		cancel()
		return nil, context.Canceled
	}}
	f, clk := newTestFetcher(src, 5*time.Second)

	_, err := f.Fetch(ctx, "m", "1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(clk.slept) != 0 {
		t.Errorf("slept = %v, cancellation must not back off", clk.slept)
	}
}
