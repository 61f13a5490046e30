package serving

import (
	"io"
	"net/http"
	"strconv"
)

// parseRateHeaders pulls the throttle hints the control plane sends.
// Zero means the header was absent or unparsable
func parseRateHeaders(h http.Header) (remaining int, retryAfter int) {
	remaining = atoi(h.Get("X-RateLimit-Remaining"))
	retryAfter = atoi(h.Get("Retry-After"))
	return
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	i, _ := strconv.Atoi(s)
	return i
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
