package nbaapi

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// resolveHTTPClient keeps a caller-supplied client as is; otherwise it builds one with a per-request timeout
// so an unresponsive upstream cannot stall a fan-out forever.
func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultBaseURL
	}
	raw = strings.TrimSuffix(raw, "/")
	return strings.TrimSuffix(raw, queryPath)
}

func resolveMaxPages(max int) int {
	if max <= 0 {
		return defaultMaxPages
	}
	return max
}

func resolveUserAgent(ua string) string {
	if ua = strings.TrimSpace(ua); ua == "" {
		return defaultUserAgent
	}
	return ua
}

func snippet(body []byte) string {
	if len(body) > snippetBytes {
		body = body[:snippetBytes]
	}
	return strings.TrimSpace(string(body))
}
