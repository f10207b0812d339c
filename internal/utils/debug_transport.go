package utils

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

var sensitiveHeaders = []string{
	"Authorization",
	"X-Api-Key",
	"X-Auth-Token",
	"Cookie",
}

// DebugTransport logs outbound POST requests (headers redacted) and
// transport failures. The request body is restored after reading.
type DebugTransport struct {
	base   http.RoundTripper
	logger *logrus.Logger
}

func NewDebugTransport(base http.RoundTripper, logger *logrus.Logger) *DebugTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.DebugLevel)
	}
	return &DebugTransport{base: base, logger: logger}
}

func (t *DebugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodPost {
		t.logRequest(req)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.WithField("url", req.URL.String()).Errorf("llm request failed: %v", err)
		return nil, err
	}

	t.logger.WithFields(logrus.Fields{
		"url":    req.URL.String(),
		"status": resp.StatusCode,
	}).Debug("llm response received")

	return resp, nil
}

func (t *DebugTransport) logRequest(req *http.Request) {
	fields := logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}
	for name, values := range req.Header {
		if isSensitiveHeader(name) {
			fields["header."+name] = "[REDACTED]"
			continue
		}
		fields["header."+name] = strings.Join(values, ", ")
	}

	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			t.logger.Errorf("failed to read llm request body: %v", err)
			req.Body = io.NopCloser(bytes.NewReader(nil))
			return
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		fields["body_bytes"] = len(body)
		fields["body"] = string(body)
	}

	t.logger.WithFields(fields).Debug("llm request")
}

func isSensitiveHeader(name string) bool {
	for _, sensitive := range sensitiveHeaders {
		if strings.EqualFold(name, sensitive) {
			return true
		}
	}
	return false
}
