package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient builds the client used for outbound model calls. With debug
// set, POST requests are logged through DebugTransport.
func NewHTTPClient(timeout time.Duration, debug bool) *http.Client {
	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if debug {
		transport = NewDebugTransport(transport, nil)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
