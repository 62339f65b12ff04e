package links

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	userAgentHeaderNameConstant = "User-Agent"
	// DefaultUserAgent identifies probe requests.
	DefaultUserAgent = "docaudit-link-probe/1.0"
)

// ProbeResult captures the response obtained for a probed URL.
type ProbeResult struct {
	StatusCode int
}

// Prober reaches a URL and reports the response status or a transport failure.
type Prober interface {
	Probe(executionContext context.Context, targetURL string) (ProbeResult, error)
}

// HTTPClient is the subset of *http.Client used by HTTPProber.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// HTTPProber probes URLs with HEAD requests.
type HTTPProber struct {
	client    HTTPClient
	userAgent string
}

// NewHTTPProber builds a prober. A zero timeout leaves the request bounded only by the transport.
func NewHTTPProber(timeout time.Duration, userAgent string) *HTTPProber {
	return NewHTTPProberWithClient(&http.Client{Timeout: timeout}, userAgent)
}

// NewHTTPProberWithClient builds a prober around a caller-supplied client.
func NewHTTPProberWithClient(client HTTPClient, userAgent string) *HTTPProber {
	if client == nil {
		client = &http.Client{}
	}
	if len(userAgent) == 0 {
		userAgent = DefaultUserAgent
	}
	return &HTTPProber{client: client, userAgent: userAgent}
}

// Probe issues a HEAD request against targetURL.
func (prober *HTTPProber) Probe(executionContext context.Context, targetURL string) (ProbeResult, error) {
	request, requestError := http.NewRequestWithContext(executionContext, http.MethodHead, targetURL, nil)
	if requestError != nil {
		return ProbeResult{}, requestError
	}
	request.Header.Set(userAgentHeaderNameConstant, prober.userAgent)

	response, responseError := prober.client.Do(request)
	if responseError != nil {
		return ProbeResult{}, responseError
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	return ProbeResult{StatusCode: response.StatusCode}, nil
}
