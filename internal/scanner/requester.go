package scanner

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fillscan/fillscan/internal/config"
)

// Browser-like default UA; the stock Go UA trips 403s on hardened hosts.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0 Safari/537.36"

// Requester issues individual probes. It is safe for concurrent use; every
// worker in the pool shares one instance so connections are pooled per host.
type Requester struct {
	client    *http.Client
	method    string
	headers   map[string]string
	userAgent string
}

// NewRequester builds the shared HTTP client from scan options. The client
// configuration (timeout, TLS verification, redirect policy) is fixed for
// the whole scan.
func NewRequester(opts *config.Options) (*Requester, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !opts.VerifySSL},
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		MaxIdleConnsPerHost: opts.Threads,
		MaxIdleConns:        opts.Threads,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, config.Errorf("proxy", "invalid proxy URL %q: %v", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}

	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	// When following, net/http's default policy applies: up to 10 hops.

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	return &Requester{
		client:    client,
		method:    method,
		headers:   opts.Headers,
		userAgent: ua,
	}, nil
}

// Probe issues a single request and returns its outcome. Never retries;
// a failure is classified and recorded with StatusCode 0. The response body
// is drained and discarded so the connection can be reused.
func (r *Requester) Probe(ctx context.Context, targetURL string) Outcome {
	out := Outcome{URL: targetURL}

	req, err := http.NewRequestWithContext(ctx, r.method, targetURL, nil)
	if err != nil {
		out.Kind = KindProtocol
		out.Err = err
		return out
	}

	req.Header.Set("User-Agent", r.userAgent)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	out.Duration = time.Since(start)
	if err != nil {
		out.Kind = classify(err)
		out.Err = err
		return out
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	out.StatusCode = resp.StatusCode
	return out
}
