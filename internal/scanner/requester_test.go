package scanner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fillscan/fillscan/internal/config"
)

func TestProbeStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin":
			w.WriteHeader(200)
		case "/secret":
			w.WriteHeader(403)
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	req := testRequester(t, &config.Options{})

	tests := []struct {
		path string
		want int
	}{
		{"/admin", 200},
		{"/secret", 403},
		{"/nope", 404},
	}
	for _, tt := range tests {
		out := req.Probe(context.Background(), srv.URL+tt.path)
		if out.Kind != KindOK {
			t.Errorf("Probe(%s): kind = %s, want ok", tt.path, out.Kind)
		}
		if out.StatusCode != tt.want {
			t.Errorf("Probe(%s): status = %d, want %d", tt.path, out.StatusCode, tt.want)
		}
		if out.Duration <= 0 {
			t.Errorf("Probe(%s): non-positive duration", tt.path)
		}
	}
}

func TestProbeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	req := testRequester(t, &config.Options{Timeout: 50 * time.Millisecond})
	out := req.Probe(context.Background(), srv.URL+"/slow")

	if out.Kind != KindTimeout {
		t.Errorf("kind = %s, want timeout (err: %v)", out.Kind, out.Err)
	}
	if out.StatusCode != 0 {
		t.Errorf("status = %d, want 0 on failure", out.StatusCode)
	}
}

func TestProbeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	req := testRequester(t, &config.Options{})
	out := req.Probe(context.Background(), url+"/admin")

	if out.Kind != KindConnection {
		t.Errorf("kind = %s, want connection (err: %v)", out.Kind, out.Err)
	}
	if out.StatusCode != 0 {
		t.Errorf("status = %d, want 0 on failure", out.StatusCode)
	}
}

func TestProbeRedirectsNotFollowedByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	req := testRequester(t, &config.Options{})
	out := req.Probe(context.Background(), srv.URL+"/old")
	if out.StatusCode != http.StatusFound {
		t.Errorf("status = %d, want 302 (redirect not followed)", out.StatusCode)
	}

	follow := testRequester(t, &config.Options{FollowRedirects: true})
	out = follow.Probe(context.Background(), srv.URL+"/old")
	if out.StatusCode != 200 {
		t.Errorf("status = %d, want 200 (redirect followed)", out.StatusCode)
	}
}

func TestProbeHeadMethod(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(200)
	}))
	defer srv.Close()

	req := testRequester(t, &config.Options{Method: "HEAD"})
	out := req.Probe(context.Background(), srv.URL+"/x")
	if out.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", out.StatusCode)
	}
	if gotMethod != "HEAD" {
		t.Errorf("server saw method %s, want HEAD", gotMethod)
	}
}

func TestProbeSendsHeaders(t *testing.T) {
	var gotUA, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotToken = r.Header.Get("X-Token")
		w.WriteHeader(200)
	}))
	defer srv.Close()

	req := testRequester(t, &config.Options{
		UserAgent: "fillscan-test",
		Headers:   map[string]string{"X-Token": "abc123"},
	})
	req.Probe(context.Background(), srv.URL+"/x")

	if gotUA != "fillscan-test" {
		t.Errorf("User-Agent = %q, want fillscan-test", gotUA)
	}
	if gotToken != "abc123" {
		t.Errorf("X-Token = %q, want abc123", gotToken)
	}
}

func TestClassifyContextDeadline(t *testing.T) {
	if k := classify(context.DeadlineExceeded); k != KindTimeout {
		t.Errorf("classify(DeadlineExceeded) = %s, want timeout", k)
	}
}
