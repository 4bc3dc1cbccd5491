package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validOpts() *Options {
	return &Options{
		URL:          "https://example.com/FILL",
		WordlistPath: "words.txt",
		Threads:      20,
		Timeout:      5 * time.Second,
		Method:       "GET",
		StatusCodes:  []int{200},
	}
}

func TestValidateOK(t *testing.T) {
	if err := validOpts().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
	}{
		{"missing url", func(o *Options) { o.URL = "" }},
		{"missing wordlist", func(o *Options) { o.WordlistPath = "" }},
		{"zero threads", func(o *Options) { o.Threads = 0 }},
		{"negative threads", func(o *Options) { o.Threads = -3 }},
		{"zero timeout", func(o *Options) { o.Timeout = 0 }},
		{"negative rate", func(o *Options) { o.Rate = -1 }},
		{"status too low", func(o *Options) { o.StatusCodes = []int{42} }},
		{"status too high", func(o *Options) { o.StatusCodes = []int{600} }},
		{"extension without dot", func(o *Options) { o.Extensions = []string{"php"} }},
		{"unsupported method", func(o *Options) { o.Method = "POST" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOpts()
			tt.mutate(o)
			err := o.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := err.(*ConfigError); !ok {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}

func TestValidateEmptyExtensionAllowed(t *testing.T) {
	o := validOpts()
	o.Extensions = []string{"", ".php"}
	if err := o.Validate(); err != nil {
		t.Fatalf("empty extension should be allowed: %v", err)
	}
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.yaml")
	content := `
threads: 50
timeout: 2.5
status_codes: [200, 301]
user_agent: custom-agent
follow_redirects: true
headers:
  X-Token: abc
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	opts := validOpts()
	f.Apply(opts, func(string) bool { return false })

	if opts.Threads != 50 {
		t.Errorf("Threads = %d, want 50", opts.Threads)
	}
	if opts.Timeout != 2500*time.Millisecond {
		t.Errorf("Timeout = %s, want 2.5s", opts.Timeout)
	}
	if len(opts.StatusCodes) != 2 {
		t.Errorf("StatusCodes = %v, want [200 301]", opts.StatusCodes)
	}
	if opts.UserAgent != "custom-agent" {
		t.Errorf("UserAgent = %q", opts.UserAgent)
	}
	if !opts.FollowRedirects {
		t.Error("FollowRedirects not applied")
	}
	if opts.Headers["X-Token"] != "abc" {
		t.Errorf("Headers = %v", opts.Headers)
	}
}

func TestLoadFileExplicitFlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.yaml")
	if err := os.WriteFile(path, []byte("threads: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	opts := validOpts()
	opts.Threads = 7
	f.Apply(opts, func(flag string) bool { return flag == "threads" })

	if opts.Threads != 7 {
		t.Errorf("explicit --threads overridden by config file: %d", opts.Threads)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("threads: [not an int\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
