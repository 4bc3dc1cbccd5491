package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML config file schema. Every field is optional;
// values set here act as defaults and explicit command-line flags win.
type File struct {
	Wordlist         string            `yaml:"wordlist"`
	Extensions       []string          `yaml:"extensions"`
	Threads          int               `yaml:"threads"`
	TimeoutSeconds   float64           `yaml:"timeout"`
	DelayMillis      int               `yaml:"delay_ms"`
	AdaptiveThrottle bool              `yaml:"adaptive_throttle"`
	Rate             float64           `yaml:"rate"`
	StatusCodes      []int             `yaml:"status_codes"`
	Method           string            `yaml:"method"`
	Headers          map[string]string `yaml:"headers"`
	UserAgent        string            `yaml:"user_agent"`
	Proxy            string            `yaml:"proxy"`
	FollowRedirects  bool              `yaml:"follow_redirects"`
	VerifySSL        bool              `yaml:"verify_ssl"`
	OutputDir        string            `yaml:"output"`
	Dedup            bool              `yaml:"dedup"`
}

// LoadFile parses a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Errorf("config", "reading %s: %v", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, Errorf("config", "parsing %s: %v", path, err)
	}
	return &f, nil
}

// Apply copies file values into opts. changed reports whether a flag was
// set explicitly on the command line; explicit flags are left untouched.
func (f *File) Apply(opts *Options, changed func(flag string) bool) {
	if f.Wordlist != "" && !changed("wordlist") {
		opts.WordlistPath = f.Wordlist
	}
	if len(f.Extensions) > 0 && !changed("ext") {
		opts.Extensions = f.Extensions
	}
	if f.Threads > 0 && !changed("threads") {
		opts.Threads = f.Threads
	}
	if f.TimeoutSeconds > 0 && !changed("timeout") {
		opts.Timeout = time.Duration(f.TimeoutSeconds * float64(time.Second))
	}
	if f.DelayMillis > 0 && !changed("delay") {
		opts.Delay = time.Duration(f.DelayMillis) * time.Millisecond
	}
	if f.AdaptiveThrottle && !changed("adaptive-throttle") {
		opts.AdaptiveThrottle = true
	}
	if f.Rate > 0 && !changed("rate") {
		opts.Rate = f.Rate
	}
	if len(f.StatusCodes) > 0 && !changed("status") {
		opts.StatusCodes = f.StatusCodes
	}
	if f.Method != "" && !changed("method") {
		opts.Method = f.Method
	}
	if len(f.Headers) > 0 {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			if _, exists := opts.Headers[k]; !exists {
				opts.Headers[k] = v
			}
		}
	}
	if f.UserAgent != "" && !changed("user-agent") {
		opts.UserAgent = f.UserAgent
	}
	if f.Proxy != "" && !changed("proxy") {
		opts.Proxy = f.Proxy
	}
	if f.FollowRedirects && !changed("follow-redirects") {
		opts.FollowRedirects = true
	}
	if f.VerifySSL && !changed("verify-ssl") {
		opts.VerifySSL = true
	}
	if f.OutputDir != "" && !changed("output") {
		opts.OutputDir = f.OutputDir
	}
	if f.Dedup && !changed("dedup") {
		opts.Dedup = true
	}
}
