package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fillscan/fillscan/internal/config"
	"github.com/fillscan/fillscan/internal/runner"
	"github.com/fillscan/fillscan/pkg/version"
)

var (
	opts           config.Options
	timeoutSeconds float64
	headerFlags    []string
	configFile     string
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"wordlist", "ext", "dedup"}},
	{"MATCHERS", []string{"status"}},
	{"RATE-LIMIT", []string{"threads", "timeout", "delay", "rate", "adaptive-throttle"}},
	{"HTTP", []string{"method", "header", "user-agent", "proxy", "follow-redirects", "verify-ssl"}},
	{"OUTPUT", []string{"output", "quiet", "no-color", "verbose"}},
	{"CONFIGURATION", []string{"config"}},
}

var rootCmd = &cobra.Command{
	Use:     "fillscan <url> [flags]",
	Short:   "Concurrent web content discovery via a FILL placeholder",
	Version: version.Version,
	Long: `fillscan discovers hidden files and directories by substituting every
entry of a wordlist (optionally combined with extensions) into the FILL
placeholder of the base URL and reporting which candidates answered with
an accepted status code.`,
	Example: `  fillscan https://example.com/FILL -w wordlist.txt
  fillscan https://example.com/FILL -w wordlist.txt -e .php -e .bak -t 50
  fillscan https://example.com/FILL -w wordlist.txt -s 200 -s 301 -s 403
  fillscan https://FILL.example.com/ -w hostnames.txt --timeout 3
  fillscan https://example.com/FILL -w wordlist.txt -o scans --rate 100`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		opts.URL = args[0]
		opts.Timeout = time.Duration(timeoutSeconds * float64(time.Second))

		if len(headerFlags) > 0 {
			opts.Headers = make(map[string]string, len(headerFlags))
			for _, h := range headerFlags {
				parts := strings.SplitN(h, ":", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid header format %q, expected 'Key: Value'", h)
				}
				opts.Headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
			}
		}

		if configFile != "" {
			file, err := config.LoadFile(configFile)
			if err != nil {
				return err
			}
			file.Apply(&opts, cmd.Flags().Changed)
		}

		if len(opts.StatusCodes) == 0 {
			opts.StatusCodes = []int{200}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.WordlistPath, "wordlist", "w", "", "Path to newline-delimited candidate words (required)")
	f.StringArrayVarP(&opts.Extensions, "ext", "e", nil, "Extension to append, empty or starting with '.' (repeatable)")
	f.BoolVar(&opts.Dedup, "dedup", false, "Drop duplicate wordlist entries before scanning")

	// Matching
	f.VarP(&intSliceValue{target: &opts.StatusCodes}, "status", "s", "Accepted status codes (repeatable or comma-separated)")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", 20, "Concurrency ceiling")
	f.Float64Var(&timeoutSeconds, "timeout", 5, "Per-request timeout in seconds")
	f.DurationVar(&opts.Delay, "delay", 0, "Delay between requests per thread")
	f.Float64Var(&opts.Rate, "rate", 0, "Global requests/sec ceiling (0 = unlimited)")
	f.BoolVar(&opts.AdaptiveThrottle, "adaptive-throttle", false, "Auto back-off on 429/503 responses")

	// HTTP
	f.StringVar(&opts.Method, "method", "GET", "HTTP method: GET or HEAD")
	f.StringArrayVarP(&headerFlags, "header", "H", nil, "Custom headers (Key: Value)")
	f.StringVar(&opts.UserAgent, "user-agent", "", "Custom User-Agent string")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP/SOCKS proxy URL")
	f.BoolVar(&opts.FollowRedirects, "follow-redirects", false, "Follow HTTP redirects (net/http default policy, 10 hops)")
	f.BoolVar(&opts.VerifySSL, "verify-ssl", false, "Verify TLS certificates")

	// Output
	f.StringVarP(&opts.OutputDir, "output", "o", "reports", "Report directory")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Minimal output")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log individual request failures")

	// Configuration
	f.StringVar(&configFile, "config", "", "YAML config file with flag defaults")

	_ = rootCmd.MarkFlagRequired("wordlist")

	// Custom help: categorized flags like httpx.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprint(w, helpBanner(cmd.Version))
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// intSliceValue implements pflag.Value for comma-separated int slices.
type intSliceValue struct {
	target *[]int
}

func (v *intSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, val := range *v.target {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func (v *intSliceValue) Set(s string) error {
	parts := strings.Split(s, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid status code %q: %w", p, err)
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 36
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	// Show default for non-zero values.
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf(`
     ____ _ __ __
    / __/(_) // /___ _______ ____
   / /_ / / // /(_-</ __/ _ '/ _ \
  /_/  /_/_//_//___/\__/\_,_/_//_/   %s

`, ver)
}
