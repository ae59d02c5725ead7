// Package config builds the normalized Options record a scan runs with,
// either from CLI flags or from a JSON/YAML config file.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lightkeeper-ci/lightkeeper/pkg/duration"
	"github.com/lightkeeper-ci/lightkeeper/pkg/jsonutil"
)

// Options holds all configuration for a run. Built once per invocation and
// treated as read-only afterwards.
type Options struct {
	// Scan settings
	URLs       []string           `json:"urls" yaml:"urls"`
	OnlyAudits []string           `json:"onlyAudits" yaml:"onlyAudits"`
	Scores     map[string]float64 `json:"scores" yaml:"scores"` // category id -> minimum score, 0-100 scale

	// View settings
	ShowAudits   bool `json:"showAudits" yaml:"showAudits"`
	AllAudits    bool `json:"allAudits" yaml:"allAudits"`
	ExtendedInfo bool `json:"extendedInfo" yaml:"extendedInfo"`

	// Tooling settings
	ChromePath       string `json:"chromePath,omitempty" yaml:"chromePath,omitempty"`
	LighthousePath   string `json:"lighthousePath,omitempty" yaml:"lighthousePath,omitempty"`
	EngineConfigPath string `json:"engineConfigPath,omitempty" yaml:"engineConfigPath,omitempty"`
	ShowBrowser      bool   `json:"showBrowser,omitempty" yaml:"showBrowser,omitempty"`

	// Output settings, flags only
	Timeout time.Duration `json:"-" yaml:"-"`
	NoColor bool          `json:"-" yaml:"-"`
	Quiet   bool          `json:"-" yaml:"-"`
	Verbose bool          `json:"-" yaml:"-"`
	Version bool          `json:"-" yaml:"-"`
}

// WithDefaults returns a copy of o with unset collection fields filled in.
// It never overwrites an explicitly provided value.
func WithDefaults(o Options) Options {
	if o.URLs == nil {
		o.URLs = []string{}
	}
	if o.OnlyAudits == nil {
		o.OnlyAudits = []string{}
	}
	if o.Timeout == 0 {
		o.Timeout = duration.ScanDefault
	}
	return o
}

// ParseFlags parses os.Args and returns the run Options.
func ParseFlags() (*Options, error) {
	return ParseArgs(os.Args[1:], os.Stderr)
}

// ParseArgs parses the given argument list. errOut receives usage text.
func ParseArgs(args []string, errOut io.Writer) (*Options, error) {
	fs := flag.NewFlagSet("lightkeeper", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var (
		configPath string
		url        string
		audits     string
		scores     string
	)
	opts := &Options{}

	// === INPUT ===
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file (takes precedence over other flags)")
	fs.StringVar(&url, "url", "", "Target URL to audit")
	fs.StringVar(&url, "u", "", "Target URL (alias)")

	// === FILTERING ===
	fs.StringVar(&audits, "audits", "", "Comma-separated audit IDs to show")
	fs.StringVar(&audits, "a", "", "Audit IDs (alias)")
	fs.StringVar(&scores, "scores", "", "Comma-separated category:minScore pairs (e.g. performance:90,seo:70)")
	fs.StringVar(&scores, "s", "", "Score thresholds (alias)")
	fs.BoolVar(&opts.AllAudits, "all-audits", false, "Show every audit, ignoring -audits")

	// === VIEWS ===
	fs.BoolVar(&opts.ShowAudits, "showaudits", false, "List audit IDs, titles and descriptions instead of scoring")
	fs.BoolVar(&opts.ExtendedInfo, "extended-info", false, "Print full detail for every audit, not just failed ones")
	fs.BoolVar(&opts.ExtendedInfo, "e", false, "Extended info (alias)")

	// === TOOLING ===
	fs.StringVar(&opts.ChromePath, "chrome-path", "", "Chrome/Chromium binary (default: auto-discover)")
	fs.StringVar(&opts.LighthousePath, "lighthouse-path", "", "Lighthouse binary (default: PATH lookup)")
	fs.StringVar(&opts.EngineConfigPath, "engine-config", "", "Lighthouse config file passed through verbatim")
	fs.BoolVar(&opts.ShowBrowser, "show-browser", false, "Run Chrome with a visible window (debugging)")
	timeout := fs.Int("timeout", 0, "Per-URL scan timeout in seconds (0 = default)")

	// === OUTPUT ===
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&opts.NoColor, "nc", false, "No color (alias)")
	fs.BoolVar(&opts.Quiet, "quiet", false, "Suppress banner and progress lines")
	fs.BoolVar(&opts.Quiet, "q", false, "Quiet (alias)")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Verbose diagnostics")
	fs.BoolVar(&opts.Verbose, "v", false, "Verbose (alias)")
	fs.BoolVar(&opts.Version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if opts.Version {
		return opts, nil
	}

	if configPath != "" {
		// The file is the options verbatim; only -showaudits overlays it.
		fileOpts, err := FromFile(configPath)
		if err != nil {
			return nil, err
		}
		if opts.ShowAudits {
			fileOpts.ShowAudits = true
		}
		fileOpts.Timeout = time.Duration(*timeout) * time.Second
		fileOpts.NoColor = opts.NoColor
		fileOpts.Quiet = opts.Quiet
		fileOpts.Verbose = opts.Verbose
		*fileOpts = WithDefaults(*fileOpts)
		return fileOpts, nil
	}

	if url != "" {
		opts.URLs = []string{url}
	}
	if audits != "" {
		opts.OnlyAudits = splitList(audits)
	}
	if scores != "" {
		parsed, err := ParseScoreThresholds(scores)
		if err != nil {
			return nil, err
		}
		opts.Scores = parsed
	}
	opts.Timeout = time.Duration(*timeout) * time.Second

	if len(opts.URLs) == 0 {
		return nil, fmt.Errorf("%w: target required, use -url or -config", ErrMissingRequired)
	}

	*opts = WithDefaults(*opts)
	return opts, nil
}

// FromFile reads Options verbatim from a JSON or YAML file. The format is
// chosen by extension; anything that is not .yaml/.yml is decoded as JSON.
func FromFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}

	var opts Options
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &opts)
	default:
		err = jsonutil.Unmarshal(data, &opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return &opts, nil
}

// ParseScoreThresholds parses a comma-separated list of category:minScore
// pairs into a threshold map. Each token is split on its FIRST colon, so
// category ids containing colons later still parse. Malformed tokens are
// configuration errors, not panics.
func ParseScoreThresholds(s string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		category, minScore, ok := strings.Cut(tok, ":")
		if !ok || category == "" {
			return nil, fmt.Errorf("%w: malformed score threshold %q, want category:minScore", ErrInvalidConfig, tok)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(minScore), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: score threshold %q: %q is not a number", ErrInvalidConfig, tok, minScore)
		}
		out[strings.TrimSpace(category)] = v
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty score threshold list", ErrInvalidConfig)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
