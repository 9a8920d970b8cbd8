package checker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/khanhnv2901/seca-probe/internal/shared/constants"
	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
	"go.uber.org/zap"
)

// Check identifiers used in Finding.Check.
const (
	CheckScheme      = "scheme"
	CheckAdminPath   = "admin_path"
	CheckExposedInfo = "exposed_info"
)

// Finding is the outcome of one check against the target.
type Finding struct {
	Check      string    `json:"check"`
	Target     string    `json:"target"`
	Path       string    `json:"path,omitempty"`
	URL        string    `json:"url,omitempty"`
	Risk       RiskLevel `json:"risk"`
	Determined bool      `json:"determined"`
	Rule       string    `json:"rule"`
	Summary    string    `json:"summary"`
	StatusCode int       `json:"status_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS float64   `json:"duration_ms,omitempty"`
	Truncated  bool      `json:"truncated,omitempty"`
}

// Report collects everything a scan produced, in the order the checks ran.
type Report struct {
	Target       string      `json:"target"`
	StartedAt    time.Time   `json:"started_at"`
	CompletedAt  time.Time   `json:"completed_at"`
	Resolution   *Resolution `json:"resolution,omitempty"`
	ResolveError string      `json:"resolve_error,omitempty"`
	Findings     []Finding   `json:"findings"`
}

// Highest returns the most severe determined risk in the report, or 0 when no
// finding was determined.
func (r *Report) Highest() RiskLevel {
	var highest RiskLevel
	for _, f := range r.Findings {
		if f.Determined && f.Risk > highest {
			highest = f.Risk
		}
	}
	return highest
}

// Counts tallies determined findings per risk level plus undetermined ones.
func (r *Report) Counts() (byLevel map[RiskLevel]int, undetermined int) {
	byLevel = map[RiskLevel]int{RiskLow: 0, RiskMedium: 0, RiskHigh: 0}
	for _, f := range r.Findings {
		if !f.Determined {
			undetermined++
			continue
		}
		byLevel[f.Risk]++
	}
	return byLevel, undetermined
}

// Scanner runs the full sequence of checks against a single host.
type Scanner struct {
	Resolver   HostResolver
	Prober     Prober
	Classifier *Classifier
	Runner     *Runner
	AdminPaths []string // defaults to constants.DefaultAdminPaths
	Logger     *zap.SugaredLogger

	// OnResolve, when set, receives the resolution outcome before any probe runs.
	OnResolve func(*Resolution, error)

	// OnProbe, when set, receives each probe result as soon as the probe returns. It
	// may be called concurrently when the runner allows more than one probe in flight.
	OnProbe ProbeFunc

	// OnFinding, when set, receives each finding as soon as it is final. It is
	// always called from the scanning goroutine, in report order.
	OnFinding func(Finding)
}

// Scan resolves host, checks its scheme, probes each admin path and finally probes
// the root path for exposed information. A failed resolution or probe is recorded in
// the report and never stops the scan. Only an empty host is an error, and in that
// case no network call is made.
func (s *Scanner) Scan(ctx context.Context, host string) (*Report, error) {
	if host == "" {
		return nil, secaerrors.ErrEmptyTarget
	}

	log := s.logger()
	classifier := s.Classifier
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	runner := s.Runner
	if runner == nil {
		runner = &Runner{Concurrency: 1}
	}
	paths := s.AdminPaths
	if len(paths) == 0 {
		paths = constants.DefaultAdminPaths()
	}

	report := &Report{
		Target:    host,
		StartedAt: time.Now().UTC(),
		Findings:  make([]Finding, 0, len(paths)+2),
	}
	emit := func(f Finding) {
		report.Findings = append(report.Findings, f)
		if s.OnFinding != nil {
			s.OnFinding(f)
		}
	}

	log.Infow("scan started", "target", host, "admin_paths", len(paths))

	if s.Resolver != nil {
		resolution, err := s.Resolver.Resolve(ctx, host)
		if err != nil {
			log.Warnw("resolution failed, probing directly", "target", host, "error", err)
			report.ResolveError = err.Error()
		} else {
			report.Resolution = resolution
		}
		if s.OnResolve != nil {
			s.OnResolve(resolution, err)
		}
	}

	emit(schemeFinding(host, "http://"+urlHost(host)))

	onProbe := func(res ProbeResult) {
		log.Debugw("path probed", "path", res.Path, "status", res.Response.StatusCode, "error", res.Response.Err)
		if s.OnProbe != nil {
			s.OnProbe(res)
		}
	}

	results := runner.RunProbes(ctx, host, paths, s.Prober, onProbe)
	for _, res := range results {
		emit(adminFinding(host, res.Path, res.Response, classifier.ClassifyResponse(res.Response)))
	}

	rootResults := runner.RunProbes(ctx, host, []string{constants.RootPath}, s.Prober, onProbe)
	root := rootResults[0].Response
	emit(exposedInfoFinding(host, root, classifier.ClassifyExposedInfo(root)))

	report.CompletedAt = time.Now().UTC()
	log.Infow("scan finished", "target", host, "findings", len(report.Findings), "highest", report.Highest().String())
	return report, nil
}

func (s *Scanner) logger() *zap.SugaredLogger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop().Sugar()
}

func schemeFinding(host, rawURL string) Finding {
	level := ClassifyScheme(SchemeOf(rawURL))
	f := Finding{
		Check:      CheckScheme,
		Target:     host,
		URL:        rawURL,
		Risk:       level,
		Determined: true,
		Rule:       "scheme",
	}
	if level == RiskLow {
		f.Summary = "GOOD: The website is using HTTPS."
	} else {
		f.Summary = "WARNING: The website is not using HTTPS. Data might not be encrypted."
	}
	return f
}

func adminFinding(host, path string, resp *Response, a Assessment) Finding {
	f := probeFinding(CheckAdminPath, host, path, resp, a)
	switch a.Rule {
	case RuleAdminPageOpen:
		f.Summary = fmt.Sprintf("WARNING: Admin page %s is accessible without authentication!", path)
	case RuleRedirectOrForbidden:
		f.Summary = fmt.Sprintf("WARNING: Admin page %s might be exposed (Redirect or Forbidden).", path)
	case RuleCredentialToken:
		f.Summary = fmt.Sprintf("WARNING: Admin page %s response contains credential-like strings!", path)
	case RuleNoResponse:
		f.Summary = fmt.Sprintf("UNKNOWN: %s could not be checked (no response).", path)
	default:
		f.Summary = fmt.Sprintf("GOOD: %s is secured.", path)
	}
	return f
}

func exposedInfoFinding(host string, resp *Response, a Assessment) Finding {
	f := probeFinding(CheckExposedInfo, host, constants.RootPath, resp, a)
	switch a.Rule {
	case RuleSensitiveInfo:
		f.Summary = "WARNING: The website might be exposing sensitive information!"
	case RuleNoResponse:
		f.Summary = "UNKNOWN: The main page could not be checked (no response)."
	default:
		f.Summary = "GOOD: No sensitive info detected on the main page."
	}
	return f
}

func probeFinding(check, host, path string, resp *Response, a Assessment) Finding {
	f := Finding{
		Check:      check,
		Target:     host,
		Path:       path,
		URL:        "http://" + urlHost(host) + path,
		Risk:       a.Level,
		Determined: a.Determined,
		Rule:       a.Rule,
	}
	if resp != nil {
		f.StatusCode = resp.StatusCode
		f.DurationMS = float64(resp.Duration.Microseconds()) / 1000
		f.Truncated = resp.Truncated
		if resp.Err != nil {
			f.Error = resp.Err.Error()
		}
	}
	return f
}

// urlHost brackets IPv6 literals so they can be embedded in a URL.
func urlHost(host string) string {
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}
