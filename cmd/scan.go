package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/khanhnv2901/seca-probe/internal/checker"
	"github.com/spf13/cobra"
)

const targetPrompt = "Enter the website (e.g., example.com): "

var errNoWebsiteEntered = errors.New("No website entered.") //nolint:staticcheck // user-facing message

var scanCmd = &cobra.Command{
	Use:   "scan [host]",
	Short: "Probe one host over plain HTTP for common exposures",
	Long: `Probe a single host on port 80 and report:
- whether the site is reached over HTTPS (URL scheme only)
- admin pages (/admin, /dashboard, /login, /wp-admin) answering without authentication
- credential-like strings on the main page

The host is read from the argument or, when omitted, from standard input.
Only scan hosts you are authorized to test.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

// newScanner builds the scanner from runtime configuration. Tests replace it.
var newScanner = func(appCtx *AppContext) (*checker.Scanner, error) {
	cfg := appCtx.Config

	classifier, err := checker.NewClassifier(checker.ClassifierConfig{
		AdminMarker:      cfg.Classifier.AdminMarker,
		CredentialTokens: cfg.Classifier.CredentialTokens,
		SensitivePattern: cfg.Classifier.SensitivePattern,
	})
	if err != nil {
		return nil, &InputError{Input: "classifier configuration", Err: err}
	}

	timeout := time.Duration(cfg.Probe.TimeoutSecs) * time.Second
	scanner := &checker.Scanner{
		Prober: &checker.TCPProber{
			Port:             cfg.Probe.Port,
			Timeout:          timeout,
			MaxResponseBytes: cfg.Probe.MaxResponseBytes,
			Logger:           appCtx.Logger,
		},
		Classifier: classifier,
		Runner: &checker.Runner{
			Concurrency: cfg.Probe.Concurrency,
			RateLimit:   cfg.Probe.RateLimit,
			Timeout:     timeout,
		},
		AdminPaths: append([]string(nil), cfg.Probe.AdminPaths...),
		Logger:     appCtx.Logger,
	}
	if !cfg.DNS.Skip {
		scanner.Resolver = &checker.Resolver{
			Timeout:    time.Duration(cfg.DNS.Timeout) * time.Second,
			NameServer: cfg.DNS.Nameservers,
		}
	}
	return scanner, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	appCtx := getAppContext(cmd)
	cfg := appCtx.Config
	out := cmd.OutOrStdout()

	// keep stdout parseable in JSON mode
	promptOut := out
	if cfg.Output.Format == outputFormatJSON {
		promptOut = cmd.ErrOrStderr()
	}

	raw, err := readTarget(args, cmd.InOrStdin(), promptOut)
	if err != nil {
		return err
	}
	if raw == "" {
		return &InputError{Err: errNoWebsiteEntered}
	}

	host, err := checker.NormalizeHost(raw)
	if err != nil {
		return &InputError{Input: "target", Err: err}
	}

	scanner, err := newScanner(appCtx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := newPresenter(cfg.Output.Format, out)
	scanner.OnResolve = p.Resolution
	scanner.OnFinding = p.Finding

	stopProgress := func() {}
	if cfg.Output.Progress && cfg.Output.Format == outputFormatText {
		progress := newProgressPrinter(cmd.ErrOrStderr(), host, len(scanner.AdminPaths)+1)
		scanner.OnProbe = func(res checker.ProbeResult) {
			progress.Record(!res.Response.Empty(), res.Response.Duration)
		}
		progress.Start()
		stopProgress = progress.Stop
	}

	p.Start(host)
	report, err := scanner.Scan(ctx, host)
	stopProgress()
	if err != nil {
		return &InputError{Input: "target", Err: err}
	}
	if err := p.Finish(report); err != nil {
		return err
	}

	if ctx.Err() != nil {
		return fmt.Errorf("scan interrupted: %w", ctx.Err())
	}
	return failOnRisk(report, cfg.Output.FailOn)
}

// readTarget returns the host argument, or prompts for one line on in.
func readTarget(args []string, in io.Reader, promptOut io.Writer) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}

	fmt.Fprint(promptOut, targetPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read target: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func failOnRisk(report *checker.Report, threshold string) error {
	if threshold == "" {
		return nil
	}
	level, err := checker.ParseRiskLevel(threshold)
	if err != nil {
		return &InputError{Input: "fail-on", Err: err}
	}
	if highest := report.Highest(); highest >= level {
		return &ExitError{
			Code: exitCodeRiskFound,
			Err:  fmt.Errorf("highest risk %s is at or above --fail-on %s", highest, level),
		}
	}
	return nil
}

func init() {
	f := scanCmd.Flags()
	f.IntVarP(&cliConfig.Probe.TimeoutSecs, "timeout", "t", cliConfig.Probe.TimeoutSecs, "per-probe timeout in seconds")
	f.IntVarP(&cliConfig.Probe.Concurrency, "concurrency", "c", cliConfig.Probe.Concurrency, "max concurrent probes (results keep path order)")
	f.IntVarP(&cliConfig.Probe.RateLimit, "rate", "r", cliConfig.Probe.RateLimit, "probes per second (0 disables limiting)")
	f.StringSliceVar(&cliConfig.Probe.AdminPaths, "paths", cliConfig.Probe.AdminPaths, "admin paths to probe (e.g., /admin,/login)")
	f.StringVarP(&cliConfig.Output.Format, "output", "o", cliConfig.Output.Format, "output format (text|json)")
	f.StringVar(&cliConfig.Output.FailOn, "fail-on", cliConfig.Output.FailOn, "exit with status 3 when a finding reaches this risk (low|medium|high)")
	f.IntVar(&cliConfig.DNS.Timeout, "dns-timeout", cliConfig.DNS.Timeout, "DNS query timeout in seconds")
	f.StringSliceVar(&cliConfig.DNS.Nameservers, "nameservers", cliConfig.DNS.Nameservers, "Custom DNS nameservers (e.g., 8.8.8.8:53,1.1.1.1:53)")
	f.BoolVar(&cliConfig.Output.Progress, "progress", cliConfig.Output.Progress, "display a live probe counter on stderr")
	f.BoolVar(&cliConfig.DNS.Skip, "no-dns", cliConfig.DNS.Skip, "skip the diagnostic DNS lookup")
}
