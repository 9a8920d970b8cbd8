package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/khanhnv2901/seca-probe/internal/checker"
)

const schemeNote = "Note: only the URL scheme was inspected; no TLS connection to port 443 was attempted."

// presenter renders scan progress. Resolution and Finding are called in report order
// while the scan runs; Finish is called once with the completed report.
type presenter interface {
	Start(target string)
	Resolution(res *checker.Resolution, err error)
	Finding(f checker.Finding)
	Finish(report *checker.Report) error
}

func newPresenter(format string, out io.Writer) presenter {
	if format == outputFormatJSON {
		return &jsonPresenter{out: out}
	}
	return &textPresenter{out: out}
}

type textPresenter struct {
	out    io.Writer
	target string
}

func (p *textPresenter) Start(target string) {
	p.target = target
	fmt.Fprintf(p.out, "%s %s\n\n", colorBold("Scanning host:"), target)
}

func (p *textPresenter) Resolution(res *checker.Resolution, err error) {
	if err != nil {
		fmt.Fprintf(p.out, "%s %s (%v)\n\n", colorError("ERROR: Could not resolve DNS for host"), p.target, err)
		return
	}
	if res == nil {
		return
	}
	fmt.Fprintf(p.out, "DNS Lookup for: %s\n", res.Host)
	for _, addr := range res.Addresses {
		fmt.Fprintf(p.out, "IP Address: %s\n", addr)
	}
	fmt.Fprintf(p.out, "Hostname: %s\n\n", res.CanonicalName)
}

func (p *textPresenter) Finding(f checker.Finding) {
	fmt.Fprintln(p.out, formatSummaryWithColor(f.Summary))
	if f.Determined {
		line := fmt.Sprintf("%s: %s", f.Risk.Label(), f.Risk.Message())
		fmt.Fprintf(p.out, "  %s\n", formatRiskWithColor(f.Risk, true, line))
	} else {
		reason := f.Error
		if reason == "" {
			reason = "no response"
		}
		fmt.Fprintf(p.out, "  %s\n", formatRiskWithColor(f.Risk, false, "Risk could not be determined: "+reason))
	}
	if f.Check == checker.CheckScheme {
		fmt.Fprintf(p.out, "  %s\n", schemeNote)
	}
}

func (p *textPresenter) Finish(report *checker.Report) error {
	counts, undetermined := report.Counts()
	fmt.Fprintf(p.out, "\n%s HIGH=%d MEDIUM=%d LOW=%d UNDETERMINED=%d\n",
		colorBold("Summary:"), counts[checker.RiskHigh], counts[checker.RiskMedium], counts[checker.RiskLow], undetermined)

	highest := report.Highest()
	if highest == 0 {
		fmt.Fprintln(p.out, "Highest risk: none determined")
		return nil
	}
	fmt.Fprintf(p.out, "Highest risk: %s\n", formatRiskWithColor(highest, true, highest.String()))
	return nil
}

// jsonPresenter writes the whole report once the scan is complete.
type jsonPresenter struct {
	out io.Writer
}

func (p *jsonPresenter) Start(string) {}

func (p *jsonPresenter) Resolution(*checker.Resolution, error) {}

func (p *jsonPresenter) Finding(checker.Finding) {}

func (p *jsonPresenter) Finish(report *checker.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}
