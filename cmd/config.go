package cmd

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/khanhnv2901/seca-probe/internal/checker"
	"github.com/khanhnv2901/seca-probe/internal/shared/constants"
	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultProbeTimeoutSecs = int(constants.DefaultProbeTimeout / time.Second)
	defaultDNSTimeoutSecs   = int(constants.DefaultDNSTimeout / time.Second)
	defaultLogLevel         = "warn"

	outputFormatText = "text"
	outputFormatJSON = "json"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	LogLevel   string
	Probe      ProbeConfig
	Classifier ClassifierConfig
	DNS        DNSConfig
	Output     OutputConfig
}

// ProbeConfig groups prober and runner options.
type ProbeConfig struct {
	Port             int
	TimeoutSecs      int
	Concurrency      int
	RateLimit        int
	AdminPaths       []string
	MaxResponseBytes int64
}

// ClassifierConfig overrides the tokens and pattern the classifier matches on.
type ClassifierConfig struct {
	AdminMarker      string
	CredentialTokens []string
	SensitivePattern string
}

// DNSConfig groups DNS-specific runtime options.
type DNSConfig struct {
	Skip        bool
	Nameservers []string
	Timeout     int
}

// OutputConfig controls how findings are presented.
type OutputConfig struct {
	Format   string
	FailOn   string
	Progress bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		LogLevel: defaultLogLevel,
		Probe: ProbeConfig{
			Port:             constants.DefaultHTTPPort,
			TimeoutSecs:      defaultProbeTimeoutSecs,
			Concurrency:      1,
			RateLimit:        0,
			AdminPaths:       constants.DefaultAdminPaths(),
			MaxResponseBytes: constants.MaxResponseBytes,
		},
		Classifier: ClassifierConfig{
			AdminMarker:      constants.AdminMarker,
			CredentialTokens: constants.DefaultCredentialTokens(),
			SensitivePattern: constants.SensitiveInfoPattern,
		},
		DNS: DNSConfig{
			Nameservers: []string{},
			Timeout:     defaultDNSTimeoutSecs,
		},
		Output: OutputConfig{
			Format: outputFormatText,
		},
	}
}

// Validate rejects settings that would make a scan meaningless or hang.
func (c *CLIConfig) Validate() error {
	if c.Probe.Port < 1 || c.Probe.Port > 65535 {
		return fmt.Errorf("probe port %d out of range 1-65535", c.Probe.Port)
	}
	if c.Probe.TimeoutSecs <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %d", c.Probe.TimeoutSecs)
	}
	if c.Probe.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Probe.Concurrency)
	}
	if c.Probe.RateLimit < 0 {
		return fmt.Errorf("rate must not be negative, got %d", c.Probe.RateLimit)
	}
	if len(c.Probe.AdminPaths) == 0 {
		return fmt.Errorf("at least one admin path is required")
	}
	for _, p := range c.Probe.AdminPaths {
		if !strings.HasPrefix(p, "/") || strings.ContainsAny(p, " \r\n") {
			return fmt.Errorf("%w: %q", secaerrors.ErrInvalidPath, p)
		}
	}
	if _, err := regexp.Compile(c.Classifier.SensitivePattern); err != nil {
		return fmt.Errorf("%w: %v", secaerrors.ErrInvalidPattern, err)
	}
	if c.DNS.Timeout <= 0 {
		return fmt.Errorf("dns timeout must be positive, got %d", c.DNS.Timeout)
	}
	switch c.Output.Format {
	case outputFormatText, outputFormatJSON:
	default:
		return fmt.Errorf("%w: %q (want text|json)", secaerrors.ErrInvalidFormat, c.Output.Format)
	}
	if c.Output.FailOn != "" {
		if _, err := checker.ParseRiskLevel(c.Output.FailOn); err != nil {
			return err
		}
	}
	return nil
}

// applyConfigDefaults merges config file values into the runtime config when the user
// did not explicitly set the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()

	if viper.IsSet("log_level") {
		applyStringDefault(flags, "log-level", viper.GetString("log_level"), func(v string) { cliConfig.LogLevel = v })
	}
	if viper.IsSet("probe.port") {
		cliConfig.Probe.Port = viper.GetInt("probe.port")
	}
	if viper.IsSet("probe.timeout_secs") {
		applyIntDefault(flags, "timeout", viper.GetInt("probe.timeout_secs"), func(v int) { cliConfig.Probe.TimeoutSecs = v })
	}
	if viper.IsSet("probe.concurrency") {
		applyIntDefault(flags, "concurrency", viper.GetInt("probe.concurrency"), func(v int) { cliConfig.Probe.Concurrency = v })
	}
	if viper.IsSet("probe.rate") {
		applyIntDefault(flags, "rate", viper.GetInt("probe.rate"), func(v int) { cliConfig.Probe.RateLimit = v })
	}
	if viper.IsSet("probe.admin_paths") {
		applyStringSliceDefault(flags, "paths", viper.GetStringSlice("probe.admin_paths"), func(v []string) { cliConfig.Probe.AdminPaths = v })
	}
	if viper.IsSet("probe.max_response_bytes") {
		cliConfig.Probe.MaxResponseBytes = viper.GetInt64("probe.max_response_bytes")
	}
	if viper.IsSet("classifier.admin_marker") {
		cliConfig.Classifier.AdminMarker = viper.GetString("classifier.admin_marker")
	}
	if viper.IsSet("classifier.credential_tokens") {
		cliConfig.Classifier.CredentialTokens = viper.GetStringSlice("classifier.credential_tokens")
	}
	if viper.IsSet("classifier.sensitive_pattern") {
		cliConfig.Classifier.SensitivePattern = viper.GetString("classifier.sensitive_pattern")
	}
	if viper.IsSet("dns.skip") {
		applyBoolDefault(flags, "no-dns", viper.GetBool("dns.skip"), func(v bool) { cliConfig.DNS.Skip = v })
	}
	if viper.IsSet("dns.nameservers") {
		applyStringSliceDefault(flags, "nameservers", viper.GetStringSlice("dns.nameservers"), func(v []string) { cliConfig.DNS.Nameservers = v })
	}
	if viper.IsSet("dns.timeout_secs") {
		applyIntDefault(flags, "dns-timeout", viper.GetInt("dns.timeout_secs"), func(v int) { cliConfig.DNS.Timeout = v })
	}
	if viper.IsSet("output.format") {
		applyStringDefault(flags, "output", viper.GetString("output.format"), func(v string) { cliConfig.Output.Format = v })
	}
	if viper.IsSet("output.progress") {
		applyBoolDefault(flags, "progress", viper.GetBool("output.progress"), func(v bool) { cliConfig.Output.Progress = v })
	}
	if viper.IsSet("output.fail_on") {
		applyStringDefault(flags, "fail-on", viper.GetString("output.fail_on"), func(v string) { cliConfig.Output.FailOn = v })
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringDefault(flags *pflag.FlagSet, name, value string, setter func(string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringSliceDefault(flags *pflag.FlagSet, name string, value []string, setter func([]string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(append([]string(nil), value...))
}
