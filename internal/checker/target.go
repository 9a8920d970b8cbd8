package checker

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
)

// TargetInfo contains parsed target information
type TargetInfo struct {
	Original string // Original input as typed
	Scheme   string // Scheme the user typed, empty when none
	Host     string // Hostname (without scheme, path, port)
	Port     string // Port if specified; informational only, probes use the configured port
}

// ParseTarget parses user input into its components.
// This handles various input formats:
//   - example.com
//   - http://example.com
//   - https://example.com:443/path
//   - example.com:8080
//   - [::1]:80
func ParseTarget(target string) *TargetInfo {
	target = strings.TrimSpace(target)
	info := &TargetInfo{Original: target}
	if target == "" {
		return info
	}

	parsed, err := url.Parse(target)

	// A bare "example.com:8080" parses with scheme "example.com", so anything with a
	// dot in the scheme (or no scheme) gets a placeholder scheme and is parsed again.
	if err != nil || parsed.Scheme == "" || parsed.Host == "" || strings.Contains(parsed.Scheme, ".") {
		parsed, err = url.Parse("placeholder://" + target)
	} else {
		info.Scheme = parsed.Scheme
	}

	if err == nil && parsed != nil {
		info.Host = parsed.Hostname()
		info.Port = parsed.Port()
	}

	// Fallback: if URL parsing completely failed, extract host manually
	if info.Host == "" {
		host := target
		if _, rest, found := strings.Cut(host, "://"); found {
			host = rest
		}
		host = strings.Split(host, "/")[0]
		if h, port, splitErr := net.SplitHostPort(host); splitErr == nil {
			host, info.Port = h, port
		}
		info.Host = host
	}

	return info
}

// ExtractHost extracts just the hostname from user input.
func ExtractHost(target string) string {
	return ParseTarget(target).Host
}

// NormalizeHost returns the bare host to scan, or an error when the input is empty or
// cannot be a DNS name or IP literal.
func NormalizeHost(target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", secaerrors.ErrEmptyTarget
	}
	host := ExtractHost(target)
	if err := validateHost(host); err != nil {
		return "", err
	}
	return host, nil
}

func validateHost(host string) error {
	if host == "" {
		return fmt.Errorf("%w: no host found", secaerrors.ErrInvalidTarget)
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if len(host) > 253 {
		return fmt.Errorf("%w: hostname longer than 253 characters", secaerrors.ErrInvalidTarget)
	}
	for _, label := range strings.Split(strings.TrimSuffix(host, "."), ".") {
		if label == "" || len(label) > 63 {
			return fmt.Errorf("%w: bad label in %q", secaerrors.ErrInvalidTarget, host)
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return fmt.Errorf("%w: label %q starts or ends with '-'", secaerrors.ErrInvalidTarget, label)
		}
		for _, r := range label {
			if !isHostRune(r) {
				return fmt.Errorf("%w: invalid character %q in %q", secaerrors.ErrInvalidTarget, r, host)
			}
		}
	}
	return nil
}

func isHostRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
