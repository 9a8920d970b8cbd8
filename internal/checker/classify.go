package checker

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/khanhnv2901/seca-probe/internal/shared/constants"
	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
)

// Rule names reported in Assessment.Rule.
const (
	RuleAdminPageOpen       = "admin-page-open"
	RuleRedirectOrForbidden = "redirect-or-forbidden"
	RuleCredentialToken     = "credential-token"
	RuleDefault             = "default"
	RuleSensitiveInfo       = "sensitive-info"
	RuleNoSensitiveInfo     = "no-sensitive-info"
	RuleNoResponse          = "no-response"
)

// Assessment is the classifier's verdict on one response. Determined is false when
// there was nothing to classify; Level is then RiskLow, matching what an empty
// response has always been scored as, but callers should report it as unknown.
type Assessment struct {
	Level      RiskLevel `json:"level"`
	Determined bool      `json:"determined"`
	Rule       string    `json:"rule"`
}

// Rule is one row of the admin-response rule table. Rules are evaluated in order and
// the first match wins, so order encodes severity tie-breaking.
type Rule struct {
	Name  string
	Level RiskLevel
	Match func(resp *Response) bool
}

// ClassifierConfig holds the tokens and pattern the classifier matches on. Zero
// fields fall back to the package defaults.
type ClassifierConfig struct {
	AdminMarker      string
	CredentialTokens []string
	SensitivePattern string
}

// Classifier maps raw probe responses to risk levels. It is safe for concurrent use.
type Classifier struct {
	rules     []Rule
	sensitive *regexp.Regexp
}

// NewClassifier builds a classifier from cfg.
func NewClassifier(cfg ClassifierConfig) (*Classifier, error) {
	marker := cfg.AdminMarker
	if marker == "" {
		marker = constants.AdminMarker
	}
	tokens := append([]string(nil), cfg.CredentialTokens...)
	if len(tokens) == 0 {
		tokens = constants.DefaultCredentialTokens()
	}
	pattern := cfg.SensitivePattern
	if pattern == "" {
		pattern = constants.SensitiveInfoPattern
	}

	sensitive, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", secaerrors.ErrInvalidPattern, err)
	}

	return &Classifier{
		rules:     buildAdminRules(marker, tokens),
		sensitive: sensitive,
	}, nil
}

// DefaultClassifier returns a classifier using the built-in tokens and pattern.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier(ClassifierConfig{})
	if err != nil {
		panic(err) // built-in pattern always compiles
	}
	return c
}

func buildAdminRules(marker string, tokens []string) []Rule {
	return []Rule{
		{
			Name:  RuleAdminPageOpen,
			Level: RiskHigh,
			Match: func(resp *Response) bool {
				return statusIs(resp, "HTTP/1.1", 200, "OK") && strings.Contains(resp.Raw, marker)
			},
		},
		{
			Name:  RuleRedirectOrForbidden,
			Level: RiskMedium,
			Match: func(resp *Response) bool {
				return statusIs(resp, "HTTP/1.1", 302, "Found") || statusIs(resp, "HTTP/1.1", 403, "Forbidden")
			},
		},
		{
			Name:  RuleCredentialToken,
			Level: RiskHigh,
			Match: func(resp *Response) bool {
				for _, token := range tokens {
					if strings.Contains(resp.Raw, token) {
						return true
					}
				}
				return false
			},
		},
	}
}

// statusIs compares the status line through the structured view when the response
// parsed. Unparsed blobs fall back to a substring search for the literal line.
func statusIs(resp *Response, proto string, code int, reason string) bool {
	if resp.Parsed {
		return resp.Proto == proto && resp.StatusCode == code && resp.Reason == reason
	}
	return strings.Contains(resp.Raw, fmt.Sprintf("%s %d %s", proto, code, reason))
}

// Rules returns a copy of the ordered admin-response rule table.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// SensitivePattern returns the expression used by ClassifyExposedInfo.
func (c *Classifier) SensitivePattern() string {
	return c.sensitive.String()
}

// ClassifyResponse scores a response from an admin path probe.
func (c *Classifier) ClassifyResponse(resp *Response) Assessment {
	if resp.Empty() {
		return Assessment{Level: RiskLow, Rule: RuleNoResponse}
	}
	for _, rule := range c.rules {
		if rule.Match(resp) {
			return Assessment{Level: rule.Level, Determined: true, Rule: rule.Name}
		}
	}
	return Assessment{Level: RiskLow, Determined: true, Rule: RuleDefault}
}

// ClassifyExposedInfo runs the broader, case-insensitive credential pattern over the
// whole response. It is a separate check from the credential rule in ClassifyResponse.
func (c *Classifier) ClassifyExposedInfo(resp *Response) Assessment {
	if resp.Empty() {
		return Assessment{Level: RiskLow, Rule: RuleNoResponse}
	}
	if c.sensitive.MatchString(resp.Raw) {
		return Assessment{Level: RiskHigh, Determined: true, Rule: RuleSensitiveInfo}
	}
	return Assessment{Level: RiskLow, Determined: true, Rule: RuleNoSensitiveInfo}
}

// ClassifyScheme scores a URL scheme: only "https" is low risk.
func ClassifyScheme(scheme string) RiskLevel {
	if scheme == "https" {
		return RiskLow
	}
	return RiskHigh
}

// SchemeOf extracts the scheme from a URL literal without contacting the host.
func SchemeOf(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Scheme != "" {
		return parsed.Scheme
	}
	if scheme, _, found := strings.Cut(rawURL, "://"); found {
		return scheme
	}
	return ""
}
