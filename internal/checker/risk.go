package checker

import (
	"fmt"
	"strings"

	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
)

// RiskLevel is the coarse severity of a single finding. Levels are ordered, so
// RiskHigh > RiskMedium > RiskLow holds.
type RiskLevel int

const (
	RiskLow RiskLevel = iota + 1
	RiskMedium
	RiskHigh
)

var riskMessages = map[RiskLevel]string{
	RiskLow:    "Minor issue, unlikely to cause significant harm.",
	RiskMedium: "Moderate issue, needs attention to prevent exploitation.",
	RiskHigh:   "Critical vulnerability, immediate action required.",
}

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("RiskLevel(%d)", int(r))
	}
}

// Message renders the level to its fixed descriptive sentence.
func (r RiskLevel) Message() string {
	return riskMessages[r]
}

// Label is the short prefix printed in front of Message, e.g. "High risk".
func (r RiskLevel) Label() string {
	switch r {
	case RiskLow:
		return "Low risk"
	case RiskMedium:
		return "Medium risk"
	case RiskHigh:
		return "High risk"
	default:
		return "Unknown risk"
	}
}

// Valid reports whether r is one of the defined levels.
func (r RiskLevel) Valid() bool {
	_, ok := riskMessages[r]
	return ok
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", secaerrors.ErrInvalidRiskLevel, int(r))
	}
	return []byte(strings.ToLower(r.String())), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// ParseRiskLevel accepts "low", "medium" or "high" in any case.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	}
	return 0, fmt.Errorf("%w: %q (want low|medium|high)", secaerrors.ErrInvalidRiskLevel, s)
}
