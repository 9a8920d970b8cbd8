package checker

import (
	"encoding/json"
	"errors"
	"testing"

	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
)

func TestRiskLevel_Message(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  string
	}{
		{RiskLow, "Minor issue, unlikely to cause significant harm."},
		{RiskMedium, "Moderate issue, needs attention to prevent exploitation."},
		{RiskHigh, "Critical vulnerability, immediate action required."},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRiskLevel_Ordering(t *testing.T) {
	if !(RiskLow < RiskMedium && RiskMedium < RiskHigh) {
		t.Fatalf("risk levels must be ordered by severity")
	}
}

func TestRiskLevel_StringAndLabel(t *testing.T) {
	if RiskHigh.String() != "HIGH" || RiskHigh.Label() != "High risk" {
		t.Errorf("unexpected rendering for RiskHigh: %s / %s", RiskHigh.String(), RiskHigh.Label())
	}
	if RiskLevel(0).Valid() {
		t.Errorf("zero value must not be a valid level")
	}
	if got := RiskLevel(9).String(); got != "RiskLevel(9)" {
		t.Errorf("String() for unknown level = %q", got)
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    RiskLevel
		wantErr bool
	}{
		{"low", RiskLow, false},
		{"Medium", RiskMedium, false},
		{" HIGH ", RiskHigh, false},
		{"critical", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRiskLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, secaerrors.ErrInvalidRiskLevel) {
					t.Fatalf("expected ErrInvalidRiskLevel, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRiskLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRiskLevel_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Risk RiskLevel `json:"risk"`
	}{Risk: RiskMedium})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"risk":"medium"}` {
		t.Fatalf("unexpected JSON %s", data)
	}

	var decoded struct {
		Risk RiskLevel `json:"risk"`
	}
	if err := json.Unmarshal([]byte(`{"risk":"high"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Risk != RiskHigh {
		t.Fatalf("decoded risk = %v, want HIGH", decoded.Risk)
	}
}
