package checker

import (
	"errors"
	"testing"

	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
)

func TestClassifyScheme(t *testing.T) {
	tests := []struct {
		scheme string
		want   RiskLevel
	}{
		{"https", RiskLow},
		{"http", RiskHigh},
		{"HTTPS", RiskHigh},
		{"ftp", RiskHigh},
		{"", RiskHigh},
		{"https ", RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			if got := ClassifyScheme(tt.scheme); got != tt.want {
				t.Errorf("ClassifyScheme(%q) = %v, want %v", tt.scheme, got, tt.want)
			}
		})
	}
}

func TestSchemeOf(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://example.com", "http"},
		{"https://example.com/path", "https"},
		{"http://[::1]", "http"},
		{"example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := SchemeOf(tt.url); got != tt.want {
				t.Errorf("SchemeOf(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassifyResponse(t *testing.T) {
	classifier := DefaultClassifier()

	tests := []struct {
		name     string
		raw      string
		want     RiskLevel
		wantRule string
	}{
		{
			name:     "admin page answered plainly",
			raw:      "HTTP/1.1 200 OK\n\n<h1>admin panel</h1>",
			want:     RiskHigh,
			wantRule: RuleAdminPageOpen,
		},
		{
			name:     "admin 200 wins over quoted 302",
			raw:      "HTTP/1.1 200 OK\nContent-Type: text/html\n\nadmin log: HTTP/1.1 302 Found",
			want:     RiskHigh,
			wantRule: RuleAdminPageOpen,
		},
		{
			name:     "redirect",
			raw:      "HTTP/1.1 302 Found\nLocation: /login",
			want:     RiskMedium,
			wantRule: RuleRedirectOrForbidden,
		},
		{
			name:     "forbidden",
			raw:      "HTTP/1.1 403 Forbidden\n\nnope",
			want:     RiskMedium,
			wantRule: RuleRedirectOrForbidden,
		},
		{
			name:     "redirect beats credential token",
			raw:      "HTTP/1.1 302 Found\n\npassword",
			want:     RiskMedium,
			wantRule: RuleRedirectOrForbidden,
		},
		{
			name:     "credential token in body",
			raw:      "HTTP/1.1 200 OK\n\nconst api_key = 'abc'",
			want:     RiskHigh,
			wantRule: RuleCredentialToken,
		},
		{
			name:     "credential tokens are case sensitive",
			raw:      "HTTP/1.1 404 Not Found\n\nPASSWORD API_KEY",
			want:     RiskLow,
			wantRule: RuleDefault,
		},
		{
			name:     "200 without admin marker",
			raw:      "HTTP/1.1 200 OK\n\nWelcome",
			want:     RiskLow,
			wantRule: RuleDefault,
		},
		{
			name:     "quoted status line in body of a 404",
			raw:      "HTTP/1.1 404 Not Found\n\nadmin docs: expect HTTP/1.1 200 OK or HTTP/1.1 403 Forbidden",
			want:     RiskLow,
			wantRule: RuleDefault,
		},
		{
			name:     "HTTP/1.0 200 is not the admin marker",
			raw:      "HTTP/1.0 200 OK\n\nadmin",
			want:     RiskLow,
			wantRule: RuleDefault,
		},
		{
			name:     "unparsed blob falls back to substring search",
			raw:      "garbage HTTP/1.1 403 Forbidden",
			want:     RiskMedium,
			wantRule: RuleRedirectOrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.ClassifyResponse(ParseResponse(tt.raw))
			if got.Level != tt.want {
				t.Errorf("level = %v, want %v", got.Level, tt.want)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("rule = %q, want %q", got.Rule, tt.wantRule)
			}
			if !got.Determined {
				t.Errorf("expected a determined assessment")
			}
		})
	}
}

func TestClassifyResponse_EmptyIsUndetermined(t *testing.T) {
	classifier := DefaultClassifier()

	for name, resp := range map[string]*Response{
		"nil":      nil,
		"sentinel": ParseResponse(""),
	} {
		t.Run(name, func(t *testing.T) {
			got := classifier.ClassifyResponse(resp)
			if got.Determined {
				t.Fatalf("expected undetermined assessment, got %+v", got)
			}
			if got.Level != RiskLow || got.Rule != RuleNoResponse {
				t.Fatalf("unexpected assessment %+v", got)
			}
		})
	}
}

func TestClassifyExposedInfo(t *testing.T) {
	classifier := DefaultClassifier()

	tests := []struct {
		name string
		raw  string
		want RiskLevel
	}{
		{"welcome page", "HTTP/1.1 200 OK\n\nWelcome", RiskLow},
		{"password anywhere", "HTTP/1.1 404 Not Found\n\nforgot your password?", RiskHigh},
		{"password regardless of status", "HTTP/1.1 500 Internal Server Error\n\npassword", RiskHigh},
		{"mixed case api key", "HTTP/1.1 200 OK\n\nAPI-Key: x", RiskHigh},
		{"apikey without separator", "HTTP/1.1 200 OK\n\nApiKey", RiskHigh},
		{"secret", "HTTP/1.1 200 OK\n\nclient_SECRET=1", RiskHigh},
		{"token in header", "HTTP/1.1 200 OK\nX-Csrf-Token: abc\n\n", RiskHigh},
		{"nothing sensitive", "HTTP/1.1 200 OK\n\n<p>hello</p>", RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.ClassifyExposedInfo(ParseResponse(tt.raw))
			if got.Level != tt.want {
				t.Errorf("ClassifyExposedInfo(%q) = %v, want %v", tt.raw, got.Level, tt.want)
			}
		})
	}

	if got := classifier.ClassifyExposedInfo(ParseResponse("")); got.Determined {
		t.Errorf("empty response should be undetermined, got %+v", got)
	}
}

func TestClassifier_BroadAndNarrowChecksDiffer(t *testing.T) {
	classifier := DefaultClassifier()
	resp := ParseResponse("HTTP/1.1 200 OK\n\nPassword reset")

	if got := classifier.ClassifyResponse(resp); got.Level != RiskLow {
		t.Errorf("admin classifier should ignore capitalized token, got %v", got.Level)
	}
	if got := classifier.ClassifyExposedInfo(resp); got.Level != RiskHigh {
		t.Errorf("exposed-info check should match case-insensitively, got %v", got.Level)
	}
}

func TestNewClassifier_CustomConfig(t *testing.T) {
	classifier, err := NewClassifier(ClassifierConfig{
		AdminMarker:      "console",
		CredentialTokens: []string{"AWS_SECRET"},
		SensitivePattern: `(?i)private[_ ]key`,
	})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	if got := classifier.ClassifyResponse(ParseResponse("HTTP/1.1 200 OK\n\nconsole")); got.Level != RiskHigh {
		t.Errorf("custom admin marker not applied, got %v", got.Level)
	}
	if got := classifier.ClassifyResponse(ParseResponse("HTTP/1.1 200 OK\n\nadmin")); got.Level != RiskLow {
		t.Errorf("default admin marker should be replaced, got %v", got.Level)
	}
	if got := classifier.ClassifyResponse(ParseResponse("HTTP/1.1 404 Not Found\n\nAWS_SECRET")); got.Rule != RuleCredentialToken {
		t.Errorf("custom credential token not applied, got %+v", got)
	}
	if got := classifier.ClassifyExposedInfo(ParseResponse("HTTP/1.1 200 OK\n\nPRIVATE KEY")); got.Level != RiskHigh {
		t.Errorf("custom pattern not applied, got %v", got.Level)
	}
	if got := classifier.ClassifyExposedInfo(ParseResponse("HTTP/1.1 200 OK\n\npassword")); got.Level != RiskLow {
		t.Errorf("default pattern should be replaced, got %v", got.Level)
	}
}

func TestNewClassifier_InvalidPattern(t *testing.T) {
	_, err := NewClassifier(ClassifierConfig{SensitivePattern: "(unclosed"})
	if !errors.Is(err, secaerrors.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestClassifier_RulesOrder(t *testing.T) {
	classifier := DefaultClassifier()
	rules := classifier.Rules()
	want := []struct {
		name  string
		level RiskLevel
	}{
		{RuleAdminPageOpen, RiskHigh},
		{RuleRedirectOrForbidden, RiskMedium},
		{RuleCredentialToken, RiskHigh},
	}

	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i, w := range want {
		if rules[i].Name != w.name || rules[i].Level != w.level {
			t.Errorf("rule %d = %s/%v, want %s/%v", i, rules[i].Name, rules[i].Level, w.name, w.level)
		}
	}

	// Mutating the copy must not affect the classifier.
	rules[0].Level = RiskLow
	if classifier.Rules()[0].Level != RiskHigh {
		t.Errorf("Rules() should return a copy")
	}
}
