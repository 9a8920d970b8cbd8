package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	info := buildInfo{
		Version:   "v1.2.3",
		GitCommit: "abc123",
		BuildDate: "2026-01-02",
		GoVersion: "go1.24.0",
		Platform:  "linux/amd64",
	}

	var short bytes.Buffer
	printVersion(&short, info, false)
	if short.String() != "SECA-Probe version v1.2.3\n" {
		t.Fatalf("unexpected short output %q", short.String())
	}

	var long bytes.Buffer
	printVersion(&long, info, true)
	for _, want := range []string{"Version:    v1.2.3", "Git Commit: abc123", "Build Date: 2026-01-02", "OS/Arch:    linux/amd64"} {
		if !strings.Contains(long.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, long.String())
		}
	}
}
