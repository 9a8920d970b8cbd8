package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProgressPrinterLifecycle(t *testing.T) {
	var buf bytes.Buffer
	printer := newProgressPrinter(&buf, "example.com", 0)
	if printer.total != 1 {
		t.Fatalf("expected total to be clamped to 1, got %d", printer.total)
	}

	printer.Start()
	printer.Record(true, 500*time.Millisecond)
	printer.Record(false, time.Second)
	printer.Stop()
	printer.Stop()

	output := buf.String()
	if !strings.Contains(output, "[example.com] Probes: 2/2") {
		t.Fatalf("expected summary progress, got %q", output)
	}
	if !strings.Contains(output, "Answered:1") || !strings.Contains(output, "NoResponse:1") {
		t.Fatalf("expected answered/no-response counts in output, got %q", output)
	}
	if !strings.Contains(output, "Avg:0.75s") {
		t.Fatalf("expected average duration in output, got %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Fatalf("final line should end with a newline, got %q", output)
	}
}
