package checker

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Response is what a single probe produced: the raw text exactly as read (lines joined
// with "\n") plus a structured view of its status line, headers and body.
//
// A Response with an empty Raw is the "no response" sentinel. Err is set when the
// probe failed at the socket layer.
type Response struct {
	Host     string
	Path     string
	Raw      string
	Duration time.Duration
	Err      error

	// Truncated is set when the read stopped at the byte cap before the peer closed.
	Truncated bool

	// Structured view. Parsed is false when Raw does not start with an HTTP status line.
	Parsed     bool
	Proto      string
	StatusCode int
	Reason     string
	Header     http.Header
	Body       string
}

// Empty reports whether the probe returned nothing to classify.
func (r *Response) Empty() bool {
	return r == nil || r.Raw == ""
}

// StatusLine rebuilds the status line from the structured view, e.g. "HTTP/1.1 200 OK".
// It returns "" for unparsed responses.
func (r *Response) StatusLine() string {
	if r == nil || !r.Parsed {
		return ""
	}
	line := r.Proto + " " + strconv.Itoa(r.StatusCode)
	if r.Reason != "" {
		line += " " + r.Reason
	}
	return line
}

// ParseResponse builds a Response from raw response text. It never fails: text that
// does not look like HTTP is kept as Raw with Parsed left false. Truncated responses
// (no blank line after the headers) are accepted and yield an empty body.
func ParseResponse(raw string) *Response {
	resp := &Response{Raw: raw, Header: make(http.Header)}
	if raw == "" {
		return resp
	}

	lines := strings.Split(raw, "\n")
	proto, code, reason, ok := parseStatusLine(strings.TrimRight(lines[0], "\r"))
	if !ok {
		return resp
	}
	resp.Parsed = true
	resp.Proto = proto
	resp.StatusCode = code
	resp.Reason = reason

	i := 1
	for ; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if line == "" {
			i++
			break
		}
		name, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) == "" {
			continue
		}
		resp.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if i < len(lines) {
		resp.Body = strings.Join(lines[i:], "\n")
	}
	return resp
}

func parseStatusLine(line string) (proto string, code int, reason string, ok bool) {
	if !strings.HasPrefix(line, "HTTP/") {
		return "", 0, "", false
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return "", 0, "", false
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 3 {
		return "", 0, "", false
	}
	if len(parts) == 3 {
		reason = strings.TrimSpace(parts[2])
	}
	return parts[0], code, reason, true
}
