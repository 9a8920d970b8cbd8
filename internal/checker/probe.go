package checker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/khanhnv2901/seca-probe/internal/shared/constants"
	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
	"go.uber.org/zap"
)

// Prober performs one unencrypted HTTP exchange against host and path. It never
// returns nil; failures come back as an empty Response with Err set.
type Prober interface {
	Probe(ctx context.Context, host, path string) *Response
}

// TCPProber sends a minimal HTTP/1.1 GET over a plain TCP socket and reads until the
// peer closes. No chunked or Content-Length framing is applied; the request asks for
// "Connection: close" and the close delimits the response.
type TCPProber struct {
	Port             int           // defaults to 80
	Timeout          time.Duration // bounds dial, write and read together
	MaxResponseBytes int64         // read cap; defaults to constants.MaxResponseBytes
	Logger           *zap.SugaredLogger
}

// Probe opens one connection, sends the request and returns the raw response.
func (p *TCPProber) Probe(ctx context.Context, host, path string) *Response {
	start := time.Now()
	raw, truncated, err := p.exchange(ctx, host, path)
	duration := time.Since(start)

	if err != nil {
		p.logger().Warnw("probe failed", "host", host, "path", path, "error", err)
		resp := ParseResponse("")
		resp.Host, resp.Path = host, path
		resp.Duration = duration
		resp.Err = fmt.Errorf("%w: %s%s: %w", secaerrors.ErrConnectionFailed, host, path, err)
		return resp
	}

	resp := ParseResponse(raw)
	resp.Host, resp.Path = host, path
	resp.Duration = duration
	resp.Truncated = truncated
	if truncated {
		p.logger().Warnw("response truncated at byte cap", "host", host, "path", path, "max_bytes", p.maxBytes())
	}
	p.logger().Debugw("probe complete", "host", host, "path", path, "status", resp.StatusCode, "bytes", len(raw))
	return resp
}

func (p *TCPProber) exchange(ctx context.Context, host, path string) (string, bool, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(p.port())))
	if err != nil {
		return "", false, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return "", false, err
		}
	}

	// Unblock reads immediately when the caller cancels.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := io.WriteString(conn, buildRequest(host, path)); err != nil {
		return "", false, err
	}

	limited := &io.LimitedReader{R: conn, N: p.maxBytes()}
	raw, err := readLines(limited)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		return "", false, err
	}
	return raw, limited.N <= 0, nil
}

func buildRequest(host, path string) string {
	var b strings.Builder
	b.WriteString("GET " + path + " HTTP/1.1\r\n")
	b.WriteString("Host: " + urlHost(host) + "\r\n")
	b.WriteString("Connection: close\r\n")
	b.WriteString("\r\n")
	return b.String()
}

// readLines reads until EOF and returns every line terminated by "\n", with any
// "\r\n" line endings normalized.
func readLines(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	var b strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			b.WriteString(strings.TrimRight(line, "\r\n"))
			b.WriteByte('\n')
		}
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (p *TCPProber) port() int {
	if p.Port > 0 {
		return p.Port
	}
	return constants.DefaultHTTPPort
}

func (p *TCPProber) maxBytes() int64 {
	if p.MaxResponseBytes > 0 {
		return p.MaxResponseBytes
	}
	return constants.MaxResponseBytes
}

func (p *TCPProber) logger() *zap.SugaredLogger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop().Sugar()
}
