package checker

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/khanhnv2901/seca-probe/internal/shared/constants"
	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
)

// HostLookup is the subset of *net.Resolver the Resolver needs.
type HostLookup interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}

// HostResolver turns a hostname into a confirmed address.
type HostResolver interface {
	Resolve(ctx context.Context, host string) (*Resolution, error)
}

// Resolution is the outcome of a successful lookup.
type Resolution struct {
	Host          string   `json:"host"`
	Addresses     []string `json:"addresses"`
	CanonicalName string   `json:"canonical_name"`
}

// Resolver performs DNS resolution for diagnostics before probing
type Resolver struct {
	Timeout    time.Duration
	NameServer []string   // Optional custom nameservers
	Lookup     HostLookup // Optional; built from NameServer when nil
}

// Resolve looks up host. IP literals resolve to themselves.
func (d *Resolver) Resolve(ctx context.Context, host string) (*Resolution, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, secaerrors.ErrEmptyTarget
	}

	lookup := d.lookup()
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultDNSTimeout
	}

	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addrs, err := lookup.LookupHost(lookupCtx, host)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", secaerrors.ErrResolutionFailed, host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w for %s: no addresses found", secaerrors.ErrResolutionFailed, host)
	}

	result := &Resolution{
		Host:          host,
		Addresses:     addrs,
		CanonicalName: host,
	}

	if net.ParseIP(host) != nil {
		return result, nil
	}

	// Canonical name is best effort; a failed CNAME lookup keeps the host itself.
	cnameCtx, cancel2 := context.WithTimeout(ctx, timeout)
	defer cancel2()

	if cname, err := lookup.LookupCNAME(cnameCtx, host); err == nil {
		if cname = strings.TrimSuffix(cname, "."); cname != "" {
			result.CanonicalName = cname
		}
	}

	return result, nil
}

func (d *Resolver) lookup() HostLookup {
	if d.Lookup != nil {
		return d.Lookup
	}

	resolver := &net.Resolver{
		PreferGo: true,
	}

	// If custom nameservers provided, use them
	if len(d.NameServer) > 0 {
		dialer := &net.Dialer{
			Timeout: d.Timeout,
		}
		server := d.NameServer[0]
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, "53")
		}
		resolver.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
			// Use first nameserver for now
			return dialer.DialContext(ctx, network, server)
		}
	}
	return resolver
}
