package checker

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	secaerrors "github.com/khanhnv2901/seca-probe/internal/shared/errors"
)

type fakeLookup struct {
	hosts     map[string][]string
	cnames    map[string]string
	hostErr   error
	cnameErr  error
	hostCalls int
}

func (f *fakeLookup) LookupHost(ctx context.Context, host string) ([]string, error) {
	f.hostCalls++
	if f.hostErr != nil {
		return nil, f.hostErr
	}
	return f.hosts[host], nil
}

func (f *fakeLookup) LookupCNAME(ctx context.Context, host string) (string, error) {
	if f.cnameErr != nil {
		return "", f.cnameErr
	}
	return f.cnames[host], nil
}

func TestResolver_Resolve(t *testing.T) {
	lookup := &fakeLookup{
		hosts:  map[string][]string{"www.example.com": {"93.184.216.34"}},
		cnames: map[string]string{"www.example.com": "example.edgesuite.net."},
	}
	resolver := &Resolver{Timeout: time.Second, Lookup: lookup}

	got, err := resolver.Resolve(context.Background(), "www.example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := &Resolution{
		Host:          "www.example.com",
		Addresses:     []string{"93.184.216.34"},
		CanonicalName: "example.edgesuite.net",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestResolver_CNAMEFailureKeepsHost(t *testing.T) {
	lookup := &fakeLookup{
		hosts:    map[string][]string{"example.com": {"93.184.216.34"}},
		cnameErr: errors.New("servfail"),
	}
	resolver := &Resolver{Lookup: lookup}

	got, err := resolver.Resolve(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.CanonicalName != "example.com" {
		t.Errorf("CanonicalName = %q, want host itself", got.CanonicalName)
	}
}

func TestResolver_Failure(t *testing.T) {
	tests := []struct {
		name   string
		lookup *fakeLookup
	}{
		{
			name:   "unknown host",
			lookup: &fakeLookup{hostErr: errors.New("no such host")},
		},
		{
			name:   "no addresses",
			lookup: &fakeLookup{hosts: map[string][]string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &Resolver{Lookup: tt.lookup}
			_, err := resolver.Resolve(context.Background(), "nonexistent.invalid")
			if !errors.Is(err, secaerrors.ErrResolutionFailed) {
				t.Fatalf("expected ErrResolutionFailed, got %v", err)
			}
		})
	}
}

func TestResolver_EmptyHost(t *testing.T) {
	lookup := &fakeLookup{}
	resolver := &Resolver{Lookup: lookup}

	_, err := resolver.Resolve(context.Background(), "  ")
	if !errors.Is(err, secaerrors.ErrEmptyTarget) {
		t.Fatalf("expected ErrEmptyTarget, got %v", err)
	}
	if lookup.hostCalls != 0 {
		t.Errorf("expected no lookups for an empty host, got %d", lookup.hostCalls)
	}
}

func TestResolver_IPLiteral(t *testing.T) {
	resolver := &Resolver{Timeout: time.Second}

	got, err := resolver.Resolve(context.Background(), "127.0.0.1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got.Addresses) != 1 || got.Addresses[0] != "127.0.0.1" {
		t.Errorf("Addresses = %v, want [127.0.0.1]", got.Addresses)
	}
	if got.CanonicalName != "127.0.0.1" {
		t.Errorf("CanonicalName = %q", got.CanonicalName)
	}
}
